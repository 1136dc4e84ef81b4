package tree

import "math"

// Entropy returns the Shannon entropy, in bits, of the empirical label
// distribution. It is 0 for an empty or single-class input.
func Entropy[L comparable](labels []L) float64 {
	return entropyCounts(countLabels(labels).values(), len(labels))
}

// Gini returns the Gini impurity 1 - Σ p_c² of the label distribution.
// It is 0 for an empty or single-class input.
func Gini[L comparable](labels []L) float64 {
	return giniCounts(countLabels(labels).values(), len(labels))
}

// InformationGain returns the entropy of parent minus the size-weighted
// entropy of left and right. A split with an empty side carries no
// information and scores 0.
func InformationGain[L comparable](parent, left, right []L) float64 {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	return splitGain(
		Entropy(parent),
		Entropy(left), len(left),
		Entropy(right), len(right),
		len(parent),
	)
}

// splitGain is the weighted impurity decrease of a binary split, never
// negative.
func splitGain(parentImp, leftImp float64, nLeft int, rightImp float64, nRight, n int) float64 {
	total := float64(n)
	g := parentImp - (float64(nLeft)/total*leftImp + float64(nRight)/total*rightImp)
	if g < 0 {
		return 0
	}
	return g
}

func entropyCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	total := float64(n)
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

func giniCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	total := float64(n)
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / total
		sum += p * p
	}
	return 1 - sum
}
