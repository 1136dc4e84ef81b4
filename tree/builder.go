package tree

import (
	"context"
	"sort"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// gainTolerance absorbs floating-point noise when comparing gains, so that a
// candidate must beat the incumbent by more than rounding error to replace
// it.
const gainTolerance = 1e-12

// Build fits a decision tree to the sample table X and labels y. X is not
// modified. Two calls with the same arguments return structurally identical
// trees.
func Build[L comparable](X [][]float64, y []L, opts ...Option) (*Tree[L], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := validateTraining(X, y); err != nil {
		return nil, err
	}
	return build(X, y, cfg), nil
}

func validateTraining[L comparable](X [][]float64, y []L) error {
	const op = "tree.Build"
	if len(X) == 0 {
		return errors.NewModelError(op, "no training rows", errors.ErrEmptyData)
	}
	if len(y) != len(X) {
		return errors.NewInputShapeError(log.PhaseTraining, []int{len(X)}, []int{len(y)})
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return errors.NewRowShapeError(log.PhaseTraining, i, []int{width}, []int{len(row)})
		}
	}
	return errors.CheckRows(op, X)
}

// build assumes validated input.
func build[L comparable](X [][]float64, y []L, cfg config) *Tree[L] {
	classes, ids := encodeLabels(y)
	impurity, _ := cfg.criterion.impurity()

	b := &builder[L]{
		X:        X,
		y:        ids,
		classes:  classes,
		cfg:      cfg,
		impurity: impurity,
		scratch:  make([]int, len(X)),
		left:     make([]int, len(classes)),
		right:    make([]int, len(classes)),
	}
	if cfg.logger != nil && cfg.logger.Enabled(context.Background(), log.LevelDebug) {
		b.debug = cfg.logger
	}

	root := make([]int, len(X))
	for i := range root {
		root[i] = i
	}
	b.grow(root, 0)

	crit := cfg.criterion
	if crit == "" {
		crit = CriterionEntropy
	}
	return &Tree[L]{
		Nodes:     b.nodes,
		Classes:   classes,
		NFeatures: len(X[0]),
		Criterion: crit,
	}
}

// encodeLabels maps labels to dense class ids in first-seen order.
func encodeLabels[L comparable](y []L) ([]L, []int) {
	index := make(map[L]int)
	var classes []L
	ids := make([]int, len(y))
	for i, l := range y {
		id, ok := index[l]
		if !ok {
			id = len(classes)
			index[l] = id
			classes = append(classes, l)
		}
		ids[i] = id
	}
	return classes, ids
}

type builder[L comparable] struct {
	X        [][]float64
	y        []int
	classes  []L
	cfg      config
	impurity func(counts []int, n int) float64
	debug    log.Logger

	nodes []Node[L]

	// Reused by findSplit, which never runs reentrantly.
	scratch     []int
	left, right []int
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

// grow appends the node for the rows in idx, then its subtrees, and returns
// the node's handle.
func (b *builder[L]) grow(idx []int, depth int) int {
	counter := newLabelCounter[int]()
	counts := make([]int, len(b.classes))
	for _, i := range idx {
		counter.add(b.y[i])
		counts[b.y[i]]++
	}
	majority, _ := counter.mostCommon()

	h := len(b.nodes)
	b.nodes = append(b.nodes, Node[L]{
		Kind:     LeafNode,
		Label:    b.classes[majority],
		Depth:    depth,
		Samples:  len(idx),
		Impurity: b.impurity(counts, len(idx)),
		Counts:   counts,
	})

	switch {
	case counter.distinct() == 1:
		return h
	case b.cfg.maxDepth != Unbounded && depth >= b.cfg.maxDepth:
		return h
	case len(idx) < b.cfg.minSamplesSplit:
		return h
	}

	best, ok := b.findSplit(idx, counts, b.nodes[h].Impurity)
	if !ok {
		return h
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if b.X[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	if b.debug != nil {
		b.debug.Debug("split selected",
			"node", h,
			"feature", best.feature,
			"threshold", best.threshold,
			"gain", best.gain,
			"left", len(left),
			"right", len(right),
			log.TreeDepthKey, depth,
		)
	}

	n := &b.nodes[h]
	n.Kind = DecisionNode
	n.Feature = best.feature
	n.Threshold = best.threshold
	n.Gain = best.gain

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[h].Left = l
	b.nodes[h].Right = r
	return h
}

// findSplit scans features in index order and, per feature, the distinct
// values of the subset in ascending order. It returns the first candidate
// with the highest positive gain.
func (b *builder[L]) findSplit(idx []int, counts []int, parentImp float64) (split, bool) {
	var best split
	found := false
	n := len(idx)
	minLeaf := b.cfg.minSamplesLeaf

	sorted := b.scratch[:n]
	for f := 0; f < len(b.X[0]); f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.X[sorted[i]][f] < b.X[sorted[j]][f]
		})

		for c := range counts {
			b.left[c] = 0
			b.right[c] = counts[c]
		}

		for i := 0; i < n; {
			v := b.X[sorted[i]][f]
			for i < n && b.X[sorted[i]][f] == v {
				c := b.y[sorted[i]]
				b.left[c]++
				b.right[c]--
				i++
			}
			nLeft, nRight := i, n-i
			if nRight == 0 {
				break
			}
			if nLeft < minLeaf || nRight < minLeaf {
				continue
			}
			gain := splitGain(parentImp,
				b.impurity(b.left, nLeft), nLeft,
				b.impurity(b.right, nRight), nRight,
				n,
			)
			if gain > best.gain+gainTolerance {
				best = split{feature: f, threshold: v, gain: gain}
				found = true
			}
		}
	}
	return best, found
}
