package tree

// labelCounter counts labels and remembers the order in which each distinct
// label was first seen. mostCommon breaks ties in favour of the label seen
// first.
type labelCounter[L comparable] struct {
	order  []L
	counts map[L]int
}

func newLabelCounter[L comparable]() *labelCounter[L] {
	return &labelCounter[L]{counts: make(map[L]int)}
}

func countLabels[L comparable](labels []L) *labelCounter[L] {
	c := newLabelCounter[L]()
	for _, l := range labels {
		c.add(l)
	}
	return c
}

func (c *labelCounter[L]) add(l L) {
	if _, ok := c.counts[l]; !ok {
		c.order = append(c.order, l)
	}
	c.counts[l]++
}

// distinct returns the number of different labels seen.
func (c *labelCounter[L]) distinct() int {
	return len(c.order)
}

// mostCommon returns the most frequent label and its count.
func (c *labelCounter[L]) mostCommon() (L, int) {
	var best L
	bestCount := 0
	for _, l := range c.order {
		if n := c.counts[l]; n > bestCount {
			best, bestCount = l, n
		}
	}
	return best, bestCount
}

// values returns the counts in first-seen order.
func (c *labelCounter[L]) values() []int {
	out := make([]int, len(c.order))
	for i, l := range c.order {
		out[i] = c.counts[l]
	}
	return out
}
