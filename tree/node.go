package tree

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// Kind tags a Node as a decision or a leaf.
type Kind uint8

const (
	// LeafNode carries a predicted label.
	LeafNode Kind = iota
	// DecisionNode routes a row to Left when row[Feature] <= Threshold and to
	// Right otherwise.
	DecisionNode
)

func (k Kind) String() string {
	switch k {
	case LeafNode:
		return "leaf"
	case DecisionNode:
		return "decision"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case LeafNode, DecisionNode:
		return []byte(k.String()), nil
	default:
		return nil, errors.Newf("tree: unknown node kind %d", uint8(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "leaf":
		*k = LeafNode
	case "decision":
		*k = DecisionNode
	default:
		return errors.Newf("tree: unknown node kind %q", text)
	}
	return nil
}

// Node is one element of a Tree's arena. Feature, Threshold, Left, Right and
// Gain are meaningful only for decision nodes. Label is the prediction of a
// leaf; on a decision node it holds the majority label of the rows that
// reached it.
type Node[L comparable] struct {
	Kind      Kind    `json:"kind"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Label     L       `json:"label"`

	Depth    int     `json:"depth"`
	Samples  int     `json:"samples"`
	Impurity float64 `json:"impurity"`
	Gain     float64 `json:"gain,omitempty"`
	// Counts holds the per-class row counts at this node, aligned with
	// Tree.Classes.
	Counts []int `json:"counts"`
}

// IsLeaf reports whether n is a leaf.
func (n *Node[L]) IsLeaf() bool { return n.Kind == LeafNode }

// Tree is a fitted decision tree. Nodes[0] is the root and every child
// handle is greater than its parent's. A Tree is never modified after Build
// returns it.
type Tree[L comparable] struct {
	Nodes     []Node[L]     `json:"nodes"`
	Classes   []L           `json:"classes"`
	NFeatures int           `json:"n_features"`
	Criterion CriterionType `json:"criterion"`
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree[L]) Root() *Node[L] {
	if t == nil || len(t.Nodes) == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Node returns the node with handle h.
func (t *Tree[L]) Node(h int) (*Node[L], error) {
	if h < 0 || h >= len(t.Nodes) {
		return nil, errors.NewModelError("Tree.Node",
			fmt.Sprintf("handle %d out of range [0,%d)", h, len(t.Nodes)), errors.ErrCorruptTree)
	}
	return &t.Nodes[h], nil
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree[L]) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree[L]) LeafCount() int {
	n := 0
	if t == nil {
		return 0
	}
	for i := range t.Nodes {
		if t.Nodes[i].Kind == LeafNode {
			n++
		}
	}
	return n
}

// Depth returns the number of decision levels on the longest root-to-leaf
// path. A single-leaf tree has depth 0.
func (t *Tree[L]) Depth() int {
	d := 0
	if t == nil {
		return 0
	}
	for i := range t.Nodes {
		if t.Nodes[i].Kind == LeafNode && t.Nodes[i].Depth > d {
			d = t.Nodes[i].Depth
		}
	}
	return d
}

// Validate checks the structural invariants of the arena: every decision
// node references an in-range feature and two distinct children with larger
// handles, every node except the root is referenced exactly once, and
// per-node counts line up with Classes. Trees returned by Build always pass;
// Validate exists for trees decoded from disk.
func (t *Tree[L]) Validate() error {
	const op = "Tree.Validate"
	if t == nil || len(t.Nodes) == 0 {
		return errors.NewModelError(op, "tree has no nodes", errors.ErrCorruptTree)
	}
	if t.NFeatures < 0 {
		return errors.NewModelError(op, fmt.Sprintf("negative feature count %d", t.NFeatures), errors.ErrCorruptTree)
	}

	refs := make([]int, len(t.Nodes))
	for h := range t.Nodes {
		n := &t.Nodes[h]
		if n.Counts != nil && len(n.Counts) != len(t.Classes) {
			return errors.NewModelError(op,
				fmt.Sprintf("node %d has %d class counts, want %d", h, len(n.Counts), len(t.Classes)), errors.ErrCorruptTree)
		}
		switch n.Kind {
		case LeafNode:
		case DecisionNode:
			if n.Feature < 0 || n.Feature >= t.NFeatures {
				return errors.NewModelError(op,
					fmt.Sprintf("node %d splits on feature %d of %d", h, n.Feature, t.NFeatures), errors.ErrCorruptTree)
			}
			for _, c := range [2]int{n.Left, n.Right} {
				if c <= h || c >= len(t.Nodes) {
					return errors.NewModelError(op,
						fmt.Sprintf("node %d has invalid child %d", h, c), errors.ErrCorruptTree)
				}
				refs[c]++
			}
			if n.Left == n.Right {
				return errors.NewModelError(op,
					fmt.Sprintf("node %d has identical children", h), errors.ErrCorruptTree)
			}
		default:
			return errors.NewModelError(op,
				fmt.Sprintf("node %d has unknown kind %s", h, n.Kind), errors.ErrCorruptTree)
		}
	}
	for h := 1; h < len(refs); h++ {
		if refs[h] != 1 {
			return errors.NewModelError(op,
				fmt.Sprintf("node %d is referenced %d times", h, refs[h]), errors.ErrCorruptTree)
		}
	}
	return nil
}

// FeatureImportances returns, per feature, the total impurity decrease
// contributed by splits on that feature, weighted by the fraction of
// training rows reaching each split and normalised to sum to 1. A tree
// without decision nodes yields all zeros.
func (t *Tree[L]) FeatureImportances() []float64 {
	if t == nil {
		return nil
	}
	imp := make([]float64, t.NFeatures)
	root := t.Root()
	if root == nil || root.Samples == 0 {
		return imp
	}
	total := float64(root.Samples)
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Kind != DecisionNode {
			continue
		}
		imp[n.Feature] += float64(n.Samples) / total * n.Gain
	}
	if sum := floats.Sum(imp); sum > 0 {
		floats.Scale(1/sum, imp)
	}
	return imp
}
