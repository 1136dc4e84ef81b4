package tree

import (
	"fmt"
	"sync"

	"github.com/YuminosukeSato/scitree/core/parallel"
	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// PredictOne returns the label of the leaf that row falls into.
func (t *Tree[L]) PredictOne(row []float64) (L, error) {
	h, err := t.leaf(0, row)
	if err != nil {
		var zero L
		return zero, err
	}
	return t.Nodes[h].Label, nil
}

// Predict labels every row of X. The i-th output corresponds to X[i]. Large
// inputs are split across goroutines; when several rows are invalid, the
// error for the lowest row index is returned.
func (t *Tree[L]) Predict(X [][]float64) ([]L, error) {
	if t == nil || len(t.Nodes) == 0 {
		return nil, errors.NewNotFittedError("Tree", "Predict")
	}
	out := make([]L, len(X))

	var (
		mu       sync.Mutex
		firstErr error
		errRow   = len(X)
	)
	parallel.ParallelizeWithThreshold(len(X), parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			h, err := t.leaf(i, X[i])
			if err != nil {
				mu.Lock()
				if i < errRow {
					errRow, firstErr = i, err
				}
				mu.Unlock()
				return
			}
			out[i] = t.Nodes[h].Label
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// PredictProba returns the training class distribution of the leaf that row
// falls into, aligned with Classes.
func (t *Tree[L]) PredictProba(row []float64) ([]float64, error) {
	return t.proba(0, row)
}

func (t *Tree[L]) proba(rowIdx int, row []float64) ([]float64, error) {
	h, err := t.leaf(rowIdx, row)
	if err != nil {
		return nil, err
	}
	n := &t.Nodes[h]
	proba := make([]float64, len(t.Classes))
	if n.Samples == 0 || len(n.Counts) != len(proba) {
		// Hand-built trees may omit counts; fall back to a point mass.
		for i, c := range t.Classes {
			if c == n.Label {
				proba[i] = 1
			}
		}
		return proba, nil
	}
	for i, c := range n.Counts {
		proba[i] = float64(c) / float64(n.Samples)
	}
	return proba, nil
}

// Apply returns the handle of the leaf that row falls into.
func (t *Tree[L]) Apply(row []float64) (int, error) {
	return t.leaf(0, row)
}

// DecisionPath returns the handles visited from the root to row's leaf,
// inclusive.
func (t *Tree[L]) DecisionPath(row []float64) ([]int, error) {
	var path []int
	_, err := t.walk(0, row, func(h int) { path = append(path, h) })
	if err != nil {
		return nil, err
	}
	return path, nil
}

func (t *Tree[L]) leaf(rowIdx int, row []float64) (int, error) {
	return t.walk(rowIdx, row, nil)
}

// walk descends from the root, calling visit on every handle it passes.
// rowIdx is only used to annotate errors.
func (t *Tree[L]) walk(rowIdx int, row []float64, visit func(h int)) (int, error) {
	const op = "Tree.Predict"
	if t == nil || len(t.Nodes) == 0 {
		return 0, errors.NewNotFittedError("Tree", "Predict")
	}
	if len(row) < t.NFeatures {
		return 0, errors.NewOutOfBoundsFeatureError(rowIdx, t.NFeatures-1, len(row))
	}
	if len(row) > t.NFeatures {
		return 0, errors.NewDimensionError(op, t.NFeatures, len(row), 1)
	}

	h := 0
	// A valid tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps < len(t.Nodes); steps++ {
		if h < 0 || h >= len(t.Nodes) {
			return 0, errors.NewModelError(op, fmt.Sprintf("dangling child handle %d", h), errors.ErrCorruptTree)
		}
		if visit != nil {
			visit(h)
		}
		n := &t.Nodes[h]
		switch n.Kind {
		case LeafNode:
			return h, nil
		case DecisionNode:
			if n.Feature < 0 || n.Feature >= len(row) {
				return 0, errors.NewOutOfBoundsFeatureError(rowIdx, n.Feature, len(row))
			}
			if row[n.Feature] <= n.Threshold {
				h = n.Left
			} else {
				h = n.Right
			}
		default:
			return 0, errors.NewModelError(op, fmt.Sprintf("node %d has unknown kind %s", h, n.Kind), errors.ErrCorruptTree)
		}
	}
	return 0, errors.NewModelError(op, fmt.Sprintf("no leaf reached within %d steps", len(t.Nodes)), errors.ErrCorruptTree)
}
