package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

func TestKindText(t *testing.T) {
	b, err := json.Marshal(struct{ K Kind }{DecisionNode})
	require.NoError(t, err)
	assert.JSONEq(t, `{"K":"decision"}`, string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("leaf")))
	assert.Equal(t, LeafNode, k)
	assert.Error(t, k.UnmarshalText([]byte("branch")))

	_, err = Kind(7).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestTreeIntrospection(t *testing.T) {
	tr := scenarioTree(t)
	assert.Equal(t, 3, tr.NodeCount())
	assert.Equal(t, 2, tr.LeafCount())
	assert.Equal(t, 1, tr.Depth())

	n, err := tr.Node(2)
	require.NoError(t, err)
	assert.True(t, n.IsLeaf())

	_, err = tr.Node(3)
	assert.True(t, errors.Is(err, errors.ErrCorruptTree))

	var empty *Tree[int]
	assert.Nil(t, empty.Root())
}

func TestTreeHandlesIncreaseFromParent(t *testing.T) {
	X, y := randomDataset(9, 250, 4, 3)
	tr, err := Build(X, y)
	require.NoError(t, err)
	for h, n := range tr.Nodes {
		if n.Kind == DecisionNode {
			assert.Greater(t, n.Left, h)
			assert.Greater(t, n.Right, h)
			assert.Equal(t, n.Depth+1, tr.Nodes[n.Left].Depth)
			assert.Equal(t, n.Samples, tr.Nodes[n.Left].Samples+tr.Nodes[n.Right].Samples)
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, scenarioTree(t).Validate())

	broken := map[string]func(tr *Tree[int]){
		"no nodes":        func(tr *Tree[int]) { tr.Nodes = nil },
		"back edge":       func(tr *Tree[int]) { tr.Nodes[0].Left = 0 },
		"child too large": func(tr *Tree[int]) { tr.Nodes[0].Right = 99 },
		"same children":   func(tr *Tree[int]) { tr.Nodes[0].Right = tr.Nodes[0].Left },
		"feature":         func(tr *Tree[int]) { tr.Nodes[0].Feature = 2 },
		"kind":            func(tr *Tree[int]) { tr.Nodes[1].Kind = Kind(5) },
		"counts":          func(tr *Tree[int]) { tr.Nodes[1].Counts = []int{1} },
		"negative width":  func(tr *Tree[int]) { tr.NFeatures = -1 },
	}
	for name, mutate := range broken {
		t.Run(name, func(t *testing.T) {
			tr := scenarioTree(t)
			mutate(tr)
			err := tr.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCorruptTree))
		})
	}
}

func TestFeatureImportances(t *testing.T) {
	assert.Equal(t, []float64{1, 0}, scenarioTree(t).FeatureImportances())

	stump, err := Build(scenarioX, scenarioY, MaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, stump.FeatureImportances())

	X, y := randomDataset(13, 200, 4, 3)
	tr, err := Build(X, y)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range tr.FeatureImportances() {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTreeJSONRoundTrip(t *testing.T) {
	X, y := randomDataset(17, 120, 3, 3)
	tr, err := Build(X, y)
	require.NoError(t, err)

	b, err := json.Marshal(tr)
	require.NoError(t, err)

	var back Tree[int]
	require.NoError(t, json.Unmarshal(b, &back))
	require.NoError(t, back.Validate())
	assert.Equal(t, tr.NodeCount(), back.NodeCount())

	want, err := tr.Predict(X)
	require.NoError(t, err)
	got, err := back.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
