package tree

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single class", []int{3, 3, 3}, 0},
		{"one element", []int{9}, 0},
		{"balanced pair", []int{0, 1}, 1},
		{"balanced 4", []int{0, 1, 1, 0}, 1},
		{"balanced 10", []int{5, 5, 5, 5, 5, 2, 2, 2, 2, 2}, 1},
		{"three equal classes", []int{0, 1, 2}, math.Log2(3)},
		{"quarter", []int{0, 1, 1, 1}, 0.8112781244591328},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Entropy(tt.labels), 1e-12)
		})
	}
}

func TestEntropyBalancedIsExactlyOne(t *testing.T) {
	for n := 1; n <= 50; n++ {
		labels := make([]string, 0, 2*n)
		for i := 0; i < n; i++ {
			labels = append(labels, "yes", "no")
		}
		assert.Equal(t, 1.0, Entropy(labels), "n=%d", n)
	}
}

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, Gini[int](nil))
	assert.Equal(t, 0.0, Gini([]string{"a", "a"}))
	assert.InDelta(t, 0.5, Gini([]int{0, 1}), 1e-12)
	assert.InDelta(t, 2.0/3.0, Gini([]int{0, 1, 2}), 1e-12)
}

func TestInformationGain(t *testing.T) {
	parent := []int{0, 0, 1, 1}

	assert.Equal(t, 0.0, InformationGain(parent, nil, parent), "empty left")
	assert.Equal(t, 0.0, InformationGain(parent, parent, []int{}), "empty right")
	assert.InDelta(t, 1.0, InformationGain(parent, []int{0, 0}, []int{1, 1}), 1e-12, "perfect split")
	assert.InDelta(t, 0.0, InformationGain(parent, []int{0, 1}, []int{0, 1}), 1e-12, "useless split")
	assert.InDelta(t, 0.8112781244591328-0.75*0.9182958340544896,
		InformationGain([]int{0, 1, 1, 1}, []int{0, 1, 1}, []int{1}), 1e-12, "partial split")
}

func TestInformationGainBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	for trial := 0; trial < 500; trial++ {
		n := 1 + rng.IntN(40)
		parent := make([]int, n)
		for i := range parent {
			parent[i] = rng.IntN(4)
		}
		cut := rng.IntN(n + 1)
		left, right := parent[:cut], parent[cut:]

		g := InformationGain(parent, left, right)
		assert.GreaterOrEqual(t, g, 0.0)
		assert.LessOrEqual(t, g, Entropy(parent)+1e-12)
		if len(left) == 0 || len(right) == 0 {
			assert.Equal(t, 0.0, g)
		}
	}
}
