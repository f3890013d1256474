package heuristic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopGA/internal/flowshop"
)

func sampleMatrix(t *testing.T) *flowshop.Matrix {
	t.Helper()
	m, err := flowshop.NewMatrix([][]float64{
		{1.2, 2.3, 4.1, 2.4, 3.3},
		{1.5, 1.4, 1.3, 4.1, 3.1},
		{2.1, 4.2, 2.1, 1.7, 6.1},
	})
	require.NoError(t, err)
	return m
}

func TestGreedySample(t *testing.T) {
	m := sampleMatrix(t)
	perm := NewGreedy(m).Start()
	assert.Equal(t, []int{0, 2, 1, 3, 4}, perm.Slice())

	crit, err := perm.Criterion(m)
	require.NoError(t, err)
	assert.InDelta(t, 127.7, crit, 1e-9)
}

func TestGreedyStableOnTies(t *testing.T) {
	m, err := flowshop.NewMatrix([][]float64{{1, 1, 1}, {2, 2, 2}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, NewGreedy(m).Start().Slice())
}

func TestPalmerSample(t *testing.T) {
	m := sampleMatrix(t)
	// Наклоны: op0=1.8, op1=3.8, op2=-4.0, op3=-1.4, op4=5.6.
	assert.Equal(t, []int{4, 1, 0, 3, 2}, NewPalmer(m).Start().Slice())
}

func TestHeuristicsProduceValidPermutations(t *testing.T) {
	m := flowshop.RandomMatrix(25, 6, 1, 50, rand.New(rand.NewSource(11)))
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			h, err := New(name, m)
			require.NoError(t, err)
			res, err := Solve(h, m)
			require.NoError(t, err)
			require.NoError(t, flowshop.ValidatePermutation(res.Permutation.Slice(), m.Operations))
			assert.Greater(t, res.Criterion, 0.0)
			assert.Greater(t, res.Makespan, 0.0)
			assert.Equal(t, name, res.Meta["heuristic"])
		})
	}
}

func TestNewUnknownHeuristic(t *testing.T) {
	_, err := New("neh", sampleMatrix(t))
	assert.Error(t, err)
}
