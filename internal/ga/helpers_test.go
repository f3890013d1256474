package ga

import (
	"math/rand"
	"testing"

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

func newTestEngine(t *testing.T, m *flowshop.Matrix, s Strategy, seed int64) *Engine {
	t.Helper()
	e, err := New(m, s, DefaultParams(), rand.New(rand.NewSource(seed)), nil)
	require.NoError(t, err)
	return e
}

func requireBijection(t *testing.T, p flowshop.Permutation, n int) {
	t.Helper()
	require.NoError(t, flowshop.ValidatePermutation(p.Slice(), n))
}

// allStrategies перебирает все сочетания вариантов.
func allStrategies() []Strategy {
	var out []Strategy
	for _, cx := range []Crossover{CrossoverOX, CrossoverCX} {
		for _, mut := range []Mutation{MutationAdjacentSwap, MutationRandomSwap} {
			for _, sel := range []NextGeneration{SelectTournament, SelectRoulette} {
				out = append(out, Strategy{
					Initial:   InitialRandom,
					Parents:   Panmixia,
					Crossover: cx,
					Mutation:  mut,
					Selection: sel,
				})
			}
		}
	}
	return out
}
