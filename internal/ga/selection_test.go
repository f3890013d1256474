package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopGA/internal/flowshop"
)

func evaluatedPopulation(t *testing.T, perms []flowshop.Permutation, fitness []float64) *Population {
	t.Helper()
	pop := NewPopulation()
	for i, p := range perms {
		require.NoError(t, pop.AddEvaluated(p, fitness[i]))
	}
	return pop
}

func TestPanmixiaDrawsFromPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := NewPopulation(flowshop.Identity(3), flowshop.MustPermutation(2, 1, 0))
	for i := 0; i < 50; i++ {
		a, b, err := panmixia(pop, rng)
		require.NoError(t, err)
		assert.Equal(t, 1, pop.DuplicateCount(a))
		assert.Equal(t, 1, pop.DuplicateCount(b))
	}
	_, _, err := panmixia(NewPopulation(), rng)
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestTournamentSelectRemovesWinners(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	var perms []flowshop.Permutation
	var fitness []float64
	for i := 0; i < 20; i++ {
		perms = append(perms, flowshop.RandomPermutation(6, rng))
		fitness = append(fitness, float64(i))
	}
	pool := evaluatedPopulation(t, perms, fitness)

	out, err := tournamentSelect(pool, 9, 4, rng)
	require.NoError(t, err)
	assert.Equal(t, 9, out.Len())
	assert.Equal(t, 11, pool.Len())
	assert.True(t, out.Evaluated())
	assert.True(t, pool.Evaluated())

	// Без возвращения: каждый критерий встречается один раз.
	seen := map[float64]bool{}
	for _, f := range out.Fitness() {
		assert.False(t, seen[f])
		seen[f] = true
	}
	for _, f := range pool.Fitness() {
		assert.False(t, seen[f])
	}
}

func TestTournamentSelectPoolExhausted(t *testing.T) {
	pool := evaluatedPopulation(t, []flowshop.Permutation{flowshop.Identity(2)}, []float64{1})
	_, err := tournamentSelect(pool, 2, 4, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestRouletteSelectFavoursLowerCriterion(t *testing.T) {
	good := flowshop.MustPermutation(0, 1, 2)
	bad := flowshop.MustPermutation(2, 1, 0)
	pool := evaluatedPopulation(t, []flowshop.Permutation{bad, good}, []float64{99, 1})

	out, err := rouletteSelect(pool, 1000, rand.New(rand.NewSource(21)))
	require.NoError(t, err)
	require.Equal(t, 1000, out.Len())
	assert.Equal(t, 2, pool.Len(), "roulette samples with replacement")
	assert.Greater(t, out.DuplicateCount(good), 900)

	for i := 0; i < out.Len(); i++ {
		f, err := out.FitnessAt(i)
		require.NoError(t, err)
		if out.At(i).Equal(good) {
			assert.Equal(t, 1.0, f)
		} else {
			assert.Equal(t, 99.0, f)
		}
	}
}

func TestRouletteSelectCountsDuplicatesOnce(t *testing.T) {
	a := flowshop.MustPermutation(0, 1, 2)
	b := flowshop.MustPermutation(1, 0, 2)
	pool := evaluatedPopulation(t, []flowshop.Permutation{a, a, a, b}, []float64{5, 5, 5, 5})

	out, err := rouletteSelect(pool, 9, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, 9, out.Len())
	assert.Equal(t, 9, out.DuplicateCount(a)+out.DuplicateCount(b))
}

func TestRouletteSelectZeroFitness(t *testing.T) {
	pool := evaluatedPopulation(t,
		[]flowshop.Permutation{flowshop.Identity(2), flowshop.MustPermutation(1, 0)},
		[]float64{0, 0})
	out, err := rouletteSelect(pool, 5, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Equal(t, 5, out.Len())
}

func TestSelectionRequiresEvaluation(t *testing.T) {
	pool := NewPopulation(flowshop.Identity(3))
	_, err := tournamentSelect(pool, 1, 4, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNotEvaluated)
	_, err = rouletteSelect(pool, 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNotEvaluated)
	_, err = rouletteSelect(NewPopulation(), 1, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}
