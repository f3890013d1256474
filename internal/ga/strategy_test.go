package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategyNames(t *testing.T) {
	cx, err := ParseCrossover("cx")
	require.NoError(t, err)
	assert.Equal(t, CrossoverCX, cx)

	mut, err := ParseMutation("saltation")
	require.NoError(t, err)
	assert.Equal(t, MutationRandomSwap, mut)

	mut, err = ParseMutation("point")
	require.NoError(t, err)
	assert.Equal(t, MutationAdjacentSwap, mut)

	sel, err := ParseNextGeneration("roulette")
	require.NoError(t, err)
	assert.Equal(t, SelectRoulette, sel)

	_, err = ParseCrossover("pmx")
	assert.ErrorIs(t, err, ErrUnhandledStrategy)
	_, err = ParseParentSelection("assortative")
	assert.ErrorIs(t, err, ErrUnhandledStrategy)
	_, err = ParseInitialPopulation("")
	assert.ErrorIs(t, err, ErrUnhandledStrategy)
}

func TestStrategyValidate(t *testing.T) {
	assert.NoError(t, DefaultStrategy().Validate())
	for _, s := range allStrategies() {
		assert.NoError(t, s.Validate(), s.String())
	}

	bad := DefaultStrategy()
	bad.Selection = NextGeneration(42)
	err := bad.Validate()
	assert.ErrorIs(t, err, ErrUnhandledStrategy)
	assert.Contains(t, err.Error(), "unknown(42)")

	assert.ErrorIs(t, Strategy{}.Validate(), ErrUnhandledStrategy)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "random/panmixia/cx/random-swap/tournament", DefaultStrategy().String())
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"population", func(p *Params) { p.PopulationSize = 1 }},
		{"mutation share", func(p *Params) { p.MutationShare = 101 }},
		{"tournament", func(p *Params) { p.TournamentSize = 0 }},
		{"stagnation", func(p *Params) { p.StagnationFactor = 0 }},
		{"max generations", func(p *Params) { p.MaxGenerations = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
