package flowshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriterionSample(t *testing.T) {
	m := sampleMatrix(t)

	got, err := Identity(5).Criterion(m)
	require.NoError(t, err)
	assert.InDelta(t, 120.6, got, 1e-9)

	got, err = MustPermutation(1, 2, 0, 3, 4).Criterion(m)
	require.NoError(t, err)
	assert.InDelta(t, 137.4, got, 1e-9)
}

func TestCriterionDeterministic(t *testing.T) {
	m := sampleMatrix(t)
	eval, err := NewEvaluator(m)
	require.NoError(t, err)

	p := MustPermutation(4, 2, 0, 3, 1)
	first := eval.MustCriterion(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, eval.MustCriterion(p))
	}
	viaPerm, err := p.Criterion(m)
	require.NoError(t, err)
	assert.Equal(t, first, viaPerm)
}

func TestCriterionLengthMismatch(t *testing.T) {
	m := sampleMatrix(t)
	_, err := Identity(4).Criterion(m)
	assert.ErrorIs(t, err, ErrInvalidPermutation)
}

func TestMakespanSample(t *testing.T) {
	m := sampleMatrix(t)
	eval, err := NewEvaluator(m)
	require.NoError(t, err)

	// Машина 0: 1.2 3.5 7.6 10.0 13.3
	// Машина 1: 2.7 4.9 8.9 14.1 17.2
	// Машина 2: 4.8 9.1 11.2 15.8 23.3
	got, err := eval.Makespan(Identity(5))
	require.NoError(t, err)
	assert.InDelta(t, 23.3, got, 1e-9)
}
