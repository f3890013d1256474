package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/ga"
	"flowShopGA/internal/storage"
)

func sampleExperiment(t *testing.T) Experiment {
	t.Helper()
	m, err := flowshop.NewMatrix([][]float64{
		{1.2, 2.3, 4.1, 2.4, 3.3},
		{1.5, 1.4, 1.3, 4.1, 3.1},
		{2.1, 4.2, 2.1, 1.7, 6.1},
	})
	require.NoError(t, err)

	return Experiment{
		Name:     "sample",
		Matrix:   m,
		SeedWith: "greedy",
		Params:   ga.DefaultParams(),
		Stages: []Stage{
			{Name: "cx-tournament", Strategy: ga.DefaultStrategy()},
			{Name: "ox-roulette", Strategy: ga.Strategy{
				Initial:   ga.InitialRandom,
				Parents:   ga.Panmixia,
				Crossover: ga.CrossoverOX,
				Mutation:  ga.MutationAdjacentSwap,
				Selection: ga.SelectRoulette,
			}},
		},
	}
}

func TestRunnerStagesImproveOnSeed(t *testing.T) {
	exp := sampleExperiment(t)
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init(context.Background()))

	r := Runner{Runs: 2, BaseSeed: 42, Store: store}
	records, runs, err := r.Run(context.Background(), exp)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "greedy", records[0].Stage)
	assert.Equal(t, "cx-tournament", records[1].Stage)
	assert.Equal(t, "ox-roulette", records[2].Stage)
	assert.InDelta(t, 127.7, records[0].CriterionBest, 1e-9)
	for _, rec := range records {
		assert.Equal(t, 2, rec.Runs)
		assert.Equal(t, 5, rec.Operations)
		assert.Equal(t, 3, rec.Machines)
	}

	require.Len(t, runs, 6)
	for i := 0; i < len(runs); i += 3 {
		greedy, first, second := runs[i], runs[i+1], runs[i+2]
		assert.Equal(t, greedy.Run, second.Run)
		assert.LessOrEqual(t, first.Result.Criterion, greedy.Result.Criterion)
		assert.LessOrEqual(t, second.Result.Criterion, first.Result.Criterion)
		assert.NoError(t, flowshop.ValidatePermutation(second.Result.Permutation.Slice(), 5))
	}

	saved, err := store.ListStageResults(context.Background(), "sample")
	require.NoError(t, err)
	require.Len(t, saved, 6)
	assert.Equal(t, 0, saved[0].RunIndex)
	assert.Equal(t, "greedy", saved[0].Stage)
	assert.Equal(t, "greedy", saved[0].Strategy)
	assert.Equal(t, "random/panmixia/ox/adjacent-swap/roulette", saved[2].Strategy)
	assert.Equal(t, int64(43), saved[3].Seed)
	assert.Equal(t, saved[0].BatchID, saved[5].BatchID)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)
}

func TestRunnerReproducible(t *testing.T) {
	exp := sampleExperiment(t)
	exp.SeedWith = "none"

	r := Runner{Runs: 2, BaseSeed: 7}
	_, first, err := r.Run(context.Background(), exp)
	require.NoError(t, err)
	_, second, err := r.Run(context.Background(), exp)
	require.NoError(t, err)

	require.Len(t, first, 4)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Stage, second[i].Stage)
		assert.True(t, first[i].Result.Permutation.Equal(second[i].Result.Permutation))
		assert.Equal(t, first[i].Result.Iterations, second[i].Result.Iterations)
	}
}

func TestRunnerErrors(t *testing.T) {
	exp := sampleExperiment(t)

	_, _, err := Runner{Runs: 0}.Run(context.Background(), exp)
	assert.Error(t, err)

	empty := exp
	empty.Stages = nil
	_, _, err = Runner{Runs: 1}.Run(context.Background(), empty)
	assert.Error(t, err)

	unknown := exp
	unknown.SeedWith = "neh"
	_, _, err = Runner{Runs: 1}.Run(context.Background(), unknown)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Runner{Runs: 1}.Run(ctx, exp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteCSV(t *testing.T) {
	exp := sampleExperiment(t)
	records, _, err := Runner{Runs: 1, BaseSeed: 1}.Run(context.Background(), exp)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "stages.csv")
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "experiment", rows[0][0])
	assert.Len(t, rows[0], 13)
	assert.Equal(t, []string{"sample", "greedy", "5", "3", "1"}, rows[1][:5])
	assert.Equal(t, "127.700000", rows[1][8])
}

func TestAggregateKeepsStageNamedLikeHeuristicApart(t *testing.T) {
	exp := sampleExperiment(t)
	exp.Stages[0].Name = "greedy"

	records, runs, err := Runner{Runs: 2, BaseSeed: 5}.Run(context.Background(), exp)
	require.NoError(t, err)
	require.Len(t, runs, 6)

	require.Len(t, records, 3)
	assert.Equal(t, "greedy", records[0].Stage)
	assert.Equal(t, "greedy", records[1].Stage)
	assert.Equal(t, "ox-roulette", records[2].Stage)
	assert.InDelta(t, 127.7, records[0].CriterionBest, 1e-9)
	assert.InDelta(t, 127.7, records[0].CriterionMean, 1e-9)
	assert.InDelta(t, 0, records[0].CriterionStd, 1e-9)
	assert.LessOrEqual(t, records[1].CriterionBest, records[0].CriterionBest)
}
