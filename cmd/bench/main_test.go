package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowShopGA/internal/config"
)

func TestFlagsCompleteConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\nruns: 3\n"), 0o644))

	cfg, err := config.Read(path)
	require.NoError(t, err)

	applyFlags(cfg, "", 8, 3, 5, 0, 0, "", "debug", "", "", 0)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Runs)
	require.NotNil(t, cfg.Matrix.Random)
	assert.Equal(t, 8, cfg.Matrix.Random.Operations)
	assert.Equal(t, 3, cfg.Matrix.Random.Machines)

	m, err := loadMatrix(cfg.Matrix)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Operations)

	exp, err := buildExperiment(cfg, m)
	require.NoError(t, err)
	assert.Len(t, exp.Stages, 5)
}

func TestMatrixFlagReplacesRandomSource(t *testing.T) {
	cfg := config.Default()
	cfg.Matrix.Random = &config.RandomMatrix{Operations: 4, Machines: 2, Max: 1}

	applyFlags(cfg, "m.txt", 20, 5, 777, 2, 9, "out.csv", "", "sqlite", "runs.db", 4)

	assert.Equal(t, "m.txt", cfg.Matrix.Path)
	assert.Nil(t, cfg.Matrix.Random)
	assert.Equal(t, 2, cfg.Runs)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, "out.csv", cfg.Output)
	assert.Equal(t, "sqlite", cfg.Store.Kind)
	assert.Equal(t, 4, cfg.GA.Workers)
	assert.NoError(t, cfg.Validate())
}
