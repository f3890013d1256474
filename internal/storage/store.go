package storage

import (
	"context"
	"time"
)

// StageResult — итог одной стадии одного запуска эксперимента.
// Хранятся только итоговые лучшие решения; промежуточные популяции не сохраняются.
type StageResult struct {
	ID          string
	BatchID     string
	Experiment  string
	RunIndex    int
	Seed        int64
	StageOrder  int
	Stage       string
	Strategy    string
	Criterion   float64
	Makespan    float64
	Generations int
	Evaluations int
	DurationMs  float64
	Permutation []int
	CreatedAt   time.Time
}

// Store — хранилище результатов экспериментов.
type Store interface {
	Init(ctx context.Context) error
	SaveStageResult(ctx context.Context, result StageResult) error
	// ListStageResults возвращает результаты эксперимента
	// в порядке (запуск, стадия).
	ListStageResults(ctx context.Context, experiment string) ([]StageResult, error)
}
