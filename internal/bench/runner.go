package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/ga"
	"flowShopGA/internal/heuristic"
	"flowShopGA/internal/opt"
	"flowShopGA/internal/storage"
)

// Stage — именованный набор стратегий для одной стадии.
type Stage struct {
	Name     string
	Strategy ga.Strategy
}

// Experiment — последовательность стадий на одной матрице.
// Каждая стадия стартует с лучшего решения предыдущей; первая —
// с результата эвристики SeedWith ("none" или пусто — случайная популяция).
type Experiment struct {
	Name     string
	Matrix   *flowshop.Matrix
	SeedWith string
	Params   ga.Params
	Stages   []Stage
}

// StageRun — итог одной стадии одного запуска.
type StageRun struct {
	Run    int
	Seed   int64
	Order  int
	Stage  string
	Result opt.Result
}

type Record struct {
	Experiment string
	Stage      string
	Operations int
	Machines   int
	Runs       int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CriterionBest float64
	CriterionMean float64
	CriterionStd  float64

	MakespanMean    float64
	GenerationsMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	Log           *slog.Logger
	Store         storage.Store // nil = не сохранять
}

func (r Runner) logger() *slog.Logger {
	if r.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return r.Log
}

// Run выполняет эксперимент Runs раз с сидами BaseSeed+i
// и агрегирует результаты по стадиям.
func (r Runner) Run(ctx context.Context, exp Experiment) ([]Record, []StageRun, error) {
	if err := exp.Matrix.Validate(); err != nil {
		return nil, nil, err
	}
	if len(exp.Stages) == 0 {
		return nil, nil, fmt.Errorf("experiment %s has no stages", exp.Name)
	}
	if r.Runs <= 0 {
		return nil, nil, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}

	batchID := uuid.NewString()
	var runs []StageRun
	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		stageRuns, err := r.runOnce(runCtx, exp, i, runSeed)
		cancel()
		if err != nil && runCtx.Err() != nil {
			return nil, nil, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("run %d: %w", i, err)
		}

		if r.Store != nil {
			for _, sr := range stageRuns {
				if err := r.Store.SaveStageResult(ctx, toStageResult(batchID, exp.Name, sr)); err != nil {
					return nil, nil, fmt.Errorf("run %d: save %s: %w", i, sr.Stage, err)
				}
			}
		}
		runs = append(runs, stageRuns...)
	}

	return Aggregate(exp, r.Runs, runs), runs, nil
}

func (r Runner) runOnce(ctx context.Context, exp Experiment, run int, seed int64) ([]StageRun, error) {
	log := r.logger().With("experiment", exp.Name, "run", run, "seed", seed)
	engine, err := ga.New(exp.Matrix, exp.Stages[0].Strategy, exp.Params, runRNG(r.BaseSeed, run), log)
	if err != nil {
		return nil, err
	}

	var out []StageRun
	var best *flowshop.Permutation
	if exp.SeedWith != "" && exp.SeedWith != "none" {
		h, err := heuristic.New(exp.SeedWith, exp.Matrix)
		if err != nil {
			return nil, err
		}
		res, err := heuristic.Solve(h, exp.Matrix)
		if err != nil {
			return nil, err
		}
		log.Info("heuristic seed", "heuristic", h.Name(), "criterion", res.Criterion)
		out = append(out, StageRun{Run: run, Seed: seed, Order: 0, Stage: h.Name(), Result: res})
		best = &res.Permutation
	}

	for _, st := range exp.Stages {
		if err := engine.SetStrategy(st.Strategy); err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		res, err := engine.Solve(ctx, best)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		res.Meta["stage"] = st.Name
		res.Meta["total_generations"] = engine.GenerationsElapsed()
		out = append(out, StageRun{Run: run, Seed: seed, Order: len(out), Stage: st.Name, Result: res})
		best = &res.Permutation
	}
	return out, nil
}

func toStageResult(batchID, experiment string, sr StageRun) storage.StageResult {
	strategy, ok := sr.Result.Meta["strategy"].(string)
	if !ok {
		strategy = sr.Stage
	}
	return storage.StageResult{
		ID:          uuid.NewString(),
		BatchID:     batchID,
		Experiment:  experiment,
		RunIndex:    sr.Run,
		Seed:        sr.Seed,
		StageOrder:  sr.Order,
		Stage:       sr.Stage,
		Strategy:    strategy,
		Criterion:   sr.Result.Criterion,
		Makespan:    sr.Result.Makespan,
		Generations: sr.Result.Iterations,
		Evaluations: sr.Result.Evaluations,
		DurationMs:  float64(sr.Result.Duration.Microseconds()) / 1000.0,
		Permutation: sr.Result.Permutation.Slice(),
		CreatedAt:   time.Now(),
	}
}

// Aggregate группирует результаты по позиции стадии в запуске (Order),
// так что стадия, названная как эвристика, не смешивается с затравкой.
func Aggregate(exp Experiment, runs int, stageRuns []StageRun) []Record {
	var order []int
	byStage := map[int][]StageRun{}
	for _, sr := range stageRuns {
		if _, ok := byStage[sr.Order]; !ok {
			order = append(order, sr.Order)
		}
		byStage[sr.Order] = append(byStage[sr.Order], sr)
	}
	sort.Ints(order)

	records := make([]Record, 0, len(order))
	for _, pos := range order {
		group := byStage[pos]
		crit := make([]float64, len(group))
		ms := make([]float64, len(group))
		timesMs := make([]float64, len(group))
		gens := make([]int, len(group))
		for i, sr := range group {
			crit[i] = sr.Result.Criterion
			ms[i] = sr.Result.Makespan
			timesMs[i] = float64(sr.Result.Duration.Microseconds()) / 1000.0
			gens[i] = sr.Result.Iterations
		}
		cStats := CalcStats(crit)
		tStats := CalcStats(timesMs)

		records = append(records, Record{
			Experiment: exp.Name,
			Stage:      group[0].Stage,
			Operations: exp.Matrix.Operations,
			Machines:   exp.Matrix.Machines,
			Runs:       runs,

			TimeBestMs: tStats.Best,
			TimeMeanMs: tStats.Mean,
			TimeStdMs:  tStats.Std,

			CriterionBest: cStats.Best,
			CriterionMean: cStats.Mean,
			CriterionStd:  cStats.Std,

			MakespanMean:    CalcStats(ms).Mean,
			GenerationsMean: CalcStats(gens).Mean,
		})
	}
	return records
}

func WriteCSV(path string, records []Record) error {
	if d := outputDir(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r.csvRow()); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
