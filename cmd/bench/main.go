package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"flowShopGA/internal/bench"
	"flowShopGA/internal/config"
	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/logger"
	"flowShopGA/internal/storage"
)

func main() {
	// CLI флаги перекрывают значения из файла конфигурации
	var (
		cfgPath   = flag.String("config", "", "путь к YAML-файлу эксперимента (пусто — стандартные пять стадий)")
		matrix    = flag.String("matrix", "", "путь к файлу матрицы длительностей (перекрывает matrix.path)")
		ops       = flag.Int("ops", 20, "количество операций случайной матрицы (если матрица не задана)")
		machines  = flag.Int("machines", 5, "количество станков случайной матрицы (если матрица не задана)")
		matSeed   = flag.Int64("matrix_seed", 777, "сид генерации случайной матрицы")
		runs      = flag.Int("runs", 0, "количество запусков эксперимента (0 — из конфигурации)")
		baseSeed  = flag.Int64("seed", 0, "базовый сид запусков (0 — из конфигурации)")
		out       = flag.String("out", "", "путь к выходному CSV-файлу (пусто — из конфигурации)")
		logLevel  = flag.String("log_level", "", "уровень логирования: debug | info | warn | error")
		storeKind = flag.String("store", "", "хранилище результатов: none | memory | sqlite")
		storePath = flag.String("store_path", "", "путь к базе SQLite")
		workers   = flag.Int("workers", 0, "количество горутин оценки популяции (0 — из конфигурации)")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Read(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
			os.Exit(2)
		}
		cfg = loaded
	}
	applyFlags(cfg, *matrix, *ops, *machines, *matSeed, *runs, *baseSeed, *out, *logLevel, *storeKind, *storePath, *workers)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
		os.Exit(2)
	}

	log := logger.ByFormat(cfg.LogFormat, cfg.LogLevel, os.Stderr)

	m, err := loadMatrix(cfg.Matrix)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка чтения матрицы:", err)
		os.Exit(2)
	}

	exp, err := buildExperiment(cfg, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации стадий:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	if cfg.Store.Kind != "none" {
		store, err = storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка хранилища:", err)
			os.Exit(1)
		}
		if err := store.Init(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка хранилища:", err)
			os.Exit(1)
		}
		defer func() {
			if err := storage.CloseIfSupported(store); err != nil {
				log.Warn("failed to close store", "error", err)
			}
		}()
	}

	timeout, _ := cfg.Timeout()
	runner := bench.Runner{
		Runs:          cfg.Runs,
		BaseSeed:      cfg.Seed,
		PerRunTimeout: timeout,
		Log:           log,
		Store:         store,
	}

	fmt.Printf("Запущен эксперимент %s; %d операций %d станков, стадий=%d (общее кол-во запусков=%d)...\n",
		exp.Name, m.Operations, m.Machines, len(exp.Stages), runner.Runs)

	records, _, err := runner.Run(ctx, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	for _, rec := range records {
		fmt.Printf("  %-14s критерий: лучшее=%.2f среднее=%.2f стандартное отклонение=%.2f | поколений=%.1f | Время: среднее=%.2fms\n",
			rec.Stage, rec.CriterionBest, rec.CriterionMean, rec.CriterionStd,
			rec.GenerationsMean, rec.TimeMeanMs,
		)
	}

	if err := bench.WriteCSV(cfg.Output, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", cfg.Output)
}

// helpers

func applyFlags(cfg *config.Config, matrix string, ops, machines int, matSeed int64, runs int, seed int64,
	out, logLevel, storeKind, storePath string, workers int) {
	if matrix != "" {
		cfg.Matrix.Path = matrix
		cfg.Matrix.Random = nil
	}
	if cfg.Matrix.Path == "" && cfg.Matrix.Random == nil {
		cfg.Matrix.Random = &config.RandomMatrix{
			Operations: ops,
			Machines:   machines,
			Min:        1,
			Max:        10,
			Seed:       matSeed,
		}
	}
	if runs > 0 {
		cfg.Runs = runs
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if out != "" {
		cfg.Output = out
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if storeKind != "" {
		cfg.Store.Kind = storeKind
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if workers > 0 {
		cfg.GA.Workers = workers
	}
}

func loadMatrix(src config.MatrixSource) (*flowshop.Matrix, error) {
	if src.Path != "" {
		return flowshop.LoadMatrix(src.Path)
	}
	r := src.Random
	m := flowshop.RandomMatrix(r.Operations, r.Machines, r.Min, r.Max, rand.New(rand.NewSource(r.Seed)))
	return m, nil
}

func buildExperiment(cfg *config.Config, m *flowshop.Matrix) (bench.Experiment, error) {
	stages := make([]bench.Stage, 0, len(cfg.Stages))
	for _, st := range cfg.Stages {
		s, err := st.Strategy()
		if err != nil {
			return bench.Experiment{}, fmt.Errorf("stage %s: %w", st.Name, err)
		}
		stages = append(stages, bench.Stage{Name: st.Name, Strategy: s})
	}
	return bench.Experiment{
		Name:     cfg.Experiment,
		Matrix:   m,
		SeedWith: cfg.SeedWith,
		Params:   cfg.Params(),
		Stages:   stages,
	}, nil
}
