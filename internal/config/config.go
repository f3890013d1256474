package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"flowShopGA/internal/ga"
)

// Config — описание эксперимента.
type Config struct {
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	Experiment    string        `yaml:"experiment"`
	Matrix        MatrixSource  `yaml:"matrix"`
	Runs          int           `yaml:"runs"`
	Seed          int64         `yaml:"seed"`
	PerRunTimeout string        `yaml:"per_run_timeout"`
	SeedWith      string        `yaml:"seed_with"`
	GA            GAParams      `yaml:"ga"`
	Stages        []StageConfig `yaml:"stages"`
	Store         StoreConfig   `yaml:"store"`
	Output        string        `yaml:"output"`
}

// MatrixSource — файл матрицы либо параметры случайной генерации.
type MatrixSource struct {
	Path   string        `yaml:"path"`
	Random *RandomMatrix `yaml:"random,omitempty"`
}

type RandomMatrix struct {
	Operations int     `yaml:"operations"`
	Machines   int     `yaml:"machines"`
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	Seed       int64   `yaml:"seed"`
}

type GAParams struct {
	PopulationSize   int `yaml:"population_size"`
	MutationShare    int `yaml:"mutation_share"`
	TournamentSize   int `yaml:"tournament_size"`
	StagnationFactor int `yaml:"stagnation_factor"`
	MaxGenerations   int `yaml:"max_generations"`
	Workers          int `yaml:"workers"`
}

// StageConfig — одна стадия: имена вариантов по пяти осям.
// Пустые initial и parents означают единственные варианты random и panmixia.
type StageConfig struct {
	Name      string `yaml:"name"`
	Initial   string `yaml:"initial"`
	Parents   string `yaml:"parents"`
	Crossover string `yaml:"crossover"`
	Mutation  string `yaml:"mutation"`
	Selection string `yaml:"selection"`
}

type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// Default — стандартный пятистадийный эксперимент: CX, затем OX, последняя стадия с рулеткой.
func Default() *Config {
	p := ga.DefaultParams()
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Experiment: "flowshop",
		Runs:       1,
		Seed:       1000,
		SeedWith:   "greedy",
		GA: GAParams{
			PopulationSize:   p.PopulationSize,
			MutationShare:    p.MutationShare,
			TournamentSize:   p.TournamentSize,
			StagnationFactor: p.StagnationFactor,
			MaxGenerations:   p.MaxGenerations,
			Workers:          p.Workers,
		},
		Stages: []StageConfig{
			{Name: "stage-1", Crossover: "cx", Mutation: "saltation", Selection: "tournament"},
			{Name: "stage-2", Crossover: "cx", Mutation: "point", Selection: "tournament"},
			{Name: "stage-3", Crossover: "ox", Mutation: "saltation", Selection: "tournament"},
			{Name: "stage-4", Crossover: "ox", Mutation: "point", Selection: "tournament"},
			{Name: "stage-5", Crossover: "ox", Mutation: "point", Selection: "roulette"},
		},
		Store:  StoreConfig{Kind: "memory"},
		Output: "artifacts/stages.csv",
	}
}

// Load читает и проверяет YAML-файл конфигурации.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Read читает YAML-файл без проверки: вызывающий код может дополнить
// конфигурацию (например, флагами) и вызвать Validate сам.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse накладывает YAML поверх Default и проверяет результат.
func Parse(data []byte) (*Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode накладывает YAML поверх Default без проверки.
func Decode(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", c.LogFormat)
	}
	if c.Experiment == "" {
		return fmt.Errorf("experiment name cannot be empty")
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be positive (got %d)", c.Runs)
	}
	if c.Matrix.Path == "" && c.Matrix.Random == nil {
		return fmt.Errorf("matrix.path or matrix.random must be set")
	}
	if r := c.Matrix.Random; r != nil && c.Matrix.Path == "" {
		if r.Operations <= 0 || r.Machines <= 0 {
			return fmt.Errorf("matrix.random: operations and machines must be positive")
		}
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("matrix.random: invalid bounds [%g, %g]", r.Min, r.Max)
		}
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	switch c.SeedWith {
	case "none", "greedy", "palmer":
	default:
		return fmt.Errorf("invalid seed_with: %s (must be none, greedy or palmer)", c.SeedWith)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("ga: %w", err)
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("at least one stage must be defined")
	}
	names := make(map[string]bool)
	for i, st := range c.Stages {
		if st.Name == "" {
			return fmt.Errorf("stage %d: name cannot be empty", i)
		}
		if names[st.Name] {
			return fmt.Errorf("duplicate stage name: %s", st.Name)
		}
		names[st.Name] = true
		if _, err := st.Strategy(); err != nil {
			return fmt.Errorf("stage %s: %w", st.Name, err)
		}
	}
	switch c.Store.Kind {
	case "", "none", "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for sqlite")
		}
	default:
		return fmt.Errorf("invalid store.kind: %s (must be none, memory or sqlite)", c.Store.Kind)
	}
	return nil
}

// Timeout разбирает per_run_timeout; пустая строка — без ограничения.
func (c *Config) Timeout() (time.Duration, error) {
	if c.PerRunTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.PerRunTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid per_run_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("per_run_timeout cannot be negative")
	}
	return d, nil
}

func (c *Config) Params() ga.Params {
	return ga.Params{
		PopulationSize:   c.GA.PopulationSize,
		MutationShare:    c.GA.MutationShare,
		TournamentSize:   c.GA.TournamentSize,
		StagnationFactor: c.GA.StagnationFactor,
		MaxGenerations:   c.GA.MaxGenerations,
		Workers:          c.GA.Workers,
	}
}

func (s StageConfig) Strategy() (ga.Strategy, error) {
	initial := s.Initial
	if initial == "" {
		initial = "random"
	}
	parents := s.Parents
	if parents == "" {
		parents = "panmixia"
	}

	var (
		out ga.Strategy
		err error
	)
	if out.Initial, err = ga.ParseInitialPopulation(initial); err != nil {
		return ga.Strategy{}, err
	}
	if out.Parents, err = ga.ParseParentSelection(parents); err != nil {
		return ga.Strategy{}, err
	}
	if out.Crossover, err = ga.ParseCrossover(s.Crossover); err != nil {
		return ga.Strategy{}, err
	}
	if out.Mutation, err = ga.ParseMutation(s.Mutation); err != nil {
		return ga.Strategy{}, err
	}
	if out.Selection, err = ga.ParseNextGeneration(s.Selection); err != nil {
		return ga.Strategy{}, err
	}
	return out, nil
}
