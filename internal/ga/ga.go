package ga

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/opt"
)

// GenerationStats — сводка по одному поколению.
type GenerationStats struct {
	Generation  int
	Best        float64
	Average     float64
	Size        int
	Descendants int
	Mutants     int
}

// Engine — генетический алгоритм для упорядочивания операций.
// Всё изменяемое состояние (счётчики, стагнация, генератор) принадлежит экземпляру.
// Engine не предназначен для конкурентного использования; для параллельных
// запусков создаются отдельные экземпляры со своими генераторами.
type Engine struct {
	m        *flowshop.Matrix
	strategy Strategy
	params   Params
	rng      *rand.Rand
	log      *slog.Logger

	onGeneration func(GenerationStats)

	generations int
	evaluations int

	// Состояние критерия останова.
	stagnant int
	bestSeen float64
	tracking bool
}

// New возвращает движок с валидацией входных данных и конфигурации.
func New(m *flowshop.Matrix, s Strategy, p Params, rng *rand.Rand, log *slog.Logger) (*Engine, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Engine{m: m, strategy: s, params: p, rng: rng, log: log}, nil
}

// SetStrategy заменяет стратегии между запусками (стадиями).
func (e *Engine) SetStrategy(s Strategy) error {
	if err := s.Validate(); err != nil {
		return err
	}
	e.strategy = s
	return nil
}

func (e *Engine) Strategy() Strategy { return e.strategy }

// GenerationsElapsed — общее число поколений за все запуски движка.
func (e *Engine) GenerationsElapsed() int { return e.generations }

// Evaluations — общее число вычислений критерия.
func (e *Engine) Evaluations() int { return e.evaluations }

// OnGeneration регистрирует обработчик, вызываемый после каждого поколения.
func (e *Engine) OnGeneration(fn func(GenerationStats)) { e.onGeneration = fn }

func (e *Engine) stagnationLimit() int {
	return e.m.Operations * e.params.StagnationFactor
}

// Start строит начальную популяцию (из seed, если он задан) и эволюционирует
// её до стагнации. Отмена ctx проверяется между поколениями; при отмене
// возвращается лучшая особь текущей популяции вместе с ctx.Err().
func (e *Engine) Start(ctx context.Context, seed *flowshop.Permutation) (flowshop.Permutation, error) {
	if seed != nil {
		if err := flowshop.ValidatePermutation(seed.Slice(), e.m.Operations); err != nil {
			return flowshop.Permutation{}, fmt.Errorf("seed: %w", err)
		}
	}
	e.resetStagnation()

	parents, err := e.createInitialPopulation(seed)
	if err != nil {
		return flowshop.Permutation{}, err
	}
	if err := e.evaluate(parents); err != nil {
		return flowshop.Permutation{}, err
	}

	avg, _ := parents.AverageFitness()
	_, best, _ := parents.Best()
	e.log.Info("ga stage started",
		"strategy", e.strategy.String(),
		"operations", e.m.Operations,
		"population", parents.Len(),
		"seeded", seed != nil,
		"best", best,
		"average", avg,
	)

	stageGenerations := 0
	for {
		if err := ctx.Err(); err != nil {
			perm, _, _ := parents.Best()
			return perm, err
		}

		next, stats, err := e.step(parents)
		if err != nil {
			return flowshop.Permutation{}, err
		}
		parents = next
		stageGenerations++

		stats.Generation = e.generations + 1
		e.log.Debug("ga generation",
			"generation", stats.Generation,
			"best", stats.Best,
			"average", stats.Average,
			"mutants", stats.Mutants,
		)
		if e.onGeneration != nil {
			e.onGeneration(stats)
		}

		if !e.continueEvolve(stats.Best) {
			break
		}
		if e.params.MaxGenerations > 0 && stageGenerations >= e.params.MaxGenerations {
			e.log.Warn("ga stage stopped by generation limit", "limit", e.params.MaxGenerations)
			break
		}
	}

	perm, fit, err := parents.Best()
	if err != nil {
		return flowshop.Permutation{}, err
	}
	e.log.Info("ga stage finished",
		"strategy", e.strategy.String(),
		"best", fit,
		"generations", stageGenerations,
		"total_generations", e.generations,
	)
	return perm, nil
}

// Solve — Start с замером времени и упаковкой результата.
func (e *Engine) Solve(ctx context.Context, seed *flowshop.Permutation) (opt.Result, error) {
	start := time.Now()
	gens0, evals0 := e.generations, e.evaluations

	perm, err := e.Start(ctx, seed)
	if perm.Len() == 0 {
		return opt.Result{}, err
	}
	res, evalErr := ToOptResult(e.m, perm, e.evaluations-evals0, e.generations-gens0, map[string]any{
		"strategy":   e.strategy.String(),
		"population": e.params.PopulationSize,
	})
	if evalErr != nil {
		return opt.Result{}, evalErr
	}
	res.Duration = time.Since(start)
	return res, err
}

// step выполняет одно поколение: размножение, мутации, отбор и элитизм.
func (e *Engine) step(parents *Population) (*Population, GenerationStats, error) {
	descendants, err := e.reproduction(parents)
	if err != nil {
		return nil, GenerationStats{}, err
	}
	if err := e.evaluate(descendants); err != nil {
		return nil, GenerationStats{}, err
	}

	mutants, err := e.createMutants(descendants)
	if err != nil {
		return nil, GenerationStats{}, err
	}
	if err := e.evaluate(mutants); err != nil {
		return nil, GenerationStats{}, err
	}
	stats := GenerationStats{Descendants: descendants.Len(), Mutants: mutants.Len()}

	// Лучшая особь родителей откладывается и возвращается без изменений.
	eliteIdx, err := parents.BestIndex()
	if err != nil {
		return nil, GenerationStats{}, err
	}
	eliteFit := parents.fitness[eliteIdx]
	elite, err := parents.Remove(eliteIdx)
	if err != nil {
		return nil, GenerationStats{}, err
	}

	next, err := e.nextGeneration(descendants, mutants)
	if err != nil {
		return nil, GenerationStats{}, err
	}
	if err := next.AddEvaluated(elite, eliteFit); err != nil {
		return nil, GenerationStats{}, err
	}

	_, stats.Best, err = next.Best()
	if err != nil {
		return nil, GenerationStats{}, err
	}
	stats.Average, _ = next.AverageFitness()
	stats.Size = next.Len()
	return next, stats, nil
}

func (e *Engine) evaluate(pop *Population) error {
	if err := pop.Evaluate(e.m, e.params.Workers); err != nil {
		return err
	}
	e.evaluations += pop.Len()
	return nil
}

// createInitialPopulation без затравки создаёт PopulationSize случайных перестановок.
// С затравкой популяция состоит из самой затравки и N-1 её копий,
// в каждой из которых переставлены соседние позиции (i-1, i).
func (e *Engine) createInitialPopulation(seed *flowshop.Permutation) (*Population, error) {
	n := e.m.Operations
	if seed != nil {
		pop := NewPopulation(*seed)
		for i := 1; i < n; i++ {
			pop.Add(seed.Swap(i-1, i))
		}
		return pop, nil
	}

	switch e.strategy.Initial {
	case InitialRandom:
		pop := NewPopulation()
		for i := 0; i < e.params.PopulationSize; i++ {
			pop.Add(flowshop.RandomPermutation(n, e.rng))
		}
		return pop, nil
	default:
		return nil, fmt.Errorf("%w: initial population %s", ErrUnhandledStrategy, e.strategy.Initial)
	}
}

func (e *Engine) chooseParents(pop *Population) (flowshop.Permutation, flowshop.Permutation, error) {
	switch e.strategy.Parents {
	case Panmixia:
		return panmixia(pop, e.rng)
	default:
		return flowshop.Permutation{}, flowshop.Permutation{},
			fmt.Errorf("%w: parent selection %s", ErrUnhandledStrategy, e.strategy.Parents)
	}
}

// createDescendants возвращает двух потомков; для второго роли родителей меняются.
func (e *Engine) createDescendants(first, second flowshop.Permutation) (flowshop.Permutation, flowshop.Permutation, error) {
	p1, p2 := cutPoints(e.m.Operations, e.rng)

	var c1, c2 []int
	switch e.strategy.Crossover {
	case CrossoverOX:
		c1 = orderCrossover(first, second, p1, p2)
		c2 = orderCrossover(second, first, p1, p2)
	case CrossoverCX:
		c1 = cycleCrossover(first, second, e.rng)
		c2 = cycleCrossover(second, first, e.rng)
	default:
		return flowshop.Permutation{}, flowshop.Permutation{},
			fmt.Errorf("%w: crossover %s", ErrUnhandledStrategy, e.strategy.Crossover)
	}

	child1, err := flowshop.Wrap(c1)
	if err != nil {
		return flowshop.Permutation{}, flowshop.Permutation{}, fmt.Errorf("crossover %s: %w", e.strategy.Crossover, err)
	}
	child2, err := flowshop.Wrap(c2)
	if err != nil {
		return flowshop.Permutation{}, flowshop.Permutation{}, fmt.Errorf("crossover %s: %w", e.strategy.Crossover, err)
	}
	return child1, child2, nil
}

// reproduction повторяет выбор родителей и скрещивание,
// пока не наберётся 2*PopulationSize потомков.
func (e *Engine) reproduction(parents *Population) (*Population, error) {
	want := 2 * e.params.PopulationSize
	descendants := NewPopulation()
	for descendants.Len() < want {
		first, second, err := e.chooseParents(parents)
		if err != nil {
			return nil, err
		}
		c1, c2, err := e.createDescendants(first, second)
		if err != nil {
			return nil, err
		}
		descendants.Add(c1)
		if descendants.Len() < want {
			descendants.Add(c2)
		}
	}
	return descendants, nil
}

// createMutants независимо для каждого потомка с вероятностью
// MutationShare/100 создаёт одну мутированную копию.
// Число мутантов не фиксировано.
func (e *Engine) createMutants(descendants *Population) (*Population, error) {
	mutants := NewPopulation()
	for i := 0; i < descendants.Len(); i++ {
		if e.rng.Intn(100) >= e.params.MutationShare {
			continue
		}
		m, err := e.mutation(descendants.At(i))
		if err != nil {
			return nil, err
		}
		mutants.Add(m)
	}
	return mutants, nil
}

func (e *Engine) mutation(descendant flowshop.Permutation) (flowshop.Permutation, error) {
	var out []int
	switch e.strategy.Mutation {
	case MutationAdjacentSwap:
		out = mutateAdjacentSwap(descendant, e.rng)
	case MutationRandomSwap:
		out = mutateRandomSwap(descendant, e.rng)
	default:
		return flowshop.Permutation{}, fmt.Errorf("%w: mutation %s", ErrUnhandledStrategy, e.strategy.Mutation)
	}
	perm, err := flowshop.Wrap(out)
	if err != nil {
		return flowshop.Permutation{}, fmt.Errorf("mutation %s: %w", e.strategy.Mutation, err)
	}
	return perm, nil
}

// nextGeneration объединяет потомков и мутантов и отбирает PopulationSize-1
// особей; последнее место остаётся для элиты.
func (e *Engine) nextGeneration(descendants, mutants *Population) (*Population, error) {
	if err := descendants.Merge(mutants); err != nil {
		return nil, err
	}
	survivors := e.params.PopulationSize - 1

	switch e.strategy.Selection {
	case SelectTournament:
		return tournamentSelect(descendants, survivors, e.params.TournamentSize, e.rng)
	case SelectRoulette:
		return rouletteSelect(descendants, survivors, e.rng)
	default:
		return nil, fmt.Errorf("%w: next generation %s", ErrUnhandledStrategy, e.strategy.Selection)
	}
}

func (e *Engine) resetStagnation() {
	e.stagnant = 0
	e.bestSeen = 0
	e.tracking = false
}

// continueEvolve учитывает очередное поколение и сообщает, продолжать ли поиск.
// Счётчик стагнации сбрасывается при строгом улучшении лучшего критерия.
// По достижении порога N*StagnationFactor возвращается false, и счётчик обнуляется.
func (e *Engine) continueEvolve(best float64) bool {
	e.generations++

	switch {
	case !e.tracking:
		e.tracking = true
		e.bestSeen = best
		e.stagnant++
	case best < e.bestSeen:
		e.bestSeen = best
		e.stagnant = 0
	default:
		e.stagnant++
	}

	if e.stagnant < e.stagnationLimit() {
		return true
	}
	e.stagnant = 0
	return false
}
