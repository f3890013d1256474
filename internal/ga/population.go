package ga

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"flowShopGA/internal/flowshop"
)

var (
	// ErrEmptyPopulation — запрос лучшей/средней особи у пустой популяции.
	ErrEmptyPopulation = errors.New("empty population")
	// ErrNotEvaluated — приспособленность ещё не вычислена.
	ErrNotEvaluated = errors.New("population is not evaluated")
)

// Population — упорядоченный набор перестановок и кэш их приспособленности.
// Пока популяция не оценена, кэш отсутствует; после оценки
// len(fitness) == len(members), и любое изменение состава меняет оба среза.
type Population struct {
	members []flowshop.Permutation
	fitness []float64
}

func NewPopulation(members ...flowshop.Permutation) *Population {
	return &Population{members: append([]flowshop.Permutation(nil), members...)}
}

func (p *Population) Len() int { return len(p.members) }

func (p *Population) At(i int) flowshop.Permutation { return p.members[i] }

// Evaluated сообщает, синхронизирован ли кэш с составом.
func (p *Population) Evaluated() bool {
	return p.fitness != nil && len(p.fitness) == len(p.members)
}

func (p *Population) FitnessAt(i int) (float64, error) {
	if !p.Evaluated() {
		return 0, ErrNotEvaluated
	}
	return p.fitness[i], nil
}

// Fitness возвращает копию кэша.
func (p *Population) Fitness() []float64 {
	if !p.Evaluated() {
		return nil
	}
	return append([]float64(nil), p.fitness...)
}

// Add добавляет особь в неоценённую популяцию.
// У оценённой популяции кэш сбрасывается: её нужно оценить заново.
func (p *Population) Add(perm flowshop.Permutation) {
	p.members = append(p.members, perm)
	p.fitness = nil
}

// AddEvaluated добавляет особь вместе с её приспособленностью.
func (p *Population) AddEvaluated(perm flowshop.Permutation, fitness float64) error {
	if len(p.members) > 0 && !p.Evaluated() {
		return ErrNotEvaluated
	}
	p.members = append(p.members, perm)
	p.fitness = append(p.fitness, fitness)
	return nil
}

// Remove удаляет особь i вместе с её записью в кэше.
func (p *Population) Remove(i int) (flowshop.Permutation, error) {
	if len(p.members) == 0 {
		return flowshop.Permutation{}, ErrEmptyPopulation
	}
	if i < 0 || i >= len(p.members) {
		return flowshop.Permutation{}, fmt.Errorf("index %d out of range [0,%d)", i, len(p.members))
	}
	perm := p.members[i]
	p.members = append(p.members[:i], p.members[i+1:]...)
	if p.fitness != nil {
		p.fitness = append(p.fitness[:i], p.fitness[i+1:]...)
	}
	return perm, nil
}

// Merge присоединяет все особи other (и их кэш) в конец p.
func (p *Population) Merge(other *Population) error {
	if other.Len() == 0 {
		return nil
	}
	if p.Len() == 0 {
		p.members = append(p.members, other.members...)
		if other.Evaluated() {
			p.fitness = append([]float64(nil), other.fitness...)
		} else {
			p.fitness = nil
		}
		return nil
	}
	if p.Evaluated() != other.Evaluated() {
		return fmt.Errorf("merge: %w", ErrNotEvaluated)
	}
	p.members = append(p.members, other.members...)
	if p.fitness != nil {
		p.fitness = append(p.fitness, other.fitness...)
	}
	return nil
}

// Evaluate вычисляет критерий каждой особи. Особи независимы, поэтому при
// workers > 1 пакет делится между горутинами, каждая со своим Evaluator.
func (p *Population) Evaluate(m *flowshop.Matrix, workers int) error {
	fitness := make([]float64, len(p.members))
	if workers <= 1 || len(p.members) < 2 {
		eval, err := flowshop.NewEvaluator(m)
		if err != nil {
			return err
		}
		for i, perm := range p.members {
			c, err := eval.Criterion(perm)
			if err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
			fitness[i] = c
		}
		p.fitness = fitness
		return nil
	}

	if workers > len(p.members) {
		workers = len(p.members)
	}
	chunk := (len(p.members) + workers - 1) / workers
	wp := pool.New().WithErrors().WithMaxGoroutines(workers)
	for lo := 0; lo < len(p.members); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(p.members))
		wp.Go(func() error {
			eval, err := flowshop.NewEvaluator(m)
			if err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				c, err := eval.Criterion(p.members[i])
				if err != nil {
					return fmt.Errorf("member %d: %w", i, err)
				}
				fitness[i] = c
			}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return err
	}
	p.fitness = fitness
	return nil
}

// BestIndex — индекс особи с минимальным критерием (первой при равенстве).
func (p *Population) BestIndex() (int, error) {
	if len(p.members) == 0 {
		return 0, ErrEmptyPopulation
	}
	if !p.Evaluated() {
		return 0, ErrNotEvaluated
	}
	best := 0
	for i := 1; i < len(p.fitness); i++ {
		if p.fitness[i] < p.fitness[best] {
			best = i
		}
	}
	return best, nil
}

// Best возвращает лучшую особь и её критерий.
func (p *Population) Best() (flowshop.Permutation, float64, error) {
	i, err := p.BestIndex()
	if err != nil {
		return flowshop.Permutation{}, 0, err
	}
	return p.members[i], p.fitness[i], nil
}

func (p *Population) AverageFitness() (float64, error) {
	if len(p.members) == 0 {
		return 0, ErrEmptyPopulation
	}
	if !p.Evaluated() {
		return 0, ErrNotEvaluated
	}
	sum := 0.0
	for _, f := range p.fitness {
		sum += f
	}
	return sum / float64(len(p.fitness)), nil
}

// DuplicateCount — число особей, поэлементно совпадающих с target.
func (p *Population) DuplicateCount(target flowshop.Permutation) int {
	count := 0
	for _, m := range p.members {
		if m.Equal(target) {
			count++
		}
	}
	return count
}
