package ga

import (
	"math/rand"
	"sort"

	"flowShopGA/internal/flowshop"
)

// panmixia выбирает двух родителей равновероятно и независимо (допускается совпадение).
func panmixia(pop *Population, rng *rand.Rand) (flowshop.Permutation, flowshop.Permutation, error) {
	if pop.Len() == 0 {
		return flowshop.Permutation{}, flowshop.Permutation{}, ErrEmptyPopulation
	}
	return pop.At(rng.Intn(pop.Len())), pop.At(rng.Intn(pop.Len())), nil
}

// tournamentSelect реализует турнирный отбор без возвращения:
// в каждом раунде из оставшихся кандидатов берётся size случайных индексов
// (с повторениями), победитель с минимальным критерием переносится в результат
// и удаляется из пула.
func tournamentSelect(candidates *Population, count, size int, rng *rand.Rand) (*Population, error) {
	if !candidates.Evaluated() {
		return nil, ErrNotEvaluated
	}
	out := NewPopulation()
	for r := 0; r < count; r++ {
		if candidates.Len() == 0 {
			return nil, ErrEmptyPopulation
		}
		best := rng.Intn(candidates.Len())
		for k := 1; k < size; k++ {
			cand := rng.Intn(candidates.Len())
			if candidates.fitness[cand] < candidates.fitness[best] {
				best = cand
			}
		}
		fit := candidates.fitness[best]
		perm, err := candidates.Remove(best)
		if err != nil {
			return nil, err
		}
		if err := out.AddEvaluated(perm, fit); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rouletteBucket struct {
	idx    int
	weight float64
}

// rouletteSelect реализует рулеточный отбор с возвращением.
// Для каждой уникальной особи вес равен (f_i / Σf) * число её копий в пуле.
// Веса сортируются по возрастанию, и ширины секторов назначаются в обратном
// порядке: особь с наименьшим весом получает самый широкий сектор, поскольку
// меньший критерий лучше.
func rouletteSelect(candidates *Population, count int, rng *rand.Rand) (*Population, error) {
	if candidates.Len() == 0 {
		return nil, ErrEmptyPopulation
	}
	if !candidates.Evaluated() {
		return nil, ErrNotEvaluated
	}

	total := 0.0
	for _, f := range candidates.fitness {
		total += f
	}

	var buckets []rouletteBucket
	for i, perm := range candidates.members {
		if counted(candidates, buckets, perm) {
			continue
		}
		w := 0.0
		if total > 0 {
			w = candidates.fitness[i] / total * float64(candidates.DuplicateCount(perm))
		}
		buckets = append(buckets, rouletteBucket{idx: i, weight: w})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].weight < buckets[j].weight
	})

	k := len(buckets)
	cumulative := make([]float64, k)
	acc := 0.0
	for j := range buckets {
		acc += buckets[k-1-j].weight
		cumulative[j] = acc
	}

	out := NewPopulation()
	for r := 0; r < count; r++ {
		chosen := k - 1
		if acc > 0 {
			x := rng.Float64() * acc
			for j, c := range cumulative {
				if x < c {
					chosen = j
					break
				}
			}
		} else {
			chosen = rng.Intn(k)
		}
		idx := buckets[chosen].idx
		if err := out.AddEvaluated(candidates.members[idx], candidates.fitness[idx]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func counted(pop *Population, buckets []rouletteBucket, perm flowshop.Permutation) bool {
	for _, b := range buckets {
		if pop.members[b.idx].Equal(perm) {
			return true
		}
	}
	return false
}
