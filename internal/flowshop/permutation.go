package flowshop

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate operation %d", ErrInvalidPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

// Permutation — порядок выполнения операций, биекция на [0, N).
// Значение неизменяемо: все операции возвращают новую перестановку,
// поэтому копии структуры можно свободно разделять.
type Permutation struct {
	order []int
}

// NewPermutation проверяет и копирует порядок.
func NewPermutation(order []int) (Permutation, error) {
	if err := ValidatePermutation(order, len(order)); err != nil {
		return Permutation{}, err
	}
	return Permutation{order: append([]int(nil), order...)}, nil
}

// MustPermutation — вариант NewPermutation для литералов в тестах и примерах.
func MustPermutation(order ...int) Permutation {
	p, err := NewPermutation(order)
	if err != nil {
		panic(err)
	}
	return p
}

// Identity возвращает перестановку [0, 1, ..., n-1].
func Identity(n int) Permutation {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return Permutation{order: order}
}

// RandomPermutation выбирает каждый следующий элемент равновероятно
// из ещё не использованных.
func RandomPermutation(size int, rng *rand.Rand) Permutation {
	candidates := make([]int, size)
	for i := range candidates {
		candidates[i] = i
	}
	order := make([]int, 0, size)
	for len(candidates) > 0 {
		idx := rng.Intn(len(candidates))
		order = append(order, candidates[idx])
		candidates[idx] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	return Permutation{order: order}
}

// Wrap принимает срез во владение без копирования.
// Используется операторами, которые только что построили новый срез.
func Wrap(order []int) (Permutation, error) {
	if err := ValidatePermutation(order, len(order)); err != nil {
		return Permutation{}, err
	}
	return Permutation{order: order}, nil
}

func (p Permutation) Len() int { return len(p.order) }

func (p Permutation) At(i int) int { return p.order[i] }

// Slice возвращает копию порядка.
func (p Permutation) Slice() []int {
	return append([]int(nil), p.order...)
}

func (p Permutation) Equal(other Permutation) bool {
	if len(p.order) != len(other.order) {
		return false
	}
	for i, v := range p.order {
		if other.order[i] != v {
			return false
		}
	}
	return true
}

// Swap возвращает копию с переставленными позициями i и j.
func (p Permutation) Swap(i, j int) Permutation {
	order := p.Slice()
	order[i], order[j] = order[j], order[i]
	return Permutation{order: order}
}

// Criterion — значение целевой функции (см. Evaluator.Criterion).
func (p Permutation) Criterion(m *Matrix) (float64, error) {
	return criterion(m, p.order, make([]float64, len(p.order)))
}

func (p Permutation) String() string {
	parts := make([]string, len(p.order))
	for i, v := range p.order {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
