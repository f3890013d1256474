package flowshop

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrMalformedInput — входные данные не соответствуют заявленным размерам.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidPermutation — последовательность не является перестановкой [0, n).
	ErrInvalidPermutation = errors.New("invalid permutation")
)

// Matrix — неизменяемая таблица длительностей M×N:
// строки — станки, столбцы — операции.
type Matrix struct {
	Machines   int
	Operations int
	// durations хранится построчно (machine-major), длина Machines*Operations.
	durations []float64
}

// NewMatrix строит матрицу из строк (по одной на станок).
// Данные копируются, поэтому вызывающий код может переиспользовать срезы.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: matrix has no machines", ErrMalformedInput)
	}
	ops := len(rows[0])
	flat := make([]float64, 0, len(rows)*ops)
	for m, row := range rows {
		if len(row) != ops {
			return nil, fmt.Errorf("%w: machine %d has %d durations (want %d)", ErrMalformedInput, m, len(row), ops)
		}
		flat = append(flat, row...)
	}
	return NewMatrixFlat(len(rows), ops, flat)
}

// NewMatrixFlat строит матрицу из плоского среза длительностей.
func NewMatrixFlat(machines, operations int, durations []float64) (*Matrix, error) {
	m := &Matrix{
		Machines:   machines,
		Operations: operations,
		durations:  append([]float64(nil), durations...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) Validate() error {
	if m == nil {
		return errors.New("matrix is nil")
	}
	if m.Machines <= 0 {
		return fmt.Errorf("%w: machines must be > 0 (got %d)", ErrMalformedInput, m.Machines)
	}
	if m.Operations <= 0 {
		return fmt.Errorf("%w: operations must be > 0 (got %d)", ErrMalformedInput, m.Operations)
	}
	if len(m.durations) != m.Machines*m.Operations {
		return fmt.Errorf("%w: durations length must be machines*operations=%d (got %d)",
			ErrMalformedInput, m.Machines*m.Operations, len(m.durations))
	}
	for i, v := range m.durations {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: durations[%d] must be finite (got %g)", ErrMalformedInput, i, v)
		}
		if v < 0 {
			return fmt.Errorf("%w: durations[%d] must be >= 0 (got %g)", ErrMalformedInput, i, v)
		}
	}
	return nil
}

// Duration возвращает длительность операции op на станке machine.
func (m *Matrix) Duration(machine, op int) float64 {
	return m.durations[machine*m.Operations+op]
}

// Row возвращает копию строки станка.
func (m *Matrix) Row(machine int) []float64 {
	row := make([]float64, m.Operations)
	copy(row, m.durations[machine*m.Operations:(machine+1)*m.Operations])
	return row
}

// TotalDuration — суммарная длительность операции по всем станкам.
func (m *Matrix) TotalDuration(op int) float64 {
	sum := 0.0
	for machine := 0; machine < m.Machines; machine++ {
		sum += m.Duration(machine, op)
	}
	return sum
}

// RandomMatrix генерирует матрицу со случайными длительностями в [minTime, maxTime].
func RandomMatrix(operations, machines int, minTime, maxTime float64, rng *rand.Rand) *Matrix {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	d := make([]float64, operations*machines)
	span := maxTime - minTime
	for i := range d {
		// Округление до десятых.
		d[i] = float64(int((minTime+rng.Float64()*span)*10+0.5)) / 10
	}
	m, err := NewMatrixFlat(machines, operations, d)
	if err != nil {
		panic(err)
	}
	return m
}
