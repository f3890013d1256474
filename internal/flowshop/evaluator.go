package flowshop

import "fmt"

// Evaluator переиспользует буферы между вызовами.
// Не безопасен для конкурентного использования: каждому воркеру свой экземпляр.
type Evaluator struct {
	m                 *Matrix
	acc               []float64
	machineCompletion []float64
}

func NewEvaluator(m *Matrix) (*Evaluator, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		m:                 m,
		acc:               make([]float64, m.Operations),
		machineCompletion: make([]float64, m.Machines),
	}, nil
}

// Criterion — аддитивный критерий: префиксные суммы по каждому станку
// накапливаются поверх значений предыдущего станка без сброса.
// Результат — последний элемент аккумулятора после всех станков.
func (e *Evaluator) Criterion(p Permutation) (float64, error) {
	if e == nil || e.m == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	return criterion(e.m, p.order, e.acc)
}

func (e *Evaluator) MustCriterion(p Permutation) float64 {
	c, err := e.Criterion(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Makespan — классическое время завершения flow-shop расписания.
// Только для отчётов; в качестве приспособленности не используется.
func (e *Evaluator) Makespan(p Permutation) (float64, error) {
	if e == nil || e.m == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if p.Len() != e.m.Operations {
		return 0, fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, e.m.Operations, p.Len())
	}

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}

	for _, op := range p.order {
		e.machineCompletion[0] += e.m.Duration(0, op)
		for m := 1; m < e.m.Machines; m++ {
			left := e.machineCompletion[m-1]
			up := e.machineCompletion[m]
			if left > up {
				e.machineCompletion[m] = left + e.m.Duration(m, op)
			} else {
				e.machineCompletion[m] = up + e.m.Duration(m, op)
			}
		}
	}
	return e.machineCompletion[e.m.Machines-1], nil
}

func criterion(m *Matrix, order []int, acc []float64) (float64, error) {
	if m == nil {
		return 0, fmt.Errorf("matrix is nil")
	}
	if len(order) != m.Operations {
		return 0, fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidPermutation, m.Operations, len(order))
	}
	for i := range acc {
		acc[i] = 0
	}
	for machine := 0; machine < m.Machines; machine++ {
		acc[0] += m.Duration(machine, order[0])
		for i := 1; i < len(order); i++ {
			acc[i] += acc[i-1] + m.Duration(machine, order[i])
		}
	}
	return acc[len(acc)-1], nil
}
