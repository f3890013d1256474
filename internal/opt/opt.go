package opt

import (
	"time"

	"flowShopGA/internal/flowshop"
)

type Result struct {
	Permutation flowshop.Permutation
	Criterion   float64
	// Makespan — классическое время завершения, только для отчётов.
	Makespan    float64
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// Evaluate заполняет Criterion и Makespan для перестановки.
func Evaluate(m *flowshop.Matrix, perm flowshop.Permutation) (Result, error) {
	eval, err := flowshop.NewEvaluator(m)
	if err != nil {
		return Result{}, err
	}
	crit, err := eval.Criterion(perm)
	if err != nil {
		return Result{}, err
	}
	ms, err := eval.Makespan(perm)
	if err != nil {
		return Result{}, err
	}
	return Result{Permutation: perm, Criterion: crit, Makespan: ms, Evaluations: 1}, nil
}
