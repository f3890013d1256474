package ga

import (
	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/opt"
)

func ToOptResult(m *flowshop.Matrix, best flowshop.Permutation, evals, gens int, meta map[string]any) (opt.Result, error) {
	res, err := opt.Evaluate(m, best)
	if err != nil {
		return opt.Result{}, err
	}
	res.Evaluations = evals
	res.Iterations = gens
	res.Meta = meta
	return res, nil
}
