package heuristic

import "flowShopGA/internal/flowshop"

// Greedy сортирует операции по возрастанию суммарной длительности по всем станкам.
type Greedy struct {
	m *flowshop.Matrix
}

func NewGreedy(m *flowshop.Matrix) Greedy { return Greedy{m: m} }

func (Greedy) Name() string { return "greedy" }

func (g Greedy) Start() flowshop.Permutation {
	totals := make([]float64, g.m.Operations)
	for op := range totals {
		totals[op] = g.m.TotalDuration(op)
	}
	return sortByKey(totals, func(a, b float64) bool { return a < b })
}
