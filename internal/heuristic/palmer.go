package heuristic

import "flowShopGA/internal/flowshop"

// Palmer — эвристика наклона: операции, длительности которых растут
// к последним станкам, ставятся раньше.
type Palmer struct {
	m *flowshop.Matrix
}

func NewPalmer(m *flowshop.Matrix) Palmer { return Palmer{m: m} }

func (Palmer) Name() string { return "palmer" }

func (p Palmer) Start() flowshop.Permutation {
	machines := p.m.Machines
	slopes := make([]float64, p.m.Operations)
	for op := range slopes {
		s := 0.0
		for i := 0; i < machines; i++ {
			s -= float64(machines-(2*(i+1)-1)) * p.m.Duration(i, op)
		}
		slopes[op] = s
	}
	return sortByKey(slopes, func(a, b float64) bool { return a > b })
}
