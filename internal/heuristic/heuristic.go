package heuristic

import (
	"fmt"
	"sort"
	"time"

	"flowShopGA/internal/flowshop"
	"flowShopGA/internal/opt"
)

// Heuristic — однопроходный построитель начального решения.
type Heuristic interface {
	Name() string
	Start() flowshop.Permutation
}

// Names — известные эвристики в порядке отображения.
var Names = []string{"greedy", "palmer"}

// New возвращает эвристику по имени.
func New(name string, m *flowshop.Matrix) (Heuristic, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch name {
	case "greedy":
		return Greedy{m: m}, nil
	case "palmer":
		return Palmer{m: m}, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q (available: %v)", name, Names)
	}
}

// Solve строит решение эвристикой h и оценивает его.
func Solve(h Heuristic, m *flowshop.Matrix) (opt.Result, error) {
	start := time.Now()
	res, err := opt.Evaluate(m, h.Start())
	if err != nil {
		return opt.Result{}, err
	}
	res.Iterations = 1
	res.Duration = time.Since(start)
	res.Meta = map[string]any{"heuristic": h.Name()}
	return res, nil
}

// sortByKey упорядочивает операции по ключу; равные ключи сохраняют порядок индексов.
func sortByKey(keys []float64, less func(a, b float64) bool) flowshop.Permutation {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(keys[order[i]], keys[order[j]])
	})
	perm, err := flowshop.Wrap(order)
	if err != nil {
		panic(err)
	}
	return perm
}
