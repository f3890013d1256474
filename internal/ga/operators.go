package ga

import (
	"math/rand"

	"flowShopGA/internal/flowshop"
)

// cutPoints выбирает две точки разреза в [0, n-1], p1 <= p2.
func cutPoints(n int, rng *rand.Rand) (int, int) {
	p1 := rng.Intn(n)
	p2 := rng.Intn(n)
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	return p1, p2
}

// orderCrossover реализует оператор Order Crossover (OX).
// Потомок получает отрезок [p1, p2] первого родителя на тех же позициях.
// Остальные позиции, начиная с p2+1 и по кругу до p1-1, заполняются генами
// второго родителя, которых нет в отрезке, в порядке их следования
// во втором родителе начиная с p2+1.
func orderCrossover(first, second flowshop.Permutation, p1, p2 int) []int {
	n := first.Len()
	child := make([]int, n)
	taken := make([]bool, n)

	for i := p1; i <= p2; i++ {
		gene := first.At(i)
		child[i] = gene
		taken[gene] = true
	}

	pos := (p2 + 1) % n
	for k := 0; k < n; k++ {
		gene := second.At((p2 + 1 + k) % n)
		if taken[gene] {
			continue
		}
		child[pos] = gene
		taken[gene] = true
		pos = (pos + 1) % n
	}
	return child
}

// cycleCrossover реализует оператор Cycle Crossover (CX).
// Позиции разбиваются на циклы (позиция i -> позиция значения second[i]
// в first). Каждый цикл целиком копируется из родителя, выбранного
// подбрасыванием монеты. Очередной цикл начинается с первой незаполненной
// позиции, так что каждая позиция покрывается ровно одним циклом.
func cycleCrossover(first, second flowshop.Permutation, rng *rand.Rand) []int {
	n := first.Len()
	posInFirst := make([]int, n)
	for i := 0; i < n; i++ {
		posInFirst[first.At(i)] = i
	}

	child := make([]int, n)
	filled := make([]bool, n)
	for start := 0; start < n; start++ {
		if filled[start] {
			continue
		}
		src := first
		if rng.Intn(2) == 1 {
			src = second
		}
		for i := start; !filled[i]; i = posInFirst[second.At(i)] {
			child[i] = src.At(i)
			filled[i] = true
		}
	}
	return child
}

// mutateAdjacentSwap меняет местами позиции p и p+1, p в [0, n-2].
func mutateAdjacentSwap(perm flowshop.Permutation, rng *rand.Rand) []int {
	p := perm.Slice()
	if len(p) < 2 {
		return p
	}
	i := rng.Intn(len(p) - 1)
	p[i], p[i+1] = p[i+1], p[i]
	return p
}

// mutateRandomSwap меняет местами две случайные позиции.
// При совпадении вторая позиция сдвигается на единицу от границы.
func mutateRandomSwap(perm flowshop.Permutation, rng *rand.Rand) []int {
	p := perm.Slice()
	if len(p) < 2 {
		return p
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p))
	if i == j {
		if j != 0 {
			j--
		} else {
			j++
		}
	}
	p[i], p[j] = p[j], p[i]
	return p
}
