package ga

import (
	"errors"
	"fmt"
)

// ErrUnhandledStrategy — значение перечисления без определённого поведения.
var ErrUnhandledStrategy = errors.New("unhandled strategy")

// InitialPopulation — способ построения начальной популяции без затравки.
type InitialPopulation int

const (
	InitialRandom InitialPopulation = iota + 1
)

// ParentSelection — способ выбора пары родителей.
type ParentSelection int

const (
	// Panmixia — оба родителя выбираются равновероятно и независимо.
	Panmixia ParentSelection = iota + 1
)

// Crossover — оператор скрещивания.
type Crossover int

const (
	CrossoverOX Crossover = iota + 1
	CrossoverCX
)

// Mutation — оператор мутации.
type Mutation int

const (
	// MutationAdjacentSwap — обмен соседних позиций (точечная мутация).
	MutationAdjacentSwap Mutation = iota + 1
	// MutationRandomSwap — обмен двух случайных позиций (сальтация).
	MutationRandomSwap
)

// NextGeneration — способ отбора в следующее поколение.
type NextGeneration int

const (
	SelectTournament NextGeneration = iota + 1
	SelectRoulette
)

var (
	initialNames   = map[InitialPopulation]string{InitialRandom: "random"}
	parentNames    = map[ParentSelection]string{Panmixia: "panmixia"}
	crossoverNames = map[Crossover]string{CrossoverOX: "ox", CrossoverCX: "cx"}
	mutationNames  = map[Mutation]string{MutationAdjacentSwap: "adjacent-swap", MutationRandomSwap: "random-swap"}
	nextGenNames   = map[NextGeneration]string{SelectTournament: "tournament", SelectRoulette: "roulette"}
)

// Синонимы: point — обмен соседних, saltation — обмен случайных позиций.
var (
	mutationAliases = map[string]Mutation{"point": MutationAdjacentSwap, "saltation": MutationRandomSwap}
)

func (v InitialPopulation) String() string { return enumName(initialNames, v) }
func (v ParentSelection) String() string   { return enumName(parentNames, v) }
func (v Crossover) String() string         { return enumName(crossoverNames, v) }
func (v Mutation) String() string          { return enumName(mutationNames, v) }
func (v NextGeneration) String() string    { return enumName(nextGenNames, v) }

func enumName[T ~int](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}

func parseEnum[T ~int](axis, s string, names map[T]string, aliases map[string]T) (T, error) {
	for v, name := range names {
		if name == s {
			return v, nil
		}
	}
	if v, ok := aliases[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnhandledStrategy, axis, s)
}

func ParseInitialPopulation(s string) (InitialPopulation, error) {
	return parseEnum("initial population", s, initialNames, nil)
}

func ParseParentSelection(s string) (ParentSelection, error) {
	return parseEnum("parent selection", s, parentNames, nil)
}

func ParseCrossover(s string) (Crossover, error) {
	return parseEnum("crossover", s, crossoverNames, nil)
}

func ParseMutation(s string) (Mutation, error) {
	return parseEnum("mutation", s, mutationNames, mutationAliases)
}

func ParseNextGeneration(s string) (NextGeneration, error) {
	return parseEnum("next generation", s, nextGenNames, nil)
}

// Strategy — неизменяемый набор из пяти независимых вариантов алгоритма.
type Strategy struct {
	Initial   InitialPopulation
	Parents   ParentSelection
	Crossover Crossover
	Mutation  Mutation
	Selection NextGeneration
}

func (s Strategy) Validate() error {
	if _, ok := initialNames[s.Initial]; !ok {
		return fmt.Errorf("%w: initial population %s", ErrUnhandledStrategy, s.Initial)
	}
	if _, ok := parentNames[s.Parents]; !ok {
		return fmt.Errorf("%w: parent selection %s", ErrUnhandledStrategy, s.Parents)
	}
	if _, ok := crossoverNames[s.Crossover]; !ok {
		return fmt.Errorf("%w: crossover %s", ErrUnhandledStrategy, s.Crossover)
	}
	if _, ok := mutationNames[s.Mutation]; !ok {
		return fmt.Errorf("%w: mutation %s", ErrUnhandledStrategy, s.Mutation)
	}
	if _, ok := nextGenNames[s.Selection]; !ok {
		return fmt.Errorf("%w: next generation %s", ErrUnhandledStrategy, s.Selection)
	}
	return nil
}

func (s Strategy) String() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", s.Initial, s.Parents, s.Crossover, s.Mutation, s.Selection)
}

// DefaultStrategy — CX, сальтация, турнир.
func DefaultStrategy() Strategy {
	return Strategy{
		Initial:   InitialRandom,
		Parents:   Panmixia,
		Crossover: CrossoverCX,
		Mutation:  MutationRandomSwap,
		Selection: SelectTournament,
	}
}
