package ga

import "fmt"

// Params — числовые параметры движка. Стратегии задаются отдельно (Strategy).
type Params struct {
	// PopulationSize — базовый размер популяции; потомков создаётся вдвое больше.
	PopulationSize int
	// MutationShare — вероятность мутации потомка в процентах.
	MutationShare int
	// TournamentSize — число независимых выборок в одном турнире.
	TournamentSize int
	// StagnationFactor — порог остановки равен N*StagnationFactor поколений без улучшения.
	StagnationFactor int
	// MaxGenerations ограничивает одну стадию; 0 — без ограничения.
	MaxGenerations int
	// Workers — число горутин для оценки популяции; <= 1 — последовательно.
	Workers int
}

func (c Params) Validate() error {
	if c.PopulationSize <= 1 {
		return fmt.Errorf(
			"размер популяции должен быть > 1 (получено %d)",
			c.PopulationSize,
		)
	}
	if c.MutationShare < 0 || c.MutationShare > 100 {
		return fmt.Errorf(
			"доля мутаций должна быть в диапазоне [0,100] (получено %d)",
			c.MutationShare,
		)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf(
			"размер турнира должен быть > 0 (получено %d)",
			c.TournamentSize,
		)
	}
	if c.StagnationFactor <= 0 {
		return fmt.Errorf(
			"коэффициент стагнации должен быть > 0 (получено %d)",
			c.StagnationFactor,
		)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf(
			"ограничение числа поколений должно быть >= 0 (получено %d)",
			c.MaxGenerations,
		)
	}
	return nil
}

func DefaultParams() Params {
	return Params{
		PopulationSize:   10,
		MutationShare:    5,
		TournamentSize:   4,
		StagnationFactor: 6,
		MaxGenerations:   0,
		Workers:          1,
	}
}
