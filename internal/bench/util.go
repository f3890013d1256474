package bench

import (
	"math/rand"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"experiment", "stage", "operations", "machines", "runs",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"criterion_best", "criterion_mean", "criterion_std",
	"makespan_mean", "generations_mean",
}

// csvRow — строка CSV в порядке csvHeader.
func (r Record) csvRow() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		r.Experiment,
		r.Stage,
		strconv.Itoa(r.Operations),
		strconv.Itoa(r.Machines),
		strconv.Itoa(r.Runs),

		f(r.TimeBestMs),
		f(r.TimeMeanMs),
		f(r.TimeStdMs),

		f(r.CriterionBest),
		f(r.CriterionMean),
		f(r.CriterionStd),

		f(r.MakespanMean),
		f(r.GenerationsMean),
	}
}

// runRNG — генератор запуска run: сиды идут подряд от base.
func runRNG(base int64, run int) *rand.Rand {
	return rand.New(rand.NewSource(base + int64(run)))
}

func outputDir(path string) string {
	if d := filepath.Dir(path); d != "." {
		return d
	}
	return ""
}
