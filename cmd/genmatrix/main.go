package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"flowShopGA/internal/flowshop"
)

func main() {
	var (
		ops      = flag.Int("ops", 20, "количество операций")
		machines = flag.Int("machines", 5, "количество станков")
		minTime  = flag.Float64("min", 1, "минимальная длительность операции")
		maxTime  = flag.Float64("max", 10, "максимальная длительность операции")
		seed     = flag.Int64("seed", 777, "сид генератора")
		out      = flag.String("out", "", "путь к выходному файлу (пусто — stdout)")
	)
	flag.Parse()

	if *ops <= 0 || *machines <= 0 {
		fmt.Fprintln(os.Stderr, "Конфликт: количество операций и станков должно быть > 0")
		os.Exit(2)
	}
	if *minTime < 0 || *maxTime < *minTime {
		fmt.Fprintf(os.Stderr, "Конфликт: некорректный диапазон длительностей [%g, %g]\n", *minTime, *maxTime)
		os.Exit(2)
	}

	m := flowshop.RandomMatrix(*ops, *machines, *minTime, *maxTime, rand.New(rand.NewSource(*seed)))

	w := os.Stdout
	if *out != "" {
		if d := filepath.Dir(*out); d != "." {
			if err := os.MkdirAll(d, 0o755); err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
		}
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := flowshop.WriteMatrix(w, m); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка записи матрицы:", err)
		os.Exit(1)
	}
	if *out != "" {
		fmt.Fprintln(os.Stderr, "Saved:", *out)
	}
}
