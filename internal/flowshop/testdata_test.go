package flowshop

import "testing"

func sampleMatrix(t *testing.T) *Matrix {
	t.Helper()
	m, err := NewMatrix([][]float64{
		{1.2, 2.3, 4.1, 2.4, 3.3},
		{1.5, 1.4, 1.3, 4.1, 3.1},
		{2.1, 4.2, 2.1, 1.7, 6.1},
	})
	if err != nil {
		t.Fatalf("new matrix: %v", err)
	}
	return m
}
