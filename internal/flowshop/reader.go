package flowshop

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// MaxCells ограничивает размер матрицы, заявленный в заголовке.
const MaxCells = 1 << 24

// ReadMatrix читает матрицу в текстовом формате:
// "M N", затем M*N длительностей построчно (станок за станком).
// Разделителем служит любой пробельный символ.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	readCount := func(name string) (int, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("%w: missing %s count", ErrMalformedInput, name)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: %s count %q: %v", ErrMalformedInput, name, tok, err)
		}
		if v <= 0 {
			return 0, fmt.Errorf("%w: %s count must be > 0 (got %d)", ErrMalformedInput, name, v)
		}
		return v, nil
	}

	machines, err := readCount("machine")
	if err != nil {
		return nil, err
	}
	operations, err := readCount("operation")
	if err != nil {
		return nil, err
	}

	if machines > MaxCells/operations {
		return nil, fmt.Errorf("%w: header declares %dx%d durations, limit is %d",
			ErrMalformedInput, machines, operations, MaxCells)
	}
	durations := make([]float64, 0, machines*operations)
	for len(durations) < machines*operations {
		tok, ok := next()
		if !ok {
			break
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: duration #%d %q: %v", ErrMalformedInput, len(durations), tok, err)
		}
		durations = append(durations, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(durations) != machines*operations {
		return nil, fmt.Errorf("%w: header declares %dx%d durations, got %d",
			ErrMalformedInput, machines, operations, len(durations))
	}
	if tok, ok := next(); ok {
		return nil, fmt.Errorf("%w: unexpected trailing token %q", ErrMalformedInput, tok)
	}
	return NewMatrixFlat(machines, operations, durations)
}

func LoadMatrix(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("read matrix %s: %w", path, err)
	}
	return m, nil
}

// WriteMatrix записывает матрицу в формате, который понимает ReadMatrix.
func WriteMatrix(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", m.Machines, m.Operations); err != nil {
		return err
	}
	for machine := 0; machine < m.Machines; machine++ {
		for op := 0; op < m.Operations; op++ {
			if op > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(m.Duration(machine, op), 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
