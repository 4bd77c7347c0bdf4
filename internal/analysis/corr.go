package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/tabdash/internal/table"
)

var (
	// ErrTooFewColumns is returned when fewer than two columns are selected.
	ErrTooFewColumns = errors.New("at least two numerical columns are required")
	// ErrNotNumeric is returned when a selected column is not numeric.
	ErrNotNumeric = errors.New("column is not numeric")
)

// CorrMatrix holds a symmetric Pearson correlation matrix.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// PairCell is one cell of a pair plot grid. Diagonal cells carry a histogram of
// the column; other cells carry the pairwise-complete (X, Y) observations.
type PairCell struct {
	X, Y     string
	Diagonal bool
	Bins     []Bin
	XS, YS   []float64
}

// numericColumns resolves names to numeric columns, requiring at least two.
func numericColumns(t *table.Table, names []string) ([]*table.Column, error) {
	if len(names) < 2 {
		return nil, ErrTooFewColumns
	}
	cols := make([]*table.Column, len(names))
	for i, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		if !c.IsNumeric() {
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, n)
		}
		cols[i] = c
	}
	return cols, nil
}

// Correlation computes pairwise Pearson correlation over the named columns using
// pairwise-complete observations. Pairs with fewer than two observations or zero
// variance yield NaN.
func Correlation(t *table.Table, names []string) (*CorrMatrix, error) {
	cols, err := numericColumns(t, names)
	if err != nil {
		return nil, err
	}
	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			xs, ys := paired(cols[a], cols[b])
			r := pearson(xs, ys)
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: append([]string(nil), names...), Values: mat}, nil
}

// PairGrid builds the cells of a scatter matrix over the named columns.
func PairGrid(t *table.Table, names []string) ([][]PairCell, error) {
	cols, err := numericColumns(t, names)
	if err != nil {
		return nil, err
	}
	grid := make([][]PairCell, len(cols))
	for i, cy := range cols {
		grid[i] = make([]PairCell, len(cols))
		for j, cx := range cols {
			cell := PairCell{X: cx.Name, Y: cy.Name}
			if i == j {
				vals := cx.Floats()
				cell.Diagonal = true
				cell.Bins = Histogram(vals, SturgesBins(len(vals)))
			} else {
				cell.XS, cell.YS = paired(cx, cy)
			}
			grid[i][j] = cell
		}
	}
	return grid, nil
}

// paired returns the rows where both columns hold a value.
func paired(x, y *table.Column) (xs, ys []float64) {
	for i := range x.Values {
		vx, vy := x.Values[i], y.Values[i]
		if !vx.Valid || !vy.Valid {
			continue
		}
		xs = append(xs, vx.Num)
		ys = append(ys, vy.Num)
	}
	return xs, ys
}

func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 {
		return math.NaN()
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	denom := math.Sqrt(sxx * syy)
	if denom == 0 {
		return math.NaN()
	}
	r := sxy / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
