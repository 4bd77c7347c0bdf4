// Package table holds the in-memory dataset built from an uploaded file.
package table

import (
	"errors"
	"fmt"
)

// Kind is the inferred storage type of a column.
type Kind int

const (
	Float Kind = iota
	Integer
	Boolean
	Datetime
	Text
)

// String returns the dtype name shown to users.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "int64"
	case Float:
		return "float64"
	case Boolean:
		return "bool"
	case Datetime:
		return "datetime64[ns]"
	case Text:
		return "object"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind is an integer or floating point type.
func (k Kind) Numeric() bool { return k == Integer || k == Float }

// Cell is one value of a column. Num is set for numeric, boolean (0/1) and
// datetime (unix seconds) columns.
type Cell struct {
	Raw   string
	Num   float64
	Valid bool
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Kind   Kind
	Values []Cell
}

// Missing returns the number of missing cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if !v.Valid {
			n++
		}
	}
	return n
}

// IsNumeric reports whether the column holds integer or float values.
func (c *Column) IsNumeric() bool { return c.Kind.Numeric() }

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Valid {
			out = append(out, v.Num)
		}
	}
	return out
}

// Table is a rectangular dataset: every column has Rows cells.
type Table struct {
	Name    string
	Columns []*Column
	Rows    int
}

var (
	// ErrEmptyInput is returned when the file has no header record.
	ErrEmptyInput = errors.New("no columns to parse from file")
	// ErrUnknownColumn is returned when a column name is not part of the table.
	ErrUnknownColumn = errors.New("unknown column")
)

// Shape returns the row and column counts.
func (t *Table) Shape() (rows, cols int) {
	return t.Rows, len(t.Columns)
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Head returns the raw text of the first n rows. Missing cells render as "NaN"
// (or "None" for text columns).
func (t *Table) Head(n int) [][]string {
	if n > t.Rows {
		n = t.Rows
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Display(i)
		}
		out[i] = row
	}
	return out
}

// Display formats the cell at row i for presentation.
func (c *Column) Display(i int) string {
	v := c.Values[i]
	if !v.Valid {
		if c.Kind == Text {
			return "None"
		}
		return "NaN"
	}
	return v.Raw
}
