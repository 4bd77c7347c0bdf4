package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/tabdash/internal/table"
)

// Report bundles the overview, info and EDA views of a table.
type Report struct {
	Name        string
	Rows        int
	Cols        int
	Header      []string
	Preview     [][]string
	Schema      []ColumnKind
	Missing     []ColumnCount
	Unique      []ColumnCount
	Description Description
	Classes     Classes
}

// ColumnKind pairs a column with its inferred dtype name.
type ColumnKind struct {
	Name string
	Kind string
}

// NewReport computes every summary of t. previewRows bounds the preview.
func NewReport(t *table.Table, previewRows int) *Report {
	rows, cols := t.Shape()
	r := &Report{
		Name:        t.Name,
		Rows:        rows,
		Cols:        cols,
		Header:      t.ColumnNames(),
		Preview:     t.Head(previewRows),
		Missing:     Missing(t),
		Unique:      Unique(t),
		Description: Describe(t),
		Classes:     Classify(t),
	}
	for _, c := range t.Columns {
		r.Schema = append(r.Schema, ColumnKind{Name: c.Name, Kind: c.Kind.String()})
	}
	return r
}

// FormatFloat renders a statistic the way summary tables show it.
func FormatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", f)
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Shape: %d rows, %d columns\n\n", r.Rows, r.Cols))

	b.WriteString("[SCHEMA]\n")
	for i, c := range r.Schema {
		b.WriteString(fmt.Sprintf("- %s: %s (missing %d, unique %d)\n", safeName(c.Name), c.Kind, r.Missing[i].Count, r.Unique[i].Count))
	}

	if len(r.Description.Numeric) > 0 {
		b.WriteString("\n[SUMMARY STATISTICS]\n")
		b.WriteString("| column | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
		for _, s := range r.Description.Numeric {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				safeVal(s.Name), s.Count, FormatFloat(s.Mean), FormatFloat(s.Std), FormatFloat(s.Min),
				FormatFloat(s.Q1), FormatFloat(s.Q2), FormatFloat(s.Q3), FormatFloat(s.Max)))
		}
	}
	if len(r.Description.Text) > 0 {
		b.WriteString("\n[SUMMARY STATISTICS]\n")
		b.WriteString("| column | count | unique | top | freq |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, s := range r.Description.Text {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %d |\n", safeVal(s.Name), s.Count, s.Unique, safeVal(s.Top), s.Freq))
		}
	}

	b.WriteString("\n[COLUMN CLASSES]\n")
	b.WriteString(fmt.Sprintf("Categorical Columns: %s\n", listing(r.Classes.Categorical)))
	b.WriteString(fmt.Sprintf("Numerical Columns: %s\n", listing(r.Classes.Numerical)))
	if len(r.Classes.Other) > 0 {
		b.WriteString(fmt.Sprintf("Other Columns: %s\n", listing(r.Classes.Other)))
	}

	if len(r.Preview) > 0 {
		b.WriteString("\n[PREVIEW]\n")
		b.WriteString("| " + strings.Join(mapStrings(r.Header, safeVal), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat("---|", len(r.Header)) + "\n")
		for _, row := range r.Preview {
			b.WriteString("| " + strings.Join(mapStrings(row, safeVal), " | ") + " |\n")
		}
	}
	return b.String()
}

func listing(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func mapStrings(in []string, f func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = f(s)
	}
	return out
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
