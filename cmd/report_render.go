package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	"github.com/KaramelBytes/tabdash/internal/utils"
)

func renderReport(rep *analysis.Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "table":
		var buf bytes.Buffer
		renderReportTables(&buf, rep)
		return buf.Bytes(), nil
	case "md", "markdown":
		return []byte(rep.Markdown()), nil
	case "json":
		b, err := utils.PrettyJSON(newJSONReport(rep))
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use table, markdown or json)", format)
	}
}

func newTableWriter(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderReportTables(w io.Writer, rep *analysis.Report) {
	if rep.Name != "" {
		_, _ = fmt.Fprintf(w, "File: %s\n", rep.Name)
	}
	_, _ = fmt.Fprintf(w, "Shape: %d rows, %d columns\n\n", rep.Rows, rep.Cols)

	schema := newTableWriter(w, "Columns")
	schema.AppendHeader(table.Row{"column", "type", "missing", "unique"})
	for i, c := range rep.Schema {
		schema.AppendRow(table.Row{c.Name, c.Kind, rep.Missing[i].Count, rep.Unique[i].Count})
	}
	schema.Render()

	if len(rep.Description.Numeric) > 0 {
		_, _ = fmt.Fprintln(w)
		st := newTableWriter(w, "Summary statistics")
		st.AppendHeader(table.Row{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
		f := analysis.FormatFloat
		for _, s := range rep.Description.Numeric {
			st.AppendRow(table.Row{s.Name, s.Count, f(s.Mean), f(s.Std), f(s.Min), f(s.Q1), f(s.Q2), f(s.Q3), f(s.Max)})
		}
		st.Render()
	}
	if len(rep.Description.Text) > 0 {
		_, _ = fmt.Fprintln(w)
		st := newTableWriter(w, "Summary statistics")
		st.AppendHeader(table.Row{"column", "count", "unique", "top", "freq"})
		for _, s := range rep.Description.Text {
			st.AppendRow(table.Row{s.Name, s.Count, s.Unique, s.Top, s.Freq})
		}
		st.Render()
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Categorical Columns: %s\n", strings.Join(rep.Classes.Categorical, ", "))
	_, _ = fmt.Fprintf(w, "Numerical Columns: %s\n", strings.Join(rep.Classes.Numerical, ", "))
	if len(rep.Classes.Other) > 0 {
		_, _ = fmt.Fprintf(w, "Other Columns: %s\n", strings.Join(rep.Classes.Other, ", "))
	}

	if len(rep.Preview) > 0 {
		_, _ = fmt.Fprintln(w)
		pv := newTableWriter(w, fmt.Sprintf("First %d rows", len(rep.Preview)))
		header := make(table.Row, len(rep.Header))
		for i, h := range rep.Header {
			header[i] = h
		}
		pv.AppendHeader(header)
		for _, r := range rep.Preview {
			row := make(table.Row, len(r))
			for i, v := range r {
				row[i] = v
			}
			pv.AppendRow(row)
		}
		pv.Render()
	}
}

// jsonReport mirrors analysis.Report with statistics as strings, since JSON
// has no NaN.
type jsonReport struct {
	File        string               `json:"file"`
	Rows        int                  `json:"rows"`
	Cols        int                  `json:"cols"`
	Columns     []jsonColumn         `json:"columns"`
	Numeric     []map[string]any     `json:"numeric_summary,omitempty"`
	Text        []analysis.TextStats `json:"text_summary,omitempty"`
	Categorical []string             `json:"categorical"`
	Numerical   []string             `json:"numerical"`
	Other       []string             `json:"other,omitempty"`
	Preview     [][]string           `json:"preview"`
}

type jsonColumn struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Missing int    `json:"missing"`
	Unique  int    `json:"unique"`
}

func newJSONReport(rep *analysis.Report) jsonReport {
	out := jsonReport{
		File:        rep.Name,
		Rows:        rep.Rows,
		Cols:        rep.Cols,
		Text:        rep.Description.Text,
		Categorical: nonNil(rep.Classes.Categorical),
		Numerical:   nonNil(rep.Classes.Numerical),
		Other:       rep.Classes.Other,
		Preview:     rep.Preview,
	}
	for i, c := range rep.Schema {
		out.Columns = append(out.Columns, jsonColumn{Name: c.Name, Type: c.Kind, Missing: rep.Missing[i].Count, Unique: rep.Unique[i].Count})
	}
	f := analysis.FormatFloat
	for _, s := range rep.Description.Numeric {
		out.Numeric = append(out.Numeric, map[string]any{
			"column": s.Name, "count": s.Count, "mean": f(s.Mean), "std": f(s.Std),
			"min": f(s.Min), "25%": f(s.Q1), "50%": f(s.Q2), "75%": f(s.Q3), "max": f(s.Max),
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
