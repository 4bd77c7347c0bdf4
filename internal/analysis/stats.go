package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/tabdash/internal/table"
)

// NumericStats is one column of a describe() style summary.
type NumericStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64 // sample standard deviation; NaN when Count < 2
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// TextStats summarizes an object column when a table has no numeric columns.
type TextStats struct {
	Name   string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Description holds summary statistics. Text is only populated when the table
// has no numeric columns, matching the default describe() fallback.
type Description struct {
	Numeric []NumericStats
	Text    []TextStats
}

// CategoryCount is a value and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// ColumnCount pairs a column name with a count (missing or distinct values).
type ColumnCount struct {
	Name  string
	Count int
}

// Describe computes count, mean, std, min, quartiles and max per numeric column.
func Describe(t *table.Table) Description {
	var d Description
	for _, col := range t.Columns {
		if !col.IsNumeric() {
			continue
		}
		d.Numeric = append(d.Numeric, describeNumeric(col))
	}
	if len(d.Numeric) > 0 {
		return d
	}
	for _, col := range t.Columns {
		if col.Kind != table.Text {
			continue
		}
		ts := TextStats{Name: col.Name, Count: len(col.Values) - col.Missing(), Unique: distinct(col)}
		if vc := ValueCounts(col); len(vc) > 0 {
			ts.Top, ts.Freq = vc[0].Value, vc[0].Count
		}
		d.Text = append(d.Text, ts)
	}
	return d
}

func describeNumeric(col *table.Column) NumericStats {
	vals := col.Floats()
	s := NumericStats{Name: col.Name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	// Welford update
	var n int
	var mean, m2 float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	s.Std = math.NaN()
	if n > 1 {
		s.Std = math.Sqrt(m2 / float64(n-1))
	}
	sorted := sortedCopy(vals)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = quantile(sorted, 0.25)
	s.Q2 = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// Missing returns the missing-value count of every column.
func Missing(t *table.Table) []ColumnCount {
	out := make([]ColumnCount, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = ColumnCount{Name: col.Name, Count: col.Missing()}
	}
	return out
}

// Unique returns the number of distinct non-missing values of every column.
func Unique(t *table.Table) []ColumnCount {
	out := make([]ColumnCount, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = ColumnCount{Name: col.Name, Count: distinct(col)}
	}
	return out
}

func distinct(col *table.Column) int {
	if col.Kind == table.Text {
		seen := make(map[string]struct{})
		for _, v := range col.Values {
			if v.Valid {
				seen[v.Raw] = struct{}{}
			}
		}
		return len(seen)
	}
	seen := make(map[float64]struct{})
	for _, v := range col.Values {
		if v.Valid {
			seen[v.Num] = struct{}{}
		}
	}
	return len(seen)
}

// ValueCounts returns the frequency of each non-missing value, most frequent
// first; ties keep first-appearance order.
func ValueCounts(col *table.Column) []CategoryCount {
	idx := make(map[string]int)
	var out []CategoryCount
	for _, v := range col.Values {
		if !v.Valid {
			continue
		}
		key := v.Raw
		if i, ok := idx[key]; ok {
			out[i].Count++
			continue
		}
		idx[key] = len(out)
		out = append(out, CategoryCount{Value: key, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// BoxStats describes a boxplot: quartiles, whisker ends and points beyond them.
type BoxStats struct {
	Name         string
	Count        int
	Min, Max     float64
	Q1, Med, Q3  float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// Box computes Tukey boxplot statistics. Whiskers stop at the most extreme
// values within 1.5 IQR of the box.
func Box(col *table.Column) BoxStats {
	sorted := sortedCopy(col.Floats())
	b := BoxStats{Name: col.Name, Count: len(sorted)}
	if len(sorted) == 0 {
		return b
	}
	b.Min, b.Max = sorted[0], sorted[len(sorted)-1]
	b.Q1 = quantile(sorted, 0.25)
	b.Med = quantile(sorted, 0.5)
	b.Q3 = quantile(sorted, 0.75)
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LowerWhisker, b.UpperWhisker = b.Q1, b.Q3
	for _, x := range sorted {
		if x >= lo {
			b.LowerWhisker = math.Min(x, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			b.UpperWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}
	for _, x := range sorted {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, x)
		}
	}
	return b
}

// Bin is one histogram bucket covering [Lo, Hi); the last bucket includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram counts vals into bins equal-width buckets spanning [min, max]. A
// constant series is spread over [v-0.5, v+0.5].
func Histogram(vals []float64, bins int) []Bin {
	if len(vals) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range vals {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi
	for _, x := range vals {
		i := int((x - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// SturgesBins returns the Sturges bin count for n observations.
func SturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

func sortedCopy(vals []float64) []float64 {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return cp
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
