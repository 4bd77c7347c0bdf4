package chart

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/tabdash/internal/analysis"
)

func assertSVG(t *testing.T, b []byte, err error, contains ...string) {
	t.Helper()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "<svg") {
		t.Fatalf("not an svg document: %.200s", s)
	}
	for _, c := range contains {
		if !strings.Contains(s, c) {
			t.Fatalf("svg missing %q", c)
		}
	}
}

func TestBar(t *testing.T) {
	b, err := Bar("Bar Chart of city", []analysis.CategoryCount{{Value: "Oslo", Count: 3}, {Value: "Rome", Count: 1}})
	assertSVG(t, b, err, "Bar Chart of city", "Oslo")
	if _, err := Bar("empty", nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}

func TestBarSingleEqualCounts(t *testing.T) {
	b, err := Bar("same", []analysis.CategoryCount{{Value: "a", Count: 1}, {Value: "b", Count: 1}})
	assertSVG(t, b, err)
}

func TestHistogram(t *testing.T) {
	bins := analysis.Histogram([]float64{1, 2, 2, 3, 3, 3, 4, 9}, 30)
	b, err := Histogram("Distribution of age", bins)
	assertSVG(t, b, err, "Distribution of age")
	if _, err := Histogram("x", nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}

func TestBox(t *testing.T) {
	b, err := Box("Boxplot of v", analysis.BoxStats{
		Name: "v", Count: 9, Min: 1, Max: 100, Q1: 3, Med: 5, Q3: 7,
		LowerWhisker: 1, UpperWhisker: 8, Outliers: []float64{100},
	})
	assertSVG(t, b, err, "Boxplot of v")
	if _, err := Box("none", analysis.BoxStats{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}

func TestBoxConstantColumn(t *testing.T) {
	b, err := Box("flat", analysis.BoxStats{Name: "v", Count: 3, Min: 2, Max: 2, Q1: 2, Med: 2, Q3: 2, LowerWhisker: 2, UpperWhisker: 2})
	assertSVG(t, b, err)
}

func TestHeatmap(t *testing.T) {
	m := &analysis.CorrMatrix{
		Columns: []string{"age", "income", "flat"},
		Values: [][]float64{
			{1, 0.4567, math.NaN()},
			{0.4567, 1, math.NaN()},
			{math.NaN(), math.NaN(), math.NaN()},
		},
	}
	b, err := Heatmap(m)
	assertSVG(t, b, err, "0.46", "1.00", "income", "Correlation Heatmap")
	if strings.Contains(string(b), "NaN") {
		t.Fatalf("NaN cells should be blank")
	}
	if _, err := Heatmap(&analysis.CorrMatrix{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}

func TestCoolwarm(t *testing.T) {
	if c := Coolwarm(-1); c != coolLow {
		t.Fatalf("-1 = %+v", c)
	}
	if c := Coolwarm(0); c != coolMid {
		t.Fatalf("0 = %+v", c)
	}
	if c := Coolwarm(5); c != coolHigh {
		t.Fatalf("clamp = %+v", c)
	}
}

func TestPairCell(t *testing.T) {
	diag := analysis.PairCell{X: "a", Y: "a", Diagonal: true, Bins: analysis.Histogram([]float64{1, 2, 3, 4}, 3)}
	b, err := PairCell(diag)
	assertSVG(t, b, err)

	off := analysis.PairCell{X: "a", Y: "b", XS: []float64{1, 2, 3}, YS: []float64{3, 1, 2}}
	b, err = PairCell(off)
	assertSVG(t, b, err)

	if _, err := PairCell(analysis.PairCell{X: "a", Y: "b"}); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v", err)
	}
}

func TestScatterSinglePoint(t *testing.T) {
	b, err := Scatter("x", "y", []float64{1}, []float64{2}, 200, 200)
	assertSVG(t, b, err)
}

func TestTruncate(t *testing.T) {
	if got := truncate("temperature", 6); got != "tempe…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("age", 10); got != "age" {
		t.Fatalf("truncate = %q", got)
	}
}
