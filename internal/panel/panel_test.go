package panel

import (
	"bytes"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/KaramelBytes/tabdash/internal/table"
)

const people = `
name,age,lat,lon
ann,31,59.91,10.75
bob,,48.85,2.35
cid,45,40.71,-74.00
dee,28,35.68,139.69
eve,52,-33.87,151.21`

const oneNumeric = `
city,population
oslo,709000
paris,2103000
tokyo,13960000`

func load(t *testing.T, csv string) *table.Table {
	t.Helper()
	tb, err := table.Load(strings.NewReader(strings.TrimSpace(csv)), "data.csv", "csv", table.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tb
}

func hasWarning(v View, msg string) bool {
	for _, w := range v.Warnings {
		if w == msg {
			return true
		}
	}
	return false
}

func TestKindsOrderAndSlugs(t *testing.T) {
	var labels []string
	for _, k := range Kinds() {
		labels = append(labels, k.Label())
		got, ok := ParseKind(k.Slug())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.Slug(), got, ok)
		}
	}
	want := []string{
		"Upload File", "Understand Data", "Data Info",
		"Exploratory Data Analysis (EDA)", "Basic Graphs", "Correlation Heatmap",
		"Pair Plot", "Histogram", "Geospatial Analysis",
	}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels = %v", labels)
	}
	if k, ok := ParseKind(""); !ok || k != Upload {
		t.Fatalf("empty slug = %v, %v", k, ok)
	}
	if _, ok := ParseKind("nope"); ok {
		t.Fatalf("unknown slug accepted")
	}
	if Geospatial.Number() != 9 {
		t.Fatalf("number = %d", Geospatial.Number())
	}
}

func TestRenderWithoutTable(t *testing.T) {
	for _, k := range Kinds() {
		v := Render(k, nil, Selection{}, DefaultOptions())
		if k == Upload {
			if v.Empty || v.Upload == nil {
				t.Fatalf("upload panel should render without a table: %+v", v)
			}
			continue
		}
		if !v.Empty || len(v.Warnings) != 0 || len(v.Charts) != 0 {
			t.Fatalf("%s: want empty view, got %+v", k, v)
		}
	}
}

func TestPeopleScenario(t *testing.T) {
	tb := load(t, people)
	opt := DefaultOptions()

	ov := Render(Overview, tb, Selection{}, opt).Overview
	if ov.Rows != 5 || ov.Cols != 4 {
		t.Fatalf("shape = %dx%d", ov.Rows, ov.Cols)
	}
	for _, m := range ov.Missing {
		want := 0
		if m.Name == "age" {
			want = 1
		}
		if m.Count != want {
			t.Fatalf("missing[%s] = %d, want %d", m.Name, m.Count, want)
		}
	}
	if len(ov.Preview) != 5 || ov.Preview[1][1] != "NaN" {
		t.Fatalf("preview = %v", ov.Preview)
	}

	eda := Render(EDA, tb, Selection{}, opt).EDA
	if !reflect.DeepEqual(eda.Categorical, []string{"name"}) || !reflect.DeepEqual(eda.Numerical, []string{"age", "lat", "lon"}) {
		t.Fatalf("eda = %+v", eda)
	}

	geo := Render(Geospatial, tb, Selection{}, opt)
	if len(geo.Warnings) != 0 {
		t.Fatalf("geo warnings = %v", geo.Warnings)
	}
	if !reflect.DeepEqual(geo.Pickers[0].Options, []string{"lat"}) || !reflect.DeepEqual(geo.Pickers[1].Options, []string{"lon"}) {
		t.Fatalf("geo pickers = %+v", geo.Pickers)
	}
	if len(geo.Geo.Points) != 5 || geo.Geo.Dropped != 0 {
		t.Fatalf("geo = %+v", geo.Geo)
	}

	info := Render(Info, tb, Selection{}, opt).Info
	if len(info.Description.Numeric) != 3 || len(info.Unique) != 4 {
		t.Fatalf("info = %+v", info)
	}
}

func TestSingleNumericScenario(t *testing.T) {
	tb := load(t, oneNumeric)
	opt := DefaultOptions()
	for _, k := range []Kind{Correlation, PairPlot} {
		v := Render(k, tb, Selection{}, opt)
		if !hasWarning(v, WarnTooFewColumns) || len(v.Charts) != 0 || v.Pairs != nil {
			t.Fatalf("%s: %+v", k, v)
		}
	}
	h := Render(Histogram, tb, Selection{}, opt)
	if len(h.Warnings) != 0 || len(h.Charts) != 1 {
		t.Fatalf("histogram: %+v", h)
	}
	if !bytes.Contains(h.Charts[0].SVG, []byte("<svg")) {
		t.Fatalf("histogram is not svg")
	}
	if h.Pickers[0].Selected[0] != "population" {
		t.Fatalf("picker = %+v", h.Pickers[0])
	}
}

func TestCorrelationSelection(t *testing.T) {
	tb := load(t, people)
	opt := DefaultOptions()

	v := Render(Correlation, tb, Selection{}, opt)
	if !reflect.DeepEqual(v.Pickers[0].Selected, []string{"age", "lat"}) {
		t.Fatalf("default selection = %v", v.Pickers[0].Selected)
	}
	if v.Correlation == nil || len(v.Charts) != 1 {
		t.Fatalf("heatmap missing: %+v", v)
	}

	cases := []Selection{
		{ColumnsSet: true},
		{ColumnsSet: true, Columns: []string{"lat"}},
		{ColumnsSet: true, Columns: []string{"lat", "name", "ghost"}},
		{ColumnsSet: true, Columns: []string{"lat", "lat"}},
	}
	for _, sel := range cases {
		for _, k := range []Kind{Correlation, PairPlot} {
			v := Render(k, tb, sel, opt)
			if !hasWarning(v, WarnTooFewColumns) || v.Correlation != nil || v.Pairs != nil {
				t.Fatalf("%s %v: %+v", k, sel.Columns, v)
			}
		}
	}

	v = Render(Correlation, tb, Selection{ColumnsSet: true, Columns: []string{"lon", "lat", "age"}}, opt)
	if !reflect.DeepEqual(v.Correlation.Columns, []string{"lon", "lat", "age"}) {
		t.Fatalf("columns = %v", v.Correlation.Columns)
	}
}

func TestPairPlotGrid(t *testing.T) {
	v := Render(PairPlot, load(t, people), Selection{ColumnsSet: true, Columns: []string{"lat", "lon", "age"}}, DefaultOptions())
	if v.Pairs == nil || len(v.Pairs.Cells) != 3 {
		t.Fatalf("pairs = %+v", v.Pairs)
	}
	for i, row := range v.Pairs.Cells {
		if len(row) != 3 {
			t.Fatalf("row %d has %d cells", i, len(row))
		}
		for j, c := range row {
			if len(c.SVG) == 0 {
				t.Fatalf("cell %d,%d empty", i, j)
			}
		}
	}
}

func TestHistogramGuard(t *testing.T) {
	tb := load(t, "name,flag\nann,true\nbob,false")
	v := Render(Histogram, tb, Selection{}, DefaultOptions())
	if !hasWarning(v, WarnNoNumerical) || len(v.Charts) != 0 || len(v.Pickers) != 0 {
		t.Fatalf("histogram = %+v", v)
	}
}

func TestHistogramColumnChoice(t *testing.T) {
	tb := load(t, people)
	v := Render(Histogram, tb, Selection{Column: "lon"}, DefaultOptions())
	if v.Pickers[0].Selected[0] != "lon" || v.Charts[0].Heading != "Histogram of lon" {
		t.Fatalf("view = %+v", v)
	}
	v = Render(Histogram, tb, Selection{Column: "name"}, DefaultOptions())
	if v.Pickers[0].Selected[0] != "age" {
		t.Fatalf("non-numeric choice should fall back, got %v", v.Pickers[0].Selected)
	}
}

func TestGeoWarning(t *testing.T) {
	for _, csv := range []string{oneNumeric, "latitude,x\n1,2", "x,longitude\n1,2"} {
		v := Render(Geospatial, load(t, csv), Selection{}, DefaultOptions())
		if !hasWarning(v, WarnNoGeoColumns) || v.Geo != nil {
			t.Fatalf("%q: %+v", csv, v)
		}
	}
}

func TestBasicGraphs(t *testing.T) {
	v := Render(BasicGraphs, load(t, people), Selection{}, DefaultOptions())
	if len(v.Charts) != 2 || v.Charts[0].Heading != "Bar Chart of name" || v.Charts[1].Heading != "Boxplot of age" {
		t.Fatalf("charts = %+v", v.Charts)
	}
	v = Render(BasicGraphs, load(t, "flag\ntrue\nfalse"), Selection{}, DefaultOptions())
	if len(v.Charts) != 0 || len(v.Warnings) != 0 {
		t.Fatalf("no class columns should skip silently: %+v", v)
	}
}

func TestParseSelection(t *testing.T) {
	sel := ParseSelection(url.Values{"cols": {"a", "", "b"}, "col": {"c"}, "lat": {"y"}, "lon": {"x"}})
	want := Selection{Columns: []string{"a", "b"}, ColumnsSet: true, Column: "c", Lat: "y", Lon: "x"}
	if !reflect.DeepEqual(sel, want) {
		t.Fatalf("sel = %+v", sel)
	}
	if ParseSelection(url.Values{}).ColumnsSet {
		t.Fatalf("absent selection marked as set")
	}
	if s := ParseSelection(url.Values{"submitted": {"1"}}); !s.ColumnsSet || len(s.Columns) != 0 {
		t.Fatalf("empty submission = %+v", s)
	}
}
