package panel

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	"github.com/KaramelBytes/tabdash/internal/chart"
	"github.com/KaramelBytes/tabdash/internal/table"
)

// Warnings shown instead of a chart.
const (
	WarnTooFewColumns = "Please select at least two numerical columns!"
	WarnNoNumerical   = "No numerical columns available for a histogram!"
	WarnNoGeoColumns  = "No latitude/longitude columns found in the dataset!"
)

type renderFunc func(v *View, t *table.Table, sel Selection, opt Options)

var renderers = [...]renderFunc{
	Upload:      renderUpload,
	Overview:    renderOverview,
	Info:        renderInfo,
	EDA:         renderEDA,
	BasicGraphs: renderGraphs,
	Correlation: renderCorrelation,
	PairPlot:    renderPairPlot,
	Histogram:   renderHistogram,
	Geospatial:  renderGeo,
}

// Render builds the view of panel k for t. t may be nil, in which case every
// panel other than Upload comes back Empty.
func Render(k Kind, t *table.Table, sel Selection, opt Options) View {
	v := View{Kind: k, Title: k.Title()}
	if !k.valid() {
		v.Empty = true
		return v
	}
	if t == nil && k != Upload {
		v.Empty = true
		return v
	}
	if opt.PreviewRows <= 0 {
		opt.PreviewRows = DefaultOptions().PreviewRows
	}
	if opt.HistogramBins <= 0 {
		opt.HistogramBins = DefaultOptions().HistogramBins
	}
	renderers[k](&v, t, sel, opt)
	return v
}

func renderUpload(v *View, t *table.Table, _ Selection, _ Options) {
	v.Upload = &UploadView{}
	if t != nil {
		v.Upload.FileName = t.Name
		v.Upload.Rows, v.Upload.Cols = t.Shape()
	}
}

func renderOverview(v *View, t *table.Table, _ Selection, opt Options) {
	r := analysis.NewReport(t, opt.PreviewRows)
	v.Overview = &OverviewView{
		Header:  r.Header,
		Preview: r.Preview,
		Rows:    r.Rows,
		Cols:    r.Cols,
		Schema:  r.Schema,
		Missing: r.Missing,
	}
}

func renderInfo(v *View, t *table.Table, _ Selection, _ Options) {
	v.Info = &InfoView{
		Description: analysis.Describe(t),
		Unique:      analysis.Unique(t),
	}
}

func renderEDA(v *View, t *table.Table, _ Selection, _ Options) {
	c := analysis.Classify(t)
	v.EDA = &c
}

// renderGraphs draws a bar chart of the first categorical column and a boxplot
// of the first numerical column. A missing class skips its chart.
func renderGraphs(v *View, t *table.Table, _ Selection, _ Options) {
	c := analysis.Classify(t)
	if len(c.Categorical) > 0 {
		col, _ := t.Column(c.Categorical[0])
		heading := "Bar Chart of " + col.Name
		svg, err := chart.Bar(heading, analysis.ValueCounts(col))
		v.addChart(heading, svg, err)
	}
	if len(c.Numerical) > 0 {
		col, _ := t.Column(c.Numerical[0])
		heading := "Boxplot of " + col.Name
		svg, err := chart.Box(heading, analysis.Box(col))
		v.addChart(heading, svg, err)
	}
}

func renderCorrelation(v *View, t *table.Table, sel Selection, _ Options) {
	numerical := analysis.Classify(t).Numerical
	chosen := chooseColumns(numerical, sel)
	v.Pickers = []Picker{{
		Name:     ColumnsKey,
		Label:    "Select columns for correlation heatmap",
		Options:  numerical,
		Selected: chosen,
		Multiple: true,
	}}
	if len(chosen) < 2 {
		v.warn(WarnTooFewColumns)
		return
	}
	m, err := analysis.Correlation(t, chosen)
	if err != nil {
		v.warn(err.Error())
		return
	}
	v.Correlation = m
	svg, err := chart.Heatmap(m)
	v.addChart("Correlation Heatmap", svg, err)
}

func renderPairPlot(v *View, t *table.Table, sel Selection, _ Options) {
	numerical := analysis.Classify(t).Numerical
	chosen := chooseColumns(numerical, sel)
	v.Pickers = []Picker{{
		Name:     ColumnsKey,
		Label:    "Select columns for pair plot",
		Options:  numerical,
		Selected: chosen,
		Multiple: true,
	}}
	if len(chosen) < 2 {
		v.warn(WarnTooFewColumns)
		return
	}
	grid, err := analysis.PairGrid(t, chosen)
	if err != nil {
		v.warn(err.Error())
		return
	}
	pv := &PairView{Columns: chosen, Cells: make([][]Chart, len(grid))}
	for i, row := range grid {
		pv.Cells[i] = make([]Chart, len(row))
		for j, cell := range row {
			svg, err := chart.PairCell(cell)
			if err != nil && !errors.Is(err, chart.ErrNoData) {
				v.warn(fmt.Sprintf("Could not draw %s vs %s: %v", cell.Y, cell.X, err))
			}
			pv.Cells[i][j] = Chart{Heading: cell.Y + " vs " + cell.X, SVG: svg}
		}
	}
	v.Pairs = pv
}

func renderHistogram(v *View, t *table.Table, sel Selection, opt Options) {
	numerical := analysis.Classify(t).Numerical
	if len(numerical) == 0 {
		v.warn(WarnNoNumerical)
		return
	}
	name := pick(numerical, sel.Column)
	v.Pickers = []Picker{{
		Name:     ColumnKey,
		Label:    "Select a column for histogram",
		Options:  numerical,
		Selected: []string{name},
	}}
	col, _ := t.Column(name)
	heading := "Histogram of " + name
	svg, err := chart.Histogram(heading, analysis.Histogram(col.Floats(), opt.HistogramBins))
	v.addChart(heading, svg, err)
}

func renderGeo(v *View, t *table.Table, sel Selection, _ Options) {
	latCands, lonCands := analysis.GeoCandidates(t)
	if len(latCands) == 0 || len(lonCands) == 0 {
		v.warn(WarnNoGeoColumns)
		return
	}
	lat := pick(latCands, sel.Lat)
	lon := pick(lonCands, sel.Lon)
	v.Pickers = []Picker{
		{Name: LatKey, Label: "Select Latitude Column", Options: latCands, Selected: []string{lat}},
		{Name: LonKey, Label: "Select Longitude Column", Options: lonCands, Selected: []string{lon}},
	}
	gs, err := analysis.GeoPoints(t, lat, lon)
	if err != nil {
		v.warn(err.Error())
		return
	}
	v.Geo = &GeoView{Lat: lat, Lon: lon, Points: gs.Points, Dropped: gs.Dropped}
}

// chooseColumns keeps the selected names that are numerical, in selection
// order. An absent selection defaults to the first two numerical columns.
func chooseColumns(numerical []string, sel Selection) []string {
	if !sel.ColumnsSet {
		if len(numerical) > 2 {
			return append([]string(nil), numerical[:2]...)
		}
		return append([]string(nil), numerical...)
	}
	allowed := make(map[string]bool, len(numerical))
	for _, n := range numerical {
		allowed[n] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, n := range sel.Columns {
		if allowed[n] && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// pick returns want if it is one of options, else the first option.
func pick(options []string, want string) string {
	for _, o := range options {
		if o == want {
			return o
		}
	}
	return options[0]
}

func (v *View) warn(msg string) { v.Warnings = append(v.Warnings, msg) }

func (v *View) addChart(heading string, svg []byte, err error) {
	switch {
	case errors.Is(err, chart.ErrNoData):
		v.warn(fmt.Sprintf("%s: nothing to plot.", heading))
	case err != nil:
		v.warn(fmt.Sprintf("Could not draw %s: %v", heading, err))
	default:
		v.Charts = append(v.Charts, Chart{Heading: heading, SVG: svg})
	}
}
