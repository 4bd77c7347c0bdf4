package panel

import (
	"github.com/KaramelBytes/tabdash/internal/analysis"
)

// Selection carries the column pickers of one render pass. It is never stored.
type Selection struct {
	// Columns is the multi-select value; ColumnsSet distinguishes an explicit
	// empty selection from an absent one.
	Columns    []string
	ColumnsSet bool
	// Column is the single-select value of the histogram panel.
	Column string
	Lat    string
	Lon    string
}

// Options holds render tunables.
type Options struct {
	PreviewRows   int
	HistogramBins int
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{PreviewRows: 5, HistogramBins: 30}
}

// Picker describes a column selection control.
type Picker struct {
	Name     string
	Label    string
	Options  []string
	Selected []string
	Multiple bool
}

// IsSelected reports whether opt is currently selected.
func (p Picker) IsSelected(opt string) bool {
	for _, s := range p.Selected {
		if s == opt {
			return true
		}
	}
	return false
}

// Chart is a rendered SVG document with its heading.
type Chart struct {
	Heading string
	SVG     []byte
}

// View is everything a page needs to show one panel.
type View struct {
	Kind  Kind
	Title string
	// Empty is set when a data panel is requested with no table loaded.
	Empty    bool
	Warnings []string
	Pickers  []Picker

	Upload      *UploadView
	Overview    *OverviewView
	Info        *InfoView
	EDA         *analysis.Classes
	Charts      []Chart
	Correlation *analysis.CorrMatrix
	Pairs       *PairView
	Geo         *GeoView
}

// UploadView reports the outcome of the last upload.
type UploadView struct {
	Success  string
	Error    string
	FileName string
	Size     string
	Loaded   string
	Rows     int
	Cols     int
}

// OverviewView is the dataset overview panel.
type OverviewView struct {
	Header  []string
	Preview [][]string
	Rows    int
	Cols    int
	Schema  []analysis.ColumnKind
	Missing []analysis.ColumnCount
}

// InfoView is the summary statistics panel.
type InfoView struct {
	Description analysis.Description
	Unique      []analysis.ColumnCount
}

// PairView is a grid of rendered pair plot cells, row-major.
type PairView struct {
	Columns []string
	Cells   [][]Chart
}

// GeoView lists the points to place on the base map.
type GeoView struct {
	Lat     string
	Lon     string
	Points  []analysis.Point
	Dropped int
}
