// Package panel maps navigation labels to the views rendered for a table.
package panel

// Kind identifies one of the nine dashboard panels.
type Kind int

const (
	Upload Kind = iota
	Overview
	Info
	EDA
	BasicGraphs
	Correlation
	PairPlot
	Histogram
	Geospatial
)

var meta = [...]struct {
	label, slug, title string
}{
	Upload:      {"Upload File", "upload", "Upload Dataset"},
	Overview:    {"Understand Data", "overview", "Dataset Overview"},
	Info:        {"Data Info", "info", "Data Information"},
	EDA:         {"Exploratory Data Analysis (EDA)", "eda", "Exploratory Data Analysis"},
	BasicGraphs: {"Basic Graphs", "graphs", "Basic Graphs"},
	Correlation: {"Correlation Heatmap", "correlation", "Correlation Heatmap"},
	PairPlot:    {"Pair Plot", "pairplot", "Pair Plot"},
	Histogram:   {"Histogram", "histogram", "Histogram"},
	Geospatial:  {"Geospatial Analysis", "geo", "Geospatial Analysis"},
}

// Kinds returns every panel in navigation order.
func Kinds() []Kind {
	out := make([]Kind, len(meta))
	for i := range meta {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) valid() bool { return k >= 0 && int(k) < len(meta) }

// Label is the navigation text.
func (k Kind) Label() string {
	if !k.valid() {
		return ""
	}
	return meta[k].label
}

// Slug is the URL path segment.
func (k Kind) Slug() string {
	if !k.valid() {
		return ""
	}
	return meta[k].slug
}

// Title is the panel heading.
func (k Kind) Title() string {
	if !k.valid() {
		return ""
	}
	return meta[k].title
}

// Number is the 1-based navigation position.
func (k Kind) Number() int { return int(k) + 1 }

func (k Kind) String() string { return k.Slug() }

// ParseKind resolves a slug. An empty slug selects Upload.
func ParseKind(slug string) (Kind, bool) {
	if slug == "" {
		return Upload, true
	}
	for i, m := range meta {
		if m.slug == slug {
			return Kind(i), true
		}
	}
	return 0, false
}
