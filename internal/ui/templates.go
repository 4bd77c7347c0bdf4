package ui

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	"github.com/KaramelBytes/tabdash/internal/panel"
	"github.com/KaramelBytes/tabdash/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type navItem struct {
	Kind   panel.Kind
	Active bool
}

type page struct {
	Nav      []navItem
	View     panel.View
	FileName string
}

func newPage(sess session.Session, v panel.View) page {
	p := page{View: v, FileName: sess.FileName}
	for _, k := range panel.Kinds() {
		p.Nav = append(p.Nav, navItem{Kind: k, Active: k == v.Kind})
	}
	return p
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"svgURI": svgURI,
		"num":    analysis.FormatFloat,
		"corr":   corrLabel,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// svgURI wraps a rendered chart in a data URI so it is displayed as an image
// rather than inlined into the page.
func svgURI(svg []byte) template.URL {
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
}

func corrLabel(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", v)
}
