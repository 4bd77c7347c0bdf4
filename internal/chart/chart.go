// Package chart renders panel charts as SVG documents.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

var (
	barColor     = drawing.Color{R: 99, G: 110, B: 250, A: 255}
	outlierColor = drawing.Color{R: 239, G: 85, B: 59, A: 255}
	gridColor    = drawing.Color{R: 255, G: 255, B: 255, A: 255}
)

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color, dot float64) gochart.Style {
	return gochart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    dot,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, width float64) gochart.Style {
	return gochart.Style{StrokeColor: col, StrokeWidth: width}
}

// paddedRange spans vals with 5% headroom and never has zero width.
func paddedRange(vals ...[]float64) *gochart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range vals {
		for _, v := range vs {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) {
		return &gochart.ContinuousRange{Min: 0, Max: 1}
	}
	if lo == hi {
		return &gochart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}
	pad := (hi - lo) * 0.05
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

func render(c renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func label(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
