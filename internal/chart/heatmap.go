package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// coolwarm anchors: blue at -1, light grey at 0, red at +1.
var (
	coolLow  = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	coolMid  = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	coolHigh = drawing.Color{R: 180, G: 4, B: 38, A: 255}
)

// Coolwarm maps v in [-1, 1] onto a diverging blue-grey-red scale. Values
// outside the range are clamped.
func Coolwarm(v float64) drawing.Color {
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(coolMid, coolLow, -v)
	}
	return lerp(coolMid, coolHigh, v)
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Heatmap draws an annotated correlation matrix with two-decimal labels, thin
// cell borders and a colour bar. NaN cells are left blank.
func Heatmap(m *analysis.CorrMatrix) ([]byte, error) {
	n := len(m.Columns)
	if n == 0 {
		return nil, ErrNoData
	}
	cell := 600 / n
	if cell > 90 {
		cell = 90
	}
	if cell < 36 {
		cell = 36
	}
	const left, top, barGap, barW = 160, 80, 24, 18
	grid := cell * n
	width := left + grid + barGap + barW + 60
	height := top + grid + 40

	r, err := gochart.SVG(width, height)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	if f, err := gochart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}
	rect(r, 0, 0, width, height, drawing.ColorWhite, 0)

	r.SetFontColor(drawing.ColorBlack)
	r.SetFontSize(14)
	r.Text("Correlation Heatmap", left, 28)

	r.SetFontSize(11)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]
			x, y := left+j*cell, top+i*cell
			fill := drawing.ColorWhite
			if !math.IsNaN(v) {
				fill = Coolwarm(v)
			}
			rect(r, x, y, x+cell, y+cell, fill, 0.5)
			if math.IsNaN(v) {
				continue
			}
			txt := fmt.Sprintf("%.2f", v)
			if math.Abs(v) > 0.6 {
				r.SetFontColor(drawing.ColorWhite)
			} else {
				r.SetFontColor(drawing.ColorBlack)
			}
			tw := r.MeasureText(txt).Width()
			r.Text(txt, x+(cell-tw)/2, y+cell/2+4)
		}
	}

	r.SetFontColor(drawing.ColorBlack)
	for i, name := range m.Columns {
		lbl := truncate(name, 20)
		tw := r.MeasureText(lbl).Width()
		r.Text(lbl, left-8-tw, top+i*cell+cell/2+4)
		col := truncate(name, cell/7)
		cw := r.MeasureText(col).Width()
		r.Text(col, left+i*cell+(cell-cw)/2, top-8)
	}

	// colour bar from +1 (top) to -1 (bottom)
	bx := left + grid + barGap
	const steps = 40
	for s := 0; s < steps; s++ {
		v := 1 - 2*float64(s)/float64(steps-1)
		y0 := top + s*grid/steps
		y1 := top + (s+1)*grid/steps
		rect(r, bx, y0, bx+barW, y1, Coolwarm(v), 0)
	}
	for _, tick := range []float64{1, 0.5, 0, -0.5, -1} {
		y := top + int((1-tick)/2*float64(grid))
		r.Text(fmt.Sprintf("%.1f", tick), bx+barW+6, y+4)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func rect(r gochart.Renderer, x0, y0, x1, y1 int, fill drawing.Color, border float64) {
	r.SetFillColor(fill)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	if border > 0 {
		r.SetStrokeColor(gridColor)
		r.SetStrokeWidth(border)
		r.FillStroke()
		return
	}
	r.Fill()
}

func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
