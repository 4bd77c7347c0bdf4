package chart

import (
	"math"

	"github.com/KaramelBytes/tabdash/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	minWidth = 640
	height   = 420
)

func countRange(max int) *gochart.ContinuousRange {
	top := math.Ceil(float64(max) * 1.1)
	if top < 1 {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: top}
}

func barWidthFor(n, barWidth, spacing int) int {
	w := 120 + n*(barWidth+spacing)
	if w < minWidth {
		return minWidth
	}
	return w
}

// Bar draws the frequency of each category.
func Bar(title string, counts []analysis.CategoryCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	const bw, sp = 28, 8
	bars := make([]gochart.Value, len(counts))
	maxCount := 0
	for i, c := range counts {
		bars[i] = gochart.Value{Label: c.Value, Value: float64(c.Count), Style: gochart.Style{FillColor: barColor, StrokeColor: barColor}}
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	bc := gochart.BarChart{
		Title:      title,
		Width:      barWidthFor(len(bars), bw, sp),
		Height:     height,
		BarWidth:   bw,
		BarSpacing: sp,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Name: "count", Range: countRange(maxCount)},
		Bars:       bars,
	}
	return render(bc)
}

// Histogram draws pre-computed bins. Every fifth bin edge is labelled.
func Histogram(title string, bins []analysis.Bin) ([]byte, error) {
	if len(bins) == 0 {
		return nil, ErrNoData
	}
	const bw, sp = 16, 2
	bars := make([]gochart.Value, len(bins))
	maxCount := 0
	for i, b := range bins {
		lbl := ""
		if i%5 == 0 {
			lbl = label(b.Lo)
		}
		bars[i] = gochart.Value{Label: lbl, Value: float64(b.Count), Style: gochart.Style{FillColor: barColor, StrokeColor: barColor}}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	bc := gochart.BarChart{
		Title:      title,
		Width:      barWidthFor(len(bars), bw, sp),
		Height:     height,
		BarWidth:   bw,
		BarSpacing: sp,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Name: "count", Range: countRange(maxCount)},
		Bars:       bars,
	}
	return render(bc)
}
