package chart

import (
	"github.com/KaramelBytes/tabdash/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Box draws a single vertical boxplot. The box spans Q1..Q3 with a median line;
// whiskers and outliers follow analysis.Box.
func Box(title string, b analysis.BoxStats) ([]byte, error) {
	if b.Count == 0 {
		return nil, ErrNoData
	}
	const left, right, mid = 0.7, 1.3, 1.0
	series := []gochart.Series{
		gochart.ContinuousSeries{
			Name:    "box",
			XValues: []float64{left, right, right, left, left},
			YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
			Style:   lineStyle(barColor, 2),
		},
		gochart.ContinuousSeries{
			Name:    "median",
			XValues: []float64{left, right},
			YValues: []float64{b.Med, b.Med},
			Style:   lineStyle(barColor, 3),
		},
		gochart.ContinuousSeries{
			Name:    "lower whisker",
			XValues: []float64{mid, mid},
			YValues: []float64{b.LowerWhisker, b.Q1},
			Style:   lineStyle(barColor, 2),
		},
		gochart.ContinuousSeries{
			Name:    "upper whisker",
			XValues: []float64{mid, mid},
			YValues: []float64{b.Q3, b.UpperWhisker},
			Style:   lineStyle(barColor, 2),
		},
	}
	if len(b.Outliers) > 0 {
		xs := make([]float64, len(b.Outliers))
		for i := range xs {
			xs[i] = mid
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    "outliers",
			XValues: xs,
			YValues: b.Outliers,
			Style:   pointStyle(outlierColor, 4),
		})
	}
	c := gochart.Chart{
		Title:      title,
		Width:      minWidth,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: 2},
			Ticks: []gochart.Tick{{Value: 0}, {Value: mid, Label: b.Name}, {Value: 2}},
		},
		YAxis: gochart.YAxis{
			Name:  b.Name,
			Range: paddedRange([]float64{b.Min, b.Max}),
		},
		Series: series,
	}
	return render(c)
}
