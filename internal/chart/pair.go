package chart

import (
	"github.com/KaramelBytes/tabdash/internal/analysis"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const cellSize = 240

// PairCell draws one cell of a pair plot: a histogram on the diagonal, a
// scatter of the paired observations elsewhere.
func PairCell(c analysis.PairCell) ([]byte, error) {
	if c.Diagonal {
		return pairHistogram(c)
	}
	return Scatter(c.X, c.Y, c.XS, c.YS, cellSize, cellSize)
}

func pairHistogram(c analysis.PairCell) ([]byte, error) {
	if len(c.Bins) == 0 {
		return nil, ErrNoData
	}
	bw := (cellSize-80)/len(c.Bins) - 1
	if bw < 2 {
		bw = 2
	}
	bars := make([]gochart.Value, len(c.Bins))
	maxCount := 0
	for i, b := range c.Bins {
		bars[i] = gochart.Value{Value: float64(b.Count), Style: gochart.Style{FillColor: barColor, StrokeColor: barColor}}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	bc := gochart.BarChart{
		Title:      c.X,
		Width:      cellSize,
		Height:     cellSize,
		BarWidth:   bw,
		BarSpacing: 1,
		Background: gochart.Style{Padding: gochart.Box{Top: 32, Left: 8, Right: 8, Bottom: 8}},
		YAxis:      gochart.YAxis{Range: countRange(maxCount)},
		Bars:       bars,
	}
	return render(bc)
}

// Scatter draws y against x as dots.
func Scatter(xName, yName string, xs, ys []float64, width, height int) ([]byte, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, ErrNoData
	}
	c := gochart.Chart{
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 12, Left: 8, Right: 12, Bottom: 8}},
		XAxis:      gochart.XAxis{Name: xName, Range: paddedRange(xs)},
		YAxis:      gochart.YAxis{Name: yName, Range: paddedRange(ys)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: yName + " vs " + xName, XValues: xs, YValues: ys, Style: pointStyle(barColor, 3)},
		},
	}
	return render(c)
}
