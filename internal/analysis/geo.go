package analysis

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/tabdash/internal/table"
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoSet is the plottable subset of two coordinate columns.
type GeoSet struct {
	Points  []Point
	Dropped int // rows with a missing, non-numeric or out-of-range coordinate
}

// GeoPoints pairs latCol and lonCol row by row. Rows with a missing value in
// either column are dropped, as are values that are not numbers or fall outside
// [-90, 90] / [-180, 180].
func GeoPoints(t *table.Table, latCol, lonCol string) (GeoSet, error) {
	lat, err := t.Column(latCol)
	if err != nil {
		return GeoSet{}, err
	}
	lon, err := t.Column(lonCol)
	if err != nil {
		return GeoSet{}, err
	}
	var gs GeoSet
	for i := 0; i < t.Rows; i++ {
		la, okA := coordinate(lat, i)
		lo, okB := coordinate(lon, i)
		if !okA || !okB || la < -90 || la > 90 || lo < -180 || lo > 180 {
			gs.Dropped++
			continue
		}
		gs.Points = append(gs.Points, Point{Lat: la, Lon: lo})
	}
	return gs, nil
}

func coordinate(c *table.Column, i int) (float64, bool) {
	v := c.Values[i]
	if !v.Valid {
		return 0, false
	}
	if c.IsNumeric() {
		return v.Num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
