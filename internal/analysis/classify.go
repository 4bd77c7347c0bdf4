package analysis

import (
	"strings"

	"github.com/KaramelBytes/tabdash/internal/table"
)

// Classes splits column names by inferred storage type. The three lists are
// disjoint and keep table order.
type Classes struct {
	Categorical []string // object (text) columns
	Numerical   []string // integer and float columns
	Other       []string // boolean and datetime columns
}

// Classify buckets every column of t.
func Classify(t *table.Table) Classes {
	var c Classes
	for _, col := range t.Columns {
		switch {
		case col.Kind == table.Text:
			c.Categorical = append(c.Categorical, col.Name)
		case col.Kind.Numeric():
			c.Numerical = append(c.Numerical, col.Name)
		default:
			c.Other = append(c.Other, col.Name)
		}
	}
	return c
}

// GeoCandidates returns columns whose names look like latitude ("lat") or
// longitude ("lon"/"long"), matched case-insensitively.
func GeoCandidates(t *table.Table) (lat, lon []string) {
	for _, col := range t.Columns {
		n := strings.ToLower(col.Name)
		if strings.Contains(n, "lat") {
			lat = append(lat, col.Name)
		}
		if strings.Contains(n, "lon") || strings.Contains(n, "long") {
			lon = append(lon, col.Name)
		}
	}
	return lat, lon
}
