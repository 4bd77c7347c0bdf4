package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/tabdash/internal/parser"
)

// missingTokens mirrors the default NA markers of common dataframe readers.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether s is treated as a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// sheetDateLayouts are the renderings the XLSX parser gives date-formatted cells.
var sheetDateLayouts = []string{parser.DateLayout, parser.DateTimeLayout}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range sheetDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// buildColumn infers the kind of raw and fills typed cells.
//
// An integer column with gaps is widened to Float, and a boolean column with gaps
// falls back to Text; an all-missing column is Float. Datetime is only inferred
// when dates is set, since delimited text never carries a date type.
func buildColumn(name string, raw []string, dates bool) *Column {
	col := &Column{Name: name, Values: make([]Cell, len(raw))}
	present := 0
	allInt, allFloat, allBool, allTime := true, true, true, dates
	for i, r := range raw {
		s := strings.TrimSpace(r)
		if IsMissing(s) {
			col.Values[i] = Cell{Raw: r}
			continue
		}
		col.Values[i] = Cell{Raw: r, Valid: true}
		present++
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
		if allTime {
			if _, ok := parseTimeMaybe(s); !ok {
				allTime = false
			}
		}
	}
	missing := present < len(raw)

	switch {
	case present == 0:
		col.Kind = Float
	case allInt && !missing:
		col.Kind = Integer
	case allFloat:
		col.Kind = Float
	case allBool && !missing:
		col.Kind = Boolean
	case allTime:
		col.Kind = Datetime
	default:
		col.Kind = Text
	}

	for i := range col.Values {
		c := &col.Values[i]
		if !c.Valid {
			continue
		}
		s := strings.TrimSpace(c.Raw)
		switch col.Kind {
		case Integer, Float:
			c.Num, _ = strconv.ParseFloat(s, 64)
		case Boolean:
			if b, _ := parseBool(s); b {
				c.Num = 1
			}
		case Datetime:
			ts, _ := parseTimeMaybe(s)
			c.Num = float64(ts.Unix())
		}
	}
	return col
}
