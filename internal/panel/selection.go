package panel

import "net/url"

// Query keys understood by ParseSelection. A multi-select with nothing chosen
// submits no "cols" values, so forms also send SubmittedKey to mark the
// selection as explicit.
const (
	ColumnsKey   = "cols"
	SubmittedKey = "submitted"
	ColumnKey    = "col"
	LatKey       = "lat"
	LonKey       = "lon"
)

// ParseSelection reads the column pickers from a query string.
func ParseSelection(q url.Values) Selection {
	sel := Selection{
		Column: q.Get(ColumnKey),
		Lat:    q.Get(LatKey),
		Lon:    q.Get(LonKey),
	}
	if cols, ok := q[ColumnsKey]; ok || q.Has(SubmittedKey) {
		sel.ColumnsSet = true
		for _, c := range cols {
			if c != "" {
				sel.Columns = append(sel.Columns, c)
			}
		}
	}
	return sel
}
