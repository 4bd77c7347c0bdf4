package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

type csvParser struct{}

func (csvParser) Format() Format { return FormatCSV }

func (csvParser) Parse(r io.Reader, opt Options) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = ','
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}
	var out [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(out) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		out = append(out, rec)
	}
	return out, nil
}
