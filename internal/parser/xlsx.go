package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Layouts used for XLSX cells stored as dates. Table inference recognises
// exactly these when loading a workbook.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	timeOnlyLayout = "15:04:05"
)

type xlsxParser struct{}

func (xlsxParser) Format() Format { return FormatXLSX }

// Parse reads the selected worksheet (first sheet by default). Numbers come
// back as their stored values, not the display text of their number format;
// cells formatted as dates are rendered with DateLayout or DateTimeLayout.
func (xlsxParser) Parse(r io.Reader, opt Options) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found.\nAvailable sheets: %s", opt.Sheet, strings.Join(sheets, ", "))
		}
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	c := cellReader{f: f, sheet: sheet, styles: map[int]numFmtClass{}}
	for i, row := range raw {
		for j, v := range row {
			disp := v
			if i < len(shown) && j < len(shown[i]) {
				disp = shown[i][j]
			}
			if disp == v {
				continue
			}
			row[j] = c.value(i, j, v, disp)
		}
	}
	return raw, nil
}

type numFmtClass int

const (
	fmtNumber numFmtClass = iota
	fmtDate
	fmtTime
)

type cellReader struct {
	f      *excelize.File
	sheet  string
	styles map[int]numFmtClass
	date04 *bool
}

// value reconciles a cell whose stored and displayed text differ.
func (c *cellReader) value(row, col int, raw, shown string) string {
	// booleans are stored as 1/0
	if (raw == "1" && shown == "TRUE") || (raw == "0" && shown == "FALSE") {
		return shown
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	switch c.class(row, col) {
	case fmtDate:
		t, err := excelize.ExcelDateToTime(serial, c.use1904())
		if err != nil {
			return shown
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format(DateTimeLayout)
	case fmtTime:
		t, err := excelize.ExcelDateToTime(serial, c.use1904())
		if err != nil {
			return shown
		}
		return t.Format(timeOnlyLayout)
	}
	return raw
}

func (c *cellReader) class(row, col int) numFmtClass {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return fmtNumber
	}
	idx, err := c.f.GetCellStyle(c.sheet, name)
	if err != nil {
		return fmtNumber
	}
	if k, ok := c.styles[idx]; ok {
		return k
	}
	k := fmtNumber
	if st, err := c.f.GetStyle(idx); err == nil && st != nil {
		code := ""
		if st.CustomNumFmt != nil {
			code = *st.CustomNumFmt
		}
		k = classifyNumFmt(st.NumFmt, code)
	}
	c.styles[idx] = k
	return k
}

func (c *cellReader) use1904() bool {
	if c.date04 == nil {
		v := false
		if p, err := c.f.GetWorkbookProps(); err == nil && p.Date1904 != nil {
			v = *p.Date1904
		}
		c.date04 = &v
	}
	return *c.date04
}

// classifyNumFmt maps a built-in number format id or a custom format code to
// its value class. Built-ins 14-17 and 22 are dates, 18-21 and 45-47 times.
func classifyNumFmt(id int, code string) numFmtClass {
	if code == "" {
		switch {
		case id >= 14 && id <= 17, id == 22:
			return fmtDate
		case id >= 18 && id <= 21, id >= 45 && id <= 47:
			return fmtTime
		}
		return fmtNumber
	}
	// drop quoted literals, escapes and [..] sections such as colours or locales
	var b strings.Builder
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case quoted:
			quoted = ch != '"'
		case bracket:
			bracket = ch != ']'
		case ch == '"':
			quoted = true
		case ch == '[':
			bracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			b.WriteByte(ch)
		}
	}
	s := strings.ToLower(b.String())
	switch {
	case strings.ContainsAny(s, "yd"):
		return fmtDate
	case strings.ContainsAny(s, "hs"):
		return fmtTime
	case strings.Contains(s, "m"):
		return fmtDate
	}
	return fmtNumber
}
