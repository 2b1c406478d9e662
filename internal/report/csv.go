package report

import (
	"fmt"
	"strings"
	"time"
)

// UTF8BOM is prepended to every exported report so spreadsheet consumers
// detect the encoding correctly.
const UTF8BOM = "\ufeff"

// ToCSV serializes headers and rows into CRLF-joined CSV text. Quoting is
// mechanical: a cell is double-quoted, with inner quotes doubled, exactly when
// it contains a comma, quote or newline. Nil cells render as empty strings.
func ToCSV(headers []string, rows [][]any) string {
	lines := make([]string, 0, len(rows)+1)

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = escapeCell(h)
	}
	lines = append(lines, strings.Join(headerCells, ","))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCell(formatCell(cell))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\r\n")
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
