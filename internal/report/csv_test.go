package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToCSVQuoting(t *testing.T) {
	out := ToCSV([]string{"a", "b", "c"}, [][]any{
		{`x"y`, nil, "line\nbreak"},
	})
	lines := strings.Split(out, "\r\n")
	assert.Equal(t, "a,b,c", lines[0])
	assert.Equal(t, "\"x\"\"y\",,\"line\nbreak\"", strings.Join(lines[1:], "\r\n"))
}

func TestToCSVNoTrailingTerminator(t *testing.T) {
	out := ToCSV([]string{"h"}, [][]any{{"v"}})
	assert.False(t, strings.HasSuffix(out, "\r\n"))
	assert.Equal(t, "h\r\nv", out)
}

func TestToCSVHeaderOnly(t *testing.T) {
	out := ToCSV([]string{"code", "title"}, nil)
	assert.Equal(t, "code,title", out)
}

func TestToCSVCommaTriggersQuoting(t *testing.T) {
	out := ToCSV([]string{"h"}, [][]any{{"a,b"}})
	assert.Equal(t, "h\r\n\"a,b\"", out)
}

func TestToCSVPlainCellsNotQuoted(t *testing.T) {
	out := ToCSV([]string{"h"}, [][]any{{"plain text"}})
	assert.Equal(t, "h\r\nplain text", out)
}

func TestToCSVCellFormatting(t *testing.T) {
	when := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	var nilTime *time.Time
	var nilStr *string
	val := "ptr"
	out := ToCSV([]string{"t", "nt", "s", "ns", "n"}, [][]any{
		{when, nilTime, &val, nilStr, 42},
	})
	assert.Equal(t, "t,nt,s,ns,n\r\n2024-03-05T10:00:00Z,,ptr,,42", out)
}

func TestUTF8BOM(t *testing.T) {
	assert.Equal(t, "\xef\xbb\xbf", UTF8BOM)
}
