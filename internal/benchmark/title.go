package benchmark

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mwiater/benchchart/internal/util"
)

// TitleCase turns a record key into an axis title: cpu_time becomes
// "CPU time", underscores become spaces and the first letter is upper-cased.
func TitleCase(key string) string {
	if key == "" {
		return ""
	}
	if key == "cpu_time" {
		return "CPU time"
	}
	s := strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ChartDiv derives the chart element id from an output path: the file name
// up to its first dot, followed by _div.
func ChartDiv(outPath string) string {
	return util.FileStem(outPath) + "_div"
}
