package dataset

import (
	"io"
	"strings"
)

// FormatRow renders a row as an array literal, e.g. [1,'a','null'].
func FormatRow(r Row) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range r.Values() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Write dumps ds as a header line of column names followed by one line per
// row, comma separated.
func Write(w io.Writer, ds *DataSet) error {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Join(ds.Series(), ", "))
	b.WriteString("]\n")
	for _, row := range ds.RowsSeq() {
		b.WriteByte('[')
		for i, v := range row.Values() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteString("]\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
