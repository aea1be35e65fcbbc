// internal/tui/table.go
// Package tui renders data sets in the terminal, either as a static styled
// table or as an interactive browser.
package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/util"
	"github.com/mwiater/benchchart/internal/value"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	nullStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
)

// nullText is shown for cells without a value.
const nullText = "-"

// clip shortens s so that it fits in maxColWidth runes, ellipsis included.
func clip(s string) string {
	return util.TruncateRunes(s, maxColWidth-1)
}

// headers returns the clipped series names of ds.
func headers(ds *dataset.DataSet) []string {
	names := ds.Series()
	for i, name := range names {
		names[i] = clip(name)
	}
	return names
}

// cells returns the clipped display text of every row in ds.
func cells(ds *dataset.DataSet) [][]string {
	rows := make([][]string, 0, ds.Rows())
	for _, row := range ds.RowsSeq() {
		line := make([]string, 0, row.Len())
		for _, v := range row.Values() {
			if v.IsNull() || (v.IsNumeric() && v.String() == value.NullMarker) {
				line = append(line, nullText)
				continue
			}
			line = append(line, clip(v.Text()))
		}
		rows = append(rows, line)
	}
	return rows
}

// RenderTable draws ds as a bordered table with the series names as headers.
func RenderTable(ds *dataset.DataSet) string {
	rows := cells(ds)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers(headers(ds)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && col < len(rows[row]) && rows[row][col] == nullText:
				return nullStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}
