package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/dom"
)

// WriteDataTable writes the arrayToDataTable call for p: a header row of
// quoted series names followed by one array literal per data row.
func WriteDataTable(w io.Writer, f dom.Format, level int, p dataset.Provider) error {
	ind := f.Indent(level)
	rowInd := f.Indent(level + 1)

	var b strings.Builder
	b.WriteString(ind + "var data = google.visualization.arrayToDataTable([\n")
	b.WriteString(rowInd + "[")
	for i, name := range p.Series() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("'" + name + "'")
	}
	b.WriteString("]")

	for i := range p.Rows() {
		row, err := p.Row(i)
		if err != nil {
			return fmt.Errorf("data table row %d: %w", i, err)
		}
		b.WriteString(",\n" + rowInd + dataset.FormatRow(row))
	}
	b.WriteString("\n" + ind + "]);\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// formatAxis renders an axis as an object literal, omitting unset fields.
func formatAxis(a Axis) string {
	var parts []string
	if a.Title != "" {
		parts = append(parts, "title: '"+a.Title+"'")
	}
	if !a.Min.IsNull() {
		parts = append(parts, "minValue: "+a.Min.String())
	}
	if !a.Max.IsNull() {
		parts = append(parts, "maxValue: "+a.Max.String())
	}
	if len(parts) == 0 {
		return "{ }"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// WriteOptions writes the options object literal.
func WriteOptions(w io.Writer, f dom.Format, level int, opt Options) error {
	ind := f.Indent(level)
	optInd := f.Indent(level + 1)

	var b strings.Builder
	line := func(s string) { b.WriteString(optInd + s + ",\n") }

	b.WriteString(ind + "var options = {\n")
	line("hAxis: " + formatAxis(opt.HorizontalAxis))
	line("vAxis: " + formatAxis(opt.VerticalAxis))
	if opt.Title != "" {
		line("title: '" + opt.Title + "'")
	}
	line("legend: { position: '" + opt.Legend.String() + "' }")
	if len(opt.Colors) > 0 {
		colors := make([]string, 0, len(opt.Colors))
		for _, c := range opt.Colors {
			colors = append(colors, "'"+c.String()+"'")
		}
		line("colors: [ " + strings.Join(colors, ", ") + " ]")
	}
	if opt.CurveType != CurveNone {
		line("curveType: '" + opt.CurveType.String() + "'")
	}
	if opt.FontName != "" {
		line("fontName: '" + opt.FontName + "'")
	}
	if opt.DataOpacity != 1 {
		line("dataOpacity: " + formatFloat(opt.DataOpacity))
	}
	if opt.InterpolateNulls {
		line("interpolateNulls: true")
	}
	if opt.PointSize != 0 {
		line("pointSize: " + formatFloat(opt.PointSize))
	}
	b.WriteString(ind + "};\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteScript writes the complete chart script: loader bootstrap, a
// drawChart function holding the data table and options, and the draw call
// targeting div.
func WriteScript(w io.Writer, f dom.Format, level int, c *Chart, p dataset.Provider, div string) error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOption, c.Type)
	}
	ind := f.Indent(level)
	body := f.Indent(level + 1)

	head := ind + "google.charts.load('current', {'packages':['corechart']});\n" +
		ind + "google.charts.setOnLoadCallback(drawChart);\n" +
		ind + "function drawChart() {\n"
	if _, err := io.WriteString(w, head); err != nil {
		return err
	}
	if err := WriteDataTable(w, f, level+1, p); err != nil {
		return err
	}
	if err := WriteOptions(w, f, level+1, c.Options); err != nil {
		return err
	}
	tail := body + "var chart = new google.visualization." + c.Type.String() +
		"(document.getElementById('" + div + "'));\n" +
		body + "chart.draw(data, options);\n" +
		ind + "}"
	_, err := io.WriteString(w, tail)
	return err
}
