// internal/chart/options.go
package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/benchchart/internal/value"
)

// ErrInvalidOption is returned when an option keyword is not recognised.
var ErrInvalidOption = errors.New("invalid chart option")

// Visualization selects the Google Charts class used to draw the data.
type Visualization int

const (
	Histogram Visualization = iota
	Scatter
	Line
	Bar
)

var visualizationNames = map[Visualization][2]string{
	Histogram: {"histogram", "Histogram"},
	Scatter:   {"scatter", "ScatterChart"},
	Line:      {"line", "LineChart"},
	Bar:       {"bar", "BarChart"},
}

// ParseVisualization maps histogram, scatter, line or bar to a Visualization.
func ParseVisualization(s string) (Visualization, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for v, names := range visualizationNames {
		if names[0] == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: chart type %q (want histogram, scatter, line or bar)", ErrInvalidOption, s)
}

// Valid reports whether v is a known visualization.
func (v Visualization) Valid() bool {
	_, ok := visualizationNames[v]
	return ok
}

// Keyword returns the command-line name of v.
func (v Visualization) Keyword() string {
	if names, ok := visualizationNames[v]; ok {
		return names[0]
	}
	return fmt.Sprintf("Visualization(%d)", int(v))
}

// String returns the Google Charts class name of v.
func (v Visualization) String() string {
	if names, ok := visualizationNames[v]; ok {
		return names[1]
	}
	return fmt.Sprintf("Visualization(%d)", int(v))
}

// Position is a legend position.
type Position int

const (
	PositionNone Position = iota
	PositionLeft
	PositionRight
	PositionTop
	PositionBottom
)

var positionNames = []string{"none", "left", "right", "top", "bottom"}

// ParsePosition maps a legend keyword to a Position.
func ParsePosition(s string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range positionNames {
		if name == key {
			return Position(i), nil
		}
	}
	return PositionNone, fmt.Errorf("%w: legend position %q (want %s)", ErrInvalidOption, s, strings.Join(positionNames, ", "))
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return "none"
	}
	return positionNames[p]
}

// Curve selects line smoothing.
type Curve int

const (
	CurveNone Curve = iota
	CurveFunction
)

// ParseCurve maps none or function to a Curve.
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CurveNone, nil
	case "function":
		return CurveFunction, nil
	}
	return CurveNone, fmt.Errorf("%w: curve type %q (want none or function)", ErrInvalidOption, s)
}

func (c Curve) String() string {
	if c == CurveFunction {
		return "function"
	}
	return "none"
}

// Color is an RGB series color.
type Color struct {
	R, G, B uint8
}

// ParseColor reads #rrggbb or rrggbb.
func ParseColor(s string) (Color, error) {
	var c Color
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("%w: color %q (want #rrggbb)", ErrInvalidOption, s)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("%w: color %q: %v", ErrInvalidOption, s, err)
	}
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Axis describes one chart axis. Null bounds are omitted from the output.
type Axis struct {
	Title string
	Min   value.Value
	Max   value.Value
}

// Options are the Google Charts draw options.
type Options struct {
	Title            string
	FontName         string
	Legend           Position
	CurveType        Curve
	Colors           []Color
	DataOpacity      float32
	PointSize        float32
	InterpolateNulls bool
	HorizontalAxis   Axis
	VerticalAxis     Axis
}

// DefaultOptions returns options with full data opacity and no legend.
func DefaultOptions() Options {
	return Options{DataOpacity: 1}
}

const (
	DefaultWidth  = 900
	DefaultHeight = 500
	DefaultDiv    = "chart_div"
)

// DOMOptions control the generated document around the chart script.
type DOMOptions struct {
	Width                int
	Height               int
	Div                  string
	IncludeMetaTimestamp bool
}

// DefaultDOMOptions returns a 900x500 chart drawn into chart_div.
func DefaultDOMOptions() DOMOptions {
	return DOMOptions{Width: DefaultWidth, Height: DefaultHeight, Div: DefaultDiv}
}
