// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/benchchart/internal/benchmark"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/dom"
	"github.com/mwiater/benchchart/internal/value"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/benchchart.json"
	// defaultLogFile is used when debug logging is enabled without a log path.
	defaultLogFile = "benchchart.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Input            string   `json:"input" mapstructure:"input" yaml:"input"`
	Output           string   `json:"output" mapstructure:"output" yaml:"output"`
	Type             string   `json:"type" mapstructure:"type" yaml:"type"`
	Legend           string   `json:"legend" mapstructure:"legend" yaml:"legend"`
	Title            string   `json:"title,omitempty" mapstructure:"title" yaml:"title,omitempty"`
	XTitle           string   `json:"xTitle,omitempty" mapstructure:"xTitle" yaml:"xTitle,omitempty"`
	YTitle           string   `json:"yTitle,omitempty" mapstructure:"yTitle" yaml:"yTitle,omitempty"`
	XMin             *float64 `json:"xMin,omitempty" mapstructure:"xMin" yaml:"xMin,omitempty"`
	XMax             *float64 `json:"xMax,omitempty" mapstructure:"xMax" yaml:"xMax,omitempty"`
	YMin             *float64 `json:"yMin,omitempty" mapstructure:"yMin" yaml:"yMin,omitempty"`
	YMax             *float64 `json:"yMax,omitempty" mapstructure:"yMax" yaml:"yMax,omitempty"`
	Width            int      `json:"width" mapstructure:"width" yaml:"width"`
	Height           int      `json:"height" mapstructure:"height" yaml:"height"`
	Div              string   `json:"div,omitempty" mapstructure:"div" yaml:"div,omitempty"`
	Filter           string   `json:"filter,omitempty" mapstructure:"filter" yaml:"filter,omitempty"`
	Selectors        []string `json:"selectors" mapstructure:"selectors" yaml:"selectors"`
	SortKeys         bool     `json:"sortKeys" mapstructure:"sortKeys" yaml:"sortKeys"`
	Indent           int      `json:"indent" mapstructure:"indent" yaml:"indent"`
	StripComments    bool     `json:"stripComments" mapstructure:"stripComments" yaml:"stripComments"`
	Timestamp        bool     `json:"timestamp" mapstructure:"timestamp" yaml:"timestamp"`
	FontName         string   `json:"fontName,omitempty" mapstructure:"fontName" yaml:"fontName,omitempty"`
	Curve            string   `json:"curve,omitempty" mapstructure:"curve" yaml:"curve,omitempty"`
	PointSize        float32  `json:"pointSize,omitempty" mapstructure:"pointSize" yaml:"pointSize,omitempty"`
	DataOpacity      float32  `json:"dataOpacity" mapstructure:"dataOpacity" yaml:"dataOpacity"`
	InterpolateNulls bool     `json:"interpolateNulls" mapstructure:"interpolateNulls" yaml:"interpolateNulls"`
	Colors           []string `json:"colors,omitempty" mapstructure:"colors" yaml:"colors,omitempty"`
	LogFile          string   `json:"logFile,omitempty" mapstructure:"logFile" yaml:"logFile,omitempty"`
	Debug            bool     `json:"debug" mapstructure:"debug" yaml:"debug"`
	ConfigPath       string   `json:"-" mapstructure:"-" yaml:"-"`
}

// Default returns the configuration used when neither a file nor flags
// override a setting.
func Default() Config {
	return Config{
		Type:        chart.Line.Keyword(),
		Legend:      chart.PositionNone.String(),
		Width:       chart.DefaultWidth,
		Height:      chart.DefaultHeight,
		Selectors:   []string{"name", "cpu_time", "real_time"},
		Indent:      dom.DefaultIndentation,
		DataOpacity: 1,
	}
}

// LogFilePath returns the path to the application log file. Debug runs
// fall back to benchchart.log; otherwise no file is written unless set.
func (c Config) LogFilePath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	if c.Debug {
		return defaultLogFile
	}
	return ""
}

// IndentWidth returns the indentation per level, never negative.
func (c Config) IndentWidth() int {
	if c.Indent < 0 {
		return 0
	}
	return c.Indent
}

// ChartType parses the configured chart type.
func (c Config) ChartType() (chart.Visualization, error) {
	return chart.ParseVisualization(c.Type)
}

// LegendPosition parses the configured legend position; empty means none.
func (c Config) LegendPosition() (chart.Position, error) {
	if strings.TrimSpace(c.Legend) == "" {
		return chart.PositionNone, nil
	}
	return chart.ParsePosition(c.Legend)
}

// ParsedSelectors returns the configured selectors, or the defaults when
// none are set.
func (c Config) ParsedSelectors() ([]benchmark.Selector, error) {
	if len(c.Selectors) == 0 {
		return benchmark.DefaultSelectors(), nil
	}
	return benchmark.ParseSelectors(c.Selectors)
}

// Query returns the ingestion query described by the configuration.
func (c Config) Query() (benchmark.Query, error) {
	selectors, err := c.ParsedSelectors()
	if err != nil {
		return benchmark.Query{}, err
	}
	return benchmark.Query{Selectors: selectors, Filter: c.Filter, SortKeys: c.SortKeys}, nil
}

func bound(p *float64) value.Value {
	if p == nil {
		return value.Null()
	}
	return value.Float64(*p)
}

// ChartOptions converts the drawing settings into chart options.
func (c Config) ChartOptions() (chart.Options, error) {
	opt := chart.DefaultOptions()
	legend, err := c.LegendPosition()
	if err != nil {
		return opt, err
	}
	curve, err := chart.ParseCurve(c.Curve)
	if err != nil {
		return opt, err
	}
	for _, raw := range c.Colors {
		col, err := chart.ParseColor(raw)
		if err != nil {
			return opt, err
		}
		opt.Colors = append(opt.Colors, col)
	}
	opt.Title = c.Title
	opt.FontName = c.FontName
	opt.Legend = legend
	opt.CurveType = curve
	opt.DataOpacity = c.DataOpacity
	opt.PointSize = c.PointSize
	opt.InterpolateNulls = c.InterpolateNulls
	opt.HorizontalAxis = chart.Axis{Title: c.XTitle, Min: bound(c.XMin), Max: bound(c.XMax)}
	opt.VerticalAxis = chart.Axis{Title: c.YTitle, Min: bound(c.YMin), Max: bound(c.YMax)}
	return opt, nil
}

// DOMOptions returns the document settings. An empty div is left for the
// caller to derive from the output path.
func (c Config) DOMOptions() chart.DOMOptions {
	return chart.DOMOptions{
		Width:                c.Width,
		Height:               c.Height,
		Div:                  c.Div,
		IncludeMetaTimestamp: c.Timestamp,
	}
}

// Format returns the document writer settings.
func (c Config) Format() dom.Format {
	return dom.Format{Indentation: c.IndentWidth(), StripComments: c.StripComments}
}

// Validate reports every setting that would prevent a chart from being
// rendered.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Input) == "" {
		problems = append(problems, "input file is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		problems = append(problems, "output file is required")
	}
	if _, err := c.ChartType(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Width <= 0 || c.Height <= 0 {
		problems = append(problems, fmt.Sprintf("chart size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.DataOpacity < 0 || c.DataOpacity > 1 {
		problems = append(problems, fmt.Sprintf("dataOpacity must be within [0, 1], got %v", c.DataOpacity))
	}
	if _, err := c.ChartOptions(); err != nil {
		problems = append(problems, err.Error())
	}
	selectors, err := c.ParsedSelectors()
	if err != nil {
		problems = append(problems, err.Error())
	} else if len(selectors) < 2 {
		problems = append(problems, "at least a key and one value selector are required")
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
