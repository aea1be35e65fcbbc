// internal/report/report.go
// Package report turns a configuration into a chart document: it loads the
// benchmark results, builds the data set and resolves the chart settings.
package report

import (
	"fmt"
	"io"

	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/benchmark"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/dom"
)

// Report is a fully resolved chart ready to be written.
type Report struct {
	Output  string
	Chart   *chart.Chart
	Data    *dataset.DataSet
	DOM     chart.DOMOptions
	Format  dom.Format
	Results *benchmark.Results
}

// Build loads cfg.Input and prepares the chart described by cfg.
func Build(cfg appconfig.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results, err := benchmark.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	return FromResults(cfg, results)
}

// FromResults prepares the chart described by cfg for already decoded results.
func FromResults(cfg appconfig.Config, results *benchmark.Results) (*Report, error) {
	kind, err := cfg.ChartType()
	if err != nil {
		return nil, err
	}
	opt, err := cfg.ChartOptions()
	if err != nil {
		return nil, err
	}
	query, err := cfg.Query()
	if err != nil {
		return nil, err
	}
	data, err := query.Build(results.Benchmarks)
	if err != nil {
		return nil, fmt.Errorf("unable to build data set from %s: %w", cfg.Input, err)
	}

	defaultAxisTitles(&opt, query.Selectors)
	// Bar charts draw keys on the vertical axis.
	if kind == chart.Bar {
		opt.HorizontalAxis, opt.VerticalAxis = opt.VerticalAxis, opt.HorizontalAxis
	}

	domOpts := cfg.DOMOptions()
	if domOpts.Div == "" {
		domOpts.Div = chart.DefaultDiv
		if cfg.Output != "" {
			domOpts.Div = benchmark.ChartDiv(cfg.Output)
		}
	}

	c := chart.New(kind)
	c.Options = opt
	return &Report{
		Output:  cfg.Output,
		Chart:   c,
		Data:    data,
		DOM:     domOpts,
		Format:  cfg.Format(),
		Results: results,
	}, nil
}

// defaultAxisTitles names the key axis after the key selector and the value
// axis after the value selector when there is exactly one.
func defaultAxisTitles(opt *chart.Options, selectors []benchmark.Selector) {
	if opt.HorizontalAxis.Title == "" && len(selectors) > 0 {
		opt.HorizontalAxis.Title = benchmark.TitleCase(selectors[0].Key())
	}
	if opt.VerticalAxis.Title == "" && len(selectors) == 2 {
		opt.VerticalAxis.Title = benchmark.TitleCase(selectors[1].Key())
	}
}

// WriteHTML writes the chart document to w.
func (r *Report) WriteHTML(w io.Writer) error {
	return r.Chart.WriteHTML(w, r.Data, r.DOM, r.Format)
}

// WriteFile writes the chart document to the configured output path.
func (r *Report) WriteFile() error {
	return r.Chart.WriteHTMLFile(r.Output, r.Data, r.DOM, r.Format)
}
