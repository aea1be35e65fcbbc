// internal/cli/render.go
package agon

import (
	"errors"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/dom"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/report"
	"github.com/spf13/cobra"
)

// renderCmd turns a benchmark results file into a self-contained chart page.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render benchmark results as a Google Charts HTML page",
	Long: `Read Google Benchmark JSON output, group the benchmarks into series using
the selectors and filter, and write an HTML document that draws them with
Google Charts.`,
	Example: `  benchchart render -i results.json -o charts/set_insert.html -t line -s name/1,cpu_time -l right
  benchchart render -i results.json -o bar.html -t bar -T "Window functions"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		return runRender(cmd, *cfg)
	},
}

func runRender(cmd *cobra.Command, cfg appconfig.Config) error {
	r, err := report.Build(cfg)
	if err != nil {
		return err
	}
	logging.LogRender("load", map[string]any{
		"input":     cfg.Input,
		"records":   len(r.Results.Benchmarks),
		"selectors": cfg.Selectors,
		"filter":    cfg.Filter,
	})

	if cfg.Debug {
		errOut := cmd.ErrOrStderr()
		pp.Fprintln(errOut, cfg)
		if err := dataset.Write(errOut, r.Data); err != nil {
			return err
		}
	}

	if err := r.WriteFile(); err != nil {
		return err
	}
	logging.LogRender("write", map[string]any{
		"output": r.Output,
		"type":   r.Chart.Type,
		"div":    r.DOM.Div,
		"series": r.Data.Cols() - 1,
		"rows":   r.Data.Rows(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "%s Chart written to %s\n", successMark("✔"), r.Output)
	return nil
}

func init() {
	def := appconfig.Default()
	flags := renderCmd.Flags()
	flags.StringP("output", "o", "", "output HTML file")
	flags.StringP("type", "t", def.Type, "chart type: histogram, scatter, line or bar")
	flags.StringP("legend", "l", def.Legend, "legend position: none, left, right, top or bottom")
	flags.StringP("title", "T", "", "chart title")
	flags.StringP("xTitle", "x", "", "horizontal axis title")
	flags.StringP("yTitle", "y", "", "vertical axis title")
	flags.Float64("xMin", 0, "horizontal axis minimum")
	flags.Float64("xMax", 0, "horizontal axis maximum")
	flags.Float64("yMin", 0, "vertical axis minimum")
	flags.Float64("yMax", 0, "vertical axis maximum")
	flags.IntP("width", "w", chart.DefaultWidth, "chart width in pixels")
	flags.IntP("height", "H", chart.DefaultHeight, "chart height in pixels")
	flags.String("div", "", "chart element id (default: <output name>_div)")
	flags.Int("indent", dom.DefaultIndentation, "spaces per indentation level")
	flags.Bool("stripComments", false, "omit comments from the document")
	flags.Bool("timestamp", false, "add a generation timestamp meta element")
	flags.String("fontName", "", "chart font family")
	flags.String("curve", "", "line curve type: none or function")
	flags.Float32("pointSize", 0, "data point size")
	flags.Float32("dataOpacity", def.DataOpacity, "data opacity within [0, 1]")
	flags.Bool("interpolateNulls", false, "draw lines across missing values")
	flags.StringSlice("colors", nil, "series colors as #rrggbb")

	rootCmd.AddCommand(renderCmd)
}
