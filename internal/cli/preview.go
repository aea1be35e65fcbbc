// internal/cli/preview.go
package agon

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/benchmark"
	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/report"
	"github.com/mwiater/benchchart/internal/tui"
	"github.com/spf13/cobra"
)

// startBrowser opens the interactive data set browser.
var startBrowser = tui.Run

var previewInteractive bool

// previewCmd shows the data set a render would chart without writing a file.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the data table built from benchmark results",
	Long: `Build the same data table that 'render' would chart and print it as a
styled table, or browse it interactively together with the generated document.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		return runPreview(cmd, *cfg, previewInteractive)
	},
}

func runPreview(cmd *cobra.Command, cfg appconfig.Config, interactive bool) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return errors.New("input benchmark file is required (pass --input)")
	}
	results, err := benchmark.Load(cfg.Input)
	if err != nil {
		return err
	}
	query, err := cfg.Query()
	if err != nil {
		return err
	}
	ds, err := query.Build(results.Benchmarks)
	if err != nil {
		return fmt.Errorf("unable to build data set from %s: %w", cfg.Input, err)
	}
	logging.LogRender("preview", map[string]any{
		"input":       cfg.Input,
		"rows":        ds.Rows(),
		"series":      ds.Cols() - 1,
		"interactive": interactive,
	})

	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), query)
		if err := dataset.Write(cmd.ErrOrStderr(), ds); err != nil {
			return err
		}
	}

	if !interactive {
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable(ds))
		return nil
	}

	var source bytes.Buffer
	r, err := report.FromResults(cfg, results)
	if err != nil {
		return err
	}
	if err := r.WriteHTML(&source); err != nil {
		return err
	}
	return startBrowser(cfg.Input, ds, source.String())
}

func init() {
	previewCmd.Flags().BoolVar(&previewInteractive, "interactive", false, "browse the table and generated document in a terminal UI")
	rootCmd.AddCommand(previewCmd)
}
