package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/benchmark"
)

const fixture = `{
  "context": {"executable": "C:\bench\set.exe"},
  "benchmarks": [
    {"name": "BM_SetInsert/1024/1", "cpu_time": 10, "real_time": 11},
    {"name": "BM_SetInsert/2048/1", "cpu_time": 20, "real_time": 21},
    {"name": "BM_SetInsert/1024/8", "cpu_time": 30, "real_time": 31}
  ]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set_insert.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func baseConfig(t *testing.T) appconfig.Config {
	t.Helper()
	cfg := appconfig.Default()
	cfg.Input = writeFixture(t)
	cfg.Output = filepath.Join(t.TempDir(), "reports", "set_insert.html")
	return cfg
}

func TestBuildAndWriteFile(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Selectors = []string{"name/1", "cpu_time"}
	cfg.Title = "Set insert"

	r, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if r.DOM.Div != "set_insert_div" {
		t.Fatalf("expected div derived from output, got %s", r.DOM.Div)
	}
	if r.Data.Cols() != 3 || r.Data.Rows() != 2 {
		t.Fatalf("expected 3x2 data set, got %dx%d", r.Data.Cols(), r.Data.Rows())
	}
	if r.Chart.Options.HorizontalAxis.Title != "Name" || r.Chart.Options.VerticalAxis.Title != "CPU time" {
		t.Fatalf("unexpected default axis titles %+v %+v", r.Chart.Options.HorizontalAxis, r.Chart.Options.VerticalAxis)
	}

	if err := r.WriteFile(); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"['Key', 'BM_SetInsert/*/1 cpu_time', 'BM_SetInsert/*/8 cpu_time']",
		"[1024,10,30]",
		"[2048,20,'null']",
		"title: 'Set insert',",
		"document.getElementById('set_insert_div')",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestBarChartSwapsAxes(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Type = "bar"
	cfg.XTitle = "Benchmark"
	cfg.YTitle = "Nanoseconds"

	r, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if r.Chart.Options.HorizontalAxis.Title != "Nanoseconds" || r.Chart.Options.VerticalAxis.Title != "Benchmark" {
		t.Fatalf("expected swapped axes, got %+v %+v", r.Chart.Options.HorizontalAxis, r.Chart.Options.VerticalAxis)
	}
	var buf bytes.Buffer
	if err := r.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML error: %v", err)
	}
	if !strings.Contains(buf.String(), "google.visualization.BarChart") {
		t.Fatalf("expected bar chart, got:\n%s", buf.String())
	}
}

func TestExplicitDivAndMultipleValues(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Div = "my_div"
	r, err := FromResults(cfg, &benchmark.Results{Benchmarks: []benchmark.Record{
		{"name": "BM_A", "cpu_time": 1.0, "real_time": 2.0},
	}})
	if err != nil {
		t.Fatalf("FromResults error: %v", err)
	}
	if r.DOM.Div != "my_div" {
		t.Fatalf("expected explicit div, got %s", r.DOM.Div)
	}
	if r.Chart.Options.VerticalAxis.Title != "" {
		t.Fatalf("expected no default value axis title with two value selectors, got %q", r.Chart.Options.VerticalAxis.Title)
	}
}

func TestBuildErrors(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Input = ""
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected validation error")
	}

	cfg = baseConfig(t)
	cfg.Input = filepath.Join(t.TempDir(), "missing.json")
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected load error")
	}

	cfg = baseConfig(t)
	cfg.Selectors = []string{"name", "bytes_per_second"}
	if _, err := Build(cfg); err == nil {
		t.Fatal("expected missing key error")
	}
}
