// internal/cli/cli_test.go
package agon

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const resultsJSON = `{
  "context": {"executable": "C:\bench\set_insert.exe"},
  "benchmarks": [
    {"name": "BM_SetInsert/1024/1", "cpu_time": 10, "real_time": 11},
    {"name": "BM_SetInsert/2048/1", "cpu_time": 20, "real_time": 21},
    {"name": "BM_SetInsert/1024/8", "cpu_time": 30, "real_time": 31}
  ]
}`

// resetFlags restores every flag to its default so that commands can be
// executed repeatedly within one test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var def []string
			if trimmed := strings.Trim(f.DefValue, "[]"); trimmed != "" {
				def = strings.Split(trimmed, ",")
			}
			_ = sv.Replace(def)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	previewInteractive = false
	currentConfig = nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		_ = logging.Close()
	})

	err := run()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)
	output := filepath.Join(dir, "charts", "set_insert.html")

	out, _, err := execute(t, "render", "-i", input, "-o", output, "-s", "name/1,cpu_time", "-T", "Set insert", "-l", "right", "--yMin", "0")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, "Chart written to "+output) {
		t.Fatalf("expected success message, got: %s", out)
	}

	html := readFile(t, output)
	for _, want := range []string{
		"['Key', 'BM_SetInsert/*/1 cpu_time', 'BM_SetInsert/*/8 cpu_time']",
		"[1024,10,30]",
		"hAxis: { title: 'Name' },",
		"vAxis: { title: 'CPU time', minValue: 0 },",
		"title: 'Set insert',",
		"legend: { position: 'right' },",
		"new google.visualization.LineChart(document.getElementById('set_insert_div'))",
		`<div id="set_insert_div" style="width: 900px; height: 500px;"></div>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in document, got:\n%s", want, html)
		}
	}
}

func TestRenderConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)
	output := filepath.Join(dir, "bar.html")
	config := writeFile(t, dir, "benchchart.json", `{
  "input": "`+filepath.ToSlash(input)+`",
  "output": "`+filepath.ToSlash(output)+`",
  "type": "bar",
  "yMin": 0,
  "width": 1200,
  "stripComments": true
}`)

	if _, _, err := execute(t, "render", "-c", config, "--width", "640"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	html := readFile(t, output)
	for _, want := range []string{
		"google.visualization.BarChart",
		"hAxis: { minValue: 0 },",
		"vAxis: { title: 'Name' },",
		"width: 640px; height: 500px;",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in document, got:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<!--") {
		t.Fatalf("expected comments stripped, got:\n%s", html)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)

	if _, _, err := execute(t, "render", "-o", filepath.Join(dir, "out.html")); err == nil || !strings.Contains(err.Error(), "input file is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
	if _, _, err := execute(t, "render", "-i", input, "-o", filepath.Join(dir, "out.html"), "-t", "pie"); err == nil {
		t.Fatal("expected invalid chart type error")
	}
	if _, _, err := execute(t, "render", "-c", filepath.Join(dir, "missing.json"), "-i", input, "-o", "out.html"); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestRenderDebugLogsAndDumps(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)
	logPath := filepath.Join(dir, "logs", "benchchart.log")

	_, errOut, err := execute(t, "render", "-i", input, "-o", filepath.Join(dir, "out.html"), "--debug", "--logFile", logPath)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(errOut, "[Key, cpu_time, real_time]") {
		t.Fatalf("expected data set dump on stderr, got: %s", errOut)
	}
	content := readFile(t, logPath)
	if !strings.Contains(content, "[LOAD]") || !strings.Contains(content, "[WRITE]") {
		t.Fatalf("expected render events in log, got: %s", content)
	}
	if !strings.Contains(content, "No config file loaded (using defaults)") {
		t.Fatalf("expected config source in log, got: %s", content)
	}
}

func TestFailureLogged(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "benchchart.log")
	cfg := writeFile(t, dir, "benchchart.json", `{"type": "line"}`)

	_, _, err := execute(t, "render", "-c", cfg, "--logFile", logPath)
	if err == nil {
		t.Fatal("expected error without input")
	}
	content := readFile(t, logPath)
	if !strings.Contains(content, "Config file: "+cfg) {
		t.Fatalf("expected config file in log, got: %s", content)
	}
	if !strings.Contains(content, "Command failed: invalid configuration") {
		t.Fatalf("expected failure in log, got: %s", content)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)

	out, _, err := execute(t, "preview", "-i", input, "-s", "name/1,cpu_time")
	if err != nil {
		t.Fatalf("preview error: %v", err)
	}
	for _, want := range []string{"Key", "BM_SetInsert/*/8 cpu_time", "2048", "30"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in preview, got:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, "preview"); err == nil {
		t.Fatal("expected error without input")
	}
}

func TestPreviewInteractive(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "results.json", resultsJSON)

	originalStart := startBrowser
	defer func() { startBrowser = originalStart }()

	var gotTitle, gotSource string
	var gotData *dataset.DataSet
	startBrowser = func(title string, ds *dataset.DataSet, source string) error {
		gotTitle, gotData, gotSource = title, ds, source
		return nil
	}

	if _, _, err := execute(t, "preview", "-i", input, "--interactive"); err != nil {
		t.Fatalf("preview error: %v", err)
	}
	if gotTitle != input {
		t.Fatalf("expected browser title %s, got %s", input, gotTitle)
	}
	if gotData == nil || gotData.Rows() != 3 {
		t.Fatalf("expected 3 rows in browser data, got %v", gotData)
	}
	if !strings.Contains(gotSource, "document.getElementById('chart_div')") {
		t.Fatalf("expected generated document for browser, got:\n%s", gotSource)
	}

	boom := errors.New("no terminal")
	startBrowser = func(string, *dataset.DataSet, string) error { return boom }
	if _, _, err := execute(t, "preview", "-i", input, "--interactive"); !errors.Is(err, boom) {
		t.Fatalf("expected browser error, got %v", err)
	}
}

func TestShowConfigCommand(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "benchchart.json", `{"input": "results.json", "legend": "top"}`)

	out, _, err := execute(t, "show", "config", "-c", config, "-s", "name/2,items_per_second")
	if err != nil {
		t.Fatalf("show config error: %v", err)
	}
	for _, want := range []string{"Config file: " + config, "input: results.json", "legend: top", "type: line", "- name/2", "- items_per_second"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "show", "config")
	if err != nil {
		t.Fatalf("show config error: %v", err)
	}
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected defaults notice, got:\n%s", out)
	}
}

func TestListCommands(t *testing.T) {
	out, _, err := execute(t, "list", "commands")
	if err != nil {
		t.Fatalf("list commands error: %v", err)
	}
	for _, want := range []string{"benchchart", "  benchchart render", "  benchchart preview", "    benchchart show config"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("invalid configuration: input file is required"))
	if !strings.Contains(buf.String(), "Error:") || !strings.Contains(buf.String(), "input file is required") {
		t.Fatalf("unexpected error output %q", buf.String())
	}
}
