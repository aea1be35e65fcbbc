// Package logging routes the standard logger to an optional console writer
// and an append-only log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init directs log output to console, when non-nil, and to logPath, when
// set. With neither, log output is discarded.
func Init(logPath string, console io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores output to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent logs one formatted line.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogRender records one render step as "[STEP] key=value ..." with keys
// sorted.
func LogRender(step string, fields map[string]any) {
	log.Println(buildRenderMessage(step, fields))
}

func buildRenderMessage(step string, fields map[string]any) string {
	name := strings.ToUpper(strings.TrimSpace(step))
	if name == "" {
		name = "RENDER"
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{fmt.Sprintf("[%s]", name)}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatField(fields[k])))
	}
	return strings.Join(parts, " ")
}

func formatField(v any) string {
	switch f := v.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(f) == "" {
			return `""`
		}
		if strings.ContainsAny(f, " \t") {
			return fmt.Sprintf("%q", f)
		}
		return f
	case []string:
		return "[" + strings.Join(f, ",") + "]"
	case fmt.Stringer:
		return f.String()
	default:
		return fmt.Sprintf("%v", f)
	}
}
