// internal/benchmark/parse.go
// Package benchmark turns Google Benchmark JSON output into chartable data
// sets.
package benchmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoBenchmarks is returned when the input has no benchmarks array.
	ErrNoBenchmarks = errors.New("no 'benchmarks' element in benchmark results")
	// ErrMissingKey is returned when a selector key is absent from a record.
	ErrMissingKey = errors.New("benchmark has no such key")
)

// Record is one entry of the benchmarks array, decoded as generic JSON.
type Record map[string]any

// Name returns the record's name field, or "" when it is absent or not a string.
func (r Record) Name() string {
	name, _ := r["name"].(string)
	return name
}

// Results is a decoded benchmark run.
type Results struct {
	Context    map[string]any `json:"context"`
	Benchmarks []Record       `json:"benchmarks"`
}

// Load reads and parses the benchmark results file at path.
func Load(path string) (*Results, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read benchmark results %s: %w", path, err)
	}
	res, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Parse decodes raw benchmark JSON. Google Benchmark writes Windows paths
// with unescaped backslashes, so every backslash is turned into a forward
// slash before decoding.
func Parse(raw []byte) (*Results, error) {
	cleaned := bytes.ReplaceAll(raw, []byte{'\\'}, []byte{'/'})

	var doc struct {
		Context    map[string]any   `json:"context"`
		Benchmarks *json.RawMessage `json:"benchmarks"`
	}
	if err := json.Unmarshal(cleaned, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode benchmark results: %w", err)
	}
	if doc.Benchmarks == nil {
		return nil, ErrNoBenchmarks
	}

	res := &Results{Context: doc.Context}
	if err := json.Unmarshal(*doc.Benchmarks, &res.Benchmarks); err != nil {
		return nil, fmt.Errorf("unable to decode benchmarks array: %w", err)
	}
	return res, nil
}
