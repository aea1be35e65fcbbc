package benchmark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/benchchart/internal/value"
)

const namePrefix = "BM_"

// Selector extracts one value from a benchmark record. A plain selector
// names a record key. A parameterized selector, written key/<index>, picks
// the index-th '/'-separated part of a string field and reads it as a number.
type Selector struct {
	key           string
	index         int
	parameterized bool
}

// ParseSelector parses key or key/<index>.
func ParseSelector(s string) (Selector, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Selector{key: s}, nil
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 {
		return Selector{}, fmt.Errorf("invalid selector %q: parameter index must be a non-negative integer", s)
	}
	return Selector{key: parts[0], index: idx, parameterized: true}, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// ParseSelectors parses each element of raw.
func ParseSelectors(raw []string) ([]Selector, error) {
	out := make([]Selector, 0, len(raw))
	for _, s := range raw {
		sel, err := ParseSelector(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// DefaultSelectors returns name as key with cpu_time and real_time as values.
func DefaultSelectors() []Selector {
	return []Selector{{key: "name"}, {key: "cpu_time"}, {key: "real_time"}}
}

// Key returns the record field the selector reads.
func (s Selector) Key() string { return s.key }

// IsParameterized reports whether the selector reads one '/'-separated part
// of a string field.
func (s Selector) IsParameterized() bool { return s.parameterized }

// ParamIndex returns the parameter index, or -1 for a plain selector.
func (s Selector) ParamIndex() int {
	if !s.parameterized {
		return -1
	}
	return s.index
}

// String returns the selector in key or key/<index> form.
func (s Selector) String() string {
	if s.parameterized {
		return s.key + "/" + strconv.Itoa(s.index)
	}
	return s.key
}

// Select returns the selected value of r. Strings lose their BM_ prefix and
// numbers become float64.
func (s Selector) Select(r Record) (value.Value, error) {
	node, ok := r[s.key]
	if !ok {
		return value.Null(), fmt.Errorf("%w: %q", ErrMissingKey, s.key)
	}
	switch v := node.(type) {
	case string:
		if s.parameterized {
			parts := strings.Split(v, "/")
			if s.index >= len(parts) {
				return value.Null(), fmt.Errorf("selector %s: %q has no parameter %d", s, v, s.index)
			}
			f, err := strconv.ParseFloat(parts[s.index], 64)
			if err != nil {
				return value.Null(), fmt.Errorf("selector %s: parameter %q is not a number: %w", s, parts[s.index], err)
			}
			return value.Float64(f), nil
		}
		return value.String(strings.TrimPrefix(v, namePrefix)), nil
	case float64:
		return value.Float64(v), nil
	default:
		return value.Null(), fmt.Errorf("selector %s: %w: %T", s, value.ErrUnsupported, node)
	}
}
