package benchmark

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mwiater/benchchart/internal/dataset"
	"github.com/mwiater/benchchart/internal/util"
	"github.com/mwiater/benchchart/internal/value"
)

// KeyColumn is the name of the first data set column.
const KeyColumn = "Key"

// Query describes how records become a data set. The first selector
// provides the key column; each further selector adds one column per series.
type Query struct {
	Selectors []Selector
	// Filter is a '/'-separated name pattern where * matches any segment.
	Filter string
	// SortKeys orders rows by key instead of first appearance.
	SortKeys bool
}

// Series is a group of records sharing a name once the parameterized
// segments are replaced by *.
type Series struct {
	Name    string
	Records []Record
}

func (q Query) selectors() []Selector {
	if len(q.Selectors) == 0 {
		return DefaultSelectors()
	}
	return q.Selectors
}

// Match reports whether name satisfies filter. Segments are compared
// pairwise up to the shorter of the two.
func Match(filter, name string) bool {
	want := util.SplitNonEmpty(filter, "/")
	got := strings.Split(name, "/")
	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] != "*" && want[i] != got[i] {
			return false
		}
	}
	return true
}

// seriesName masks the parameterized segments of name.
func seriesName(name string, selectors []Selector) string {
	segments := util.SplitNonEmpty(name, "/")
	var parts []string
	for _, s := range selectors {
		if !s.parameterized {
			continue
		}
		for i, seg := range segments {
			if i == s.index {
				seg = "*"
			}
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// Group splits the records accepted by the filter into series, in order of
// first appearance.
func (q Query) Group(records []Record) ([]Series, error) {
	selectors := q.selectors()
	var out []Series
	index := make(map[string]int)
	for i, r := range records {
		if q.Filter != "" {
			if _, ok := r["name"].(string); !ok {
				return nil, fmt.Errorf("benchmark %d: %w: \"name\"", i, ErrMissingKey)
			}
		}
		if !Match(q.Filter, r.Name()) {
			continue
		}
		name := seriesName(r.Name(), selectors)
		pos, ok := index[name]
		if !ok {
			pos = len(out)
			index[name] = pos
			out = append(out, Series{Name: name})
		}
		out[pos].Records = append(out[pos].Records, r)
	}
	return out, nil
}

func columnName(series, key string) string {
	if series == "" {
		return key
	}
	return series + " " + key
}

// Build groups records into series and lays them out as a data set: a key
// column, then one column per series and value selector. A row is emitted
// for every distinct key; series without a record for that key are null.
func (q Query) Build(records []Record) (*dataset.DataSet, error) {
	selectors := q.selectors()
	groups, err := q.Group(records)
	if err != nil {
		return nil, err
	}

	ds := dataset.New()
	ds.AddColumn(KeyColumn)

	// keys[g][r] is the key of groups[g].Records[r].
	keys := make([][]value.Value, len(groups))
	var distinct []value.Value
	for g, series := range groups {
		for _, s := range selectors[1:] {
			ds.AddColumn(columnName(series.Name, s.Key()))
		}
		keys[g] = make([]value.Value, len(series.Records))
		for r, rec := range series.Records {
			k, err := selectors[0].Select(rec)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", series.Name, err)
			}
			keys[g][r] = k
			if !slices.ContainsFunc(distinct, func(d value.Value) bool { return value.Equal(d, k) }) {
				distinct = append(distinct, k)
			}
		}
	}
	if q.SortKeys {
		slices.SortStableFunc(distinct, value.Compare)
	}
	ds.ResizeRows(len(distinct))

	width := len(selectors) - 1
	for row, key := range distinct {
		if err := ds.SetCell(0, row, key); err != nil {
			return nil, err
		}
		for g, series := range groups {
			r := slices.IndexFunc(keys[g], func(k value.Value) bool { return value.Equal(k, key) })
			if r < 0 {
				continue
			}
			for i, s := range selectors[1:] {
				v, err := s.Select(series.Records[r])
				if err != nil {
					return nil, fmt.Errorf("series %q: %w", series.Name, err)
				}
				if err := ds.SetCell(1+g*width+i, row, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return ds, nil
}
