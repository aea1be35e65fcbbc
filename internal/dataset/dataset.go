// internal/dataset/dataset.go
// Package dataset implements the column-oriented table that feeds chart
// rendering.
package dataset

import (
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/mwiater/benchchart/internal/value"
)

// ErrOutOfRange is returned for column or row indices beyond the table bounds.
var ErrOutOfRange = errors.New("index out of range")

// Provider is the tabular capability consumed by renderers. Any data source
// exposing named series and row access can be charted.
type Provider interface {
	Series() []string
	Cols() int
	Rows() int
	Row(index int) (Row, error)
}

// Column is a named sequence of values. Its length always equals the row
// count of the owning DataSet.
type Column struct {
	name string
	data []value.Value
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// SetName renames the column.
func (c *Column) SetName(name string) { c.name = name }

// Len returns the number of cells in the column.
func (c *Column) Len() int { return len(c.data) }

// At returns the cell at row.
func (c *Column) At(row int) (value.Value, error) {
	if row < 0 || row >= len(c.data) {
		return value.Value{}, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, len(c.data))
	}
	return c.data[row], nil
}

// Set stores v at row.
func (c *Column) Set(row int, v value.Value) error {
	if row < 0 || row >= len(c.data) {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, len(c.data))
	}
	c.data[row] = v
	return nil
}

// Values iterates the column cells in row order.
func (c *Column) Values() iter.Seq2[int, value.Value] {
	return func(yield func(int, value.Value) bool) {
		for i, v := range c.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (c *Column) push(v value.Value) { c.data = append(c.data, v) }

func (c *Column) resize(rows int) {
	if rows <= len(c.data) {
		clear(c.data[rows:])
		c.data = c.data[:rows]
		return
	}
	c.data = append(c.data, make([]value.Value, rows-len(c.data))...)
}

// DataSet is an ordered collection of equally sized named columns.
type DataSet struct {
	columns []*Column
}

// New returns an empty data set.
func New() *DataSet { return &DataSet{} }

// Cols returns the number of columns.
func (ds *DataSet) Cols() int { return len(ds.columns) }

// Rows returns the number of rows.
func (ds *DataSet) Rows() int {
	if len(ds.columns) == 0 {
		return 0
	}
	return ds.columns[0].Len()
}

// Empty reports whether the data set has no columns or no rows.
func (ds *DataSet) Empty() bool {
	return len(ds.columns) == 0 || ds.columns[0].Len() == 0
}

// Series returns the column names in order.
func (ds *DataSet) Series() []string {
	series := make([]string, 0, len(ds.columns))
	for _, c := range ds.columns {
		series = append(series, c.name)
	}
	return series
}

// AddColumn appends a null-filled column sized to the current row count.
// Without a name the column is called C<index>.
func (ds *DataSet) AddColumn(name ...string) *Column {
	n := "C" + strconv.Itoa(len(ds.columns))
	if len(name) > 0 {
		n = name[0]
	}
	c := &Column{name: n, data: make([]value.Value, ds.Rows())}
	ds.columns = append(ds.columns, c)
	return c
}

// Col returns the column at index.
func (ds *DataSet) Col(index int) (*Column, error) {
	if index < 0 || index >= len(ds.columns) {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, index, len(ds.columns))
	}
	return ds.columns[index], nil
}

// Cell returns the value at (col, row).
func (ds *DataSet) Cell(col, row int) (value.Value, error) {
	c, err := ds.Col(col)
	if err != nil {
		return value.Value{}, err
	}
	return c.At(row)
}

// SetCell stores v at (col, row).
func (ds *DataSet) SetCell(col, row int, v value.Value) error {
	c, err := ds.Col(col)
	if err != nil {
		return err
	}
	return c.Set(row, v)
}

// Resize sets both the column and row counts.
func (ds *DataSet) Resize(cols, rows int) {
	ds.ResizeCols(cols)
	ds.ResizeRows(rows)
}

// ResizeCols truncates or appends auto-named columns.
func (ds *DataSet) ResizeCols(cols int) {
	if cols < 0 {
		cols = 0
	}
	if cols <= len(ds.columns) {
		clear(ds.columns[cols:])
		ds.columns = ds.columns[:cols]
		return
	}
	for len(ds.columns) < cols {
		ds.AddColumn()
	}
}

// ResizeRows sets every column to rows cells, null padding or truncating.
func (ds *DataSet) ResizeRows(rows int) {
	if rows < 0 {
		rows = 0
	}
	for _, c := range ds.columns {
		c.resize(rows)
	}
}

// AddRow appends one row. Values are assigned to columns positionally,
// missing trailing values become null and values beyond the column count
// are ignored. Each value must be a value.Value, nil or a value.Scalar.
func (ds *DataSet) AddRow(values ...any) error {
	converted := make([]value.Value, 0, len(values))
	for i, raw := range values {
		if i >= len(ds.columns) {
			break
		}
		v, err := value.From(raw)
		if err != nil {
			return fmt.Errorf("row value %d: %w", i, err)
		}
		converted = append(converted, v)
	}
	ds.AddRowValues(0, converted)
	return nil
}

// AddRowSeq appends one row from a value sequence using the same padding
// rules as AddRow.
func (ds *DataSet) AddRowSeq(seq iter.Seq[value.Value]) {
	next, stop := iter.Pull(seq)
	defer stop()
	for _, c := range ds.columns {
		v, ok := next()
		if !ok {
			v = value.Null()
		}
		c.push(v)
	}
}

// AddRowValue appends a row where only column col is set.
func (ds *DataSet) AddRowValue(col int, v value.Value) error {
	if col < 0 || col >= len(ds.columns) {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, col, len(ds.columns))
	}
	for i, c := range ds.columns {
		if i == col {
			c.push(v)
			continue
		}
		c.push(value.Null())
	}
	return nil
}

// AddRowValues appends a row filling columns from firstCol onward with
// values. Columns before firstCol and past the supplied values get null.
func (ds *DataSet) AddRowValues(firstCol int, values []value.Value) {
	for i, c := range ds.columns {
		j := i - firstCol
		if j >= 0 && j < len(values) {
			c.push(values[j])
			continue
		}
		c.push(value.Null())
	}
}

// Row returns a cursor over row index.
func (ds *DataSet) Row(index int) (Row, error) {
	if index < 0 || index >= ds.Rows() {
		return Row{}, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, index, ds.Rows())
	}
	return Row{ds: ds, index: index}, nil
}

// RowsSeq iterates all rows in order.
func (ds *DataSet) RowsSeq() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i := range ds.Rows() {
			if !yield(i, Row{ds: ds, index: i}) {
				return
			}
		}
	}
}

// ColumnsSeq iterates all columns in order.
func (ds *DataSet) ColumnsSeq() iter.Seq2[int, *Column] {
	return func(yield func(int, *Column) bool) {
		for i, c := range ds.columns {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Row is a lightweight cursor over every column at a fixed row index. It
// borrows the data set and is invalidated by structural changes.
type Row struct {
	ds    *DataSet
	index int
}

// Index returns the row index.
func (r Row) Index() int { return r.index }

// Len returns the number of cells in the row.
func (r Row) Len() int {
	if r.ds == nil {
		return 0
	}
	return len(r.ds.columns)
}

// At returns the cell in column col.
func (r Row) At(col int) (value.Value, error) {
	if r.ds == nil {
		return value.Value{}, fmt.Errorf("%w: detached row", ErrOutOfRange)
	}
	return r.ds.Cell(col, r.index)
}

// Set stores v in column col.
func (r Row) Set(col int, v value.Value) error {
	if r.ds == nil {
		return fmt.Errorf("%w: detached row", ErrOutOfRange)
	}
	return r.ds.SetCell(col, r.index, v)
}

// Values iterates the row cells in column order. A row no longer inside the
// data set yields nothing.
func (r Row) Values() iter.Seq2[int, value.Value] {
	return func(yield func(int, value.Value) bool) {
		if r.ds == nil {
			return
		}
		for i, c := range r.ds.columns {
			if r.index < 0 || r.index >= c.Len() {
				return
			}
			if !yield(i, c.data[r.index]) {
				return
			}
		}
	}
}
