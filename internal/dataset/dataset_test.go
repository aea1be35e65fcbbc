package dataset

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/mwiater/benchchart/internal/value"
)

func assertRectangular(t *testing.T, ds *DataSet) {
	t.Helper()
	for i, c := range ds.ColumnsSeq() {
		if c.Len() != ds.Rows() {
			t.Fatalf("column %d has %d cells, expected %d", i, c.Len(), ds.Rows())
		}
	}
}

func TestNewIsEmpty(t *testing.T) {
	ds := New()
	if ds.Cols() != 0 || ds.Rows() != 0 {
		t.Fatalf("expected 0x0, got %dx%d", ds.Cols(), ds.Rows())
	}
	if !ds.Empty() {
		t.Fatal("expected new data set to be empty")
	}
}

func TestAddRowsAndIterate(t *testing.T) {
	ds := New()
	for _, name := range []string{"X", "Y", "Z"} {
		ds.AddColumn(name)
	}
	rows := [][]int{{0, 1, 2}, {1, 3, 4}, {2, 5, 6}}
	for _, r := range rows {
		if err := ds.AddRow(r[0], r[1], r[2]); err != nil {
			t.Fatalf("AddRow error: %v", err)
		}
		assertRectangular(t, ds)
	}

	if got := ds.Series(); !slices.Equal(got, []string{"X", "Y", "Z"}) {
		t.Fatalf("unexpected series %v", got)
	}

	seen := 0
	for i, row := range ds.RowsSeq() {
		for col, v := range row.Values() {
			got, err := value.Get[int](v)
			if err != nil {
				t.Fatalf("row %d col %d: %v", i, col, err)
			}
			if got != rows[i][col] {
				t.Fatalf("row %d col %d: expected %d, got %d", i, col, rows[i][col], got)
			}
		}
		seen++
	}
	if seen != 3 {
		t.Fatalf("expected 3 rows, got %d", seen)
	}
}

func TestAddRowPadsMissingAndIgnoresExcess(t *testing.T) {
	ds := New()
	ds.Resize(3, 0)

	if err := ds.AddRow(1); err != nil {
		t.Fatalf("AddRow error: %v", err)
	}
	if err := ds.AddRow(1, 2, 3, 4, 5); err != nil {
		t.Fatalf("AddRow error: %v", err)
	}
	assertRectangular(t, ds)
	if ds.Cols() != 3 {
		t.Fatalf("expected excess values not to add columns, got %d", ds.Cols())
	}

	for col := 1; col < 3; col++ {
		v, err := ds.Cell(col, 0)
		if err != nil {
			t.Fatalf("Cell error: %v", err)
		}
		if !v.IsNull() {
			t.Fatalf("expected null padding at col %d, got %s", col, v)
		}
	}
	v, _ := ds.Cell(2, 1)
	if value.MustGet[int](v) != 3 {
		t.Fatalf("expected 3, got %s", v)
	}
}

func TestAddRowRejectsUnsupported(t *testing.T) {
	ds := New()
	ds.AddColumn("A")
	if err := ds.AddRow(struct{}{}); !errors.Is(err, value.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if ds.Rows() != 0 {
		t.Fatalf("expected failed row not to be added, got %d rows", ds.Rows())
	}
}

func TestAddRowSeq(t *testing.T) {
	ds := New()
	ds.ResizeCols(3)
	ds.AddRowSeq(slices.Values([]value.Value{value.Int(7)}))
	ds.AddRowSeq(slices.Values([]value.Value{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}))
	assertRectangular(t, ds)
	if ds.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", ds.Rows())
	}
	v, _ := ds.Cell(1, 0)
	if !v.IsNull() {
		t.Fatalf("expected null padding, got %s", v)
	}
	v, _ = ds.Cell(2, 1)
	if value.MustGet[int](v) != 3 {
		t.Fatalf("expected 3, got %s", v)
	}
}

func TestAddColumnAutoNameAndPadding(t *testing.T) {
	ds := New()
	ds.AddColumn()
	_ = ds.AddRow(1)
	_ = ds.AddRow(2)
	c := ds.AddColumn()
	if c.Name() != "C1" {
		t.Fatalf("expected auto name C1, got %s", c.Name())
	}
	if c.Len() != 2 {
		t.Fatalf("expected new column sized to 2 rows, got %d", c.Len())
	}
	assertRectangular(t, ds)
	ds.AddColumn("X")
	ds.AddColumn("X")
	if got := ds.Series(); !slices.Equal(got, []string{"C0", "C1", "X", "X"}) {
		t.Fatalf("expected duplicate names preserved, got %v", got)
	}
}

func TestAddRowValueAndValues(t *testing.T) {
	ds := New()
	ds.ResizeCols(4)
	if err := ds.AddRowValue(2, value.String("x")); err != nil {
		t.Fatalf("AddRowValue error: %v", err)
	}
	if err := ds.AddRowValue(4, value.Int(1)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	ds.AddRowValues(1, []value.Value{value.Int(1), value.Int(2)})
	assertRectangular(t, ds)

	row, _ := ds.Row(1)
	if got := FormatRow(row); got != "['null',1,2,'null']" {
		t.Fatalf("unexpected row %s", got)
	}
	row, _ = ds.Row(0)
	if got := FormatRow(row); got != "['null','null','x','null']" {
		t.Fatalf("unexpected row %s", got)
	}
}

func TestResizeRowsTruncatesAndPads(t *testing.T) {
	ds := New()
	ds.ResizeCols(2)
	_ = ds.AddRow(1, 2)
	_ = ds.AddRow(3, 4)
	ds.ResizeRows(1)
	if ds.Rows() != 1 {
		t.Fatalf("expected 1 row, got %d", ds.Rows())
	}
	ds.ResizeRows(3)
	assertRectangular(t, ds)
	v, _ := ds.Cell(1, 2)
	if !v.IsNull() {
		t.Fatalf("expected null after growing, got %s", v)
	}
}

func TestOutOfRange(t *testing.T) {
	ds := New()
	ds.AddColumn("A")
	_ = ds.AddRow(1)

	if _, err := ds.Col(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for column, got %v", err)
	}
	if _, err := ds.Row(1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for row, got %v", err)
	}
	if _, err := ds.Cell(0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for cell, got %v", err)
	}
	row, _ := ds.Row(0)
	if _, err := row.At(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for row cell, got %v", err)
	}
}

func TestRowInvalidatedByShrink(t *testing.T) {
	ds := New()
	ds.ResizeCols(2)
	_ = ds.AddRow(1, 2)
	_ = ds.AddRow(3, 4)
	row, _ := ds.Row(1)
	ds.ResizeRows(1)

	if _, err := row.At(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for stale row, got %v", err)
	}
	n := 0
	for range row.Values() {
		n++
	}
	if n != 0 {
		t.Fatalf("expected stale row to yield no values, got %d", n)
	}
}

func TestRowViewSeesCellMutation(t *testing.T) {
	ds := New()
	ds.ResizeCols(2)
	_ = ds.AddRow(1, 2)
	row, _ := ds.Row(0)
	if err := ds.SetCell(1, 0, value.String("changed")); err != nil {
		t.Fatalf("SetCell error: %v", err)
	}
	v, _ := row.At(1)
	if v.Text() != "changed" {
		t.Fatalf("expected row view to observe mutation, got %s", v)
	}
}

func TestWrite(t *testing.T) {
	ds := New()
	ds.AddColumn("X")
	ds.AddColumn("Y")
	_ = ds.AddRow(1, "a")
	_ = ds.AddRow(2)

	var buf bytes.Buffer
	if err := Write(&buf, ds); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	want := "[X, Y]\n[1, 'a']\n[2, 'null']\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestDataSetIsProvider(t *testing.T) {
	var p Provider = New()
	if p.Rows() != 0 {
		t.Fatalf("expected 0 rows, got %d", p.Rows())
	}
}
