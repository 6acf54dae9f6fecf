// Package frame implements the rectangular dataset produced by data
// resolution: an ordered sequence of named columns of cty values, all of
// equal length. A null cell represents a missing observation.
package frame

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Column is one named, ordered sequence of cell values.
type Column struct {
	Name   string
	Values []cty.Value
}

// Frame is an ordered collection of equal-length columns. The zero value is
// not usable; construct with New.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New creates an empty Frame.
func New() *Frame {
	return &Frame{index: make(map[string]int)}
}

// Add appends a new column. Adding a column whose length disagrees with the
// existing columns, or whose name is already taken, is an error.
func (f *Frame) Add(name string, values []cty.Value) error {
	if _, exists := f.index[name]; exists {
		return fmt.Errorf("column %q already present", name)
	}
	if len(f.cols) > 0 && len(values) != f.NumRows() {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, len(values), f.NumRows())
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, Column{Name: name, Values: values})
	return nil
}

// Set behaves like Add but overwrites the values of an existing column in
// place instead of failing on a name collision.
func (f *Frame) Set(name string, values []cty.Value) error {
	idx, exists := f.index[name]
	if !exists {
		return f.Add(name, values)
	}
	if len(values) != f.NumRows() {
		return fmt.Errorf("column %q has %d rows, frame has %d", name, len(values), f.NumRows())
	}
	f.cols[idx].Values = values
	return nil
}

// Column returns the named column, if present.
func (f *Frame) Column(name string) (Column, bool) {
	idx, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[idx], true
}

// Columns returns the columns in order. The returned slice is shared with the
// frame and must not be mutated.
func (f *Frame) Columns() []Column {
	return f.cols
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	return len(f.cols)
}

// NumRows returns the observation count.
func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return len(f.cols[0].Values)
}

// Project returns a new frame restricted to the requested columns, in the
// requested order. Names absent from the frame are skipped silently: partial
// recoverability means we proceed with whatever subset intersects.
func (f *Frame) Project(names []string) *Frame {
	out := New()
	for _, name := range names {
		if col, ok := f.Column(name); ok {
			// Add cannot fail here: lengths come from the same frame and
			// duplicate requests hit the existing-name check.
			if err := out.Add(col.Name, col.Values); err != nil {
				continue
			}
		}
	}
	return out
}

// DropMissing returns a new frame with every row containing at least one
// null cell removed. Column order is preserved.
func (f *Frame) DropMissing() *Frame {
	keep := make([]int, 0, f.NumRows())
rows:
	for r := 0; r < f.NumRows(); r++ {
		for _, c := range f.cols {
			if c.Values[r].IsNull() {
				continue rows
			}
		}
		keep = append(keep, r)
	}

	out := New()
	for _, c := range f.cols {
		vals := make([]cty.Value, len(keep))
		for i, r := range keep {
			vals[i] = c.Values[r]
		}
		_ = out.Add(c.Name, vals)
	}
	return out
}

// Merge combines other into f and returns the result as a new frame. The
// column set is the union of both frames; on a name collision the column from
// other wins, keeping its original position in f. Columns new to f are
// appended at the end in other's order. Last-merge-wins is the documented
// contract here, not an accident of ordering. Row counts must agree.
func (f *Frame) Merge(other *Frame) (*Frame, error) {
	if f.NumCols() > 0 && other.NumCols() > 0 && f.NumRows() != other.NumRows() {
		return nil, fmt.Errorf("cannot merge frames with %d and %d rows", f.NumRows(), other.NumRows())
	}
	out := New()
	for _, c := range f.cols {
		vals := c.Values
		if oc, ok := other.Column(c.Name); ok {
			vals = oc.Values
		}
		_ = out.Add(c.Name, vals)
	}
	for _, c := range other.cols {
		if _, ok := out.Column(c.Name); !ok {
			_ = out.Add(c.Name, c.Values)
		}
	}
	return out, nil
}

// Clone returns a shallow copy sharing column value slices.
func (f *Frame) Clone() *Frame {
	out := New()
	for _, c := range f.cols {
		_ = out.Add(c.Name, c.Values)
	}
	return out
}
