package frame

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// FromCty interprets a cty value as a table: an object or map whose
// attributes are equal-length sequences, one per column. Column order is the
// sorted attribute order, which is the only deterministic order a cty object
// offers. Anything not table-shaped is an error.
func FromCty(v cty.Value) (*Frame, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value is null or unknown")
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("value of type %s is not table-shaped", ty.FriendlyName())
	}

	valueMap := v.AsValueMap()
	names := make([]string, 0, len(valueMap))
	for name := range valueMap {
		names = append(names, name)
	}
	sort.Strings(names)

	out := New()
	for _, name := range names {
		colVal := valueMap[name]
		if colVal.IsNull() || !colVal.CanIterateElements() {
			return nil, fmt.Errorf("column %q is not a sequence", name)
		}
		colTy := colVal.Type()
		if !colTy.IsListType() && !colTy.IsTupleType() && !colTy.IsSetType() {
			return nil, fmt.Errorf("column %q has type %s, want a sequence", name, colTy.FriendlyName())
		}
		if err := out.Add(name, colVal.AsValueSlice()); err != nil {
			return nil, err
		}
	}
	if out.NumCols() == 0 {
		return nil, fmt.Errorf("value has no columns")
	}
	return out, nil
}

// IsTabular reports whether FromCty would accept v. Used by the
// environment-scan tactic to pick table candidates out of arbitrary scope
// variables without paying for the full conversion.
func IsTabular(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return false
	}
	rows := -1
	for _, colVal := range v.AsValueMap() {
		colTy := colVal.Type()
		if colVal.IsNull() || (!colTy.IsListType() && !colTy.IsTupleType() && !colTy.IsSetType()) {
			return false
		}
		n := colVal.LengthInt()
		if rows >= 0 && n != rows {
			return false
		}
		rows = n
	}
	return rows >= 0
}

// ToCty converts the frame back into a cty object of per-column tuples.
// Tuples rather than lists, because a column holding missing values can mix
// element types that a list would refuse to carry.
func (f *Frame) ToCty() cty.Value {
	if f.NumCols() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, f.NumCols())
	for _, c := range f.cols {
		if len(c.Values) == 0 {
			attrs[c.Name] = cty.EmptyTupleVal
			continue
		}
		attrs[c.Name] = cty.TupleVal(c.Values)
	}
	return cty.ObjectVal(attrs)
}
