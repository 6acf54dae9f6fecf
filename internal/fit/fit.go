// Package fit is a small fitting front-end producing model handles that are
// fully introspectable: each fit records its call, parses its formula, and
// captures an owned snapshot of the input data into the recorded environment.
// Capturing at construction time is deliberate; resolution should not have to
// guess at provenance later.
package fit

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/frame"
	"github.com/vk/modelprobe/internal/model"
)

// Result is a fitted model: the introspectable handle plus the point
// estimates in coefficient order.
type Result struct {
	Handle    *model.Handle
	Names     []string
	Estimates []float64
}

// Linear fits an ordinary least-squares linear model of the given formula on
// data, known to callers under tableName. Rows with missing values are
// dropped before fitting, matching the default of every common fitting
// front-end.
func Linear(tableName string, data *frame.Frame, formulaSrc string) (*Result, error) {
	f, err := formula.Parse(formulaSrc)
	if err != nil {
		return nil, err
	}
	if f.ResponseTerm == "" {
		return nil, fmt.Errorf("linear fit requires a response term")
	}
	if len(f.RandomTerms) > 0 || len(f.ZeroTerms) > 0 {
		return nil, fmt.Errorf("linear fit supports only fixed terms, got %q", formulaSrc)
	}

	complete := data.DropMissing()
	x, y, err := designMatrix(complete, f.ResponseTerm, f.FixedTerms)
	if err != nil {
		return nil, err
	}
	estimates, err := leastSquares(x, y)
	if err != nil {
		return nil, err
	}

	names := append([]string{"(Intercept)"}, f.FixedTerms...)
	handle, err := newHandle("lm", tableName, data, f, names)
	if err != nil {
		return nil, err
	}
	return &Result{Handle: handle, Names: names, Estimates: estimates}, nil
}

// newHandle assembles a handle with a recorded call whose data argument
// references tableName, and an environment owning a snapshot of data under
// that name.
func newHandle(class, tableName string, data *frame.Frame, f *formula.Formula, names []string) (*model.Handle, error) {
	dataExpr, diags := hclsyntax.ParseExpression([]byte(tableName), "call", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("table name %q is not a valid reference: %w", tableName, diags)
	}

	env := &hcl.EvalContext{
		Variables: map[string]cty.Value{tableName: data.ToCty()},
	}

	return &model.Handle{
		Class: class,
		Name:  fmt.Sprintf("%s(%s)", class, f.Source),
		Call: &model.Call{
			Function: class,
			Formula:  f,
			Args:     map[string]hcl.Expression{"data": dataExpr},
		},
		Env:          env,
		Coefficients: &model.Coefficients{Flat: names},
	}, nil
}
