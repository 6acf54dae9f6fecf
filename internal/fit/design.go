package fit

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gonum.org/v1/gonum/mat"

	"github.com/vk/modelprobe/internal/frame"
)

// termColumn evaluates one formula term row by row against the data frame,
// producing a numeric column. Transform functions come from termFunctions.
func termColumn(data *frame.Frame, term string) ([]float64, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(term), "term", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("term %q does not parse: %w", term, diags)
	}

	rows := data.NumRows()
	out := make([]float64, rows)
	rowCtx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: termFunctions,
	}
	for r := 0; r < rows; r++ {
		for _, c := range data.Columns() {
			rowCtx.Variables[c.Name] = c.Values[r]
		}
		val, diags := expr.Value(rowCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("term %q failed at row %d: %w", term, r, diags)
		}
		num, err := convert.Convert(val, cty.Number)
		if err != nil || num.IsNull() {
			return nil, fmt.Errorf("term %q is not numeric at row %d", term, r)
		}
		out[r], _ = num.AsBigFloat().Float64()
	}
	return out, nil
}

// designMatrix builds the model matrix for the given terms with a leading
// intercept column, plus the response vector.
func designMatrix(data *frame.Frame, responseTerm string, terms []string) (*mat.Dense, *mat.VecDense, error) {
	rows := data.NumRows()
	if rows == 0 {
		return nil, nil, fmt.Errorf("no observations after dropping missing values")
	}

	y, err := termColumn(data, responseTerm)
	if err != nil {
		return nil, nil, err
	}

	cols := len(terms) + 1
	x := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		x.Set(r, 0, 1) // intercept
	}
	for j, term := range terms {
		col, err := termColumn(data, term)
		if err != nil {
			return nil, nil, err
		}
		x.SetCol(j+1, col)
	}
	return x, mat.NewVecDense(rows, y), nil
}

func vec(v []float64) *mat.VecDense {
	return mat.NewVecDense(len(v), v)
}

// leastSquares solves X b = y in the least-squares sense.
func leastSquares(x *mat.Dense, y *mat.VecDense) ([]float64, error) {
	_, cols := x.Dims()
	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, fmt.Errorf("design matrix is rank deficient: %w", err)
	}
	out := make([]float64, cols)
	for i := range out {
		out[i] = beta.AtVec(i)
	}
	return out, nil
}
