package fit

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// termFunctions are the transform functions available inside formula terms,
// so that a term like log(dose) evaluates during design-matrix construction.
var termFunctions = map[string]function.Function{
	"log":  unaryMath("log", math.Log),
	"exp":  unaryMath("exp", math.Exp),
	"sqrt": unaryMath("sqrt", math.Sqrt),
	"abs":  unaryMath("abs", math.Abs),
}

// unaryMath wraps a float64 function as a cty number function.
func unaryMath(name string, fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "x", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			x, _ := args[0].AsBigFloat().Float64()
			y := fn(x)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				return cty.NilVal, fmt.Errorf("%s(%v) is not finite", name, x)
			}
			return cty.NumberFloatVal(y), nil
		},
	})
}
