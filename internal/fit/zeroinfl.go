package fit

import (
	"fmt"
	"math"

	"github.com/vk/modelprobe/internal/formula"
	"github.com/vk/modelprobe/internal/frame"
)

// ZeroInflated fits a two-part zero-inflated count model of the shape
// count ~ terms | zero_terms. Estimation is deliberately modest: both parts
// are initialized by least squares on working responses (log1p counts for
// the count part, a zero indicator for the zero part), the same device
// maximum-likelihood fitters use for starting values. The handle's
// introspection metadata is exact regardless.
func ZeroInflated(tableName string, data *frame.Frame, formulaSrc string) (*Result, error) {
	f, err := formula.Parse(formulaSrc)
	if err != nil {
		return nil, err
	}
	if f.ResponseTerm == "" {
		return nil, fmt.Errorf("zero-inflated fit requires a response term")
	}
	if len(f.ZeroTerms) == 0 {
		return nil, fmt.Errorf("formula %q has no zero-inflation part", formulaSrc)
	}
	if len(f.RandomTerms) > 0 {
		return nil, fmt.Errorf("zero-inflated fit does not support random terms")
	}

	complete := data.DropMissing()
	counts, err := termColumn(complete, f.ResponseTerm)
	if err != nil {
		return nil, err
	}

	countEst, err := workingFit(complete, f.ResponseTerm, f.FixedTerms, func(y float64) float64 {
		return math.Log1p(y)
	}, counts)
	if err != nil {
		return nil, fmt.Errorf("count part: %w", err)
	}
	zeroEst, err := workingFit(complete, f.ResponseTerm, f.ZeroTerms, func(y float64) float64 {
		if y == 0 {
			return 1
		}
		return 0
	}, counts)
	if err != nil {
		return nil, fmt.Errorf("zero part: %w", err)
	}

	var names []string
	for _, term := range append([]string{"(Intercept)"}, f.FixedTerms...) {
		names = append(names, "count_"+term)
	}
	for _, term := range append([]string{"(Intercept)"}, f.ZeroTerms...) {
		names = append(names, "zero_"+term)
	}

	handle, err := newHandle("zeroinfl", tableName, data, f, names)
	if err != nil {
		return nil, err
	}
	return &Result{
		Handle:    handle,
		Names:     names,
		Estimates: append(countEst, zeroEst...),
	}, nil
}

// workingFit solves one part's least-squares problem against a transformed
// working response derived from the observed counts.
func workingFit(data *frame.Frame, responseTerm string, terms []string, transform func(float64) float64, counts []float64) ([]float64, error) {
	x, _, err := designMatrix(data, responseTerm, terms)
	if err != nil {
		return nil, err
	}
	working := make([]float64, len(counts))
	for i, y := range counts {
		working[i] = transform(y)
	}
	return leastSquares(x, vec(working))
}
