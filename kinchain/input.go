package kinchain

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Input wraps the value of one joint, e.g. a joint angle or a slide position.
//   - revolute inputs are in degrees.
//   - prismatic inputs are in mm.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(values []float64) []Input {
	inputs := make([]Input, len(values))
	for i, v := range values {
		inputs[i] = Input{v}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	values := make([]float64, len(inputs))
	for i, in := range inputs {
		values[i] = in.Value
	}
	return values
}

// InputsL2Distance returns the two-norm (the sqrt of the sum of the squares)
// between two Input sets. Used by callers searching over configurations; the
// evaluator itself has no need of it.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f.Value-to[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}
