package model

import "math"

// Topology of the network. The dimensions are fixed at build time; the
// algorithms below index only through these names.
const (
	NumInputs  = 2
	NumHidden  = 2
	NumOutputs = 1
)

// Sigmoid is the logistic activation 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// DSigmoid returns the derivative of Sigmoid at the pre-activation z.
func DSigmoid(z float64) float64 {
	s := Sigmoid(z)
	return s * (1 - s)
}

// Cost is the squared error of a single output.
func Cost(actual, expected float64) float64 {
	d := actual - expected
	return d * d
}

// DCost is the derivative of Cost with respect to actual.
func DCost(actual, expected float64) float64 {
	return 2 * (actual - expected)
}
