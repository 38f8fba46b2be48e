package dataset

import (
	"math/rand/v2"

	"xornet/internal/model"
)

// Example pairs an input pattern with its label. Keeping both in one record
// means a reorder can never separate them.
type Example struct {
	Input    [model.NumInputs]float64
	Expected [model.NumOutputs]float64
}

// Corpus is an ordered training set.
type Corpus []Example

// XOR returns the four XOR examples in canonical order.
func XOR() Corpus {
	return Corpus{
		{Input: [model.NumInputs]float64{0, 0}, Expected: [model.NumOutputs]float64{0}},
		{Input: [model.NumInputs]float64{1, 0}, Expected: [model.NumOutputs]float64{1}},
		{Input: [model.NumInputs]float64{0, 1}, Expected: [model.NumOutputs]float64{1}},
		{Input: [model.NumInputs]float64{1, 1}, Expected: [model.NumOutputs]float64{0}},
	}
}

// Shuffle reorders c in place using a single permutation drawn from rng.
func (c Corpus) Shuffle(rng *rand.Rand) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(c), func(i, j int) {
		c[i], c[j] = c[j], c[i]
	})
}

// Label returns the XOR truth value for a binary input pair.
func Label(input [model.NumInputs]float64) float64 {
	if (input[0] != 0) != (input[1] != 0) {
		return 1
	}
	return 0
}
