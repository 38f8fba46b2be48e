package model

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
)

func fixedParams() Params {
	return Params{
		HiddenWeights: [NumInputs][NumHidden]float64{{0.15, 0.25}, {0.20, 0.30}},
		OutputWeights: [NumHidden][NumOutputs]float64{{0.40}, {0.45}},
		HiddenBias:    [NumHidden]float64{0.35, 0.35},
		OutputBias:    [NumOutputs]float64{0.60},
	}
}

func flatten(p Params) []float64 {
	v := make([]float64, 0, NumInputs*NumHidden+NumHidden*NumOutputs+NumHidden+NumOutputs)
	for i := range p.HiddenWeights {
		v = append(v, p.HiddenWeights[i][:]...)
	}
	for h := range p.OutputWeights {
		v = append(v, p.OutputWeights[h][:]...)
	}
	v = append(v, p.HiddenBias[:]...)
	return append(v, p.OutputBias[:]...)
}

func unflatten(v []float64) Params {
	var p Params
	k := 0
	for i := range p.HiddenWeights {
		k += copy(p.HiddenWeights[i][:], v[k:])
	}
	for h := range p.OutputWeights {
		k += copy(p.OutputWeights[h][:], v[k:])
	}
	k += copy(p.HiddenBias[:], v[k:])
	copy(p.OutputBias[:], v[k:])
	return p
}

func exampleCost(p Params, x [NumInputs]float64, expected [NumOutputs]float64) float64 {
	out := NewFromParams(p).Forward(x)
	var c float64
	for o := range out {
		c += Cost(out[o], expected[o])
	}
	return c
}

func TestNewDrawsFromUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		for _, v := range flatten(New(rng).Params()) {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestForwardDeterministic(t *testing.T) {
	n := NewFromParams(fixedParams())
	x := [NumInputs]float64{1, 0}
	first := n.Forward(x)
	n.Forward([NumInputs]float64{0, 1})
	second := n.Forward(x)
	assert.Equal(t, first, second)

	other := NewFromParams(fixedParams())
	assert.Equal(t, first, other.Forward(x))
}

func TestForwardKnownValues(t *testing.T) {
	n := NewFromParams(fixedParams())
	out := n.Forward([NumInputs]float64{1, 0})

	h0 := Sigmoid(0.35 + 0.15)
	h1 := Sigmoid(0.35 + 0.25)
	want := Sigmoid(0.60 + h0*0.40 + h1*0.45)

	act := n.Activations()
	assert.InDelta(t, 0.50, act.HiddenPre[0], 1e-12)
	assert.InDelta(t, 0.60, act.HiddenPre[1], 1e-12)
	assert.InDelta(t, h0, act.Hidden[0], 1e-12)
	assert.InDelta(t, want, out[0], 1e-12)
	assert.Equal(t, out, act.Output)
}

func TestBackwardMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	inputs := [][NumInputs]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	expected := [][NumOutputs]float64{{0}, {1}, {1}, {0}}

	for trial := 0; trial < 5; trial++ {
		p := New(rng).Params()
		for k, x := range inputs {
			n := NewFromParams(p)
			n.Forward(x)
			d := n.Backward(expected[k])
			act := n.Activations()

			var grad Params
			for o := 0; o < NumOutputs; o++ {
				grad.OutputBias[o] = d.Output[o]
				for h := 0; h < NumHidden; h++ {
					grad.OutputWeights[h][o] = d.Output[o] * act.Hidden[h]
				}
			}
			for h := 0; h < NumHidden; h++ {
				grad.HiddenBias[h] = d.Hidden[h]
				for i := 0; i < NumInputs; i++ {
					grad.HiddenWeights[i][h] = d.Hidden[h] * x[i]
				}
			}

			loss := func(v []float64) float64 {
				return exampleCost(unflatten(v), x, expected[k])
			}
			numeric := fd.Gradient(nil, loss, flatten(p), &fd.Settings{Formula: fd.Central})
			require.True(t, floats.EqualApprox(numeric, flatten(grad), 1e-6),
				"input %v: numeric %v analytic %v", x, numeric, flatten(grad))
		}
	}
}

func TestUpdateDescends(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	x := [NumInputs]float64{1, 0}
	expected := [NumOutputs]float64{1}

	for trial := 0; trial < 20; trial++ {
		n := New(rng)
		before := exampleCost(n.Params(), x, expected)

		n.Forward(x)
		n.Update(0.01, x, n.Backward(expected))

		after := exampleCost(n.Params(), x, expected)
		assert.LessOrEqual(t, after, before, "trial %d", trial)
	}
}

func TestUpdateZeroInputLeavesHiddenWeights(t *testing.T) {
	n := NewFromParams(fixedParams())
	x := [NumInputs]float64{0, 0}
	n.Forward(x)
	n.Update(5, x, n.Backward([NumOutputs]float64{0}))

	after := n.Params()
	assert.Equal(t, fixedParams().HiddenWeights, after.HiddenWeights)
	assert.NotEqual(t, fixedParams().HiddenBias, after.HiddenBias)
	assert.NotEqual(t, fixedParams().OutputBias, after.OutputBias)
}
