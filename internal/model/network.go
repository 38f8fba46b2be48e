package model

import "math/rand/v2"

// Params holds every trainable value of the network.
type Params struct {
	HiddenWeights [NumInputs][NumHidden]float64
	OutputWeights [NumHidden][NumOutputs]float64
	HiddenBias    [NumHidden]float64
	OutputBias    [NumOutputs]float64
}

// Activations is the scratch state written by Forward.
type Activations struct {
	HiddenPre [NumHidden]float64
	Hidden    [NumHidden]float64
	OutputPre [NumOutputs]float64
	Output    [NumOutputs]float64
}

// Deltas are the backpropagated error signals for one example.
type Deltas struct {
	Output [NumOutputs]float64
	Hidden [NumHidden]float64
}

// Network is a 2-2-1 sigmoid perceptron trained with plain SGD.
type Network struct {
	params Params
	act    Activations
}

// New constructs a network with every weight and bias drawn from U[0,1).
func New(rng *rand.Rand) *Network {
	n := &Network{}
	n.init(rng)
	return n
}

// NewFromParams constructs a network with the given parameters.
func NewFromParams(p Params) *Network {
	return &Network{params: p}
}

func (n *Network) init(rng *rand.Rand) {
	p := &n.params
	for i := range p.HiddenWeights {
		for h := range p.HiddenWeights[i] {
			p.HiddenWeights[i][h] = rng.Float64()
		}
	}
	for h := range p.OutputWeights {
		for o := range p.OutputWeights[h] {
			p.OutputWeights[h][o] = rng.Float64()
		}
	}
	for h := range p.HiddenBias {
		p.HiddenBias[h] = rng.Float64()
	}
	for o := range p.OutputBias {
		p.OutputBias[o] = rng.Float64()
	}
}

// Params returns a copy of the current parameters.
func (n *Network) Params() Params {
	return n.params
}

// Activations returns a copy of the state left by the last Forward call.
func (n *Network) Activations() Activations {
	return n.act
}

// Forward propagates x through the hidden and output layers and returns the
// output activations.
func (n *Network) Forward(x [NumInputs]float64) [NumOutputs]float64 {
	p := &n.params
	for h := 0; h < NumHidden; h++ {
		z := p.HiddenBias[h]
		for i := 0; i < NumInputs; i++ {
			z += x[i] * p.HiddenWeights[i][h]
		}
		n.act.HiddenPre[h] = z
		n.act.Hidden[h] = Sigmoid(z)
	}
	for o := 0; o < NumOutputs; o++ {
		z := p.OutputBias[o]
		for h := 0; h < NumHidden; h++ {
			z += n.act.Hidden[h] * p.OutputWeights[h][o]
		}
		n.act.OutputPre[o] = z
		n.act.Output[o] = Sigmoid(z)
	}
	return n.act.Output
}

// Backward computes the deltas for expected against the most recent Forward.
func (n *Network) Backward(expected [NumOutputs]float64) Deltas {
	var d Deltas
	for o := 0; o < NumOutputs; o++ {
		d.Output[o] = DCost(n.act.Output[o], expected[o]) * DSigmoid(n.act.OutputPre[o])
	}
	for h := 0; h < NumHidden; h++ {
		var sum float64
		for o := 0; o < NumOutputs; o++ {
			sum += d.Output[o] * n.params.OutputWeights[h][o]
		}
		d.Hidden[h] = sum * DSigmoid(n.act.HiddenPre[h])
	}
	return d
}

// Update applies one gradient descent step in place. x must be the input
// that produced the activations d was computed from.
func (n *Network) Update(lr float64, x [NumInputs]float64, d Deltas) {
	p := &n.params
	for o := 0; o < NumOutputs; o++ {
		p.OutputBias[o] -= lr * d.Output[o]
		for h := 0; h < NumHidden; h++ {
			p.OutputWeights[h][o] -= lr * d.Output[o] * n.act.Hidden[h]
		}
	}
	for h := 0; h < NumHidden; h++ {
		p.HiddenBias[h] -= lr * d.Hidden[h]
		for i := 0; i < NumInputs; i++ {
			p.HiddenWeights[i][h] -= lr * d.Hidden[h] * x[i]
		}
	}
}
