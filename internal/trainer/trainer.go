package trainer

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"xornet/internal/dataset"
	"xornet/internal/metrics"
	"xornet/internal/model"
)

// ErrInvalidConfig is the cause of every error returned by New.
var ErrInvalidConfig = errors.New("trainer: invalid config")

const defaultLogEvery = 1000

// TrainStep is reported for every example seen during training.
type TrainStep struct {
	Epoch    int
	Input    [model.NumInputs]float64
	Expected float64
	Actual   float64
	Cost     float64
}

// TestStep is reported for every example seen during testing.
type TestStep struct {
	Input         [model.NumInputs]float64
	Expected      float64
	Actual        float64
	ActualRounded int
}

// Config captures the knobs required by the trainer.
type Config struct {
	LearningRate float64
	// Seed for the owned RNG. Zero seeds from the wall clock. Ignored when
	// Rand is set.
	Seed     uint64
	Rand     *rand.Rand
	Logger   *slog.Logger
	LogEvery int

	OnTrainStep func(TrainStep)
	OnTestStep  func(TestStep)
}

// Trainer owns the network, the corpus and the random source used to
// initialize and shuffle them.
type Trainer struct {
	cfg    Config
	seed   uint64
	rng    *rand.Rand
	net    *model.Network
	corpus dataset.Corpus
	log    *slog.Logger
	window metrics.Window
}

// New validates cfg and initializes a freshly seeded network.
func New(cfg Config) (*Trainer, error) {
	lr := cfg.LearningRate
	if math.IsNaN(lr) || math.IsInf(lr, 0) || lr <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "learning rate must be finite and > 0 (got %v)", lr)
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = defaultLogEvery
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := &Trainer{
		cfg:    cfg,
		seed:   cfg.Seed,
		rng:    cfg.Rand,
		corpus: dataset.XOR(),
		log:    cfg.Logger,
	}
	if t.rng == nil {
		if t.seed == 0 {
			t.seed = uint64(time.Now().UnixNano())
		}
		t.rng = rand.New(rand.NewPCG(t.seed, t.seed))
	}
	t.net = model.New(t.rng)
	return t, nil
}

// Seed returns the seed of the owned RNG, or zero if the RNG was injected.
func (t *Trainer) Seed() uint64 {
	if t.cfg.Rand != nil {
		return 0
	}
	return t.seed
}

// Params returns a copy of the current network parameters.
func (t *Trainer) Params() model.Params {
	return t.net.Params()
}

// Train runs exactly numEpochs epochs of per-example gradient descent.
func (t *Trainer) Train(numEpochs int) {
	t.log.Info("training", "epochs", numEpochs, "learning_rate", t.cfg.LearningRate, "examples", len(t.corpus))

	for epoch := 0; epoch < numEpochs; epoch++ {
		t.corpus.Shuffle(t.rng)

		for _, ex := range t.corpus {
			start := time.Now()
			out := t.net.Forward(ex.Input)
			cost := model.Cost(out[0], ex.Expected[0])
			t.reportTrain(TrainStep{
				Epoch:    epoch,
				Input:    ex.Input,
				Expected: ex.Expected[0],
				Actual:   out[0],
				Cost:     cost,
			})

			deltas := t.net.Backward(ex.Expected)
			t.net.Update(t.cfg.LearningRate, ex.Input, deltas)
			t.window.Record(cost, time.Since(start))
		}

		if (epoch+1)%t.cfg.LogEvery == 0 || epoch == numEpochs-1 {
			snap := t.window.Snapshot()
			t.log.Info("epoch",
				"epoch", epoch+1,
				"avg_cost", snap.AvgCost,
				"last_cost", snap.LastCost,
				"steps_per_sec", snap.StepsPerSec,
			)
		}
	}
}

// Test runs one shuffled pass over the corpus without updating parameters.
func (t *Trainer) Test() {
	t.corpus.Shuffle(t.rng)

	for _, ex := range t.corpus {
		out := t.net.Forward(ex.Input)
		step := TestStep{
			Input:         ex.Input,
			Expected:      ex.Expected[0],
			Actual:        out[0],
			ActualRounded: Round(out[0]),
		}
		t.log.Info("test",
			"input", formatInput(step.Input),
			"expected", step.Expected,
			"actual", step.ActualRounded,
		)
		if t.cfg.OnTestStep != nil {
			t.cfg.OnTestStep(step)
		}
	}
}

func (t *Trainer) reportTrain(step TrainStep) {
	t.log.Debug("train",
		"input", formatInput(step.Input),
		"expected", step.Expected,
		"actual", step.Actual,
		"cost", step.Cost,
	)
	if t.cfg.OnTrainStep != nil {
		t.cfg.OnTrainStep(step)
	}
}

// Round returns v rounded to the nearest integer, halves away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}
