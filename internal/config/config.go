package config

import (
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"xornet/internal/model"
)

// ErrInvalid is the cause of every validation failure.
var ErrInvalid = errors.New("invalid config")

// Defaults for the reference run.
const (
	DefaultLearningRate = 5.0
	DefaultEpochs       = 10000
	DefaultLogEvery     = 1000
	DefaultLogLevel     = "info"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	InputSize    int     `yaml:"input_size"`
	HiddenSize   int     `yaml:"hidden_size"`
	OutputSize   int     `yaml:"output_size"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	Seed         uint64  `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
	LogLevel     string  `yaml:"log_level"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	LearningRate float64
	Epochs       int
	Seed         uint64
	LogEvery     int
	LogLevel     string
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		InputSize:    model.NumInputs,
		HiddenSize:   model.NumHidden,
		OutputSize:   model.NumOutputs,
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
		LogEvery:     DefaultLogEvery,
		LogLevel:     DefaultLogLevel,
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalid, "config is nil")
	}
	sizes := []struct {
		name     string
		got      int
		compiled int
	}{
		{"input_size", c.InputSize, model.NumInputs},
		{"hidden_size", c.HiddenSize, model.NumHidden},
		{"output_size", c.OutputSize, model.NumOutputs},
	}
	for _, s := range sizes {
		if s.got < 1 {
			return errors.Wrapf(ErrInvalid, "%s must be >= 1 (got %d)", s.name, s.got)
		}
		if s.got != s.compiled {
			return errors.Wrapf(ErrInvalid, "%s must be %d for this build (got %d)", s.name, s.compiled, s.got)
		}
	}
	if math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) || c.LearningRate <= 0 {
		return errors.Wrapf(ErrInvalid, "learning_rate must be finite and > 0 (got %v)", c.LearningRate)
	}
	if c.Epochs < 0 {
		return errors.Wrapf(ErrInvalid, "epochs must be >= 0 (got %d)", c.Epochs)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = DefaultLogEvery
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(ErrInvalid, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
