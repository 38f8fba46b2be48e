package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"xornet/internal/config"
	"xornet/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults to the reference run)")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	lr := flag.Float64("learning-rate", 0, "SGD learning rate")
	seed := flag.Uint64("seed", 0, "PRNG seed (0 seeds from the clock)")
	logEvery := flag.Int("log-every", 0, "Log a summary every N epochs")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *lr,
		Epochs:       *epochs,
		Seed:         *seed,
		LogEvery:     *logEvery,
		LogLevel:     *logLevel,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	level, _ := cfg.Level()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	tr, err := trainer.New(trainer.Config{
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
		Logger:       logger,
		LogEvery:     cfg.LogEvery,
	})
	if err != nil {
		log.Fatalf("trainer: %v", err)
	}
	logger.Info("network initialized",
		"inputs", cfg.InputSize,
		"hidden", cfg.HiddenSize,
		"outputs", cfg.OutputSize,
		"seed", tr.Seed(),
	)

	tr.Train(cfg.Epochs)
	tr.Test()
}
