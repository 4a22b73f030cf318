package experiment

import (
	"context"
	"time"

	"github.com/roberte777/miniphys/internal/config"
	"github.com/roberte777/miniphys/internal/sim"
)

// Experiment ties a configured system to a runner with default metrics.
type Experiment struct {
	cfg    *config.Config
	system sim.System
	runner *sim.Runner
}

func New(cfg *config.Config) (*Experiment, error) {
	registry := NewRegistry()

	sys, err := registry.Build(cfg)
	if err != nil {
		return nil, err
	}

	runner := sim.NewRunner(sys)
	for _, m := range registry.DefaultMetrics(sys) {
		runner.AddMetric(m)
	}

	return &Experiment{cfg: cfg, system: sys, runner: runner}, nil
}

// System returns the built system, e.g. for adding observers or mutating a
// cloth mesh between steps.
func (e *Experiment) System() sim.System {
	return e.system
}

func (e *Experiment) Runner() *sim.Runner {
	return e.runner
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, sim.Config{
		Dt:            secsToDuration(e.cfg.Dt),
		Duration:      secsToDuration(e.cfg.Duration),
		ValidateState: true,
	})
}

func secsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
