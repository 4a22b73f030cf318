package sim

import (
	"context"
)

// Runner drives a System through a fixed-step run, recording observations
// and feeding metrics and observers.
type Runner struct {
	sys       System
	metrics   []Metric
	observers []Observer
}

func NewRunner(sys System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the system for cfg.Duration at cfg.Dt, recording the observation
// after every step. The initial state is recorded at t=0. Respects ctx
// cancellation, returning the partial result alongside the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([][]float64, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	dtSecs := cfg.Dt.Seconds()
	t := 0.0

	x := r.sys.State()
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.sys.Step(cfg.Dt)
		t += dtSecs
		result.StepsTaken++

		x = r.sys.State()

		for _, m := range r.metrics {
			m.Observe(x, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(x, t)
		}

		if cfg.ValidateState && !finite(x) {
			err := StepError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system, invoking callback after each step with
// the new observation. The run stops early when callback returns false.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(x []float64, t float64) bool) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	dtSecs := cfg.Dt.Seconds()
	t := 0.0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.sys.Step(cfg.Dt)
		t += dtSecs

		x := r.sys.State()
		if cfg.ValidateState && !finite(x) {
			return StepError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}
		if !callback(x, t) {
			return nil
		}
	}

	return nil
}
