package sim

import (
	"context"
	"math"
	"testing"
	"time"
)

// decaySystem relaxes x toward zero; closed form e^{-t}.
type decaySystem struct {
	x float64
}

func (d *decaySystem) Step(dt time.Duration) {
	d.x -= d.x * dt.Seconds()
}

func (d *decaySystem) State() []float64 {
	return []float64{d.x}
}

type blowUpSystem struct {
	steps int
}

func (b *blowUpSystem) Step(dt time.Duration) { b.steps++ }

func (b *blowUpSystem) State() []float64 {
	if b.steps >= 3 {
		return []float64{math.NaN()}
	}
	return []float64{1.0}
}

type countMetric struct {
	count int
	sum   float64
}

func (c *countMetric) Name() string { return "mean" }
func (c *countMetric) Observe(x []float64, t float64) {
	c.count++
	c.sum += x[0]
}
func (c *countMetric) Value() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}
func (c *countMetric) Reset() { c.count, c.sum = 0, 0 }

func TestRunnerRun(t *testing.T) {
	r := NewRunner(&decaySystem{x: 1.0})

	cfg := Config{Dt: 100 * time.Millisecond, Duration: time.Second}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	final := result.States[len(result.States)-1][0]
	expected := math.Exp(-1)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("final state = %f, want ~%f", final, expected)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: time.Second}},
		{"negative dt", Config{Dt: -time.Millisecond, Duration: time.Second}},
		{"zero duration", Config{Dt: time.Millisecond, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(&decaySystem{x: 1.0})
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerValidateStateStopsEarly(t *testing.T) {
	r := NewRunner(&blowUpSystem{})

	cfg := Config{Dt: time.Millisecond, Duration: time.Second, ValidateState: true}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if len(result.States) >= 1000 {
		t.Error("run did not stop early on NaN")
	}
}

func TestRunnerMetrics(t *testing.T) {
	r := NewRunner(&decaySystem{x: 1.0})
	metric := &countMetric{}
	r.AddMetric(metric)

	cfg := Config{Dt: 100 * time.Millisecond, Duration: time.Second}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["mean"]; !ok {
		t.Error("metric missing from result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestRunnerCancellation(t *testing.T) {
	r := NewRunner(&decaySystem{x: 1.0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Dt: time.Millisecond, Duration: time.Second}
	result, err := r.Run(ctx, cfg)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil {
		t.Fatal("expected partial result alongside error")
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	r := NewRunner(&decaySystem{x: 1.0})

	calls := 0
	cfg := Config{Dt: time.Millisecond, Duration: time.Second}
	err := r.RunWithCallback(context.Background(), cfg, func(x []float64, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 callbacks, got %d", calls)
	}
}

func TestStepError(t *testing.T) {
	err := StepError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
