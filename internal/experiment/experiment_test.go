package experiment

import (
	"context"
	"testing"

	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/config"
)

func TestRegistryBuild(t *testing.T) {
	registry := NewRegistry()

	for _, model := range registry.ListModels() {
		t.Run(model, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Model = model

			sys, err := registry.Build(cfg)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if len(sys.State()) == 0 {
				t.Error("built system has empty state")
			}
		})
	}
}

func TestRegistryUnknownModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "inverted_triple_pendulum"

	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestRegistryInvalidClothConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cloth.Width = 0

	if _, err := NewRegistry().Build(cfg); err == nil {
		t.Error("expected error for zero-width cloth")
	}
}

func TestDefaultMetrics(t *testing.T) {
	registry := NewRegistry()

	cfg := config.DefaultConfig()
	cfg.Model = "cloth"
	sys, err := registry.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}

	names := make(map[string]bool)
	for _, m := range registry.DefaultMetrics(sys) {
		names[m.Name()] = true
	}
	if !names["stability"] || !names["max_stretch"] {
		t.Errorf("cloth metrics = %v, want stability and max_stretch", names)
	}

	cfg.Model = "pendulum"
	sys, err = registry.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	names = make(map[string]bool)
	for _, m := range registry.DefaultMetrics(sys) {
		names[m.Name()] = true
	}
	if !names["energy_drift"] {
		t.Errorf("pendulum metrics = %v, want energy_drift", names)
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model = "cloth"
	cfg.Cloth.Width = 5
	cfg.Cloth.Height = 5
	cfg.Duration = 1.0

	exp, err := New(cfg)
	if err != nil {
		t.Fatalf("new experiment failed: %v", err)
	}

	if _, ok := exp.System().(*cloth.Mesh); !ok {
		t.Fatalf("system is %T, want *cloth.Mesh", exp.System())
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 60 {
		t.Errorf("steps = %d, want 60", result.StepsTaken)
	}
	if len(result.Errors) != 0 {
		t.Errorf("run recorded errors: %v", result.Errors)
	}
	if result.Metrics["max_stretch"] <= 0 {
		t.Errorf("max_stretch = %f, want positive", result.Metrics["max_stretch"])
	}
}
