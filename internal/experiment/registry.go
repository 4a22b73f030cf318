package experiment

import (
	"fmt"
	"sort"

	"github.com/roberte777/miniphys/internal/cloth"
	"github.com/roberte777/miniphys/internal/config"
	"github.com/roberte777/miniphys/internal/geom"
	"github.com/roberte777/miniphys/internal/metrics"
	"github.com/roberte777/miniphys/internal/physics"
	"github.com/roberte777/miniphys/internal/sim"
)

// Registry maps model names to constructors taking their section of the
// configuration.
type Registry struct {
	models map[string]func(*config.Config) (sim.System, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func(*config.Config) (sim.System, error)),
	}

	r.models["cloth"] = func(cfg *config.Config) (sim.System, error) {
		c := cfg.Cloth
		params := cloth.Params{
			Gravity:      c.Gravity,
			Damping:      c.Damping,
			Iterations:   c.Iterations,
			CutThreshold: c.CutThreshold,
		}
		return cloth.NewWithParams(c.Width, c.Height, c.Spacing, params)
	}
	r.models["pendulum"] = func(cfg *config.Config) (sim.System, error) {
		p := cfg.Pendulum
		return physics.NewPendulum(p.Length, p.AngleDeg, p.Damping), nil
	}
	r.models["projectile"] = func(cfg *config.Config) (sim.System, error) {
		p := cfg.Projectile
		return physics.NewProjectile(geom.V(p.X, p.Y), geom.V(p.VX, p.VY), geom.V(p.AX, p.AY)), nil
	}
	r.models["spring"] = func(cfg *config.Config) (sim.System, error) {
		s := cfg.Spring
		o := physics.NewOscillator(s.InitialPos, s.Frequency, s.DampingRatio)
		o.Target = s.Target
		return o, nil
	}

	return r
}

// Build constructs the system named by cfg.Model.
func (r *Registry) Build(cfg *config.Config) (sim.System, error) {
	fn, ok := r.models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", cfg.Model, r.ListModels())
	}
	return fn(cfg)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metric set appropriate for a built system.
func (r *Registry) DefaultMetrics(sys sim.System) []sim.Metric {
	ms := []sim.Metric{metrics.NewStability(1e6)}

	if mesh, ok := sys.(*cloth.Mesh); ok {
		ms = append(ms, metrics.NewMaxStretch(mesh))
	}
	if src, ok := sys.(metrics.EnergySource); ok {
		ms = append(ms, metrics.NewEnergyDrift(src))
	}

	return ms
}
