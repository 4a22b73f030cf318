package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 10.0
)

// Config selects a model and its initial conditions. Dt and Duration are in
// seconds.
type Config struct {
	Model      string           `yaml:"model"`
	Dt         float64          `yaml:"dt"`
	Duration   float64          `yaml:"duration"`
	Cloth      ClothConfig      `yaml:"cloth"`
	Pendulum   PendulumConfig   `yaml:"pendulum"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Spring     SpringConfig     `yaml:"spring"`
}

type ClothConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Spacing      float64 `yaml:"spacing"`
	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	Iterations   int     `yaml:"iterations"`
	CutThreshold float64 `yaml:"cut_threshold"`
}

type PendulumConfig struct {
	Length   float64 `yaml:"length"`
	AngleDeg float64 `yaml:"angle_deg"`
	Damping  float64 `yaml:"damping"`
}

type ProjectileConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	AX float64 `yaml:"ax"`
	AY float64 `yaml:"ay"`
}

type SpringConfig struct {
	Frequency    float64 `yaml:"frequency"`
	DampingRatio float64 `yaml:"damping_ratio"`
	Target       float64 `yaml:"target"`
	InitialPos   float64 `yaml:"initial_pos"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    "cloth",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Cloth: ClothConfig{
			Width:        30,
			Height:       20,
			Spacing:      5.0,
			Gravity:      987.0,
			Damping:      0.99,
			Iterations:   2,
			CutThreshold: 10.0,
		},
		Pendulum: PendulumConfig{
			Length:   1.0,
			AngleDeg: 30.0,
			Damping:  0.1,
		},
		Projectile: ProjectileConfig{
			VX: 10.0,
			VY: 20.0,
			AY: -9.81,
		},
		Spring: SpringConfig{
			Frequency:    6.0,
			DampingRatio: 0.5,
			Target:       1.0,
		},
	}
}

// Load reads a yaml config from path, layering it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
