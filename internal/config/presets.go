package config

var Presets = map[string]map[string]*Config{
	"cloth": {
		"small": {
			Model: "cloth", Dt: DefaultDt, Duration: 10.0,
			Cloth: ClothConfig{Width: 10, Height: 10, Spacing: 5.0, Gravity: 987.0, Damping: 0.99, Iterations: 2, CutThreshold: 10.0},
		},
		"large": {
			Model: "cloth", Dt: DefaultDt, Duration: 10.0,
			Cloth: ClothConfig{Width: 30, Height: 20, Spacing: 40.0, Gravity: 987.0, Damping: 0.99, Iterations: 2, CutThreshold: 30.0},
		},
		"stiff": {
			Model: "cloth", Dt: DefaultDt, Duration: 10.0,
			Cloth: ClothConfig{Width: 20, Height: 15, Spacing: 5.0, Gravity: 987.0, Damping: 0.98, Iterations: 6, CutThreshold: 10.0},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Dt: DefaultDt, Duration: 20.0,
			Pendulum: PendulumConfig{Length: 1.0, AngleDeg: 12.0, Damping: 0.0},
		},
		"large": {
			Model: "pendulum", Dt: DefaultDt, Duration: 20.0,
			Pendulum: PendulumConfig{Length: 1.0, AngleDeg: 140.0, Damping: 0.0},
		},
		"damped": {
			Model: "pendulum", Dt: DefaultDt, Duration: 30.0,
			Pendulum: PendulumConfig{Length: 1.0, AngleDeg: 60.0, Damping: 0.5},
		},
	},
	"projectile": {
		"lob": {
			Model: "projectile", Dt: DefaultDt, Duration: 5.0,
			Projectile: ProjectileConfig{VX: 10, VY: 20, AY: -9.81},
		},
		"flat": {
			Model: "projectile", Dt: DefaultDt, Duration: 3.0,
			Projectile: ProjectileConfig{VX: 30, VY: 5, AY: -9.81},
		},
	},
	"spring": {
		"settle": {
			Model: "spring", Dt: DefaultDt, Duration: 5.0,
			Spring: SpringConfig{Frequency: 6.0, DampingRatio: 1.0, Target: 1.0},
		},
		"bounce": {
			Model: "spring", Dt: DefaultDt, Duration: 5.0,
			Spring: SpringConfig{Frequency: 6.0, DampingRatio: 0.2, Target: 1.0},
		},
		"sluggish": {
			Model: "spring", Dt: DefaultDt, Duration: 10.0,
			Spring: SpringConfig{Frequency: 3.0, DampingRatio: 2.5, Target: 1.0},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
