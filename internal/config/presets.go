package config

import "sort"

// Presets are named scenarios covering the reference parameterization and
// the corners the sensitivity dashboard sweeps over.
var Presets = map[string]*Config{
	"baseline": {
		Population: 1000, InitialInfected: 1, Beta: 0.5, Gamma: 0.1,
		Days: 75, TMax: 75, Samples: 1000, Integrator: "rk45",
		Policy: PolicyConfig{Name: "none"},
	},
	"mild": {
		Population: 1000, InitialInfected: 1, Beta: 0.2, Gamma: 0.1,
		Days: 150, TMax: 150, Samples: 1000, Integrator: "rk45",
		Policy: PolicyConfig{Name: "none"},
	},
	"severe": {
		Population: 1000, InitialInfected: 1, Beta: 1.2, Gamma: 0.08,
		Days: 60, TMax: 60, Samples: 1000, Integrator: "rk45",
		Policy: PolicyConfig{Name: "none"},
	},
	"slow-recovery": {
		Population: 1000, InitialInfected: 1, Beta: 0.5, Gamma: 0.05,
		Days: 100, TMax: 100, Samples: 1000, Integrator: "rk45",
		Policy: PolicyConfig{Name: "none"},
	},
	"classroom": {
		Population: 20, InitialInfected: 1, Beta: 0.3, Gamma: 0.15,
		Days: 30, TMax: 30, Samples: 300, Integrator: "rk45",
		Policy: PolicyConfig{Name: "none"},
	},
	"lockdown": {
		Population: 1000, InitialInfected: 1, Beta: 0.5, Gamma: 0.1,
		Days: 75, TMax: 75, Samples: 1000, Integrator: "rk45",
		Policy: PolicyConfig{Name: "lockdown", Threshold: 50, Reduction: 0.6},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
