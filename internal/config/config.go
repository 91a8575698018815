package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPopulation = 1000.0
	DefaultInfected   = 1.0
	DefaultBeta       = 0.5
	DefaultGamma      = 0.1
	DefaultDays       = 75
	DefaultTMax       = 75.0
	DefaultSamples    = 1000
)

type Config struct {
	Population      float64      `yaml:"population"`
	InitialInfected float64      `yaml:"initial_infected"`
	Beta            float64      `yaml:"beta"`
	Gamma           float64      `yaml:"gamma"`
	Days            int          `yaml:"days"`
	TMax            float64      `yaml:"t_max"`
	Samples         int          `yaml:"samples"`
	Integrator      string       `yaml:"integrator"`
	Policy          PolicyConfig `yaml:"policy"`
}

type PolicyConfig struct {
	Name      string  `yaml:"name"`
	Threshold float64 `yaml:"threshold"`
	Reduction float64 `yaml:"reduction"`
}

func DefaultConfig() *Config {
	return &Config{
		Population:      DefaultPopulation,
		InitialInfected: DefaultInfected,
		Beta:            DefaultBeta,
		Gamma:           DefaultGamma,
		Days:            DefaultDays,
		TMax:            DefaultTMax,
		Samples:         DefaultSamples,
		Integrator:      "rk45",
		Policy:          PolicyConfig{Name: "none"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
