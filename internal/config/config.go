package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/chemlab/internal/controllers"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/kinetics"
)

const (
	DefaultDt             = 0.01
	DefaultDuration       = 5.0
	DefaultTemperature    = 300.0
	DefaultVolume         = 0.1
	DefaultRampRate       = 10.0
	DefaultMaxTemperature = 500.0
)

type Config struct {
	Reaction       string                 `yaml:"reaction" validate:"required"`
	Overlap        bool                   `yaml:"overlap"`
	Policy         string                 `yaml:"policy" validate:"omitempty,oneof=reject clamp"`
	Thermostat     string                 `yaml:"thermostat" validate:"required,oneof=constant ramp schedule"`
	Temperature    float64                `yaml:"temperature" validate:"gt=0"`
	Volume         float64                `yaml:"volume" validate:"gt=0"`
	RampRate       float64                `yaml:"ramp_rate"`
	MaxTemperature float64                `yaml:"max_temperature" validate:"gte=0"`
	Schedule       []controllers.Setpoint `yaml:"schedule,omitempty" validate:"required_if=Thermostat schedule"`
	Dt             float64                `yaml:"dt" validate:"gt=0"`
	Duration       float64                `yaml:"duration" validate:"gtefield=Dt"`
	InitAmounts    []float64              `yaml:"init_amounts,omitempty" validate:"omitempty,dive,gte=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Reaction:       "reaction_1",
		Policy:         "reject",
		Thermostat:     "constant",
		Temperature:    DefaultTemperature,
		Volume:         DefaultVolume,
		RampRate:       DefaultRampRate,
		MaxTemperature: DefaultMaxTemperature,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		InitAmounts:    []float64{1, 0, 0},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports the first offending field.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ReactionName resolves the registry key, folding Overlap into the name.
func (c *Config) ReactionName() string {
	if c.Overlap && c.Reaction == "reaction_1" {
		return "reaction_1_overlap"
	}
	return c.Reaction
}

func (c *Config) ThermostatParams() experiment.ThermostatParams {
	return experiment.ThermostatParams{
		Temperature:    c.Temperature,
		Volume:         c.Volume,
		RampRate:       c.RampRate,
		MaxTemperature: c.MaxTemperature,
		Schedule:       append([]controllers.Setpoint(nil), c.Schedule...),
	}
}

// Experiment converts the file representation into a runnable configuration.
func (c *Config) Experiment() (experiment.Config, error) {
	policy, err := kinetics.ParsePolicy(c.Policy)
	if err != nil {
		return experiment.Config{}, err
	}
	return experiment.Config{
		Reaction:    c.ReactionName(),
		Thermostat:  c.Thermostat,
		Policy:      policy,
		Params:      c.ThermostatParams(),
		InitAmounts: append([]float64(nil), c.InitAmounts...),
		Dt:          c.Dt,
		Duration:    c.Duration,
	}, nil
}
