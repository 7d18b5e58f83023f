package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/chemlab/internal/controllers"
	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/metrics"
	"github.com/san-kum/chemlab/internal/sim"
)

// ThermostatParams carries every knob a registered thermostat may read.
type ThermostatParams struct {
	Temperature    float64
	Volume         float64
	RampRate       float64
	MaxTemperature float64
	Schedule       []controllers.Setpoint
}

type Registry struct {
	reactions   map[string]func(...kinetics.Option) (*kinetics.Reaction, error)
	thermostats map[string]func(ThermostatParams) (sim.Thermostat, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		reactions:   make(map[string]func(...kinetics.Option) (*kinetics.Reaction, error)),
		thermostats: make(map[string]func(ThermostatParams) (sim.Thermostat, error)),
	}

	r.reactions["reaction_1"] = func(opts ...kinetics.Option) (*kinetics.Reaction, error) {
		return kinetics.New(kinetics.DefaultNetwork(), opts...)
	}
	r.reactions["reaction_1_overlap"] = func(opts ...kinetics.Option) (*kinetics.Reaction, error) {
		opts = append([]kinetics.Option{kinetics.WithOverlap(true)}, opts...)
		return kinetics.New(kinetics.DefaultNetwork(), opts...)
	}

	r.thermostats["constant"] = func(p ThermostatParams) (sim.Thermostat, error) {
		return controllers.NewConstant(p.Temperature, p.Volume), nil
	}
	r.thermostats["ramp"] = func(p ThermostatParams) (sim.Thermostat, error) {
		return controllers.NewRamp(p.Temperature, p.RampRate, p.MaxTemperature, p.Volume), nil
	}
	r.thermostats["schedule"] = func(p ThermostatParams) (sim.Thermostat, error) {
		return controllers.NewSchedule(p.Schedule)
	}

	return r
}

func (r *Registry) GetReaction(name string, opts ...kinetics.Option) (*kinetics.Reaction, error) {
	fn, ok := r.reactions[name]
	if !ok {
		return nil, fmt.Errorf("unknown reaction: %s", name)
	}
	return fn(opts...)
}

func (r *Registry) GetThermostat(name string, params ThermostatParams) (sim.Thermostat, error) {
	fn, ok := r.thermostats[name]
	if !ok {
		return nil, fmt.Errorf("unknown thermostat: %s", name)
	}
	return fn(params)
}

func (r *Registry) ListReactions() []string {
	return sortedKeys(r.reactions)
}

func (r *Registry) ListThermostats() []string {
	return sortedKeys(r.thermostats)
}

func (r *Registry) DefaultMetrics(reaction *kinetics.Reaction) []sim.Metric {
	return []sim.Metric{
		metrics.NewMassBalance(),
		metrics.NewNonNegative(),
		metrics.NewYield(reaction.Network().Target),
		metrics.NewMeanTemperature(),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
