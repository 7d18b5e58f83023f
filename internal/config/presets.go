package config

import (
	"sort"

	"github.com/san-kum/chemlab/internal/controllers"
)

var Presets = map[string]map[string]*Config{
	"reaction_1": {
		"room": {
			Reaction: "reaction_1", Policy: "reject", Thermostat: "constant",
			Temperature: 300, Volume: 0.1, Dt: 0.01, Duration: 5.0,
			InitAmounts: []float64{1, 0, 0},
		},
		"hot": {
			Reaction: "reaction_1", Policy: "reject", Thermostat: "constant",
			Temperature: 450, Volume: 0.1, Dt: 0.01, Duration: 5.0,
			InitAmounts: []float64{1, 0, 0},
		},
		"ramp": {
			Reaction: "reaction_1", Policy: "reject", Thermostat: "ramp",
			Temperature: 300, RampRate: 40, MaxTemperature: 500, Volume: 0.1, Dt: 0.01, Duration: 10.0,
			InitAmounts: []float64{1, 0, 0},
		},
		"quench": {
			Reaction: "reaction_1", Policy: "reject", Thermostat: "schedule",
			Temperature: 400, Volume: 0.1, Dt: 0.01, Duration: 10.0,
			Schedule: []controllers.Setpoint{
				{At: 0, Temperature: 400, Volume: 0.1},
				{At: 5, Temperature: 280, Volume: 0.1},
			},
			InitAmounts: []float64{1, 0, 0},
		},
		"coarse": {
			Reaction: "reaction_1", Policy: "clamp", Thermostat: "constant",
			Temperature: 300, Volume: 0.001, Dt: 0.5, Duration: 20.0,
			InitAmounts: []float64{1, 1, 0},
		},
	},
	"reaction_1_overlap": {
		"room": {
			Reaction: "reaction_1", Overlap: true, Policy: "reject", Thermostat: "constant",
			Temperature: 300, Volume: 0.1, Dt: 0.01, Duration: 5.0,
			InitAmounts: []float64{1, 0, 0},
		},
	},
}

func GetPreset(reaction, preset string) *Config {
	reactionPresets, ok := Presets[reaction]
	if !ok {
		return nil
	}
	cfg, ok := reactionPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(reaction string) []string {
	reactionPresets, ok := Presets[reaction]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(reactionPresets))
	for name := range reactionPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
