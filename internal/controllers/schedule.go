package controllers

import (
	"fmt"
	"sort"

	"github.com/san-kum/chemlab/internal/sim"
)

// Setpoint takes effect at time At and holds until the next one.
type Setpoint struct {
	At          float64 `yaml:"at"`
	Temperature float64 `yaml:"temperature"`
	Volume      float64 `yaml:"volume"`
}

// Schedule is a piecewise-constant thermostat.
type Schedule struct {
	points []Setpoint
}

func NewSchedule(points []Setpoint) (*Schedule, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("schedule needs at least one setpoint")
	}
	sorted := append([]Setpoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	for _, p := range sorted {
		if p.Temperature <= 0 || p.Volume <= 0 {
			return nil, fmt.Errorf("setpoint at t=%g needs positive temperature and volume", p.At)
		}
	}
	return &Schedule{points: sorted}, nil
}

// Compute returns the latest setpoint at or before t; times before the
// first setpoint use the first.
func (s *Schedule) Compute(x sim.State, t float64) sim.Conditions {
	cur := s.points[0]
	for _, p := range s.points[1:] {
		if p.At > t {
			break
		}
		cur = p
	}
	return sim.Conditions{Temperature: cur.Temperature, Volume: cur.Volume}
}

func (s *Schedule) Setpoints() []Setpoint {
	return append([]Setpoint(nil), s.points...)
}
