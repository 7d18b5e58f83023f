package controllers

import (
	"math"

	"github.com/san-kum/chemlab/internal/sim"
)

// Ramp heats linearly from T0 at Rate K per unit time. Max caps the
// temperature when positive; a negative Rate cools and never goes below 1 K.
type Ramp struct {
	T0   float64
	Rate float64
	Max  float64
	V    float64
}

func NewRamp(t0, rate, max, v float64) *Ramp {
	return &Ramp{T0: t0, Rate: rate, Max: max, V: v}
}

func (r *Ramp) Compute(x sim.State, t float64) sim.Conditions {
	T := r.T0 + r.Rate*t
	if r.Max > 0 {
		T = math.Min(T, r.Max)
	}
	return sim.Conditions{Temperature: math.Max(T, 1), Volume: r.V}
}
