package controllers

import "github.com/san-kum/chemlab/internal/sim"

// Constant holds the reactor at fixed conditions.
type Constant struct {
	T float64
	V float64
}

func NewConstant(T, V float64) *Constant {
	return &Constant{T: T, V: V}
}

func (c *Constant) Compute(x sim.State, t float64) sim.Conditions {
	return sim.Conditions{Temperature: c.T, Volume: c.V}
}
