package metrics

import (
	"math"

	"github.com/san-kum/chemlab/internal/sim"
)

// MassBalance reports the largest deviation of total moles from the first
// observed state.
type MassBalance struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassBalance() *MassBalance {
	return &MassBalance{name: "mass_balance"}
}

func (m *MassBalance) Name() string { return m.name }

func (m *MassBalance) Observe(x sim.State, c sim.Conditions, t float64) {
	total := x.Total()
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, math.Abs(total-m.initial))
}

func (m *MassBalance) Value() float64 { return m.maxDrift }

func (m *MassBalance) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// NonNegative is the fraction of observed states with every amount >= 0.
type NonNegative struct {
	name       string
	violations int
	samples    int
}

func NewNonNegative() *NonNegative {
	return &NonNegative{name: "non_negative"}
}

func (n *NonNegative) Name() string { return n.name }

func (n *NonNegative) Observe(x sim.State, c sim.Conditions, t float64) {
	n.samples++
	if !x.NonNegative() {
		n.violations++
	}
}

func (n *NonNegative) Value() float64 {
	if n.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(n.violations)/float64(n.samples)
}

func (n *NonNegative) Reset() {
	n.violations = 0
	n.samples = 0
}
