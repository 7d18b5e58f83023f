package metrics

import "github.com/san-kum/chemlab/internal/sim"

// Yield is the amount of the target species in the last observed state.
type Yield struct {
	name   string
	target int
	last   float64
}

func NewYield(target int) *Yield {
	return &Yield{name: "yield", target: target}
}

func (y *Yield) Name() string { return y.name }

func (y *Yield) Observe(x sim.State, c sim.Conditions, t float64) {
	if y.target < len(x) {
		y.last = x[y.target]
	}
}

func (y *Yield) Value() float64 { return y.last }

func (y *Yield) Reset() { y.last = 0 }
