package sim

import "math"

// State is the molar amount vector of a reactor.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Total is the summed amount across species.
func (s State) Total() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

func (s State) NonNegative() bool {
	for _, v := range s {
		if v < 0 {
			return false
		}
	}
	return true
}

// Conditions are the externally imposed temperature (K) and volume for a step.
type Conditions struct {
	Temperature float64
	Volume      float64
}

// Reactor is advanced one step at a time by the simulator.
type Reactor interface {
	Update(T, V, dt float64) (float64, error)
	Amounts() []float64
	SetAmounts(x []float64) error
	Reset()
}

// Thermostat chooses the conditions for the next step.
type Thermostat interface {
	Compute(x State, t float64) Conditions
}

type Metric interface {
	Name() string
	Observe(x State, c Conditions, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, c Conditions, reward, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      5.0,
		ValidateState: true,
	}
}

// Steps is the number of updates a run of cfg performs.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	States      []State
	Conditions  []Conditions
	Rewards     []float64
	Times       []float64
	Metrics     map[string]float64
	TotalReward float64
	StepsTaken  int
}

// Final returns the last recorded state.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
