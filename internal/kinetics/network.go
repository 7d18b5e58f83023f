package kinetics

import (
	"fmt"
	"math"
)

// R is the gas constant in kPa*m^3/(mol*K), equivalently kJ/(mol*K).
const R = 0.008314462618

// Step is one irreversible elementary reaction From -> To with an Arrhenius
// rate constant k = Prefactor * exp(-Activation / (R*T)).
type Step struct {
	Name       string  `yaml:"name"`
	From       int     `yaml:"from"`
	To         int     `yaml:"to"`
	Prefactor  float64 `yaml:"prefactor"`
	Activation float64 `yaml:"activation"`
}

// K evaluates the rate constant at temperature T (K).
func (s Step) K(T float64) float64 {
	return s.Prefactor * math.Exp(-s.Activation/(R*T))
}

// Network describes the species and elementary steps a Reaction tracks.
type Network struct {
	Name   string
	Labels []string
	Steps  []Step

	// InHand is the initial amount (mol) available to add, one entry per
	// reactant; reactants are the leading species of Labels.
	InHand []float64

	// NMax is the per-species capacity (mol) used by callers to normalize
	// observations. The engine does not enforce it.
	NMax []float64

	// Target is the index of the species whose increase is the reward.
	Target int
}

// DefaultNetwork returns A -> B, B -> A, B -> C.
func DefaultNetwork() Network {
	return Network{
		Name:   "reaction_1",
		Labels: []string{"[A]", "[B]", "[C]"},
		Steps: []Step{
			{Name: "A->B", From: 0, To: 1, Prefactor: 0.5, Activation: 1.0},
			{Name: "B->A", From: 1, To: 0, Prefactor: 10.0, Activation: 20.0},
			{Name: "B->C", From: 1, To: 2, Prefactor: 1.0, Activation: 5.0},
		},
		InHand: []float64{1.0, 1.0},
		NMax:   []float64{2.0, 2.0, 2.0},
		Target: 2,
	}
}

// Validate checks the network is internally consistent.
func (n Network) Validate() error {
	species := len(n.Labels)
	if species == 0 {
		return fmt.Errorf("%w: no species", ErrInvalidNetwork)
	}
	if len(n.NMax) != species {
		return fmt.Errorf("%w: %d labels but %d capacities", ErrInvalidNetwork, species, len(n.NMax))
	}
	if len(n.InHand) > species {
		return fmt.Errorf("%w: %d reactants for %d species", ErrInvalidNetwork, len(n.InHand), species)
	}
	for i, v := range n.InHand {
		if v < 0 {
			return fmt.Errorf("%w: negative in-hand amount for %s", ErrInvalidNetwork, n.Labels[i])
		}
	}
	if n.Target < 0 || n.Target >= species {
		return fmt.Errorf("%w: target index %d", ErrInvalidNetwork, n.Target)
	}
	for _, s := range n.Steps {
		if s.From < 0 || s.From >= species || s.To < 0 || s.To >= species {
			return fmt.Errorf("%w: step %s references species outside [0,%d)", ErrInvalidNetwork, s.Name, species)
		}
		if s.From == s.To {
			return fmt.Errorf("%w: step %s is a self-loop", ErrInvalidNetwork, s.Name)
		}
		if s.Prefactor <= 0 || s.Activation <= 0 {
			return fmt.Errorf("%w: step %s needs positive prefactor and activation energy", ErrInvalidNetwork, s.Name)
		}
	}
	return nil
}

// Index returns the position of label in the network.
func (n Network) Index(label string) (int, error) {
	for i, l := range n.Labels {
		if l == label {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownSpecies, label)
}

func (n Network) clone() Network {
	c := n
	c.Labels = append([]string(nil), n.Labels...)
	c.Steps = append([]Step(nil), n.Steps...)
	c.InHand = append([]float64(nil), n.InHand...)
	c.NMax = append([]float64(nil), n.NMax...)
	return c
}
