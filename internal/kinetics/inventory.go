package kinetics

import (
	"fmt"
	"math"
)

// Inventory is the persisted form of a reaction's quantities keyed by label.
type Inventory struct {
	Network string             `json:"network" yaml:"network"`
	Amounts map[string]float64 `json:"amounts" yaml:"amounts"`
	InHand  map[string]float64 `json:"in_hand" yaml:"in_hand"`
}

// Inventory snapshots the current amounts and in-hand stock.
func (r *Reaction) Inventory() Inventory {
	inv := Inventory{
		Network: r.net.Name,
		Amounts: make(map[string]float64, len(r.n)),
		InHand:  make(map[string]float64, len(r.inHand)),
	}
	for i, v := range r.n {
		inv.Amounts[r.net.Labels[i]] = v
	}
	for i, v := range r.inHand {
		inv.InHand[r.net.Labels[i]] = v
	}
	return inv
}

// Restore loads amounts and in-hand stock from inv. Labels absent from inv
// are set to zero; unknown labels and inventories recorded for another
// network are rejected.
func (r *Reaction) Restore(inv Inventory) error {
	if inv.Network != "" && inv.Network != r.net.Name {
		return fmt.Errorf("%w: %q, want %q", ErrNetworkMismatch, inv.Network, r.net.Name)
	}
	n := make([]float64, len(r.n))
	for label, v := range inv.Amounts {
		i, err := r.net.Index(label)
		if err != nil {
			return err
		}
		if v < 0 || math.IsNaN(v) {
			return &StepError{Species: label, Amount: v, Wrapped: ErrNegativeAmount}
		}
		n[i] = v
	}

	inHand := make([]float64, len(r.inHand))
	for label, v := range inv.InHand {
		i, err := r.net.Index(label)
		if err != nil {
			return err
		}
		if i >= len(inHand) {
			return fmt.Errorf("%w: %s is not a reactant", ErrUnknownSpecies, label)
		}
		if v < 0 || math.IsNaN(v) {
			return &StepError{Species: label, Amount: v, Wrapped: ErrNegativeAmount}
		}
		inHand[i] = v
	}

	r.n = n
	r.inHand = inHand
	return nil
}
