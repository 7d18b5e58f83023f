// Package kinetics advances a small network of elementary reactions under
// Arrhenius rate laws and exposes derived physical views.
//
// The engine tracks molar amounts in a fixed-order vector (one slot per
// species label of the [Network]). Every [Reaction.Update] call takes an
// explicit time step:
//
//	C      = n / (V * 1000)
//	rate_j = k_j(T) * C[from_j] * dt
//	n     += dC * V * 1000
//
// and returns the molar increase of the network's target species.
//
// # Example
//
//	rx, _ := kinetics.New(kinetics.DefaultNetwork())
//	_ = rx.SetAmounts([]float64{1, 0, 0})
//	reward, err := rx.Update(300, 0.1, 0.01)
//
// # Thread Safety
//
// A Reaction is owned by a single episode and is NOT safe for concurrent
// use; callers serialize Update calls.
package kinetics
