// Package material provides the species catalog used throughout chemlab.
//
// A catalog holds immutable species definitions keyed by name and ordered by
// a contiguous integer index:
//
//   - [Definition]: the constants supplied when a species is registered
//   - [Species]: an immutable, validated catalog entry
//   - [Catalog]: the name -> species registry
//   - [Material]: a mutable instance of a species (temperature, pressure,
//     solute/solvent role, charge and polarity overrides)
//
// # Example
//
//	cat := material.Builtin()
//	nacl, _ := cat.New("NaCl")
//	frags, _ := nacl.Dissociate()
//
// # Thread Safety
//
// Species values are safe to share. Catalog registration and Material
// mutation are NOT synchronized; build a catalog before sharing it and keep
// each Material owned by a single simulation.
package material
