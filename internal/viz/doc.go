// Package viz renders a running reaction in the terminal.
//
// [Model] is a Bubble Tea program that steps a kinetics engine under a
// thermostat and draws the mixture's absorbance spectrum on a Braille
// [Canvas], with per-species fill bars and a reward history chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the reaction
//	1-9   - Add reactant from stock
//	Up/K  - Raise temperature offset by 10 K
//	Down/J- Lower temperature offset by 10 K
//	[ ]   - Step back/forward through recorded frames
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
