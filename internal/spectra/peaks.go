// Package spectra synthesizes simulated absorbance spectra from per-species
// Gaussian peak parameters.
//
// The wavelength axis is normalized to [0, 1]; peak reports map it back to
// nanometres with an affine transform (200 nm + 600 nm * x).
package spectra

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// Points is the number of samples on the normalized wavelength axis.
	Points = 200

	// WavelengthMin and WavelengthRange map the normalized axis to nm.
	WavelengthMin   = 200.0
	WavelengthRange = 600.0

	// MaxPeaks is the most peaks a single species contributes.
	MaxPeaks = 3
)

// Peak is a single Gaussian absorbance band.
type Peak struct {
	Height float64 `json:"height" yaml:"height"`
	Center float64 `json:"center" yaml:"center"`
	Width  float64 `json:"width" yaml:"width"`
}

// At evaluates the peak at unit concentration.
func (p Peak) At(x float64) float64 {
	z := (x - p.Center) / p.Width
	return p.Height * math.Exp(-0.5*z*z)
}

// Wavelength is the peak centre in nm.
func (p Peak) Wavelength() float64 {
	return p.Center*WavelengthRange + WavelengthMin
}

// Set is the group of peaks one species contributes.
type Set []Peak

// At sums every peak of the set at unit concentration.
func (s Set) At(x float64) float64 {
	sum := 0.0
	for _, p := range s {
		sum += p.At(x)
	}
	return sum
}

// Validate checks that the set has between one and MaxPeaks peaks, each
// with a positive width and finite height and centre.
func (s Set) Validate() error {
	if len(s) == 0 || len(s) > MaxPeaks {
		return fmt.Errorf("%w: %d peaks, want 1-%d", ErrInvalidPeaks, len(s), MaxPeaks)
	}
	for i, p := range s {
		if !finite(p.Height) || !finite(p.Center) {
			return fmt.Errorf("%w: peak %d has non-finite height or centre", ErrInvalidPeaks, i)
		}
		if !(p.Width > 0) || math.IsInf(p.Width, 0) {
			return fmt.Errorf("%w: peak %d has width %g", ErrInvalidPeaks, i, p.Width)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Peak library. S1, S3 and S5 are well separated; S6, S7 and S3_3 overlap.
var (
	S1 = Set{{Height: 1.0, Center: 0.1, Width: 0.04}}
	S3 = Set{{Height: 0.8, Center: 0.45, Width: 0.03}, {Height: 0.5, Center: 0.55, Width: 0.03}}
	S5 = Set{{Height: 1.0, Center: 0.85, Width: 0.04}}

	S6   = Set{{Height: 1.0, Center: 0.3, Width: 0.12}, {Height: 0.4, Center: 0.6, Width: 0.1}}
	S7   = Set{{Height: 0.9, Center: 0.4, Width: 0.12}, {Height: 0.6, Center: 0.7, Width: 0.1}}
	S3_3 = Set{{Height: 0.7, Center: 0.35, Width: 0.1}, {Height: 0.5, Center: 0.55, Width: 0.1}, {Height: 0.6, Center: 0.75, Width: 0.1}}
)

// Library indexes the built-in peak sets by name.
var Library = map[string]Set{
	"S1":   S1,
	"S3":   S3,
	"S5":   S5,
	"S6":   S6,
	"S7":   S7,
	"S3_3": S3_3,
}

// NonOverlapping returns peak sets for three species that can be told
// apart by inspection.
func NonOverlapping() []Set {
	return []Set{clone(S1), clone(S3), clone(S5)}
}

// Overlapping returns peak sets for three species whose bands overlap.
func Overlapping() []Set {
	return []Set{clone(S6), clone(S7), clone(S3_3)}
}

func clone(s Set) Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Axis returns n evenly spaced points spanning [0, 1].
func Axis(n int) []float64 {
	return floats.Span(make([]float64, n), 0, 1)
}
