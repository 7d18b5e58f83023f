package spectra

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("spectra: concentration and peak set counts differ")
	ErrUnderdetermined   = errors.New("spectra: fewer samples than species")
	ErrInvalidPeaks      = errors.New("spectra: invalid peak set")
)

// Decompose returns the unclipped contribution of every species over axis.
func Decompose(axis, conc []float64, sets []Set) ([][]float64, error) {
	if len(conc) != len(sets) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(conc), len(sets))
	}
	out := make([][]float64, len(sets))
	for i, set := range sets {
		curve := make([]float64, len(axis))
		for k, x := range axis {
			curve[k] = conc[i] * set.At(x)
		}
		out[i] = curve
	}
	return out, nil
}

// Total sums every species' contribution without clipping. This is the
// curve Unmix expects.
func Total(axis, conc []float64, sets []Set) ([]float64, error) {
	parts, err := Decompose(axis, conc, sets)
	if err != nil {
		return nil, err
	}
	total := make([]float64, len(axis))
	for _, p := range parts {
		floats.Add(total, p)
	}
	return total, nil
}

// Synthesize sums every species' contribution and clips the total to [0, 1].
func Synthesize(axis, conc []float64, sets []Set) ([]float64, error) {
	total, err := Total(axis, conc, sets)
	if err != nil {
		return nil, err
	}
	for k, v := range total {
		total[k] = min(max(v, 0), 1)
	}
	return total, nil
}

// PeakReport is the sparse view of one species' peaks.
type PeakReport struct {
	Label       string    `json:"label"`
	Wavelengths []float64 `json:"wavelengths"`
	Heights     []float64 `json:"heights"`
}

// PeakList reports every peak's wavelength (nm) and concentration-scaled height.
func PeakList(conc []float64, sets []Set, labels []string) ([]PeakReport, error) {
	if len(conc) != len(sets) || len(labels) != len(sets) {
		return nil, fmt.Errorf("%w: %d concentrations, %d sets, %d labels",
			ErrDimensionMismatch, len(conc), len(sets), len(labels))
	}
	out := make([]PeakReport, len(sets))
	for i, set := range sets {
		r := PeakReport{
			Label:       labels[i],
			Wavelengths: make([]float64, len(set)),
			Heights:     make([]float64, len(set)),
		}
		for j, p := range set {
			r.Wavelengths[j] = p.Wavelength()
			r.Heights[j] = conc[i] * p.Height
		}
		out[i] = r
	}
	return out, nil
}

// Unmix estimates per-species concentrations from an unclipped absorbance
// curve (see Total) by linear least squares. Clipped curves bias the
// estimate once any sample saturates.
func Unmix(axis, absorbance []float64, sets []Set) ([]float64, error) {
	if len(axis) != len(absorbance) {
		return nil, fmt.Errorf("%w: axis %d, absorbance %d", ErrDimensionMismatch, len(axis), len(absorbance))
	}
	if len(axis) < len(sets) {
		return nil, ErrUnderdetermined
	}

	basis := mat.NewDense(len(axis), len(sets), nil)
	for k, x := range axis {
		for i, set := range sets {
			basis.Set(k, i, set.At(x))
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(basis, mat.NewVecDense(len(absorbance), absorbance)); err != nil {
		return nil, fmt.Errorf("spectra: unmix: %w", err)
	}
	return c.RawVector().Data, nil
}
