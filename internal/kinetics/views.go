package kinetics

import (
	"strings"

	"github.com/san-kum/chemlab/internal/spectra"
)

// DefaultReportingTemperature is the temperature (K) drivers use for
// pressure reports when they have no better value.
const DefaultReportingTemperature = 300.0

// Concentration returns n / (V * 1000) for every species.
func (r *Reaction) Concentration(V float64) ([]float64, error) {
	if err := checkVolume(V); err != nil {
		return nil, err
	}
	return r.concentration(V), nil
}

func (r *Reaction) concentration(V float64) []float64 {
	scale := V * litresPerVolume
	c := make([]float64, len(r.n))
	for i, v := range r.n {
		c[i] = v / scale
	}
	return c
}

// PartialPressure returns n*R*T/V for every species.
func (r *Reaction) PartialPressure(V, T float64) ([]float64, error) {
	if err := checkConditions(T, V); err != nil {
		return nil, err
	}
	p := make([]float64, len(r.n))
	for i, v := range r.n {
		p[i] = v * R * T / V
	}
	return p, nil
}

// TotalPressure sums the partial pressures.
func (r *Reaction) TotalPressure(V, T float64) (float64, error) {
	p, err := r.PartialPressure(V, T)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range p {
		total += v
	}
	return total, nil
}

// Axis returns the normalized wavelength axis used by the spectral views.
func (r *Reaction) Axis() []float64 { return append([]float64(nil), r.axis...) }

// Spectra returns the peak sets chosen at construction.
func (r *Reaction) Spectra() []spectra.Set {
	out := make([]spectra.Set, len(r.spectra))
	for i, s := range r.spectra {
		out[i] = append(spectra.Set(nil), s...)
	}
	return out
}

// Spectrum synthesizes the absorbance curve, clipped to [0, 1].
func (r *Reaction) Spectrum(V float64) ([]float64, error) {
	if err := checkVolume(V); err != nil {
		return nil, err
	}
	return spectra.Synthesize(r.axis, r.concentration(V), r.spectra)
}

// Unmix recovers concentrations (mol/L) from the unclipped spectrum, so the
// estimate stays exact when the clipped curve saturates.
func (r *Reaction) Unmix(V float64) ([]float64, error) {
	if err := checkVolume(V); err != nil {
		return nil, err
	}
	total, err := spectra.Total(r.axis, r.concentration(V), r.spectra)
	if err != nil {
		return nil, err
	}
	return spectra.Unmix(r.axis, total, r.spectra)
}

// SpectrumComponents returns each species' unclipped curve.
func (r *Reaction) SpectrumComponents(V float64) ([][]float64, error) {
	if err := checkVolume(V); err != nil {
		return nil, err
	}
	return spectra.Decompose(r.axis, r.concentration(V), r.spectra)
}

// SpectrumPeaks reports each species' peak wavelengths (nm) and heights.
func (r *Reaction) SpectrumPeaks(V float64) ([]spectra.PeakReport, error) {
	if err := checkVolume(V); err != nil {
		return nil, err
	}
	labels := make([]string, len(r.net.Labels))
	for i, l := range r.net.Labels {
		labels[i] = strings.Trim(l, "[]")
	}
	return spectra.PeakList(r.concentration(V), r.spectra, labels)
}
