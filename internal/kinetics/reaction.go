package kinetics

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/san-kum/chemlab/internal/spectra"
)

// litresPerVolume converts the caller's volume unit (m^3) to litres.
const litresPerVolume = 1000.0

// Policy selects how Update handles a step that would make an amount negative.
type Policy int

const (
	// Reject discards the step and returns a *StepError.
	Reject Policy = iota
	// Clamp pins negative amounts to zero and counts the event.
	Clamp
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Clamp:
		return "clamp"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "reject":
		return Reject, nil
	case "clamp":
		return Clamp, nil
	}
	return Reject, fmt.Errorf("unknown overshoot policy: %s", s)
}

type Option func(*Reaction)

// WithOverlap picks the overlapping (true) or separated (false) peak library.
func WithOverlap(overlap bool) Option {
	return func(r *Reaction) {
		if overlap {
			r.spectra = spectra.Overlapping()
		} else {
			r.spectra = spectra.NonOverlapping()
		}
	}
}

// WithSpectra sets explicit per-species peak sets.
func WithSpectra(sets []spectra.Set) Option {
	return func(r *Reaction) {
		r.spectra = append([]spectra.Set(nil), sets...)
	}
}

func WithPolicy(p Policy) Option {
	return func(r *Reaction) { r.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Reaction) {
		if l != nil {
			r.logger = l
		}
	}
}

// Reaction is the kinetics engine for one episode.
type Reaction struct {
	net     Network
	inHand  []float64
	n       []float64
	rate    []float64
	spectra []spectra.Set
	axis    []float64
	policy  Policy
	clamped int
	logger  *slog.Logger
}

// New builds a reaction over net. Spectral parameters are chosen once here
// and survive Reset. Three-species networks default to the non-overlapping
// library; other networks must supply WithSpectra.
func New(net Network, opts ...Option) (*Reaction, error) {
	if err := net.Validate(); err != nil {
		return nil, err
	}
	r := &Reaction{
		net:    net.clone(),
		axis:   spectra.Axis(spectra.Points),
		logger: slog.New(slog.DiscardHandler),
	}
	if len(net.Labels) == 3 {
		r.spectra = spectra.NonOverlapping()
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.spectra) != len(net.Labels) {
		return nil, fmt.Errorf("%w: %d peak sets for %d species", ErrDimensionMismatch, len(r.spectra), len(net.Labels))
	}
	for i, set := range r.spectra {
		if err := set.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpectra, net.Labels[i], err)
		}
	}
	r.Reset()
	return r, nil
}

// Reset zeroes the amounts and restores the in-hand reactants.
func (r *Reaction) Reset() {
	r.inHand = append([]float64(nil), r.net.InHand...)
	r.n = make([]float64, len(r.net.Labels))
	r.rate = make([]float64, len(r.net.Steps))
	r.clamped = 0
}

// Update advances the network by dt at temperature T and volume V and
// returns the molar increase of the target species.
func (r *Reaction) Update(T, V, dt float64) (float64, error) {
	if err := checkConditions(T, V); err != nil {
		return 0, err
	}
	if !positive(dt) {
		return 0, fmt.Errorf("%w: got %g", ErrNonPositiveTimestep, dt)
	}

	scale := V * litresPerVolume
	dC := make([]float64, len(r.n))
	rate := make([]float64, len(r.net.Steps))
	for j, s := range r.net.Steps {
		rate[j] = s.K(T) * (r.n[s.From] / scale) * dt
		dC[s.From] -= rate[j]
		dC[s.To] += rate[j]
	}

	next := make([]float64, len(r.n))
	for i := range r.n {
		next[i] = r.n[i] + dC[i]*scale
		if next[i] >= 0 {
			continue
		}
		if r.policy == Reject {
			r.logger.Debug("rejecting overshooting step",
				slog.String("species", r.net.Labels[i]),
				slog.Float64("amount", next[i]),
				slog.Float64("dt", dt))
			return 0, &StepError{Species: r.net.Labels[i], Amount: next[i], Wrapped: ErrNegativeAmount}
		}
		r.logger.Warn("clamping negative amount",
			slog.String("species", r.net.Labels[i]),
			slog.Float64("amount", next[i]))
		next[i] = 0
		r.clamped++
	}

	r.n = next
	r.rate = rate
	return dC[r.net.Target] * scale, nil
}

// Add moves up to amount mol of reactant i from in-hand stock into the
// reaction and returns the amount actually moved.
func (r *Reaction) Add(i int, amount float64) (float64, error) {
	if i < 0 || i >= len(r.inHand) {
		return 0, fmt.Errorf("%w: reactant index %d", ErrUnknownSpecies, i)
	}
	if amount < 0 || math.IsNaN(amount) {
		return 0, fmt.Errorf("%w: cannot add %g mol", ErrNegativeAmount, amount)
	}
	moved := min(amount, r.inHand[i])
	r.inHand[i] -= moved
	r.n[i] += moved
	return moved, nil
}

// SetAmounts overwrites the molar amount vector.
func (r *Reaction) SetAmounts(x []float64) error {
	if len(x) != len(r.n) {
		return fmt.Errorf("%w: got %d amounts, want %d", ErrDimensionMismatch, len(x), len(r.n))
	}
	for i, v := range x {
		if v < 0 || math.IsNaN(v) {
			return &StepError{Species: r.net.Labels[i], Amount: v, Wrapped: ErrNegativeAmount}
		}
	}
	copy(r.n, x)
	return nil
}

func (r *Reaction) Amounts() []float64      { return append([]float64(nil), r.n...) }
func (r *Reaction) AmountInHand() []float64 { return append([]float64(nil), r.inHand...) }
func (r *Reaction) Rates() []float64        { return append([]float64(nil), r.rate...) }
func (r *Reaction) Labels() []string        { return append([]string(nil), r.net.Labels...) }
func (r *Reaction) NMax() []float64         { return append([]float64(nil), r.net.NMax...) }
func (r *Reaction) Network() Network        { return r.net.clone() }
func (r *Reaction) Policy() Policy          { return r.policy }

// Clamped counts amounts pinned to zero since the last Reset.
func (r *Reaction) Clamped() int { return r.clamped }

// RateConstants evaluates every step's k at temperature T.
func (r *Reaction) RateConstants(T float64) ([]float64, error) {
	if !positive(T) {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveTemperature, T)
	}
	k := make([]float64, len(r.net.Steps))
	for j, s := range r.net.Steps {
		k[j] = s.K(T)
	}
	return k, nil
}

func checkConditions(T, V float64) error {
	if !positive(T) {
		return fmt.Errorf("%w: got %g", ErrNonPositiveTemperature, T)
	}
	return checkVolume(V)
}

func checkVolume(V float64) error {
	if !positive(V) {
		return fmt.Errorf("%w: got %g", ErrNonPositiveVolume, V)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
