package material

import (
	"fmt"
	"slices"
)

// Phase is the nominal phase of a species at room conditions.
type Phase string

const (
	Solid  Phase = "s"
	Liquid Phase = "l"
	Gas    Phase = "g"
)

func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}

// ParsePhase accepts either the short ("s") or long ("solid") form.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "s", "solid":
		return Solid, nil
	case "l", "liquid":
		return Liquid, nil
	case "g", "gas":
		return Gas, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// Unit selects the temperature scale for boiling and melting point reads.
type Unit int

const (
	Celsius Unit = iota
	Kelvin
)

// KelvinOffset converts stored Celsius values to Kelvin.
const KelvinOffset = 273.15

// Fragment is one dissociation product: Count units of Species carrying Charge.
type Fragment struct {
	Species string  `validate:"required" yaml:"species" json:"species"`
	Count   int     `validate:"gt=0" yaml:"count" json:"count"`
	Charge  float64 `yaml:"charge" json:"charge"`
}

// Definition holds the constants supplied when registering a species.
// Nil pointers mark constants the species does not define.
type Definition struct {
	Name      string  `validate:"required"`
	Index     int     `validate:"gte=0"`
	Density   float64 `validate:"gt=0"`
	MolarMass float64 `validate:"gt=0"`
	Phase     Phase   `validate:"oneof=s l g"`
	Color     float64 `validate:"gte=0,lte=1"`

	Polarity       *float64 `validate:"omitnil,gte=0"`
	Charge         *float64
	BoilingPoint   *float64
	MeltingPoint   *float64
	SpecificHeat   *float64
	EnthalpyFusion *float64
	EnthalpyVapor  *float64

	// Instance defaults.
	Temperature float64 `validate:"gt=0"`
	Pressure    float64 `validate:"gte=0"`
	Solute      bool
	Solvent     bool

	// Volatile species must supply a boiling point.
	Volatile     bool
	Dissociation []Fragment `validate:"dive"`
}

// Value returns a pointer to v for optional Definition fields.
func Value(v float64) *float64 { return &v }

type optional struct {
	v  float64
	ok bool
}

func optionalOf(p *float64) optional {
	if p == nil {
		return optional{}
	}
	return optional{v: *p, ok: true}
}

func (o optional) get(species, field string) (float64, error) {
	if !o.ok {
		return 0, &DefinitionError{Species: species, Field: field, Wrapped: ErrUnsetConstant}
	}
	return o.v, nil
}

// Species is an immutable catalog entry.
type Species struct {
	name      string
	index     int
	density   float64
	molarMass float64
	phase     Phase
	color     float64

	polarity       optional
	charge         optional
	boilingPoint   optional
	meltingPoint   optional
	specificHeat   optional
	enthalpyFusion optional
	enthalpyVapor  optional

	temperature float64
	pressure    float64
	solute      bool
	solvent     bool
	volatile    bool

	dissociation []Fragment
}

func newSpecies(d Definition) *Species {
	return &Species{
		name:           d.Name,
		index:          d.Index,
		density:        d.Density,
		molarMass:      d.MolarMass,
		phase:          d.Phase,
		color:          d.Color,
		polarity:       optionalOf(d.Polarity),
		charge:         optionalOf(d.Charge),
		boilingPoint:   optionalOf(d.BoilingPoint),
		meltingPoint:   optionalOf(d.MeltingPoint),
		specificHeat:   optionalOf(d.SpecificHeat),
		enthalpyFusion: optionalOf(d.EnthalpyFusion),
		enthalpyVapor:  optionalOf(d.EnthalpyVapor),
		temperature:    d.Temperature,
		pressure:       d.Pressure,
		solute:         d.Solute,
		solvent:        d.Solvent,
		volatile:       d.Volatile,
		dissociation:   slices.Clone(d.Dissociation),
	}
}

func (s *Species) Name() string       { return s.name }
func (s *Species) Index() int         { return s.index }
func (s *Species) Density() float64   { return s.density }
func (s *Species) MolarMass() float64 { return s.molarMass }
func (s *Species) Phase() Phase       { return s.phase }
func (s *Species) Color() float64     { return s.color }
func (s *Species) Volatile() bool     { return s.volatile }

// DefaultTemperature is the temperature (K) new instances start at.
func (s *Species) DefaultTemperature() float64 { return s.temperature }

// DefaultPressure is the pressure new instances start at.
func (s *Species) DefaultPressure() float64 { return s.pressure }

func (s *Species) Polarity() (float64, error) {
	return s.polarity.get(s.name, "polarity")
}

func (s *Species) Charge() (float64, error) {
	return s.charge.get(s.name, "charge")
}

func (s *Species) SpecificHeat() (float64, error) {
	return s.specificHeat.get(s.name, "specific_heat")
}

func (s *Species) EnthalpyFusion() (float64, error) {
	return s.enthalpyFusion.get(s.name, "enthalpy_fusion")
}

func (s *Species) EnthalpyVapor() (float64, error) {
	return s.enthalpyVapor.get(s.name, "enthalpy_vapor")
}

// BoilingPoint reads the stored (Celsius) boiling point, converting on read.
func (s *Species) BoilingPoint(u Unit) (float64, error) {
	v, err := s.boilingPoint.get(s.name, "boiling_point")
	if err != nil {
		return 0, err
	}
	return convert(v, u), nil
}

// MeltingPoint reads the stored (Celsius) melting point, converting on read.
func (s *Species) MeltingPoint(u Unit) (float64, error) {
	v, err := s.meltingPoint.get(s.name, "melting_point")
	if err != nil {
		return 0, err
	}
	return convert(v, u), nil
}

// Dissociates reports whether the species declares dissociation products.
func (s *Species) Dissociates() bool { return len(s.dissociation) > 0 }

// Dissociate returns the fragments the species splits into when dissolved.
// The returned slice is a copy.
func (s *Species) Dissociate() ([]Fragment, error) {
	if len(s.dissociation) == 0 {
		return nil, &DefinitionError{Species: s.name, Wrapped: ErrNotDissociable}
	}
	return slices.Clone(s.dissociation), nil
}

func convert(celsius float64, u Unit) float64 {
	if u == Kelvin {
		return celsius + KelvinOffset
	}
	return celsius
}
