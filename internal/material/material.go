package material

// Material is one occurrence of a species in a simulation. It embeds the
// shared definition and carries the per-instance mutable state; setters
// never touch the definition.
type Material struct {
	*Species

	temperature float64
	pressure    float64
	solute      bool
	solvent     bool

	charge         optional
	polarity       optional
	specificHeat   optional
	enthalpyFusion optional
	enthalpyVapor  optional
}

// NewMaterial creates an instance initialised from the species defaults.
func NewMaterial(s *Species) *Material {
	return &Material{
		Species:        s,
		temperature:    s.temperature,
		pressure:       s.pressure,
		solute:         s.solute,
		solvent:        s.solvent,
		charge:         s.charge,
		polarity:       s.polarity,
		specificHeat:   s.specificHeat,
		enthalpyFusion: s.enthalpyFusion,
		enthalpyVapor:  s.enthalpyVapor,
	}
}

func (m *Material) Temperature() float64 { return m.temperature }
func (m *Material) Pressure() float64    { return m.pressure }
func (m *Material) IsSolute() bool       { return m.solute }
func (m *Material) IsSolvent() bool      { return m.solvent }

func (m *Material) SetTemperature(t float64) { m.temperature = t }
func (m *Material) SetPressure(p float64)    { m.pressure = p }

// SetSolute sets the solute role; setting it clears the solvent role.
func (m *Material) SetSolute(flag bool) {
	m.solute = flag
	if flag {
		m.solvent = false
	}
}

// SetSolvent sets the solvent role; setting it clears the solute role.
func (m *Material) SetSolvent(flag bool) {
	m.solvent = flag
	if flag {
		m.solute = false
	}
}

func (m *Material) Charge() (float64, error) {
	return m.charge.get(m.name, "charge")
}

func (m *Material) Polarity() (float64, error) {
	return m.polarity.get(m.name, "polarity")
}

func (m *Material) SpecificHeat() (float64, error) {
	return m.specificHeat.get(m.name, "specific_heat")
}

func (m *Material) EnthalpyFusion() (float64, error) {
	return m.enthalpyFusion.get(m.name, "enthalpy_fusion")
}

func (m *Material) EnthalpyVapor() (float64, error) {
	return m.enthalpyVapor.get(m.name, "enthalpy_vapor")
}

func (m *Material) SetCharge(v float64)         { m.charge = optional{v: v, ok: true} }
func (m *Material) SetPolarity(v float64)       { m.polarity = optional{v: v, ok: true} }
func (m *Material) SetSpecificHeat(v float64)   { m.specificHeat = optional{v: v, ok: true} }
func (m *Material) SetEnthalpyFusion(v float64) { m.enthalpyFusion = optional{v: v, ok: true} }
func (m *Material) SetEnthalpyVapor(v float64)  { m.enthalpyVapor = optional{v: v, ok: true} }
