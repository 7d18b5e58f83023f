package material

import "math"

// Geometric polarities: net dipole of the bent molecule.
var (
	waterPolarity = math.Abs(2 * 1.24 * math.Cos((109.5/2)*(math.Pi/180.0)))
	ozonePolarity = math.Abs(1 + 2*-1*math.Cos((116.8/2)*(math.Pi/180.0)))
)

const (
	roomTemperature = 298.0
	atmosphere      = 1.0
)

// builtinDefinitions is the full built-in roster in index order.
func builtinDefinitions() []Definition {
	return []Definition{
		{Name: "Air", Index: 0, Density: 1.225e-3, MolarMass: 28.963, Phase: Gas, Color: 0.65,
			SpecificHeat: Value(1.0035), Temperature: 297, Pressure: atmosphere},
		{Name: "H2O", Index: 1, Density: 0.997, MolarMass: 18.015, Phase: Liquid, Color: 0.2,
			Polarity: Value(waterPolarity), Charge: Value(0), Solvent: true,
			SpecificHeat: Value(4.1813), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "H", Index: 2, Density: 8.9e-5, MolarMass: 1.008, Phase: Gas, Color: 0.1,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "H2", Index: 3, Density: 8.9e-5, MolarMass: 2.016, Phase: Gas, Color: 0.1,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "O", Index: 4, Density: 1.429e-3, MolarMass: 15.999, Phase: Gas, Color: 0.15,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "O2", Index: 5, Density: 1.429e-3, MolarMass: 31.999, Phase: Gas, Color: 0.1,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "O3", Index: 6, Density: 2.144e-3, MolarMass: 47.998, Phase: Gas, Color: 0.1,
			Polarity: Value(ozonePolarity), Charge: Value(-1), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "C6H14", Index: 7, Density: 0.655, MolarMass: 86.175, Phase: Liquid, Color: 0.65,
			Polarity: Value(0), Charge: Value(0), Solvent: true, SpecificHeat: Value(2.26),
			Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "NaCl", Index: 8, Density: 2.165, MolarMass: 58.443, Phase: Solid, Color: 0.9,
			Polarity: Value(1.5), Charge: Value(0), BoilingPoint: Value(1738.0), SpecificHeat: Value(0.853),
			EnthalpyFusion: Value(27950.0), EnthalpyVapor: Value(229700.0), Volatile: true,
			Temperature: roomTemperature, Pressure: atmosphere,
			Dissociation: []Fragment{{Species: "Na", Count: 1, Charge: 1}, {Species: "Cl", Count: 1, Charge: -1}}},
		// Polarity of the atomic species depends on the charge assigned at dissociation.
		{Name: "Na", Index: 9, Density: 0.968, MolarMass: 22.990, Phase: Solid, Color: 0.85,
			Polarity: Value(0), Charge: Value(0), Solute: true, BoilingPoint: Value(1156.0),
			SpecificHeat: Value(1.23), EnthalpyFusion: Value(2600.0), EnthalpyVapor: Value(97700.0), Volatile: true,
			Temperature: roomTemperature, Pressure: atmosphere},
		// Cl is very unstable when not an aqueous ion.
		{Name: "Cl", Index: 10, Density: 3.214e-3, MolarMass: 35.453, Phase: Gas, Color: 0.8,
			Polarity: Value(0), Charge: Value(0), Solute: true, SpecificHeat: Value(0.48),
			EnthalpyFusion: Value(3200.0), EnthalpyVapor: Value(10200.0),
			Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "Cl2", Index: 11, Density: 2.898e-3, MolarMass: 70.906, Phase: Gas, Color: 0.8,
			Polarity: Value(0), Charge: Value(0), SpecificHeat: Value(1.0),
			Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "LiF", Index: 12, Density: 2.640, MolarMass: 25.939, Phase: Solid, Color: 0.9,
			Polarity: Value(1.5), Charge: Value(0), SpecificHeat: Value(1.0),
			Temperature: roomTemperature, Pressure: atmosphere,
			Dissociation: []Fragment{{Species: "Li", Count: 1, Charge: 1}, {Species: "F", Count: 1, Charge: -1}}},
		{Name: "Li", Index: 13, Density: 0.534, MolarMass: 6.941, Phase: Solid, Color: 0.95,
			Polarity: Value(0), Charge: Value(0), SpecificHeat: Value(1.0),
			Temperature: roomTemperature, Pressure: atmosphere},
		// F is very unstable when not an aqueous ion.
		{Name: "F", Index: 14, Density: 1.696e-3, MolarMass: 18.998, Phase: Gas, Color: 0.8,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "F2", Index: 15, Density: 1.696e-3, MolarMass: 37.997, Phase: Gas, Color: 0.8,
			Polarity: Value(0), Charge: Value(0), Temperature: roomTemperature, Pressure: atmosphere},

		// hydrocarbons
		hydrocarbon("dodecane", 16, 0.75, 170.34, 0.05, 489.5, 263.6, 2.3889, 19790.0, 41530.0),
		hydrocarbon("1-chlorohexane", 17, 0.879, 120.62, 0.1, 408.2, 179.2, 1.5408, 15490.0, 42800.0),
		hydrocarbon("2-chlorohexane", 18, 0.87, 120.62, 0.15, 395.2, 308.3, 1.5408, 11970.0, 43820.0),
		hydrocarbon("3-chlorohexane", 19, 0.9, 120.62, 0.2, 396.2, 308.3, 1.5408, 11970.0, 32950.0),
		hydrocarbon("5-methylundecane", 20, 0.75, 170.34, 0.25, 481.1, 255.2, 2.3889, 19790.0, 41530.0),
		hydrocarbon("4-ethyldecane", 21, 0.75, 170.34, 0.3, 480.1, 254.2, 2.3889, 19790.0, 41530.0),
		hydrocarbon("5,6-dimethyldecane", 22, 0.757, 170.34, 0.35, 474.2, 222.4, 2.3889, 19790.0, 41530.0),
		hydrocarbon("4-ethyl-5-methylnonane", 23, 0.75, 170.34, 0.4, 476.3, 224.5, 2.3889, 19790.0, 41530.0),
		hydrocarbon("4,5-diethyloctane", 24, 0.768, 170.34, 0.45, 470.2, 222.4, 2.3889, 19790.0, 41530.0),

		// solvents
		{Name: "ethoxyethane", Index: 25, Density: 0.713, MolarMass: 74.123, Phase: Liquid, Color: 0.5,
			Polarity: Value(0), Charge: Value(0), BoilingPoint: Value(34.6), MeltingPoint: Value(-116.3),
			Solvent: true, SpecificHeat: Value(2.253), EnthalpyFusion: Value(7190.0), EnthalpyVapor: Value(27250.0),
			Volatile: true, Temperature: roomTemperature, Pressure: atmosphere},
		{Name: "ethyl acetate", Index: 26, Density: 0.902, MolarMass: 88.106, Phase: Liquid, Color: 0.05,
			Polarity: Value(0.654), Charge: Value(0), BoilingPoint: Value(350), MeltingPoint: Value(189.6),
			Solvent: true, SpecificHeat: Value(1.904), EnthalpyFusion: Value(10480), EnthalpyVapor: Value(31940),
			Volatile: true, Temperature: roomTemperature, Pressure: atmosphere},

		// indicators
		{Name: "methyl red", Index: 27, Density: 0.902, MolarMass: 88.106, Phase: Solid, Color: 0.6,
			Polarity: Value(0), Charge: Value(0), BoilingPoint: Value(630), MeltingPoint: Value(455),
			Solute: true, SpecificHeat: Value(1.904), EnthalpyFusion: Value(10480), EnthalpyVapor: Value(31940),
			Temperature: roomTemperature, Pressure: atmosphere},

		// acids
		{Name: "HCl", Index: 28, Density: 1.48e-3, MolarMass: 88.106, Phase: Gas, Color: 0.3,
			Polarity: Value(0), Charge: Value(0), BoilingPoint: Value(350), MeltingPoint: Value(189.6),
			Solute: true, SpecificHeat: Value(1.904), EnthalpyFusion: Value(10480), EnthalpyVapor: Value(31940),
			Volatile: true, Temperature: roomTemperature, Pressure: atmosphere,
			Dissociation: []Fragment{{Species: "H", Count: 1, Charge: 1}, {Species: "Cl", Count: 1, Charge: -1}}},

		{Name: "diethyl ether", Index: 29, Density: 0.7134, MolarMass: 74.123, Phase: Liquid, Color: 0.05,
			Polarity: Value(1.3), Charge: Value(0), BoilingPoint: Value(307.8), MeltingPoint: Value(156.8),
			Solvent: true, SpecificHeat: Value(119.46), EnthalpyFusion: Value(-252.7e3), EnthalpyVapor: Value(27.247e3),
			Volatile: true, Temperature: roomTemperature, Pressure: atmosphere},
	}
}

func hydrocarbon(name string, index int, density, molarMass, color, bp, mp, cp, hFus, hVap float64) Definition {
	return Definition{
		Name: name, Index: index, Density: density, MolarMass: molarMass, Phase: Liquid, Color: color,
		Polarity: Value(0), Charge: Value(0), BoilingPoint: Value(bp), MeltingPoint: Value(mp),
		SpecificHeat: Value(cp), EnthalpyFusion: Value(hFus), EnthalpyVapor: Value(hVap),
		Volatile: true, Temperature: roomTemperature, Pressure: atmosphere,
	}
}

// Builtin returns a new catalog holding the built-in species.
func Builtin() *Catalog {
	c := NewCatalog()
	for _, d := range builtinDefinitions() {
		c.mustDefine(d)
	}
	if err := c.Verify(); err != nil {
		panic(err)
	}
	return c
}
