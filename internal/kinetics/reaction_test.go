package kinetics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/spectra"
)

const (
	volume = 0.1
	temp   = 300.0
	dt     = 0.01
)

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func newReaction(opts ...kinetics.Option) *kinetics.Reaction {
	rx, err := kinetics.New(kinetics.DefaultNetwork(), opts...)
	Expect(err).NotTo(HaveOccurred())
	return rx
}

var _ = Describe("Reaction", func() {
	var rx *kinetics.Reaction

	BeforeEach(func() {
		rx = newReaction()
	})

	Describe("construction", func() {
		It("starts empty with reactants in hand", func() {
			Expect(rx.Amounts()).To(Equal([]float64{0, 0, 0}))
			Expect(rx.AmountInHand()).To(Equal([]float64{1, 1}))
			Expect(rx.Rates()).To(Equal([]float64{0, 0, 0}))
			Expect(rx.NMax()).To(Equal([]float64{2, 2, 2}))
			Expect(rx.Policy()).To(Equal(kinetics.Reject))
		})

		It("rejects peak sets that do not match the species count", func() {
			_, err := kinetics.New(kinetics.DefaultNetwork(), kinetics.WithSpectra(nil))
			Expect(err).To(MatchError(kinetics.ErrDimensionMismatch))
		})

		DescribeTable("rejects invalid peak sets",
			func(bad spectra.Set) {
				sets := spectra.NonOverlapping()
				sets[0] = bad
				_, err := kinetics.New(kinetics.DefaultNetwork(), kinetics.WithSpectra(sets))
				Expect(err).To(MatchError(kinetics.ErrInvalidSpectra))
				Expect(err).To(MatchError(spectra.ErrInvalidPeaks))
			},
			Entry("zero width", spectra.Set{{Height: 1, Center: 0, Width: 0}}),
			Entry("negative width", spectra.Set{{Height: 1, Center: 0.5, Width: -0.05}}),
			Entry("NaN height", spectra.Set{{Height: math.NaN(), Center: 0.5, Width: 0.05}}),
			Entry("no peaks", spectra.Set{}),
			Entry("four peaks", append(spectra.Set{{Height: 0.2, Center: 0.9, Width: 0.02}}, spectra.S3_3...)),
		)

		It("rejects an invalid network", func() {
			net := kinetics.DefaultNetwork()
			net.Target = -1
			_, err := kinetics.New(net)
			Expect(err).To(MatchError(kinetics.ErrInvalidNetwork))
		})
	})

	Describe("first step from pure A", func() {
		It("moves A into B and yields no C yet", func() {
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())

			reward, err := rx.Update(temp, volume, dt)
			Expect(err).NotTo(HaveOccurred())

			n := rx.Amounts()
			Expect(n[0]).To(BeNumerically("<", 1.0))
			Expect(n[1]).To(BeNumerically(">", 0.0))
			Expect(n[2]).To(Equal(0.0))
			Expect(reward).To(Equal(0.0))

			rates := rx.Rates()
			Expect(rates[0]).To(BeNumerically(">", 0))
			Expect(rates[1]).To(Equal(0.0))
			Expect(rates[2]).To(Equal(0.0))
		})
	})

	Describe("a 500-step trajectory", func() {
		It("accumulates C and conserves total moles", func() {
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())
			initial := sum(rx.Amounts())

			totalReward := 0.0
			for i := 0; i < 500; i++ {
				reward, err := rx.Update(temp, volume, dt)
				Expect(err).NotTo(HaveOccurred())
				totalReward += reward
				Expect(sum(rx.Amounts())).To(BeNumerically("~", initial, 1e-12))
			}

			n := rx.Amounts()
			Expect(n[2]).To(BeNumerically(">", 0))
			Expect(totalReward).To(BeNumerically("~", n[2], 1e-12))
		})
	})

	DescribeTable("mass balance for a single step",
		func(start []float64, T, V, step float64) {
			Expect(rx.SetAmounts(start)).To(Succeed())
			before := rx.Amounts()

			_, err := rx.Update(T, V, step)
			Expect(err).NotTo(HaveOccurred())

			after := rx.Amounts()
			delta := 0.0
			for i := range after {
				delta += after[i] - before[i]
			}
			Expect(delta).To(BeNumerically("~", 0, 1e-12))
		},
		Entry("pure A", []float64{1, 0, 0}, 300.0, 0.1, 0.01),
		Entry("pure B, hot", []float64{0, 1, 0}, 500.0, 0.1, 0.01),
		Entry("mixed, small vessel", []float64{0.4, 0.3, 0.3}, 350.0, 0.01, 0.001),
		Entry("mixed, cold, long step", []float64{1.5, 0.5, 0}, 250.0, 1.0, 0.5),
		Entry("empty", []float64{0, 0, 0}, 300.0, 0.1, 0.01),
	)

	Describe("non-negativity", func() {
		It("keeps amounts non-negative under small steps", func() {
			Expect(rx.SetAmounts([]float64{0.2, 1.0, 0})).To(Succeed())
			for i := 0; i < 2000; i++ {
				_, err := rx.Update(400, volume, dt)
				Expect(err).NotTo(HaveOccurred())
				for _, v := range rx.Amounts() {
					Expect(v).To(BeNumerically(">=", 0))
				}
			}
		})

		It("rejects an overshooting step and leaves state untouched", func() {
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())

			_, err := rx.Update(temp, volume, 10)
			Expect(err).To(MatchError(kinetics.ErrNegativeAmount))

			var stepErr *kinetics.StepError
			Expect(err).To(BeAssignableToTypeOf(stepErr))
			Expect(err.(*kinetics.StepError).Species).To(Equal("[A]"))

			Expect(rx.Amounts()).To(Equal([]float64{1, 0, 0}))
			Expect(rx.Rates()).To(Equal([]float64{0, 0, 0}))
		})

		It("clamps an overshooting step under the clamp policy", func() {
			rx = newReaction(kinetics.WithPolicy(kinetics.Clamp))
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())

			_, err := rx.Update(temp, volume, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(rx.Amounts()[0]).To(Equal(0.0))
			Expect(rx.Clamped()).To(Equal(1))
		})
	})

	DescribeTable("precondition violations",
		func(T, V, step float64, want error) {
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())
			_, err := rx.Update(T, V, step)
			Expect(err).To(MatchError(want))
			Expect(rx.Amounts()).To(Equal([]float64{1, 0, 0}))
		},
		Entry("zero temperature", 0.0, volume, dt, kinetics.ErrNonPositiveTemperature),
		Entry("negative temperature", -10.0, volume, dt, kinetics.ErrNonPositiveTemperature),
		Entry("NaN temperature", math.NaN(), volume, dt, kinetics.ErrNonPositiveTemperature),
		Entry("zero volume", temp, 0.0, dt, kinetics.ErrNonPositiveVolume),
		Entry("infinite volume", temp, math.Inf(1), dt, kinetics.ErrNonPositiveVolume),
		Entry("zero timestep", temp, volume, 0.0, kinetics.ErrNonPositiveTimestep),
		Entry("negative timestep", temp, volume, -dt, kinetics.ErrNonPositiveTimestep),
	)

	Describe("Arrhenius monotonicity", func() {
		It("raises every rate constant with temperature", func() {
			prev, err := rx.RateConstants(250)
			Expect(err).NotTo(HaveOccurred())
			for _, T := range []float64{275, 300, 350, 400, 600} {
				k, err := rx.RateConstants(T)
				Expect(err).NotTo(HaveOccurred())
				for j := range k {
					Expect(k[j]).To(BeNumerically(">", prev[j]))
				}
				prev = k
			}
		})

		It("raises every step rate for a fixed concentration", func() {
			cold := newReaction()
			hot := newReaction()
			Expect(cold.SetAmounts([]float64{0.5, 0.5, 0})).To(Succeed())
			Expect(hot.SetAmounts([]float64{0.5, 0.5, 0})).To(Succeed())

			_, err := cold.Update(280, volume, dt)
			Expect(err).NotTo(HaveOccurred())
			_, err = hot.Update(320, volume, dt)
			Expect(err).NotTo(HaveOccurred())

			for j, r := range hot.Rates() {
				Expect(math.Abs(r)).To(BeNumerically(">", math.Abs(cold.Rates()[j])))
			}
		})
	})

	Describe("Reset", func() {
		It("is idempotent and zeroes concentrations", func() {
			_, err := rx.Add(0, 0.7)
			Expect(err).NotTo(HaveOccurred())
			_, err = rx.Update(temp, volume, dt)
			Expect(err).NotTo(HaveOccurred())

			rx.Reset()
			onceN, onceHand, onceRates := rx.Amounts(), rx.AmountInHand(), rx.Rates()
			rx.Reset()
			Expect(rx.Amounts()).To(Equal(onceN))
			Expect(rx.AmountInHand()).To(Equal(onceHand))
			Expect(rx.Rates()).To(Equal(onceRates))

			for _, V := range []float64{0.001, 0.1, 5} {
				c, err := rx.Concentration(V)
				Expect(err).NotTo(HaveOccurred())
				Expect(c).To(Equal([]float64{0, 0, 0}))
			}
			Expect(rx.AmountInHand()).To(Equal([]float64{1, 1}))
		})

		It("keeps the spectral parameters chosen at construction", func() {
			rx = newReaction(kinetics.WithOverlap(true))
			before := rx.Spectra()
			rx.Reset()
			Expect(rx.Spectra()).To(Equal(before))
		})
	})

	Describe("conversions", func() {
		It("round-trips n -> C -> n", func() {
			n := []float64{0.123, 1.7, 0.0042}
			Expect(rx.SetAmounts(n)).To(Succeed())
			for _, V := range []float64{0.001, 0.1, 3.3} {
				c, err := rx.Concentration(V)
				Expect(err).NotTo(HaveOccurred())
				for i := range n {
					Expect(c[i] * V * 1000).To(BeNumerically("~", n[i], 1e-15))
				}
			}
		})

		It("reports ideal-gas pressures", func() {
			Expect(rx.SetAmounts([]float64{1, 0.5, 0.25})).To(Succeed())
			p, err := rx.PartialPressure(volume, 300)
			Expect(err).NotTo(HaveOccurred())
			Expect(p[0]).To(BeNumerically("~", 1*kinetics.R*300/volume, 1e-12))

			total, err := rx.TotalPressure(volume, 300)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeNumerically("~", sum(p), 1e-12))
		})

		It("rejects non-positive volumes and temperatures", func() {
			_, err := rx.Concentration(0)
			Expect(err).To(MatchError(kinetics.ErrNonPositiveVolume))
			_, err = rx.PartialPressure(volume, -1)
			Expect(err).To(MatchError(kinetics.ErrNonPositiveTemperature))
			_, err = rx.TotalPressure(-1, 300)
			Expect(err).To(MatchError(kinetics.ErrNonPositiveVolume))
		})
	})

	Describe("spectra", func() {
		DescribeTable("stays within [0, 1]",
			func(overlap bool, n []float64, V float64) {
				rx = newReaction(kinetics.WithOverlap(overlap))
				Expect(rx.SetAmounts(n)).To(Succeed())
				curve, err := rx.Spectrum(V)
				Expect(err).NotTo(HaveOccurred())
				Expect(curve).To(HaveLen(200))
				for _, v := range curve {
					Expect(v).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
				}
			},
			Entry("separate, dilute", false, []float64{1, 0, 0}, 0.1),
			Entry("separate, saturated", false, []float64{2, 2, 2}, 0.0001),
			Entry("overlap, dilute", true, []float64{0.3, 0.3, 0.3}, 0.1),
			Entry("overlap, saturated", true, []float64{2, 2, 2}, 0.0001),
		)

		It("decomposes into unclipped per-species curves", func() {
			Expect(rx.SetAmounts([]float64{2, 2, 2})).To(Succeed())
			parts, err := rx.SpectrumComponents(0.0001)
			Expect(err).NotTo(HaveOccurred())
			Expect(parts).To(HaveLen(3))

			peak := 0.0
			for _, v := range parts[0] {
				peak = math.Max(peak, v)
			}
			Expect(peak).To(BeNumerically(">", 1))
		})

		It("unmixes saturated spectra from the unclipped total", func() {
			Expect(rx.SetAmounts([]float64{2, 1, 0.5})).To(Succeed())
			curve, err := rx.Spectrum(0.0001)
			Expect(err).NotTo(HaveOccurred())
			Expect(curve).To(ContainElement(1.0))

			want, err := rx.Concentration(0.0001)
			Expect(err).NotTo(HaveOccurred())
			got, err := rx.Unmix(0.0001)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(3))
			for i := range want {
				Expect(got[i]).To(BeNumerically("~", want[i], 1e-6*want[i]))
			}

			_, err = rx.Unmix(0)
			Expect(err).To(MatchError(kinetics.ErrNonPositiveVolume))
		})

		It("lists peaks in nanometres with species labels", func() {
			Expect(rx.SetAmounts([]float64{1, 0, 0})).To(Succeed())
			peaks, err := rx.SpectrumPeaks(volume)
			Expect(err).NotTo(HaveOccurred())
			Expect(peaks).To(HaveLen(3))
			Expect(peaks[0].Label).To(Equal("A"))
			Expect(peaks[2].Label).To(Equal("C"))
			for _, w := range peaks[1].Wavelengths {
				Expect(w).To(And(BeNumerically(">=", 200), BeNumerically("<=", 800)))
			}
			Expect(peaks[1].Heights).To(HaveEach(0.0))
		})

		It("does not mutate state", func() {
			Expect(rx.SetAmounts([]float64{1, 0.2, 0})).To(Succeed())
			_, err := rx.Spectrum(volume)
			Expect(err).NotTo(HaveOccurred())
			Expect(rx.Amounts()).To(Equal([]float64{1, 0.2, 0}))
		})
	})

	Describe("adding reactants", func() {
		It("moves stock from in hand, clamped to what is available", func() {
			moved, err := rx.Add(0, 0.4)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal(0.4))

			moved, err = rx.Add(0, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(BeNumerically("~", 0.6, 1e-15))

			Expect(rx.AmountInHand()[0]).To(BeNumerically("~", 0, 1e-15))
			Expect(rx.Amounts()[0]).To(BeNumerically("~", 1, 1e-15))
		})

		It("rejects unknown reactants and negative amounts", func() {
			_, err := rx.Add(2, 1)
			Expect(err).To(MatchError(kinetics.ErrUnknownSpecies))
			_, err = rx.Add(0, -1)
			Expect(err).To(MatchError(kinetics.ErrNegativeAmount))
		})
	})

	Describe("inventory", func() {
		It("round-trips losslessly", func() {
			_, err := rx.Add(1, 0.3)
			Expect(err).NotTo(HaveOccurred())
			Expect(rx.SetAmounts([]float64{0.1, 0.3, 0.05})).To(Succeed())
			_, err = rx.Update(temp, volume, dt)
			Expect(err).NotTo(HaveOccurred())

			inv := rx.Inventory()
			Expect(inv.Network).To(Equal("reaction_1"))
			Expect(inv.Amounts).To(HaveKey("[C]"))

			other := newReaction()
			Expect(other.Restore(inv)).To(Succeed())
			Expect(other.Amounts()).To(Equal(rx.Amounts()))
			Expect(other.AmountInHand()).To(Equal(rx.AmountInHand()))
		})

		It("rejects unknown labels and negative amounts", func() {
			err := rx.Restore(kinetics.Inventory{Amounts: map[string]float64{"[Z]": 1}})
			Expect(err).To(MatchError(kinetics.ErrUnknownSpecies))

			err = rx.Restore(kinetics.Inventory{Amounts: map[string]float64{"[A]": -1}})
			Expect(err).To(MatchError(kinetics.ErrNegativeAmount))

			err = rx.Restore(kinetics.Inventory{InHand: map[string]float64{"[C]": 1}})
			Expect(err).To(MatchError(kinetics.ErrUnknownSpecies))
		})

		It("rejects inventories recorded for another network", func() {
			inv := rx.Inventory()
			inv.Network = "reaction_2"
			Expect(rx.Restore(inv)).To(MatchError(kinetics.ErrNetworkMismatch))

			inv.Network = ""
			Expect(rx.Restore(inv)).To(Succeed())
		})

		It("rejects amount vectors of the wrong size", func() {
			Expect(rx.SetAmounts([]float64{1})).To(MatchError(kinetics.ErrDimensionMismatch))
			Expect(rx.SetAmounts([]float64{1, -1, 0})).To(MatchError(kinetics.ErrNegativeAmount))
		})
	})

	It("parses overshoot policies", func() {
		p, err := kinetics.ParsePolicy("clamp")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(kinetics.Clamp))
		Expect(p.String()).To(Equal("clamp"))

		_, err = kinetics.ParsePolicy("ignore")
		Expect(err).To(HaveOccurred())
	})
})
