package kinetics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chemlab/internal/kinetics"
)

var _ = Describe("Network", func() {
	It("reproduces the three-step A/B/C network", func() {
		net := kinetics.DefaultNetwork()
		Expect(net.Validate()).To(Succeed())
		Expect(net.Labels).To(Equal([]string{"[A]", "[B]", "[C]"}))
		Expect(net.Target).To(Equal(2))
		Expect(net.InHand).To(Equal([]float64{1.0, 1.0}))
		Expect(net.NMax).To(Equal([]float64{2.0, 2.0, 2.0}))

		Expect(net.Steps).To(HaveLen(3))
		Expect(net.Steps[0]).To(beStep(0, 1, 0.5, 1.0))
		Expect(net.Steps[1]).To(beStep(1, 0, 10.0, 20.0))
		Expect(net.Steps[2]).To(beStep(1, 2, 1.0, 5.0))
	})

	It("evaluates the Arrhenius form", func() {
		s := kinetics.Step{From: 0, To: 1, Prefactor: 0.5, Activation: 1.0}
		want := 0.5 * math.Exp(-1.0/(0.008314462618*300))
		Expect(s.K(300)).To(BeNumerically("~", want, 1e-15))
	})

	DescribeTable("rejects malformed networks",
		func(mutate func(*kinetics.Network)) {
			net := kinetics.DefaultNetwork()
			mutate(&net)
			Expect(net.Validate()).To(MatchError(kinetics.ErrInvalidNetwork))
		},
		Entry("no species", func(n *kinetics.Network) { n.Labels = nil }),
		Entry("capacity mismatch", func(n *kinetics.Network) { n.NMax = []float64{1} }),
		Entry("target out of range", func(n *kinetics.Network) { n.Target = 3 }),
		Entry("step out of range", func(n *kinetics.Network) { n.Steps[0].To = 5 }),
		Entry("self loop", func(n *kinetics.Network) { n.Steps[0].To = 0 }),
		Entry("zero activation", func(n *kinetics.Network) { n.Steps[1].Activation = 0 }),
		Entry("negative in hand", func(n *kinetics.Network) { n.InHand[0] = -1 }),
	)

	It("looks up labels", func() {
		net := kinetics.DefaultNetwork()
		i, err := net.Index("[B]")
		Expect(err).NotTo(HaveOccurred())
		Expect(i).To(Equal(1))

		_, err = net.Index("[Z]")
		Expect(err).To(MatchError(kinetics.ErrUnknownSpecies))
	})
})

func beStep(from, to int, prefactor, activation float64) OmegaMatcher {
	return And(
		HaveField("From", from),
		HaveField("To", to),
		HaveField("Prefactor", prefactor),
		HaveField("Activation", activation),
	)
}
