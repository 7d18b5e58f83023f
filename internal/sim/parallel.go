package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent reactor for one sweep member.
type Factory func() (Reactor, error)

// Sweep runs the same episode under several thermostats concurrently, each
// against a fresh reactor from the factory.
type Sweep struct {
	factory     Factory
	thermostats []Thermostat
	metrics     func() []Metric
	limit       int
}

// NewSweep creates a sweep. metrics, when non-nil, is called once per member
// so that metric state is never shared between goroutines.
func NewSweep(factory Factory, thermostats []Thermostat, metrics func() []Metric) *Sweep {
	return &Sweep{
		factory:     factory,
		thermostats: thermostats,
		metrics:     metrics,
		limit:       runtime.GOMAXPROCS(0),
	}
}

// SetLimit caps the number of members running at once. n <= 0 removes the cap.
func (w *Sweep) SetLimit(n int) {
	w.limit = n
}

// Run returns one result per thermostat, in thermostat order. The first
// error encountered is returned with whatever results completed.
func (w *Sweep) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(w.thermostats))

	var g errgroup.Group
	if w.limit > 0 {
		g.SetLimit(w.limit)
	}
	for i, th := range w.thermostats {
		g.Go(func() error {
			reactor, err := w.factory()
			if err != nil {
				return err
			}
			sim := New(reactor, th)
			if w.metrics != nil {
				for _, m := range w.metrics() {
					sim.AddMetric(m)
				}
			}
			res, err := sim.Run(ctx, x0, cfg)
			results[i] = res
			return err
		})
	}

	err := g.Wait()
	return results, err
}
