package sim

import (
	"context"
	"fmt"
	"log/slog"
)

type Simulator struct {
	reactor    Reactor
	thermostat Thermostat
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
}

func New(reactor Reactor, thermostat Thermostat) *Simulator {
	return &Simulator{
		reactor:    reactor,
		thermostat: thermostat,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     slog.New(slog.DiscardHandler),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run resets the reactor, seeds it with x0 (nil keeps the reset amounts)
// and advances it Duration/Dt times. On a step failure the partial result
// is returned together with a *SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	x, err := s.seed(x0)
	if err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		States:     make([]State, 0, steps+1),
		Conditions: make([]Conditions, 0, steps),
		Rewards:    make([]float64, 0, steps),
		Times:      make([]float64, 0, steps+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	dt := cfg.Dt
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	s.logger.Debug("episode started", slog.Int("steps", steps), slog.Float64("dt", dt))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		c := s.thermostat.Compute(x, t)
		for _, m := range s.metrics {
			m.Observe(x, c, t)
		}

		reward, err := s.reactor.Update(c.Temperature, c.Volume, dt)
		if err != nil {
			s.finish(result, false)
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
		}

		next := State(s.reactor.Amounts())
		if cfg.ValidateState && !next.IsValid() {
			s.finish(result, false)
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}

		x = next
		t += dt
		result.StepsTaken++
		result.TotalReward += reward

		result.States = append(result.States, x.Clone())
		result.Conditions = append(result.Conditions, c)
		result.Rewards = append(result.Rewards, reward)
		result.Times = append(result.Times, t)

		for _, obs := range s.observers {
			obs.OnStep(x, c, reward, t)
		}
	}

	s.finish(result, true)
	s.logger.Debug("episode finished",
		slog.Int("steps", result.StepsTaken),
		slog.Float64("total_reward", result.TotalReward))
	return result, nil
}

// RunWithCallback streams each step to callback instead of recording a
// Result. Returning false from callback stops the episode early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(x State, c Conditions, reward, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	x, err := s.seed(x0)
	if err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c := s.thermostat.Compute(x, t)
		reward, err := s.reactor.Update(c.Temperature, c.Volume, cfg.Dt)
		if err != nil {
			return &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
		}
		x = State(s.reactor.Amounts())
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}
		if !callback(x, c, reward, t) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) seed(x0 State) (State, error) {
	s.reactor.Reset()
	if x0 != nil {
		if err := s.reactor.SetAmounts(x0); err != nil {
			return nil, fmt.Errorf("seed reactor: %w", err)
		}
	}
	return State(s.reactor.Amounts()), nil
}

// finish publishes metric values. The final state is observed only when the
// episode completed; on failure it was already seen as the pre-step state.
func (s *Simulator) finish(result *Result, completed bool) {
	if final := result.Final(); completed && final != nil {
		var c Conditions
		if n := len(result.Conditions); n > 0 {
			c = result.Conditions[n-1]
		}
		for _, m := range s.metrics {
			m.Observe(final, c, result.Times[len(result.Times)-1])
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Steps() < 1 {
		return fmt.Errorf("%w: duration %f shorter than dt %f", ErrInvalidConfig, cfg.Duration, cfg.Dt)
	}
	return nil
}
