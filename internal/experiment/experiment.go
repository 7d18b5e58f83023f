package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/sim"
)

type Config struct {
	Reaction    string
	Thermostat  string
	Policy      kinetics.Policy
	Params      ThermostatParams
	InitAmounts []float64
	Dt          float64
	Duration    float64
}

type Experiment struct {
	cfg       Config
	reaction  *kinetics.Reaction
	simulator *sim.Simulator
	logger    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg, logger: logger}
}

// Setup resolves the reaction and thermostat by name and wires the default
// metrics into a fresh simulator.
func (e *Experiment) Setup(reg *Registry) error {
	reaction, err := reg.GetReaction(e.cfg.Reaction,
		kinetics.WithPolicy(e.cfg.Policy),
		kinetics.WithLogger(e.logger.With(slog.String("reaction", e.cfg.Reaction))))
	if err != nil {
		return err
	}
	thermostat, err := reg.GetThermostat(e.cfg.Thermostat, e.cfg.Params)
	if err != nil {
		return err
	}

	e.reaction = reaction
	e.simulator = sim.New(reaction, thermostat)
	e.simulator.SetLogger(e.logger)
	for _, m := range reg.DefaultMetrics(reaction) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	var x0 sim.State
	if len(e.cfg.InitAmounts) > 0 {
		x0 = make(sim.State, len(e.cfg.InitAmounts))
		copy(x0, e.cfg.InitAmounts)
	}

	simCfg := sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: true,
	}

	e.logger.Info("running experiment",
		slog.String("reaction", e.cfg.Reaction),
		slog.String("thermostat", e.cfg.Thermostat),
		slog.String("policy", e.cfg.Policy.String()))

	return e.simulator.Run(ctx, x0, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Reaction exposes the engine after a run for views and inventory.
func (e *Experiment) Reaction() *kinetics.Reaction {
	return e.reaction
}
