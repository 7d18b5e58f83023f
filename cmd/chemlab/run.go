package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/config"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/sim"
	"github.com/san-kum/chemlab/internal/storage"
)

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Reaction = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Reaction, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Reaction))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Reaction = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("temp") {
		cfg.Temperature = temperature
	}
	if flags.Changed("volume") {
		cfg.Volume = volume
	}
	if flags.Changed("thermostat") {
		cfg.Thermostat = thermostat
	}
	if flags.Changed("ramp-rate") {
		cfg.RampRate = rampRate
	}
	if flags.Changed("max-temp") {
		cfg.MaxTemperature = maxTemperature
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("overlap") {
		cfg.Overlap = overlap
	}
	if flags.Changed("init") {
		amounts, err := parseFloats(initAmounts)
		if err != nil {
			return nil, fmt.Errorf("--init: %w", err)
		}
		cfg.InitAmounts = amounts
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupExperiment(cfg *config.Config) (*experiment.Experiment, experiment.Config, error) {
	expCfg, err := cfg.Experiment()
	if err != nil {
		return nil, expCfg, err
	}
	exp := experiment.New(expCfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, expCfg, err
	}
	return exp, expCfg, nil
}

func runReaction(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, expCfg, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%s thermostat)...\n", expCfg.Reaction, expCfg.Thermostat)
	start := time.Now()

	result, runErr := exp.Run(cmd.Context())
	if runErr != nil {
		var simErr *sim.SimulationError
		if !errors.As(runErr, &simErr) || result == nil {
			return runErr
		}
		logger.Error("episode aborted", slog.Int("step", simErr.Step), slog.Any("error", simErr.Wrapped))
	}
	elapsed := time.Since(start)

	reaction := exp.Reaction()
	labels := reaction.Labels()

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		inv := reaction.Inventory()
		runID, err := st.Save(storage.RunInfo{
			Reaction:   expCfg.Reaction,
			Thermostat: expCfg.Thermostat,
			Policy:     expCfg.Policy.String(),
			Labels:     labels,
			Dt:         expCfg.Dt,
			Duration:   expCfg.Duration,
			Clamped:    reaction.Clamped(),
		}, result, &inv)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("total reward: %.6f\n", result.TotalReward)
	if n := reaction.Clamped(); n > 0 {
		fmt.Printf("clamped amounts: %d\n", n)
	}

	fmt.Println("\nfinal amounts:")
	final := result.Final()
	for i, label := range labels {
		fmt.Printf("  %-4s %.6f mol\n", label, final[i])
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if runErr != nil {
		return fmt.Errorf("run stopped early: %w", runErr)
	}
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func sweepTemperatures(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	points, err := parseFloats(temps)
	if err != nil {
		return fmt.Errorf("--temps: %w", err)
	}
	if len(points) == 0 {
		return fmt.Errorf("--temps: no temperatures given")
	}

	expCfg, err := cfg.Experiment()
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	thermostats := make([]sim.Thermostat, len(points))
	for i, T := range points {
		params := expCfg.Params
		params.Temperature = T
		th, err := registry.GetThermostat(expCfg.Thermostat, params)
		if err != nil {
			return err
		}
		thermostats[i] = th
	}

	base, err := registry.GetReaction(expCfg.Reaction)
	if err != nil {
		return err
	}
	factory := func() (sim.Reactor, error) {
		return registry.GetReaction(expCfg.Reaction, kinetics.WithPolicy(expCfg.Policy))
	}
	sweep := sim.NewSweep(factory, thermostats, func() []sim.Metric {
		return registry.DefaultMetrics(base)
	})

	var x0 sim.State
	if len(expCfg.InitAmounts) > 0 {
		x0 = sim.State(expCfg.InitAmounts)
	}
	results, err := sweep.Run(cmd.Context(), x0, sim.Config{Dt: expCfg.Dt, Duration: expCfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"T(K)"}
	header = append(header, base.Labels()...)
	header = append(header, "REWARD", "MASS_DRIFT")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, res := range results {
		row := []string{fmt.Sprintf("%.1f", points[i])}
		for _, v := range res.Final() {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		row = append(row, fmt.Sprintf("%.6f", res.TotalReward), fmt.Sprintf("%.2e", res.Metrics["mass_balance"]))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
