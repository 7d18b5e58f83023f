package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	dt             float64
	duration       float64
	temperature    float64
	volume         float64
	thermostat     string
	rampRate       float64
	maxTemperature float64
	policy         string
	overlap        bool
	initAmounts    string
	configFile     string
	preset         string
	noSave         bool

	outPath    string
	components bool
	unmix      bool
	temps      string
	unit       string
	svgPath    string

	tMin     float64
	tMax     float64
	points   int
	volumes  string
	metric   string
	minimize bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chemlab",
		Short:         "chemistry lab simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chemlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [reaction]",
		Short: "run a reaction episode and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReaction,
	}
	addEpisodeFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot amounts and reward of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the amount chart to an SVG file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [reaction]",
		Short: "simulate and show the absorbance spectrum",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showSpectrum,
	}
	addEpisodeFlags(spectrumCmd)
	spectrumCmd.Flags().BoolVar(&components, "components", false, "plot each species separately")
	spectrumCmd.Flags().BoolVar(&unmix, "unmix", false, "recover concentrations from the curve")
	spectrumCmd.Flags().StringVar(&svgPath, "svg", "", "also write the spectrum to an SVG file")

	watchCmd := &cobra.Command{
		Use:   "watch [reaction]",
		Short: "run a reaction with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchReaction,
	}
	addEpisodeFlags(watchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [reaction]",
		Short: "compare episodes across temperatures",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepTemperatures,
	}
	addEpisodeFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&temps, "temps", "280,300,350,400,450", "comma-separated temperatures (K)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [reaction]",
		Short: "grid-search temperature and volume for the best metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  optimizeConditions,
	}
	addEpisodeFlags(optimizeCmd)
	optimizeCmd.Flags().Float64Var(&tMin, "tmin", 280, "lowest temperature (K)")
	optimizeCmd.Flags().Float64Var(&tMax, "tmax", 500, "highest temperature (K)")
	optimizeCmd.Flags().IntVar(&points, "points", 12, "temperatures to try")
	optimizeCmd.Flags().StringVar(&volumes, "volumes", "", "comma-separated volumes to try (default: --volume)")
	optimizeCmd.Flags().StringVar(&metric, "metric", "yield", "metric to optimize")
	optimizeCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize instead of maximize")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list built-in materials",
		RunE:  showCatalog,
	}
	catalogCmd.Flags().StringVar(&unit, "unit", "K", "temperature unit for transition points (K or C)")

	dissociateCmd := &cobra.Command{
		Use:   "dissociate [material]",
		Short: "show the ions a material dissociates into",
		Args:  cobra.ExactArgs(1),
		RunE:  dissociate,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [reaction]",
		Short: "list available presets for a reaction",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, deleteCmd,
		spectrumCmd, watchCmd, sweepCmd, optimizeCmd, catalogCmd, dissociateCmd, presetsCmd)
	return rootCmd
}

func addEpisodeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 5.0, "duration")
	cmd.Flags().Float64Var(&temperature, "temp", 300, "temperature (K), or starting temperature for ramps")
	cmd.Flags().Float64Var(&volume, "volume", 0.1, "vessel volume (m^3)")
	cmd.Flags().StringVar(&thermostat, "thermostat", "constant", "thermostat (constant, ramp, schedule)")
	cmd.Flags().Float64Var(&rampRate, "ramp-rate", 10, "heating rate for ramp (K per unit time)")
	cmd.Flags().Float64Var(&maxTemperature, "max-temp", 500, "ramp ceiling (K), 0 for none")
	cmd.Flags().StringVar(&policy, "policy", "reject", "overshoot policy (reject, clamp)")
	cmd.Flags().BoolVar(&overlap, "overlap", false, "use overlapping spectra")
	cmd.Flags().StringVar(&initAmounts, "init", "1,0,0", "initial amounts (mol), comma-separated")
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		vals[i] = v
	}
	return vals, nil
}
