package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/export"
	"github.com/san-kum/chemlab/internal/kinetics"
	"github.com/san-kum/chemlab/internal/material"
	"github.com/san-kum/chemlab/internal/optim"
	"github.com/san-kum/chemlab/internal/spectra"
	"github.com/san-kum/chemlab/internal/viz"
)

func showSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, expCfg, err := setupExperiment(cfg)
	if err != nil {
		return err
	}
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	reaction := exp.Reaction()
	V := expCfg.Params.Volume
	if n := len(result.Conditions); n > 0 {
		V = result.Conditions[n-1].Volume
	}

	curve, err := reaction.Spectrum(V)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(curve,
		asciigraph.Height(12),
		asciigraph.Width(100),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(fmt.Sprintf("absorbance, %g-%g nm", spectra.WavelengthMin, spectra.WavelengthMin+spectra.WavelengthRange)),
	))
	fmt.Println()

	if svgPath != "" {
		wavelengths := make([]float64, len(curve))
		for i, x := range reaction.Axis() {
			wavelengths[i] = x*spectra.WavelengthRange + spectra.WavelengthMin
		}
		if err := writeSVG(wavelengths, [][]float64{curve}, []string{"absorbance"}, "wavelength (nm)", "absorbance"); err != nil {
			return err
		}
	}

	if components {
		parts, err := reaction.SpectrumComponents(V)
		if err != nil {
			return err
		}
		fmt.Println(asciigraph.PlotMany(parts,
			asciigraph.Height(10),
			asciigraph.Width(100),
			asciigraph.SeriesLegends(reaction.Labels()...),
			asciigraph.Caption("per-species absorbance"),
		))
		fmt.Println()
	}

	peaks, err := reaction.SpectrumPeaks(V)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tWAVELENGTH(nm)\tHEIGHT")
	for _, p := range peaks {
		for i := range p.Wavelengths {
			fmt.Fprintf(w, "%s\t%.1f\t%.6f\n", p.Label, p.Wavelengths[i], p.Heights[i])
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if unmix {
		actual, err := reaction.Concentration(V)
		if err != nil {
			return err
		}
		recovered, err := reaction.Unmix(V)
		if err != nil {
			return err
		}
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SPECIES\tACTUAL(mol/L)\tRECOVERED(mol/L)")
		for i, label := range reaction.Labels() {
			fmt.Fprintf(w, "%s\t%.6e\t%.6e\n", label, actual[i], recovered[i])
		}
		return w.Flush()
	}
	return nil
}

func showCatalog(cmd *cobra.Command, args []string) error {
	u := material.Kelvin
	switch strings.ToUpper(unit) {
	case "K":
	case "C":
		u = material.Celsius
	default:
		return fmt.Errorf("unknown unit %q (want K or C)", unit)
	}
	suffix := map[material.Unit]string{material.Kelvin: "K", material.Celsius: "C"}[u]

	cat := material.Builtin()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "IDX\tNAME\tPHASE\tM(g/mol)\tMP(%s)\tBP(%s)\tCHARGE\tPOLARITY\tROLE\n", suffix, suffix)
	for _, name := range cat.Names() {
		s, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		m, err := cat.New(name)
		if err != nil {
			return err
		}
		role := "-"
		switch {
		case m.IsSolvent():
			role = "solvent"
		case m.IsSolute():
			role = "solute"
		}
		if s.Dissociates() {
			role += ",ionic"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%s\t%s\t%s\t%s\t%s\n",
			s.Index(), s.Name(), s.Phase(), s.MolarMass(),
			optional(s.MeltingPoint(u)), optional(s.BoilingPoint(u)),
			optional(s.Charge()), optional(s.Polarity()), role)
	}
	return w.Flush()
}

func optional(v float64, err error) string {
	if errors.Is(err, material.ErrUnsetConstant) {
		return "-"
	}
	if err != nil {
		return "?"
	}
	return fmt.Sprintf("%.4g", v)
}

func dissociate(cmd *cobra.Command, args []string) error {
	s, err := material.Builtin().Lookup(args[0])
	if err != nil {
		return err
	}
	fragments, err := s.Dissociate()
	if err != nil {
		return err
	}
	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = fmt.Sprintf("%d %s (%+g)", f.Count, f.Species, f.Charge)
	}
	fmt.Printf("%s -> %s\n", s.Name(), strings.Join(parts, " + "))
	return nil
}

func watchReaction(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("watch needs an interactive terminal; use run instead")
	}
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	expCfg, err := cfg.Experiment()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	reaction, err := registry.GetReaction(expCfg.Reaction, kinetics.WithPolicy(expCfg.Policy), kinetics.WithLogger(logger))
	if err != nil {
		return err
	}
	if len(expCfg.InitAmounts) > 0 {
		if err := reaction.SetAmounts(expCfg.InitAmounts); err != nil {
			return err
		}
	}
	th, err := registry.GetThermostat(expCfg.Thermostat, expCfg.Params)
	if err != nil {
		return err
	}

	m := viz.NewModel(reaction, th, expCfg.Dt, expCfg.Duration, expCfg.Reaction, logger)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func optimizeConditions(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if points < 1 || tMax < tMin {
		return fmt.Errorf("need --points >= 1 and --tmax >= --tmin")
	}

	vols := []float64{cfg.Volume}
	if volumes != "" {
		if vols, err = parseFloats(volumes); err != nil {
			return fmt.Errorf("--volumes: %w", err)
		}
	}

	grid, err := optim.NewGridSearch(
		[]string{"temperature", "volume"},
		[][]float64{optim.Linspace(tMin, tMax, points), vols},
		!minimize)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		trial := *cfg
		trial.Temperature = params["temperature"]
		trial.Volume = params["volume"]
		if err := trial.Validate(); err != nil {
			return nil, err
		}
		exp, _, err := setupExperiment(&trial)
		return exp, err
	}

	best, trials, err := grid.Search(cmd.Context(), build, metric)
	if err != nil {
		return err
	}

	grid.SortTrials(trials)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "T(K)\tV\t%s\n", strings.ToUpper(metric))
	for _, tr := range trials {
		val := fmt.Sprintf("%.6f", tr.Value)
		if tr.Err != nil {
			val = "failed: " + tr.Err.Error()
		}
		fmt.Fprintf(w, "%.1f\t%g\t%s\n", tr.Params["temperature"], tr.Params["volume"], val)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: T=%.1f K, V=%g, %s=%.6f\n",
		best.Params["temperature"], best.Params["volume"], metric, best.Value)
	return nil
}

func writeSVG(xs []float64, series [][]float64, labels []string, xLabel, yLabel string) error {
	svg, err := export.SeriesSVG(xs, series, labels, 800, 400, xLabel, yLabel)
	if err != nil {
		return err
	}
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}
