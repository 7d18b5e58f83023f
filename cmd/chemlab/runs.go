package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/chemlab/internal/config"
	"github.com/san-kum/chemlab/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREACTION\tTIME\tDURATION\tDT\tTHERMOSTAT\tPOLICY\tREWARD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%s\t%.6f\n",
			run.ID,
			run.Reaction,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Thermostat,
			run.Policy,
			run.TotalReward,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("reaction: %s\n", meta.Reaction)
	fmt.Printf("samples: %d\n\n", len(traj.States))

	series := make([][]float64, len(traj.Labels))
	for i := range series {
		series[i] = make([]float64, len(traj.States))
		for j, state := range traj.States {
			series[i][j] = state[i]
		}
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow),
		asciigraph.SeriesLegends(traj.Labels...),
		asciigraph.Caption("amount (mol) vs time"),
	)
	fmt.Println(graph)
	fmt.Println()

	if svgPath != "" {
		if err := writeSVG(traj.Times, series, traj.Labels, "time", "amount (mol)"); err != nil {
			return err
		}
	}

	fmt.Println(asciigraph.Plot(traj.Temperatures,
		asciigraph.Height(5),
		asciigraph.Width(80),
		asciigraph.Caption("temperature (K)"),
	))
	fmt.Println()

	if len(traj.Rewards) > 1 {
		fmt.Println(asciigraph.Plot(traj.Rewards[1:],
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("reward per step"),
		))
	}
	return nil
}

// output opens the --out file, or stdout when none is set.
func output() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(args[0], w); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("exported to %s\n", outPath)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).CopyStates(args[0], w); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("exported to %s\n", outPath)
	}
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	if err := storage.New(dataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Printf("no presets for reaction: %s\n", args[0])
		return nil
	}
	fmt.Printf("presets for %s:\n", args[0])
	for _, p := range presets {
		cfg := config.GetPreset(args[0], p)
		fmt.Printf("  %-8s %s thermostat, T=%.0f K, V=%g, %g x %g\n",
			p, cfg.Thermostat, cfg.Temperature, cfg.Volume, cfg.Duration, cfg.Dt)
	}
	return nil
}
