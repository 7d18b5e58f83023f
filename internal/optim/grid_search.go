package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/chemlab/internal/experiment"
)

// GridSearch evaluates every combination of parameter values and keeps the
// one with the best metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64, maximize bool) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameter names for %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, maximize: maximize}, nil
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Search runs every grid point. Points whose experiment fails are recorded
// with Err set and never win. It returns an error only if ctx is canceled
// or no point succeeds.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	var trials []Trial
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, buildExperiment, metricName, &trials); err != nil {
		return Trial{}, trials, err
	}

	best := -1
	for i, tr := range trials {
		if tr.Err != nil {
			continue
		}
		if best == -1 || g.better(tr.Value, trials[best].Value) {
			best = i
		}
	}
	if best == -1 {
		return Trial{}, trials, fmt.Errorf("no grid point produced %s", metricName)
	}
	return trials[best], trials, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	trials *[]Trial,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		*trials = append(*trials, g.evaluate(ctx, current, buildExperiment, metricName))
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, buildExperiment, metricName, trials); err != nil {
			return err
		}
	}
	return nil
}

func (g *GridSearch) evaluate(
	ctx context.Context,
	params map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
) Trial {
	tr := Trial{Params: params}
	exp, err := buildExperiment(params)
	if err != nil {
		tr.Err = err
		return tr
	}
	result, err := exp.Run(ctx)
	if err != nil {
		tr.Err = err
		return tr
	}
	val, ok := result.Metrics[metricName]
	if !ok || math.IsNaN(val) {
		tr.Err = fmt.Errorf("metric %s not reported", metricName)
		return tr
	}
	tr.Value = val
	return tr
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// SortTrials orders successful trials best first; failed ones go last.
func (g *GridSearch) SortTrials(trials []Trial) {
	sort.SliceStable(trials, func(i, j int) bool {
		if (trials[i].Err == nil) != (trials[j].Err == nil) {
			return trials[i].Err == nil
		}
		return g.better(trials[i].Value, trials[j].Value)
	})
}
