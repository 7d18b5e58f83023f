package export

import (
	"strings"
	"testing"
)

func TestSeriesSVG(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	series := [][]float64{{1, 0.5, 0.25, 0.125}, {0, 0.5, 0.75, 0.875}}

	svg, err := SeriesSVG(xs, series, []string{"[A]", "[B]"}, 640, 360, "time", "mol")
	if err != nil {
		t.Fatalf("SeriesSVG: %v", err)
	}

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(svg, "<path "); n != 2 {
		t.Errorf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, ">[A]</text>") {
		t.Error("expected legend label for [A]")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("svg contains non-finite coordinates")
	}
}

func TestSeriesSVGFlatAndEscaped(t *testing.T) {
	svg, err := SeriesSVG([]float64{0, 1}, [][]float64{{2, 2}}, []string{"a<b"}, 200, 100, "x", "y")
	if err != nil {
		t.Fatalf("SeriesSVG: %v", err)
	}
	if strings.Contains(svg, "NaN") {
		t.Error("flat series should not produce NaN")
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Error("labels should be escaped")
	}
}

func TestSeriesSVGErrors(t *testing.T) {
	if _, err := SeriesSVG([]float64{0}, [][]float64{{1}}, nil, 100, 100, "", ""); err == nil {
		t.Error("expected error for a single sample")
	}
	if _, err := SeriesSVG([]float64{0, 1}, nil, nil, 100, 100, "", ""); err == nil {
		t.Error("expected error for no series")
	}
}
