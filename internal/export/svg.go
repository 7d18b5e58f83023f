package export

import (
	"fmt"
	"math"
	"strings"
)

var palette = []string{"#ff4444", "#00cc66", "#3399ff", "#ffcc00", "#cc66ff", "#00cccc"}

const (
	marginLeft   = 60.0
	marginRight  = 110.0
	marginTop    = 20.0
	marginBottom = 40.0
)

// SeriesSVG draws every series against the shared x values as a line chart
// with a legend. Series shorter than xs are drawn up to their length.
func SeriesSVG(xs []float64, series [][]float64, labels []string, width, height int, xLabel, yLabel string) (string, error) {
	if len(xs) < 2 {
		return "", fmt.Errorf("need at least 2 samples, got %d", len(xs))
	}
	if len(series) == 0 {
		return "", fmt.Errorf("no series to draw")
	}

	minX, maxX := bounds(xs)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		lo, hi := bounds(s)
		minY, maxY = math.Min(minY, lo), math.Max(maxY, hi)
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	pad := (maxY - minY) * 0.05
	minY, maxY = minY-pad, maxY+pad

	plotW := float64(width) - marginLeft - marginRight
	plotH := float64(height) - marginTop - marginBottom
	px := func(x float64) float64 { return marginLeft + (x-minX)/(maxX-minX)*plotW }
	py := func(y float64) float64 { return marginTop + plotH - (y-minY)/(maxY-minY)*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace" font-size="11">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#444466" fill="none">
<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
</g>
`, width, height, width, height, marginLeft, marginTop, plotW, plotH)

	fmt.Fprintf(&sb, `<g fill="#888899">
<text x="%.1f" y="%.1f">%.3g</text>
<text x="%.1f" y="%.1f">%.3g</text>
<text x="%.1f" y="%.1f">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="end">%.3g</text>
<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>
<text x="12" y="%.1f" transform="rotate(-90 12 %.1f)" text-anchor="middle">%s</text>
</g>
`,
		4.0, marginTop+10, maxY,
		4.0, marginTop+plotH, minY,
		marginLeft, marginTop+plotH+14, minX,
		marginLeft+plotW, marginTop+plotH+14, maxX,
		marginLeft+plotW/2, float64(height)-8, escape(xLabel),
		marginTop+plotH/2, marginTop+plotH/2, escape(yLabel))

	for i, s := range series {
		color := palette[i%len(palette)]
		n := min(len(s), len(xs))
		if n < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j := 0; j < n; j++ {
			if j > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(xs[j]), py(s[j]))
		}
		sb.WriteString("\"/>\n")

		label := fmt.Sprintf("series %d", i)
		if i < len(labels) {
			label = labels[i]
		}
		ly := marginTop + 14 + float64(i)*16
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, marginLeft+plotW+10, ly-4, marginLeft+plotW+30, ly-4, color, marginLeft+plotW+36, ly, color, escape(label))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

func bounds(vs []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
