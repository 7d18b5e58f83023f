package viz

import (
	"strings"
)

// Each terminal cell is one Braille glyph of 2x4 dots, offset from U+2800.
const blankCell = '⠀'

// dotBits[row][col] is the Braille bit for the dot at that position.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// SpectrumCanvas renders an absorbance curve over the normalized wavelength
// axis. Absorbance 0 sits on the bottom dot row and 1 on the top; each cell
// holds 2x4 dots, so a cols x rows canvas resolves (2*cols) x (4*rows).
type SpectrumCanvas struct {
	cols, rows int
	cells      [][]rune
}

func NewSpectrumCanvas(cols, rows int) *SpectrumCanvas {
	c := &SpectrumCanvas{cols: max(cols, 1), rows: max(rows, 1)}
	c.cells = make([][]rune, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, c.cols)
	}
	c.Clear()
	return c
}

func (c *SpectrumCanvas) Cols() int { return c.cols }
func (c *SpectrumCanvas) Rows() int { return c.rows }

func (c *SpectrumCanvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = blankCell
		}
	}
}

// Draw traces absorbance, resampled across the canvas width, as a connected
// curve. Samples outside [0, 1] are pinned to the nearest edge.
func (c *SpectrumCanvas) Draw(absorbance []float64) {
	if len(absorbance) == 0 {
		return
	}
	width := c.cols * 2
	prevX, prevY := 0, c.dotRow(absorbance[0])
	c.dot(prevX, prevY)
	for x := 1; x < width; x++ {
		y := c.dotRow(absorbance[x*(len(absorbance)-1)/(width-1)])
		c.segment(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

// Mark draws a dotted vertical guide at normalized wavelength pos, used for
// peak centres. Positions outside [0, 1] are ignored.
func (c *SpectrumCanvas) Mark(pos float64) {
	if !(pos >= 0 && pos <= 1) {
		return
	}
	x := int(pos*float64(c.cols*2-1) + 0.5)
	for y := 0; y < c.rows*4; y += 2 {
		c.dot(x, y)
	}
}

// dotRow maps an absorbance to a dot row counted from the top.
func (c *SpectrumCanvas) dotRow(a float64) int {
	a = min(max(a, 0), 1)
	bottom := c.rows*4 - 1
	return bottom - int(a*float64(bottom)+0.5)
}

func (c *SpectrumCanvas) dot(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
}

// segment joins two dots with Bresenham's line.
func (c *SpectrumCanvas) segment(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	sx, sy := 1, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	if dy < 0 {
		dy, sy = -dy, -1
	}
	e := dx - dy
	for {
		c.dot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		if 2*e > -dy {
			e -= dy
			x0 += sx
		}
		if 2*e < dx {
			e += dx
			y0 += sy
		}
	}
}

// Lit reports whether any dot of the cell at (col, row) is set.
func (c *SpectrumCanvas) Lit(col, row int) bool {
	return c.cells[row][col] != blankCell
}

func (c *SpectrumCanvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
