package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"linggen/internal/descriptor"
	"linggen/internal/formation"
	"linggen/internal/geometry"
)

// EmblemSize is the side of the terminal emblem grid, in cells. Each cell
// is two terminal columns wide so that CJK glyphs fit.
const EmblemSize = 13

const (
	blankCell = "  "
	dotCell   = " ·"
	// viewbox half-extent mapped onto the grid
	emblemExtent = 70.0
)

type cell struct {
	text  string
	color string
}

type grid [EmblemSize][EmblemSize]cell

func toCell(p geometry.Point) (int, int) {
	scale := float64(EmblemSize-1) / (2 * emblemExtent)
	x := int(math.Round((p.X + emblemExtent) * scale))
	y := int(math.Round((p.Y + emblemExtent) * scale))
	return clampCell(x), clampCell(y)
}

func clampCell(v int) int {
	if v < 0 {
		return 0
	}
	if v >= EmblemSize {
		return EmblemSize - 1
	}
	return v
}

func (g *grid) put(p geometry.Point, text, color string) {
	x, y := toCell(p)
	g[y][x] = cell{text: text, color: color}
}

// line draws dots between two points, leaving the endpoints alone.
func (g *grid) line(a, b geometry.Point, color string) {
	x0, y0 := toCell(a)
	x1, y1 := toCell(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if (x0 != x1 || y0 != y1) && g[y0][x0].text == "" {
			g[y0][x0] = cell{text: dotCell, color: color}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (g *grid) ring(r float64, n int, color string) {
	for i := 0; i < n; i++ {
		rad := float64(i) * 2 * math.Pi / float64(n)
		p := geometry.Point{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
		x, y := toCell(p)
		if g[y][x].text == "" {
			g[y][x] = cell{text: dotCell, color: color}
		}
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c.text == "" {
				b.WriteString(blankCell)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(c.text))
		}
	}
	return b.String()
}

// RenderEmblem draws a small colored approximation of the classification's
// formation for the terminal. It follows the same dispatch as the SVG scene.
func RenderEmblem(c descriptor.Classification) string {
	var g grid
	center := geometry.Point{}

	f := formation.Select(c)
	switch f {
	case formation.Heavenly, formation.True, formation.False:
		stroke := formation.TrueStrokeColor
		if f == formation.False {
			stroke = formation.FalseStrokeColor
		}
		active := geometry.ActiveSubset(c)
		path := geometry.ConnectivePath(active)
		for i := 1; i < len(path.Points); i++ {
			g.line(path.Points[i-1], path.Points[i], stroke)
		}
		if path.Closed() {
			g.line(path.Points[len(path.Points)-1], path.Points[0], stroke)
		}
		if f == formation.Heavenly {
			el := c.Elements[0]
			g.line(center, geometry.AnchorFor(el).Point, formation.ElementColor(el))
			g.put(center, el.Glyph(), formation.ElementColor(el))
		}
		for _, a := range geometry.Anchors() {
			color := formation.InactiveColor
			if c.Has(a.Element) {
				color = formation.ElementColor(a.Element)
			}
			g.put(a.Point, a.Element.Glyph(), color)
		}

	case formation.Ice, formation.Wind, formation.Lightning, formation.Dark:
		color := formation.RareColor(c.Rare)
		g.ring(geometry.Radius, 16, color)
		g.put(center, c.Rare.Glyph(), color)
		if c.Root == descriptor.Hidden {
			g.ring(geometry.Radius+12, 24, formation.VeilColor)
		}

	case formation.Abyss:
		g.ring(geometry.Radius+12, 24, formation.AbyssOuterColor)
		g.ring(geometry.Radius-10, 12, formation.RareColor(descriptor.Dark))
		g.put(center, descriptor.Dark.Glyph(), formation.AbyssCoreColor)

	default:
		g.put(center, "？", formation.UnmeasuredColor)
	}
	return g.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
