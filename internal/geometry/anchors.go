// Package geometry computes the radial anchor layout of the five base
// elements and the connective path drawn between active anchors.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"linggen/internal/descriptor"
)

// Radius is the distance of every anchor from the emblem center, in viewbox units.
const Radius = 50.0

// Point is a position in viewbox coordinates. Y grows downward.
type Point struct {
	X, Y float64
}

// Anchor is the fixed position of one base element.
type Anchor struct {
	Element  descriptor.Element
	AngleDeg float64
	Point
}

var anchors = computeAnchors()

func computeAnchors() [descriptor.ElementCount]Anchor {
	var out [descriptor.ElementCount]Anchor
	for i, el := range descriptor.Elements() {
		angle := float64(i)*360/descriptor.ElementCount - 90
		rad := angle * math.Pi / 180
		out[i] = Anchor{
			Element:  el,
			AngleDeg: angle,
			Point:    Point{X: Radius * math.Cos(rad), Y: Radius * math.Sin(rad)},
		}
	}
	return out
}

// Anchors returns the five anchors in table order, Metal at the top and the
// rest proceeding clockwise.
func Anchors() [descriptor.ElementCount]Anchor {
	return anchors
}

// AnchorFor returns the anchor of a base element. Invalid elements map to Metal.
func AnchorFor(e descriptor.Element) Anchor {
	if !e.Valid() {
		return anchors[descriptor.Metal]
	}
	return anchors[e.Index()]
}

// ActiveSubset returns the anchors of the classification's elements in table
// order, regardless of the order the descriptor listed them.
func ActiveSubset(c descriptor.Classification) []Anchor {
	var out []Anchor
	for _, a := range anchors {
		if c.Has(a.Element) {
			out = append(out, a)
		}
	}
	return out
}

// PathKind classifies a connective path.
type PathKind int

const (
	PathNone PathKind = iota
	PathSegment
	PathPolygon
)

func (k PathKind) String() string {
	switch k {
	case PathSegment:
		return "segment"
	case PathPolygon:
		return "polygon"
	default:
		return "none"
	}
}

// Path is the stroke connecting active anchors.
type Path struct {
	Kind   PathKind
	Points []Point
}

// Closed reports whether the path returns to its first vertex.
func (p Path) Closed() bool { return p.Kind == PathPolygon }

// ConnectivePath joins the given anchors in the order supplied. Fewer than two
// anchors yield no path, two a segment, three or more a closed polygon. With
// four or five anchors the polygon may self-intersect; that is kept as drawn.
func ConnectivePath(active []Anchor) Path {
	switch {
	case len(active) < 2:
		return Path{Kind: PathNone}
	case len(active) == 2:
		return Path{Kind: PathSegment, Points: points(active)}
	default:
		return Path{Kind: PathPolygon, Points: points(active)}
	}
}

func points(active []Anchor) []Point {
	out := make([]Point, len(active))
	for i, a := range active {
		out[i] = a.Point
	}
	return out
}

// D renders the path as SVG path data, or "" when there is no path.
func (p Path) D() string {
	if p.Kind == PathNone || len(p.Points) == 0 {
		return ""
	}
	parts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		parts[i] = fmt.Sprintf("%s %s", FormatFloat(pt.X), FormatFloat(pt.Y))
	}
	d := "M" + strings.Join(parts, " L ")
	if p.Closed() {
		d += " Z"
	}
	return d
}

// FormatFloat prints v with at most three decimals and no trailing zeros.
func FormatFloat(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
