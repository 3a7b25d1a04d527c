// Package scene is the declarative shape tree produced by the formation
// renderer and consumed by vector drawing surfaces.
package scene

import (
	"time"
)

// Kind is the geometric primitive of a node.
type Kind string

const (
	KindGroup  Kind = "g"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindLine   Kind = "line"
)

// Style holds stroke and fill attributes. Zero values are omitted on output,
// so an unset Fill inherits from the enclosing group.
type Style struct {
	Stroke        string
	Fill          string
	StrokeWidth   float64
	StrokeOpacity float64
	DashArray     string
	LineCap       string
	LineJoin      string
	Opacity       float64
	// Filter names a scene filter by ID, e.g. "glow".
	Filter string
}

// Node is one shape, or a group of shapes.
type Node struct {
	Kind Kind
	// Key identifies semantically interesting nodes ("connective", "anchor-fire", ...).
	Key string

	// Circle.
	CX, CY, R float64
	// Line.
	X1, Y1, X2, Y2 float64
	// Path data.
	D string

	Transform  string
	Style      Style
	Animations []Animation
	Children   []Node
}

// AnimationKind selects the animation element.
type AnimationKind string

const (
	Animate          AnimationKind = "animate"
	AnimateTransform AnimationKind = "animateTransform"
	AnimateMotion    AnimationKind = "animateMotion"
)

// Animation is one periodic animation parameter set.
type Animation struct {
	Kind AnimationKind
	// Attribute is the animated attribute ("r", "d", "transform", ...).
	Attribute string
	// TransformType is rotate, scale or translate for AnimateTransform.
	TransformType string
	Values        []string
	From, To      string
	// MotionPath is the path followed by AnimateMotion.
	MotionPath string
	Dur        time.Duration
	Begin      time.Duration
	Additive   string
	Forever    bool
}

// Filter is a glow filter definition referenced by Style.Filter.
type Filter struct {
	ID           string
	StdDeviation float64
}

// Scene is a complete emblem ready for drawing.
type Scene struct {
	// ViewBox is min-x, min-y, width, height.
	ViewBox   [4]float64
	Formation string
	Filters   []Filter
	Root      Node
}

// DefaultViewBox frames a 140-unit square centered on the origin.
var DefaultViewBox = [4]float64{-70, -70, 140, 140}

// DefaultFilters are the soft and strong glow filters.
func DefaultFilters() []Filter {
	return []Filter{
		{ID: "glow", StdDeviation: 3},
		{ID: "glow-strong", StdDeviation: 5},
	}
}

// Group returns a group node holding children.
func Group(children ...Node) Node {
	return Node{Kind: KindGroup, Children: children}
}

// Circle returns a circle centered at the origin.
func Circle(r float64, style Style) Node {
	return Node{Kind: KindCircle, R: r, Style: style}
}

// Path returns a path node.
func Path(d string, style Style) Node {
	return Node{Kind: KindPath, D: d, Style: style}
}

// With returns n with the animations appended.
func (n Node) With(anims ...Animation) Node {
	n.Animations = append(append([]Animation(nil), n.Animations...), anims...)
	return n
}

// Keyed returns n tagged with key.
func (n Node) Keyed(key string) Node {
	n.Key = key
	return n
}

// Moved returns n with the given transform.
func (n Node) Moved(transform string) Node {
	n.Transform = transform
	return n
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n Node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes of the given kind in the scene.
func (s Scene) Count(kind Kind) int {
	n := 0
	s.Root.Walk(func(node Node) bool {
		if node.Kind == kind {
			n++
		}
		return true
	})
	return n
}

// Find returns the first node carrying key.
func (s Scene) Find(key string) (Node, bool) {
	var found Node
	ok := false
	s.Root.Walk(func(node Node) bool {
		if ok {
			return false
		}
		if node.Key == key {
			found, ok = node, true
			return false
		}
		return true
	})
	return found, ok
}
