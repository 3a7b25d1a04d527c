package formation

import (
	"fmt"
	"time"

	"linggen/internal/descriptor"
	"linggen/internal/geometry"
	"linggen/internal/scene"
)

const ms = time.Millisecond

func rotate(from, to string, dur time.Duration) scene.Animation {
	return scene.Animation{
		Kind:          scene.AnimateTransform,
		Attribute:     "transform",
		TransformType: "rotate",
		From:          from,
		To:            to,
		Dur:           dur,
		Forever:       true,
	}
}

func pulse(dur time.Duration, values ...string) scene.Animation {
	return scene.Animation{
		Kind:          scene.AnimateTransform,
		Attribute:     "transform",
		TransformType: "scale",
		Values:        values,
		Dur:           dur,
		Forever:       true,
	}
}

func animate(attr string, dur time.Duration, values ...string) scene.Animation {
	return scene.Animation{Kind: scene.Animate, Attribute: attr, Values: values, Dur: dur, Forever: true}
}

func outline(color string, width float64) scene.Style {
	return scene.Style{Stroke: color, StrokeWidth: width, Fill: "none"}
}

// baseFormation draws the five anchors, highlighting the active elements and
// joining them in table order. unstable selects the false-root styling.
func (r *Renderer) baseFormation(elements []descriptor.Element, unstable bool) scene.Node {
	c := descriptor.Classification{Elements: elements}
	active := geometry.ActiveSubset(c)

	var children []scene.Node
	if d := geometry.ConnectivePath(active).D(); d != "" {
		children = append(children, connective(d, unstable))
	}

	for _, a := range geometry.Anchors() {
		color := ElementColor(a.Element)
		anchor := scene.Group().
			Keyed("anchor-" + a.Element.Key()).
			Moved(fmt.Sprintf("translate(%s, %s)", geometry.FormatFloat(a.X), geometry.FormatFloat(a.Y)))
		if c.Has(a.Element) {
			anchor.Children = append(anchor.Children, elementEmblem(a.Element, color))
			if unstable {
				anchor.Children = append(anchor.Children, r.sparks(color))
			}
		} else {
			anchor.Children = append(anchor.Children, scene.Circle(12, outline(inactiveColor, 1.5)).Keyed("inactive"))
		}
		children = append(children, anchor)
	}

	if !unstable {
		children = append(children, trueRings(len(active))...)
	}
	return scene.Group(children...)
}

func connective(d string, unstable bool) scene.Node {
	style := scene.Style{
		Stroke:        trueStroke,
		Fill:          "none",
		StrokeWidth:   2.5,
		StrokeOpacity: 0.8,
		Filter:        "glow",
	}
	n := scene.Path(d, style).Keyed("connective")
	if unstable {
		n.Style.Stroke = falseStroke
		n.Style.StrokeWidth = 1.5
		n.Style.DashArray = "6 4"
		n = n.With(animate("stroke-dashoffset", time.Second, "0", "20"))
	}
	return n
}

func trueRings(activeCount int) []scene.Node {
	outer := scene.Circle(65, scene.Style{
		Stroke: trueRingStroke, Fill: "none", StrokeWidth: 1.5,
		DashArray: "2 12", LineCap: "round", StrokeOpacity: 0.7,
	}).Keyed("outer-ring").With(rotate("0", "360", 30*time.Second))

	rings := []scene.Node{outer}
	if activeCount == 3 {
		inner := scene.Circle(25, scene.Style{
			Stroke: trueRingStroke, Fill: "none", StrokeWidth: 1,
			DashArray: "4 4", LineCap: "round", StrokeOpacity: 0.5,
		}).Keyed("inner-ring").With(rotate("360", "0", 25*time.Second))
		rings = append(rings, inner)
	}
	return rings
}

// sparks are the particle bursts around an unstable anchor.
func (r *Renderer) sparks(color string) scene.Node {
	g := scene.Group().Keyed("sparks")
	g.Style.Fill = color
	for i := 0; i < 3; i++ {
		dx := (r.float() - 0.5) * 20
		dy := (r.float() - 0.5) * 20
		spark := scene.Node{Kind: scene.KindCircle, R: 1.5}.With(
			scene.Animation{
				Kind:       scene.AnimateMotion,
				MotionPath: fmt.Sprintf("M0,0 L%s,%s", geometry.FormatFloat(dx), geometry.FormatFloat(dy)),
				Dur:        r.seconds(1, 1),
				Begin:      r.seconds(0, 1),
				Forever:    true,
			},
			scene.Animation{
				Kind:      scene.Animate,
				Attribute: "opacity",
				Values:    []string{"1", "0"},
				Dur:       r.seconds(1, 1),
				Begin:     r.seconds(0, 1),
				Forever:   true,
			},
		)
		g.Children = append(g.Children, spark)
	}
	return g
}

// elementEmblem is the animated glyph framed by a pulsing ring at an active anchor.
func elementEmblem(e descriptor.Element, color string) scene.Node {
	frame := scene.Circle(12, outline(color, 1.5)).With(
		animate("r", 3*time.Second, "12", "13", "12"),
		animate("stroke-opacity", 3*time.Second, "1", "0.7", "1"),
	)

	var glyph scene.Node
	switch e {
	case descriptor.Metal:
		glyph = scene.Path("M0,-8 L2,-2 L8,0 L2,2 L0,8 L-2,2 L-8,0 L-2,-2 Z", scene.Style{Fill: color}).
			With(pulse(3*time.Second, "1", "0.9", "1"))
	case descriptor.Wood:
		const sprout = "M0,8 L0,-1 M-6,-2 C-2,-2 0,-7 0,-7 C0,-7 2,-2 6,-2"
		glyph = scene.Path(sprout, scene.Style{Stroke: color, StrokeWidth: 1.5, Fill: "none", LineCap: "round"}).
			With(animate("d", 2500*ms, sprout, "M0,8 L0,-2 M-7,-3 C-2,-3 0,-8 0,-8 C0,-8 2,-3 7,-3", sprout))
	case descriptor.Water:
		const upper, lower = "M-8,-3 C-4,1 4,-7 8,-3", "M-8,3 C-4,7 4,-1 8,3"
		second := scene.Path(lower, scene.Style{}).With(animate("d", 2*time.Second, lower, "M-8,3 C-4,3 4,7 8,3", lower))
		second.Animations[0].Begin = 500 * ms
		glyph = scene.Group(
			scene.Path(upper, scene.Style{}).With(animate("d", 2*time.Second, upper, "M-8,-3 C-4,-3 4,1 8,-3", upper)),
			second,
		)
		glyph.Style = scene.Style{Stroke: color, StrokeWidth: 1.5, Fill: "none", LineCap: "round"}
	case descriptor.Fire:
		const flame = "M0,8 C-8,0 -3,-8 0,-8 C3,-8 8,0 0,8 Z"
		glyph = scene.Path(flame, scene.Style{Fill: color}).
			With(animate("d", 800*ms, flame, "M0,8 C-7,1 -4,-7 0,-9 C4,-7 7,1 0,8 Z", flame))
	case descriptor.Earth:
		mountain := scene.Path("M-8,6 L-4,-2 L0,4 L4,-4 L8,6 M-8,6 H8", scene.Style{}).
			With(animate("transform", 4*time.Second, "translate(0,0)", "translate(0,-0.5)", "translate(0,0)"))
		glyph = scene.Group(mountain)
		glyph.Style = scene.Style{Stroke: color, StrokeWidth: 1.5, Fill: "none", LineCap: "round", LineJoin: "round"}
	}

	return scene.Group(frame, glyph).Keyed("emblem-" + e.Key())
}

// heavenlyOverlay is the ascendant glyph: a slow dashed halo, the element's
// sigil at the center, and a ray out to its anchor.
func heavenlyOverlay(e descriptor.Element) scene.Node {
	color := ElementColor(e)
	a := geometry.AnchorFor(e)

	halo := scene.Circle(60, scene.Style{
		Stroke: color, Fill: "none", StrokeWidth: 1, StrokeOpacity: 0.5, DashArray: "10 5",
	}).With(rotate("0 0 0", "360 0 0", 30*time.Second))

	sigil := scene.Path(sigils[e.Key()], scene.Style{Fill: color, Filter: "glow"}).
		Moved("scale(0.7)").
		With(pulse(2*time.Second, "0.7", "0.8", "0.7"))

	ray := scene.Node{
		Kind:  scene.KindLine,
		X2:    a.X,
		Y2:    a.Y,
		Style: scene.Style{Stroke: color, StrokeWidth: 1.5, Filter: "glow"},
	}.With(
		animate("stroke-dasharray", 2*time.Second, "4 4", "8 8", "4 4"),
		animate("stroke-dashoffset", time.Second, "0", "16"),
	)

	return scene.Group(halo, sigil, ray).Keyed("ascendant")
}
