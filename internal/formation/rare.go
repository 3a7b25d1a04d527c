package formation

import (
	"fmt"
	"time"

	"linggen/internal/descriptor"
	"linggen/internal/geometry"
	"linggen/internal/scene"
)

const (
	veilRune      = "M0,-4 L2,0 L0,4 L-2,0 Z"
	veilRuneCount = 12
	questionMark  = "M8.228 9c.549-1.165 2.03-2 3.772-2 2.21 0 4 1.343 4 3 0 1.4-1.278 2.575-3.006 2.907-.542.104-.994.54-.994 1.093m0 3h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"
)

func (r *Renderer) iceComposition() scene.Node {
	color := colorOf("ice")

	flake := scene.Group().With(rotate("0", "360", 25*time.Second))
	flake.Style = scene.Style{Stroke: color, StrokeWidth: 2, Fill: "none", Filter: "glow"}
	for i := 0; i < 6; i++ {
		arm := scene.Group(
			scene.Path("M0,0 L0,-45", scene.Style{}),
			scene.Path("M0,-15 L10,-20 M0,-15 L-10,-20", scene.Style{}),
			scene.Path("M0,-30 L8,-35 M0,-30 L-8,-35", scene.Style{}),
		).Moved(fmt.Sprintf("rotate(%d)", i*60))
		flake.Children = append(flake.Children, arm)
	}

	shards := scene.Group().With(rotate("0", "-360", 18*time.Second))
	shards.Style = scene.Style{Stroke: color, StrokeWidth: 1.5, Fill: "none"}
	for i := 0; i < 6; i++ {
		shards.Children = append(shards.Children,
			scene.Path("M0,-20 L-4,-24 L4,-24 Z", scene.Style{}).Moved(fmt.Sprintf("rotate(%d)", i*60+30)))
	}

	core := scene.Group(
		scene.Path(sigils["ice"], scene.Style{Fill: color}).
			Moved("scale(0.8)").
			With(pulse(3*time.Second, "0.8", "1", "0.8")),
	)
	core.Style.Filter = "glow-strong"

	particles := scene.Group().Keyed("particles")
	particles.Style.Fill = color
	for i := 0; i < 8; i++ {
		angle := r.float() * 360
		endRadius := 30 + r.float()*20
		p := scene.Node{Kind: scene.KindCircle, R: 1.2}.
			Moved(fmt.Sprintf("rotate(%s) translate(10,0)", geometry.FormatFloat(angle))).
			With(
				scene.Animation{
					Kind:          scene.AnimateTransform,
					Attribute:     "transform",
					TransformType: "translate",
					From:          "10",
					To:            geometry.FormatFloat(endRadius),
					Dur:           r.seconds(2, 2),
					Begin:         r.seconds(0, 2),
					Additive:      "sum",
					Forever:       true,
				},
				scene.Animation{
					Kind:      scene.Animate,
					Attribute: "opacity",
					Values:    []string{"0", "1", "0"},
					Dur:       r.seconds(2, 2),
					Begin:     r.seconds(0, 2),
					Forever:   true,
				},
			)
		particles.Children = append(particles.Children, p)
	}

	return scene.Group(flake, shards, core, particles).Keyed("ice")
}

// rareComposition is the shared layout of the wind, lightning and dark roots:
// two counter-rotating dashed rings around the pulsing sigil.
func rareComposition(rare descriptor.RareElement) scene.Node {
	color := RareColor(rare)

	inner := scene.Circle(35, scene.Style{
		Stroke: color, Fill: "none", StrokeWidth: 1.5, StrokeOpacity: 0.8, DashArray: "5 10",
	}).With(rotate("0 0 0", "360 0 0", 10*time.Second))
	outer := scene.Circle(45, scene.Style{
		Stroke: color, Fill: "none", StrokeWidth: 1, StrokeOpacity: 0.5, DashArray: "2 8",
	}).With(rotate("360 0 0", "0 0 0", 15*time.Second))

	sigil := scene.Group(
		scene.Path(sigils[rare.Key()], scene.Style{Fill: color}).
			Moved("scale(1.2)").
			With(pulse(1500*ms, "1.2", "1.4", "1.2")),
	)
	sigil.Style.Filter = "glow-strong"

	return scene.Group(inner, outer, sigil).Keyed(rare.Key())
}

// abyssComposition replaces the dark layout for the veiled dark root.
func abyssComposition() scene.Node {
	outer := scene.Group(
		scene.Circle(52, scene.Style{
			Stroke: abyssOuter, Fill: "none", StrokeWidth: 6, DashArray: "1 25", StrokeOpacity: 0.8, LineCap: "round",
		}).With(rotate("0 0 0", "360 0 0", 22*time.Second)),
		scene.Circle(45, scene.Style{
			Stroke: abyssOuter, Fill: "none", StrokeWidth: 2, DashArray: "6 6", StrokeOpacity: 0.7,
		}).With(rotate("360 0 0", "0 0 0", 30*time.Second)),
	)
	outer.Style.Filter = "glow"

	inner := scene.Group(
		scene.Circle(15, outline(abyssCore, 2.5)).With(animate("stroke-opacity", 2*time.Second, "1", "0.5", "1")),
		scene.Circle(25, outline(abyssCore, 1.5)).With(animate("stroke-opacity", 2*time.Second, "0.5", "1", "0.5")),
	)
	inner.Style.Filter = "glow-strong"

	return scene.Group(outer, inner).Keyed("abyss")
}

// veilRing circles a hidden root's composition with slowly counter-rotating runes.
func veilRing() scene.Node {
	ring := scene.Group().Keyed("veil").With(rotate("0 0 0", "-360 0 0", 40*time.Second))
	for i := 0; i < veilRuneCount; i++ {
		marker := scene.Group(
			scene.Path(veilRune, scene.Style{Fill: colorOf("hidden"), Opacity: 0.7}),
		).Moved(fmt.Sprintf("rotate(%d) translate(55, 0) rotate(90)", i*30))
		ring.Children = append(ring.Children, marker)
	}
	return ring
}

// unmeasuredGlyph is the neutral question mark shown when nothing can be classified.
func unmeasuredGlyph() scene.Node {
	return scene.Group(
		scene.Path(questionMark, scene.Style{
			Stroke: unmeasuredGrey, Fill: "none", StrokeWidth: 1.5, LineCap: "round", LineJoin: "round",
		}),
	).Keyed("unmeasured").Moved("scale(2.5) translate(-12, -12)")
}
