// Package formation maps a classification to one of a closed set of emblem
// formations and builds the corresponding scene.
package formation

import (
	"time"

	"linggen/internal/descriptor"
	"linggen/internal/scene"
)

// Formation is a visual composition family.
type Formation int

const (
	Unmeasured Formation = iota
	Heavenly
	True
	False
	Ice
	Wind
	Lightning
	Dark
	// Abyss is the nested-ring composition of the veiled dark root.
	Abyss
)

var formationNames = [...]string{
	Unmeasured: "unmeasured",
	Heavenly:   "heavenly",
	True:       "true",
	False:      "false",
	Ice:        "ice",
	Wind:       "wind",
	Lightning:  "lightning",
	Dark:       "dark",
	Abyss:      "abyss",
}

func (f Formation) String() string {
	if f < 0 || int(f) >= len(formationNames) {
		return formationNames[Unmeasured]
	}
	return formationNames[f]
}

// IsRare reports whether f is one of the rare-element compositions.
func (f Formation) IsRare() bool {
	switch f {
	case Ice, Wind, Lightning, Dark, Abyss:
		return true
	}
	return false
}

var rareFormations = map[descriptor.RareElement]Formation{
	descriptor.Ice:       Ice,
	descriptor.Wind:      Wind,
	descriptor.Lightning: Lightning,
	descriptor.Dark:      Dark,
}

// Select picks the formation for c. It is total: anything not covered by a
// specific family, including out-of-range values, maps to Unmeasured.
func Select(c descriptor.Classification) Formation {
	switch c.Root {
	case descriptor.Heavenly:
		if len(c.Elements) == 1 && c.Elements[0].Valid() {
			return Heavenly
		}
	case descriptor.True:
		if len(c.Elements) > 0 {
			return True
		}
	case descriptor.False:
		if len(c.Elements) > 0 {
			return False
		}
	case descriptor.Mutated, descriptor.Hidden:
		f, ok := rareFormations[c.Rare]
		if !ok {
			return Unmeasured
		}
		if f == Dark && c.Veiled {
			return Abyss
		}
		return f
	}
	return Unmeasured
}

// Rand supplies presentation-only randomness for animation parameters.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Renderer builds scenes. Animation timings are drawn from its Rand on every
// call; the formation and shape structure depend only on the classification.
type Renderer struct {
	rng Rand
}

// NewRenderer returns a renderer drawing animation jitter from rng.
func NewRenderer(rng Rand) *Renderer {
	return &Renderer{rng: rng}
}

// Render builds the scene for c.
func (r *Renderer) Render(c descriptor.Classification) scene.Scene {
	f := Select(c)
	s := scene.Scene{
		ViewBox:   scene.DefaultViewBox,
		Formation: f.String(),
		Filters:   scene.DefaultFilters(),
	}

	switch f {
	case Heavenly:
		el := c.Elements[0]
		s.Root = scene.Group(
			r.baseFormation(c.Elements, false),
			heavenlyOverlay(el),
		)
	case True:
		s.Root = r.baseFormation(c.Elements, false)
	case False:
		s.Root = r.baseFormation(c.Elements, true)
	case Ice:
		s.Root = r.iceComposition()
	case Wind, Lightning, Dark:
		s.Root = rareComposition(c.Rare)
	case Abyss:
		s.Root = abyssComposition()
	default:
		s.Root = unmeasuredGlyph()
	}

	if f.IsRare() && f != Abyss && c.Root == descriptor.Hidden {
		s.Root = scene.Group(s.Root, veilRing())
	}
	return s
}

func (r *Renderer) float() float64 {
	if r == nil || r.rng == nil {
		return 0.5
	}
	return r.rng.Float64()
}

func (r *Renderer) seconds(base, spread float64) time.Duration {
	return time.Duration((base + spread*r.float()) * float64(time.Second))
}
