package formation

import "linggen/internal/descriptor"

// Sigil outlines, centered on the origin.
var sigils = map[string]string{
	"gold":      "M-10,0 L0,-4 L10,0 L0,4 Z",
	"wood":      "M0,-10 L-2,-8 L-1,0 L-2,8 L0,10 L2,8 L1,0 L2,-8 Z",
	"water":     "M-12,0 C-12,-10 0,-10 0,0 C0,10 -12,10 -12,0 Z",
	"fire":      "M0,-12 L-6,0 L0,12 L6,0 Z",
	"earth":     "M-10,0 L-5,-8.66 L5,-8.66 L10,0 L5,8.66 L-5,8.66 Z",
	"ice":       "M0,-15 V15 M-13,-7.5 L13,7.5 M-13,7.5 L13,-7.5 M-2,-13 L0,-15 L2,-13 M-2,13 L0,15 L2,13 M-11.5,-8.5 L-13,-7.5 L-11.5,-6.5 M11.5,8.5 L13,7.5 L11.5,6.5 M-11.5,6.5 L-13,7.5 L-11.5,8.5 M11.5,-6.5 L13,-7.5 L11.5,-8.5",
	"wind":      "M-15,10 C0,0 15,10 15,10 M-15,0 C0,-10 15,0 15,0 M-15,-10 C0,-20 15,-10 15,-10",
	"lightning": "M-2,-15 L-7,-3 H0 L-5,5 H5 L0,15",
	"dark":      "M0,0 C10,0 10,10 0,10 C-10,10 -10,0 0,0 Z M0,0 C5,0 5,5 0,5 C-5,5 -5,0 0,0 Z M0,0 C15,0 15,15 0,15 C-15,15 -15,0 0,0 Z",
}

var colors = map[string]string{
	"gold":      "#FFD700",
	"wood":      "#22C55E",
	"water":     "#3B82F6",
	"fire":      "#EF4444",
	"earth":     "#A16207",
	"ice":       "#67E8F9",
	"wind":      "#94A3B8",
	"lightning": "#A855F7",
	"dark":      "#4B0082",
	"hidden":    "#E5E7EB",
}

const (
	fallbackColor  = "#FFFFFF"
	inactiveColor  = "#4A5568"
	unmeasuredGrey = "#6B7280"

	trueStroke     = "#FBBF24"
	falseStroke    = "#F97316"
	trueRingStroke = "#FDE044"

	abyssCore  = "#60A5FA"
	abyssOuter = "#4c1d95"
)

// Exported palette entries for other renderings of the same formations.
const (
	InactiveColor    = inactiveColor
	UnmeasuredColor  = unmeasuredGrey
	TrueStrokeColor  = trueStroke
	FalseStrokeColor = falseStroke
	VeilColor        = "#E5E7EB"
	AbyssCoreColor   = abyssCore
	AbyssOuterColor  = abyssOuter
)

func colorOf(key string) string {
	if c, ok := colors[key]; ok {
		return c
	}
	return fallbackColor
}

// ElementColor returns the display color of a base element.
func ElementColor(e descriptor.Element) string { return colorOf(e.Key()) }

// RareColor returns the display color of a rare element.
func RareColor(r descriptor.RareElement) string { return colorOf(r.Key()) }

// ValidatePalette reports keys without a sigil or color. Missing keys render
// with the fallback color and an empty outline rather than failing.
func ValidatePalette() []string {
	var missing []string
	for _, e := range descriptor.Elements() {
		if _, ok := sigils[e.Key()]; !ok {
			missing = append(missing, "sigil:"+e.Key())
		}
		if _, ok := colors[e.Key()]; !ok {
			missing = append(missing, "color:"+e.Key())
		}
	}
	for _, r := range descriptor.RareElements() {
		if _, ok := sigils[r.Key()]; !ok {
			missing = append(missing, "sigil:"+r.Key())
		}
		if _, ok := colors[r.Key()]; !ok {
			missing = append(missing, "color:"+r.Key())
		}
	}
	return missing
}
