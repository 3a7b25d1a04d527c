// Package descriptor classifies spirit-root descriptor strings such as
// "真灵根 (金、木、水)" into a structured Classification.
//
// Parsing is total: malformed or unexpected text never produces an error,
// it produces a Classification whose Root is Unknown.
package descriptor

// RootType is the category encoded by a descriptor's leading token.
type RootType int

const (
	Unknown RootType = iota
	Heavenly
	Mutated
	Hidden
	True
	False
)

var rootTokens = map[RootType]string{
	Heavenly: "天",
	Mutated:  "变异",
	Hidden:   "隐",
	True:     "真",
	False:    "伪",
}

var rootNames = map[RootType]string{
	Unknown:  "unknown",
	Heavenly: "heavenly",
	Mutated:  "mutated",
	Hidden:   "hidden",
	True:     "true",
	False:    "false",
}

// Token returns the leading descriptor token ("天", "变异", ...), or "" for Unknown.
func (r RootType) Token() string {
	return rootTokens[r]
}

// Label returns the full root-type label, e.g. "天灵根". Unknown yields "未知".
func (r RootType) Label() string {
	if tok, ok := rootTokens[r]; ok {
		return tok + rootSuffix
	}
	return "未知"
}

func (r RootType) String() string {
	if name, ok := rootNames[r]; ok {
		return name
	}
	return rootNames[Unknown]
}

// Element is one of the five base elements. The numeric order is the fixed
// table order used for anchor placement.
type Element int

const (
	Metal Element = iota
	Wood
	Water
	Fire
	Earth
)

// ElementCount is the number of base elements.
const ElementCount = 5

var elementGlyphs = [ElementCount]string{"金", "木", "水", "火", "土"}
var elementKeys = [ElementCount]string{"gold", "wood", "water", "fire", "earth"}

// Elements returns the base elements in table order.
func Elements() []Element {
	return []Element{Metal, Wood, Water, Fire, Earth}
}

// Valid reports whether e is one of the five base elements.
func (e Element) Valid() bool { return e >= Metal && e <= Earth }

// Index returns the table position of e (0 for Metal, 4 for Earth).
func (e Element) Index() int { return int(e) }

// Glyph returns the single-character descriptor glyph for e.
func (e Element) Glyph() string {
	if !e.Valid() {
		return ""
	}
	return elementGlyphs[e]
}

// Key returns the lowercase key used for colors and sigils.
func (e Element) Key() string {
	if !e.Valid() {
		return ""
	}
	return elementKeys[e]
}

func (e Element) String() string { return e.Key() }

// RareElement is one of the special elements carried by Mutated and Hidden roots.
type RareElement int

const (
	RareNone RareElement = iota
	Ice
	Wind
	Lightning
	Dark
)

var rareGlyphs = map[RareElement]string{Ice: "冰", Wind: "风", Lightning: "雷", Dark: "暗"}
var rareKeys = map[RareElement]string{Ice: "ice", Wind: "wind", Lightning: "lightning", Dark: "dark"}

// RareElements returns the four rare elements.
func RareElements() []RareElement {
	return []RareElement{Ice, Wind, Lightning, Dark}
}

// Glyph returns the descriptor glyph for r, or "" for RareNone.
func (r RareElement) Glyph() string { return rareGlyphs[r] }

// Key returns the lowercase key for r, or "" for RareNone.
func (r RareElement) Key() string { return rareKeys[r] }

func (r RareElement) String() string {
	if k := rareKeys[r]; k != "" {
		return k
	}
	return "none"
}

// Classification is the structured form of a descriptor.
type Classification struct {
	// Source is the descriptor text as supplied.
	Source string
	Root   RootType
	// Elements holds unique base elements in order of appearance.
	Elements []Element
	Rare     RareElement
	// RawElementText is the untouched text inside the parentheses.
	RawElementText string
	// Veiled is set when the hidden marker directly precedes the rare glyph.
	Veiled bool
}

// Has reports whether e is among the classification's base elements.
func (c Classification) Has(e Element) bool {
	for _, el := range c.Elements {
		if el == e {
			return true
		}
	}
	return false
}

// RareResolved reports whether a Mutated or Hidden root mapped to a known rare element.
func (c Classification) RareResolved() bool {
	return (c.Root == Mutated || c.Root == Hidden) && c.Rare != RareNone
}

// IsUnmeasured reports whether no test result has been recorded, i.e. the
// source is empty or the unmeasured sentinel.
func (c Classification) IsUnmeasured() bool {
	return c.Source == "" || c.Source == UnmeasuredSentinel
}
