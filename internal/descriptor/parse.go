package descriptor

import (
	"regexp"
	"strings"
)

const (
	rootSuffix = "灵根"
	// UnmeasuredSentinel is the descriptor shown before any test has run.
	UnmeasuredSentinel = "灵根未测"
	hiddenMarker       = "隐"
	elementSeparator   = "、"
)

var (
	typePattern     = regexp.MustCompile(`^(天|变异|隐|真|伪)` + rootSuffix)
	elementsPattern = regexp.MustCompile(`[(（]([^)）]+)[)）]`)
)

var tokenRoots = map[string]RootType{
	"天":  Heavenly,
	"变异": Mutated,
	"隐":  Hidden,
	"真":  True,
	"伪":  False,
}

var glyphElements = map[string]Element{
	"金": Metal,
	"木": Wood,
	"水": Water,
	"火": Fire,
	"土": Earth,
}

var glyphRares = map[string]RareElement{
	"冰": Ice,
	"风": Wind,
	"雷": Lightning,
	"暗": Dark,
}

// Parse classifies s. It never fails: text that does not match
// "<type>灵根 (<elements>)" yields Root == Unknown.
func Parse(s string) Classification {
	unknown := Classification{Source: s}

	typeMatch := typePattern.FindStringSubmatch(s)
	elemMatch := elementsPattern.FindStringSubmatch(s)
	if typeMatch == nil || elemMatch == nil {
		return unknown
	}

	c := Classification{
		Source:         s,
		Root:           tokenRoots[typeMatch[1]],
		RawElementText: elemMatch[1],
	}

	switch c.Root {
	case Mutated, Hidden:
		text := strings.Replace(c.RawElementText, hiddenMarker, "", 1)
		c.Rare = glyphRares[strings.TrimSpace(text)]
		// Only a marker written directly before the glyph veils it: 隐暗, not 暗隐.
		if c.Rare != RareNone && strings.Contains(c.RawElementText, hiddenMarker+c.Rare.Glyph()) {
			c.Veiled = true
		}
	default:
		c.Elements = parseElements(c.RawElementText)
		// Heavenly carries exactly one element; True and False at least one.
		if len(c.Elements) == 0 || (c.Root == Heavenly && len(c.Elements) != 1) {
			return unknown
		}
	}

	return c
}

// parseElements splits text on the list separator and keeps known base
// elements, unique, in order of first appearance.
func parseElements(text string) []Element {
	var out []Element
	var seen [ElementCount]bool
	for _, tok := range strings.Split(text, elementSeparator) {
		el, ok := glyphElements[strings.TrimSpace(tok)]
		if !ok || seen[el] {
			continue
		}
		seen[el] = true
		out = append(out, el)
	}
	return out
}
