// Package serial derives the card serial number shown under the emblem.
package serial

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"linggen/internal/descriptor"
)

const (
	// Unregistered is shown until a test result has been committed.
	Unregistered = "未入籍"
	// DefaultPrefix is used when the root label's first character has no mapping.
	DefaultPrefix = "凡"
)

var prefixes = map[rune]string{
	'天': "天",
	'隐': "玄",
	'变': "异",
	'真': "真",
	'伪': "凡",
}

var shape = regexp.MustCompile(`^\p{Han}-\d{8}-\d{4}$`)

// Source supplies the random suffix. *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Prefix returns the one-character prefix for a root label.
func Prefix(label string) string {
	r, _ := utf8.DecodeRuneInString(label)
	if p, ok := prefixes[r]; ok {
		return p
	}
	return DefaultPrefix
}

// Derive builds "<prefix>-<YYYYMMDD>-<NNNN>" for c and an ISO date, or
// Unregistered when c carries no committed result.
func Derive(c descriptor.Classification, date string, src Source) string {
	if c.IsUnmeasured() {
		return Unregistered
	}
	label := c.Root.Label()
	if c.Root == descriptor.Unknown {
		label = c.Source
	}
	suffix := 1000
	if src != nil {
		suffix += src.IntN(9000)
	}
	return fmt.Sprintf("%s-%s-%d", Prefix(label), digits(date), suffix)
}

// Valid reports whether id has the shape of a derived serial.
func Valid(id string) bool {
	return shape.MatchString(id)
}

func digits(date string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, date)
}
