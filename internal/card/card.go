// Package card models the disciple identity card: the user-entered fields,
// the committed test result and everything derived from them.
package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"linggen/internal/aptitude"
	"linggen/internal/descriptor"
	"linggen/internal/formation"
	"linggen/internal/logging"
	"linggen/internal/scene"
	"linggen/internal/selector"
	"linggen/internal/serial"
)

// DateLayout is the entry-date format.
const DateLayout = "2006-01-02"

// MaxNameLength is the longest accepted name, in characters.
const MaxNameLength = 10

// Display fallbacks for empty fields.
const (
	UnnamedLabel  = "待书"
	NoGenderLabel = "未知"
)

// BorderStyle is the card frame color scheme.
type BorderStyle string

const (
	BorderGold  BorderStyle = "gold"
	BorderWood  BorderStyle = "wood"
	BorderWater BorderStyle = "water"
	BorderFire  BorderStyle = "fire"
	BorderEarth BorderStyle = "earth"
)

var borderNames = map[BorderStyle]string{
	BorderGold:  "皓金",
	BorderWood:  "灵木",
	BorderWater: "玄水",
	BorderFire:  "赤炎",
	BorderEarth: "厚土",
}

// Gradient endpoints per border, top-left to bottom-right.
var borderColors = map[BorderStyle][2]string{
	BorderGold:  {"#FFFFFF", "#FFD700"},
	BorderWood:  {"#6EE7B7", "#16A34A"},
	BorderWater: {"#7DD3FC", "#0C4A6E"},
	BorderFire:  {"#F97316", "#991B1B"},
	BorderEarth: {"#FBBF24", "#78350F"},
}

// Borders returns the border styles in display order.
func Borders() []BorderStyle {
	return []BorderStyle{BorderGold, BorderWood, BorderWater, BorderFire, BorderEarth}
}

// Valid reports whether b is a known style.
func (b BorderStyle) Valid() bool {
	_, ok := borderNames[b]
	return ok
}

// Name returns the display name. Unknown styles fall back to fire.
func (b BorderStyle) Name() string {
	if n, ok := borderNames[b]; ok {
		return n
	}
	return borderNames[BorderFire]
}

// Colors returns the gradient endpoints. Unknown styles fall back to fire.
func (b BorderStyle) Colors() (from, to string) {
	c, ok := borderColors[b]
	if !ok {
		c = borderColors[BorderFire]
	}
	return c[0], c[1]
}

// Card is the persisted, user-editable part of an identity card.
type Card struct {
	Name         string      `yaml:"name"`
	Gender       string      `yaml:"gender"`
	EntryDate    string      `yaml:"entry_date"`
	Border       BorderStyle `yaml:"border"`
	Descriptor   string      `yaml:"descriptor"`
	Constitution string      `yaml:"constitution"`
	Peak         string      `yaml:"peak"`
}

// New returns an untested card dated today.
func New(gender string, border BorderStyle, now time.Time) Card {
	return Card{
		Gender:       gender,
		EntryDate:    now.Format(DateLayout),
		Border:       border,
		Descriptor:   aptitude.Unmeasured,
		Constitution: aptitude.DefaultConstitution,
		Peak:         aptitude.Unassigned,
	}
}

// DisplayName returns the name or its placeholder.
func (c Card) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return UnnamedLabel
	}
	return c.Name
}

// DisplayGender returns the gender or its placeholder.
func (c Card) DisplayGender() string {
	if c.Gender == "" {
		return NoGenderLabel
	}
	return c.Gender
}

// Validate checks the user-entered fields. Every problem is reported.
func (c Card) Validate(now time.Time) error {
	var errs []error
	switch {
	case strings.TrimSpace(c.Name) == "":
		errs = append(errs, errors.New("name cannot be empty"))
	case utf8.RuneCountInString(c.Name) > MaxNameLength:
		errs = append(errs, fmt.Errorf("name is too long, max %d characters", MaxNameLength))
	}

	if c.EntryDate == "" {
		errs = append(errs, errors.New("entry date is required"))
	} else if d, err := time.ParseInLocation(DateLayout, c.EntryDate, now.Location()); err != nil {
		errs = append(errs, fmt.Errorf("invalid entry date %q: %w", c.EntryDate, err))
	} else if d.After(now) {
		errs = append(errs, fmt.Errorf("entry date %s is in the future", c.EntryDate))
	}

	if c.Border != "" && !c.Border.Valid() {
		errs = append(errs, fmt.Errorf("invalid border %q", c.Border))
	}
	return errors.Join(errs...)
}

// Sheet is a card with everything derived from it.
type Sheet struct {
	Card           Card
	Classification descriptor.Classification
	Formation      formation.Formation
	Scene          scene.Scene
	Serial         string
	Description    string
}

// Rand is the randomness a Composer draws from: animation jitter for the
// emblem and the serial suffix. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Composer derives sheets from cards.
type Composer struct {
	rng      Rand
	renderer *formation.Renderer
	logger   *zap.Logger
}

// NewComposer returns a composer drawing from rng. A nil rng uses a fresh
// randomly seeded source.
func NewComposer(rng Rand) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Composer{
		rng:      rng,
		renderer: formation.NewRenderer(rng),
		logger:   logging.Get(logging.CategoryCard),
	}
}

// Compose recomputes every derived field of c.
func (p *Composer) Compose(c Card) Sheet {
	cls := descriptor.Parse(c.Descriptor)
	s := Sheet{
		Card:           c,
		Classification: cls,
		Formation:      formation.Select(cls),
		Scene:          p.renderer.Render(cls),
		Serial:         serial.Derive(cls, c.EntryDate, p.rng),
		Description:    aptitude.Describe(c.Descriptor, c.Constitution),
	}
	p.logger.Debug("card composed",
		zap.String("descriptor", c.Descriptor),
		zap.Stringer("formation", s.Formation),
		zap.String("serial", s.Serial))
	return s
}

// Recompose derives the sheet for c, an edit of prev.Card. The emblem is
// rebuilt only when the descriptor changed and the serial only when the
// descriptor or the entry date changed, so cosmetic edits keep both.
func (p *Composer) Recompose(prev Sheet, c Card) Sheet {
	if prev.Serial == "" {
		return p.Compose(c)
	}

	s := prev
	s.Card = c
	s.Description = aptitude.Describe(c.Descriptor, c.Constitution)

	descriptorChanged := c.Descriptor != prev.Card.Descriptor
	if descriptorChanged {
		s.Classification = descriptor.Parse(c.Descriptor)
		s.Formation = formation.Select(s.Classification)
		s.Scene = p.renderer.Render(s.Classification)
	}
	if descriptorChanged || c.EntryDate != prev.Card.EntryDate {
		s.Serial = serial.Derive(s.Classification, c.EntryDate, p.rng)
		p.logger.Debug("card serial derived",
			zap.String("descriptor", c.Descriptor),
			zap.String("serial", s.Serial))
	}
	return s
}

// Apply commits a test result into the sheet's card and recomposes it.
func (p *Composer) Apply(s Sheet, res selector.Result) Sheet {
	c := s.Card
	c.Descriptor = res.Pair.Descriptor
	c.Constitution = res.Pair.Constitution
	c.Peak = res.Peak
	return p.Recompose(s, c)
}

// LoadFile reads a card from a YAML file. Missing result fields are filled
// with the untested sentinels.
func LoadFile(path string) (Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Card{}, fmt.Errorf("failed to read card: %w", err)
	}
	var c Card
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Card{}, fmt.Errorf("failed to parse card %s: %w", path, err)
	}
	if c.Descriptor == "" {
		c.Descriptor = aptitude.Unmeasured
	}
	if c.Constitution == "" {
		c.Constitution = aptitude.DefaultConstitution
	}
	if c.Peak == "" {
		c.Peak = aptitude.Unassigned
	}
	if c.Border == "" {
		c.Border = BorderFire
	}
	return c, nil
}

// Save writes the card as YAML, creating parent directories.
func (c Card) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create card directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write card: %w", err)
	}
	return nil
}
