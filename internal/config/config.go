package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Layout    LayoutConfig    `yaml:"layout" json:"layout"`
	Animation AnimationConfig `yaml:"animation" json:"animation"`
	Scoring   Scoring         `yaml:"scoring" json:"scoring"`
	Rules     Rules           `yaml:"rules" json:"rules"`
}

type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// LayoutConfig holds the fixed table geometry. Coordinates have y growing
// upward with the origin at the table center.
type LayoutConfig struct {
	Stock Point `yaml:"stock" json:"stock"`
	Waste Point `yaml:"waste" json:"waste"`
	// Piles holds the anchor (top card slot) of each of the 7 tableau piles.
	Piles []Point `yaml:"piles" json:"piles"`
	// Foundations is indexed heart, diamond, club, spade.
	Foundations []Point `yaml:"foundations" json:"foundations"`

	CardWidth  float64 `yaml:"card_width" json:"card_width"`
	CardHeight float64 `yaml:"card_height" json:"card_height"`

	WasteOffsetY   float64 `yaml:"waste_offset_y" json:"waste_offset_y"`
	PileOffsetY    float64 `yaml:"pile_offset_y" json:"pile_offset_y"`
	PileOffsetYMin float64 `yaml:"pile_offset_y_min" json:"pile_offset_y_min"`

	// PileDropTop and PileDropBottom bound every tableau drop area vertically.
	// Their difference is the display height a pile must fit in.
	PileDropTop    float64 `yaml:"pile_drop_top" json:"pile_drop_top"`
	PileDropBottom float64 `yaml:"pile_drop_bottom" json:"pile_drop_bottom"`

	MaxWastes     int     `yaml:"max_wastes" json:"max_wastes"`
	DragZ         float64 `yaml:"drag_z" json:"drag_z"`
	DragThreshold float64 `yaml:"drag_threshold" json:"drag_threshold"`
}

type AnimationConfig struct {
	TickMS int     `yaml:"tick_ms" json:"tick_ms"`
	Lerp   float64 `yaml:"lerp" json:"lerp"`
	Snap   float64 `yaml:"snap" json:"snap"`
}

type Rules struct {
	// Difficulty is "easy" (draw one) or "hard" (draw three).
	Difficulty string `yaml:"difficulty" json:"difficulty"`
}

func (l *LayoutConfig) ApplyDefaults() {
	def := defaultLayout()
	if l.Stock == (Point{}) {
		l.Stock = def.Stock
	}
	if l.Waste == (Point{}) {
		l.Waste = def.Waste
	}
	if len(l.Piles) == 0 {
		l.Piles = def.Piles
	}
	if len(l.Foundations) == 0 {
		l.Foundations = def.Foundations
	}
	if l.CardWidth == 0 {
		l.CardWidth = def.CardWidth
	}
	if l.CardHeight == 0 {
		l.CardHeight = def.CardHeight
	}
	if l.WasteOffsetY == 0 {
		l.WasteOffsetY = def.WasteOffsetY
	}
	if l.PileOffsetY == 0 {
		l.PileOffsetY = def.PileOffsetY
	}
	if l.PileOffsetYMin == 0 {
		l.PileOffsetYMin = def.PileOffsetYMin
	}
	if l.PileDropTop == 0 && l.PileDropBottom == 0 {
		l.PileDropTop = def.PileDropTop
		l.PileDropBottom = def.PileDropBottom
	}
	if l.MaxWastes == 0 {
		l.MaxWastes = def.MaxWastes
	}
	if l.DragZ == 0 {
		l.DragZ = def.DragZ
	}
	if l.DragThreshold == 0 {
		l.DragThreshold = def.DragThreshold
	}
}

func (a *AnimationConfig) ApplyDefaults() {
	if a.TickMS == 0 {
		a.TickMS = 30
	}
	if a.Lerp == 0 {
		a.Lerp = 0.4
	}
	if a.Snap == 0 {
		a.Snap = 1
	}
}

func (r *Rules) ApplyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = "easy"
	}
}

func (c *Config) ApplyDefaults() {
	c.Layout.ApplyDefaults()
	c.Animation.ApplyDefaults()
	c.Scoring.ApplyDefaults()
	c.Rules.ApplyDefaults()
}

// Validate rejects geometry the placement calculator cannot work with.
func (c *Config) Validate() error {
	if n := len(c.Layout.Piles); n != 7 {
		return fmt.Errorf("layout.piles: need 7 anchors, got %d", n)
	}
	if n := len(c.Layout.Foundations); n != 4 {
		return fmt.Errorf("layout.foundations: need 4 anchors, got %d", n)
	}
	if c.Layout.PileOffsetYMin > c.Layout.PileOffsetY {
		return fmt.Errorf("layout.pile_offset_y_min %.1f exceeds pile_offset_y %.1f",
			c.Layout.PileOffsetYMin, c.Layout.PileOffsetY)
	}
	if c.Layout.PileDropTop <= c.Layout.PileDropBottom {
		return fmt.Errorf("layout: pile_drop_top must be above pile_drop_bottom")
	}
	if c.Layout.MaxWastes < 1 {
		return fmt.Errorf("layout.max_wastes must be positive")
	}
	if c.Animation.Lerp <= 0 || c.Animation.Lerp > 1 {
		return fmt.Errorf("animation.lerp must be in (0, 1], got %v", c.Animation.Lerp)
	}
	switch c.Rules.Difficulty {
	case "easy", "hard":
	default:
		return fmt.Errorf("rules.difficulty: unknown value %q", c.Rules.Difficulty)
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a YAML document, fills defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &r, nil
}
