// Package style maps theme, background and pattern names to concrete paint.
//
// Every entry is a fixed recipe from a lookup table; the only inputs that
// vary are the brand and accent colours, which are slotted into the
// gradient and glow recipes. Geometry is expressed as fractions of the canvas
// so the same style scales to every output size.
package style

import (
	"image/color"

	"ogstudio/internal/models"
)

// Stop is one colour stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Linear is a linear gradient between two points given as canvas fractions.
type Linear struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// Spot is a radial glow centred at (CX, CY) fading from Color to transparent
// at R. CX and CY are canvas fractions, R is a fraction of the canvas width.
type Spot struct {
	CX, CY, R float64
	Color     color.NRGBA
}

// Background is painted bottom-up: Base, then Linears, then Spots.
type Background struct {
	Base    color.NRGBA
	Linears []Linear
	Spots   []Spot
}

// Overlay is a repeating pattern drawn over the background. Tile is the
// repeat distance in pixels and Mark the dot radius or stroke width.
type Overlay struct {
	Kind      models.Pattern
	Tile      float64
	Mark      float64
	Amplitude float64
	Color     color.NRGBA
}

// Style is the full set of paint needed to draw a card.
type Style struct {
	Background Background
	Overlay    Overlay

	Text    color.NRGBA
	Subtext color.NRGBA
	Chip    color.NRGBA
	Border  color.NRGBA
	Panel   color.NRGBA
	Brand   color.NRGBA
	Accent  color.NRGBA
}

type palette struct {
	base    color.NRGBA
	text    color.NRGBA
	subtext color.NRGBA
	chip    color.NRGBA
	border  color.NRGBA
	panel   color.NRGBA

	glow          bool
	brandGradient bool
}

var palettes = map[models.Theme]palette{
	models.ThemeDark: {
		base:    rgba("#0b1220", 0xff),
		text:    rgba("#e5e7eb", 0xff),
		subtext: rgba("#9ca3af", 0xff),
		chip:    rgba("#ffffff", 0x22),
		border:  rgba("#ffffff", 0x22),
		panel:   rgba("#0f172a", 0xff),
		glow:    true,
	},
	models.ThemeLight: {
		base:    rgba("#ffffff", 0xff),
		text:    rgba("#111827", 0xff),
		subtext: rgba("#4b5563", 0xff),
		chip:    rgba("#111827", 0x0a),
		border:  rgba("#000000", 0x10),
		panel:   rgba("#f8fafc", 0xff),
		glow:    true,
	},
	models.ThemeGradient: {
		base:          rgba("#111827", 0xff),
		text:          rgba("#ffffff", 0xff),
		subtext:       rgba("#e0e7ff", 0xff),
		chip:          rgba("#ffffff", 0x26),
		border:        rgba("#ffffff", 0x33),
		panel:         rgba("#ffffff", 0x1a),
		brandGradient: true,
	},
	models.ThemeMinimal: {
		base:    rgba("#fafafa", 0xff),
		text:    rgba("#18181b", 0xff),
		subtext: rgba("#71717a", 0xff),
		chip:    rgba("#18181b", 0x0d),
		border:  rgba("#e4e4e7", 0xff),
		panel:   rgba("#f4f4f5", 0xff),
	},
}

type recipe func(brand, accent color.NRGBA) ([]Linear, []Spot)

var backgrounds = map[models.Background]recipe{
	models.BackgroundSolid: func(_, _ color.NRGBA) ([]Linear, []Spot) {
		return nil, nil
	},
	models.BackgroundRadial: func(brand, _ color.NRGBA) ([]Linear, []Spot) {
		return nil, []Spot{
			{CX: 0.2, CY: 0.2, R: 0.7, Color: WithAlpha(brand, 0x22)},
			{CX: 0.8, CY: 0.8, R: 0.55, Color: WithAlpha(brand, 0x33)},
		}
	},
	models.BackgroundGradient: func(brand, accent color.NRGBA) ([]Linear, []Spot) {
		return []Linear{{
			X0: 0, Y0: 0, X1: 1, Y1: 1,
			Stops: []Stop{
				{Offset: 0, Color: WithAlpha(brand, 0x33)},
				{Offset: 1, Color: WithAlpha(accent, 0x33)},
			},
		}}, nil
	},
	models.BackgroundMesh: func(brand, accent color.NRGBA) ([]Linear, []Spot) {
		return nil, []Spot{
			{CX: 0, CY: 0, R: 0.6, Color: WithAlpha(brand, 0x55)},
			{CX: 1, CY: 0, R: 0.5, Color: WithAlpha(accent, 0x44)},
			{CX: 0, CY: 1, R: 0.5, Color: WithAlpha(accent, 0x33)},
			{CX: 1, CY: 1, R: 0.6, Color: WithAlpha(brand, 0x44)},
		}
	},
}

type patternRecipe struct {
	tile, mark, amplitude float64
	alpha                 uint8
}

var patterns = map[models.Pattern]patternRecipe{
	models.PatternNone:  {},
	models.PatternDots:  {tile: 24, mark: 1.5, alpha: 0x1f},
	models.PatternGrid:  {tile: 40, mark: 1, alpha: 0x14},
	models.PatternWaves: {tile: 80, mark: 1.5, amplitude: 10, alpha: 0x1a},
}

var (
	fallbackBrand  = rgba("#2ea3ff", 0xff)
	fallbackAccent = rgba("#8b5cf6", 0xff)
)

// Resolve returns the paint for a card. Unknown names fall back to the dark
// theme, solid background and no pattern; unparsable colours fall back to the
// default brand and accent.
func Resolve(theme models.Theme, bg models.Background, pattern models.Pattern, brandHex, accentHex string) Style {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeDark]
	}
	bgRecipe, ok := backgrounds[bg]
	if !ok {
		bgRecipe = backgrounds[models.BackgroundSolid]
	}
	pr, ok := patterns[pattern]
	if !ok {
		pattern = models.PatternNone
		pr = patterns[models.PatternNone]
	}

	brand, err := ParseHex(brandHex)
	if err != nil {
		brand = fallbackBrand
	}
	accent, err := ParseHex(accentHex)
	if err != nil {
		accent = fallbackAccent
	}

	back := Background{Base: p.base}
	if p.brandGradient {
		back.Linears = append(back.Linears, Linear{
			X0: 0, Y0: 0, X1: 1, Y1: 1,
			Stops: []Stop{{Offset: 0, Color: brand}, {Offset: 1, Color: accent}},
		})
	}
	linears, spots := bgRecipe(brand, accent)
	back.Linears = append(back.Linears, linears...)
	back.Spots = append(back.Spots, spots...)
	if p.glow {
		back.Spots = append(back.Spots,
			Spot{CX: 0.1, CY: 0.9, R: 0.45, Color: WithAlpha(brand, 0x33)},
			Spot{CX: 0.9, CY: 0.1, R: 0.38, Color: WithAlpha(brand, 0x1f)},
		)
	}

	overlay := Overlay{Kind: pattern}
	if pattern != models.PatternNone {
		overlay.Tile = pr.tile
		overlay.Mark = pr.mark
		overlay.Amplitude = pr.amplitude
		overlay.Color = WithAlpha(p.text, pr.alpha)
	}

	return Style{
		Background: back,
		Overlay:    overlay,
		Text:       p.text,
		Subtext:    p.subtext,
		Chip:       p.chip,
		Border:     p.border,
		Panel:      p.panel,
		Brand:      brand,
		Accent:     accent,
	}
}

// ForCard is Resolve applied to a normalized card.
func ForCard(c models.Card) Style {
	return Resolve(c.Theme, c.Background, c.Pattern, c.Brand, c.Accent)
}
