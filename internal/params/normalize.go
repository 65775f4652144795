// Package params turns raw query parameters into a fully populated models.Card
// and back again.
package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"ogstudio/internal/models"
	"ogstudio/internal/style"
)

const (
	MaxTitleLen    = 120
	MaxSubtitleLen = 160
	MaxQRLen       = 256

	MinRadius = 0
	MaxRadius = 64

	DefaultTitle    = "OG Studio"
	DefaultSubtitle = "Beautiful social cards, instantly."
	DefaultRadius   = 28

	DefaultBrandDark  = "#2ea3ff"
	DefaultBrandLight = "#0ea5e9"
	DefaultAccent     = "#8b5cf6"
)

// Query keys.
const (
	KeyTitle      = "title"
	KeySubtitle   = "subtitle"
	KeyTheme      = "theme"
	KeyBrand      = "brand"
	KeyAccent     = "accent"
	KeyBackground = "bg"
	KeyPattern    = "pattern"
	KeyTemplate   = "template"
	KeySize       = "size"
	KeyRadius     = "radius"
	KeyLogo       = "logo"
	KeyQR         = "qr"
)

var (
	Themes      = []models.Theme{models.ThemeDark, models.ThemeLight, models.ThemeGradient, models.ThemeMinimal}
	Backgrounds = []models.Background{models.BackgroundSolid, models.BackgroundRadial, models.BackgroundGradient, models.BackgroundMesh}
	Patterns    = []models.Pattern{models.PatternNone, models.PatternDots, models.PatternGrid, models.PatternWaves}
	Templates   = []models.Template{models.TemplateDefault, models.TemplateLaunch, models.TemplateBlog, models.TemplateSpeaker, models.TemplateProduct}
	Sizes       = []models.Size{models.SizeOG, models.SizeTwitter, models.SizeLinkedIn, models.SizeSquare}
)

// Normalize never fails: every missing, empty or invalid value is replaced by
// the field default, numbers are clamped and text is truncated.
func Normalize(q url.Values) models.Card {
	theme := oneOf(q.Get(KeyTheme), Themes, models.ThemeDark)

	return models.Card{
		Title:      text(q.Get(KeyTitle), DefaultTitle, MaxTitleLen),
		Subtitle:   text(q.Get(KeySubtitle), DefaultSubtitle, MaxSubtitleLen),
		Theme:      theme,
		Brand:      hexColor(q.Get(KeyBrand), DefaultBrand(theme)),
		Accent:     hexColor(q.Get(KeyAccent), DefaultAccent),
		Background: oneOf(q.Get(KeyBackground), Backgrounds, models.BackgroundSolid),
		Pattern:    oneOf(q.Get(KeyPattern), Patterns, models.PatternNone),
		Template:   oneOf(q.Get(KeyTemplate), Templates, models.TemplateDefault),
		Size:       oneOf(q.Get(KeySize), Sizes, models.SizeOG),
		Radius:     clamp(q.Get(KeyRadius), DefaultRadius, MinRadius, MaxRadius),
		Logo:       q.Get(KeyLogo),
		QR:         text(q.Get(KeyQR), "", MaxQRLen),
	}
}

// DefaultBrand is the brand colour used when none (or an invalid one) is given.
func DefaultBrand(theme models.Theme) string {
	switch theme {
	case models.ThemeLight, models.ThemeMinimal:
		return DefaultBrandLight
	default:
		return DefaultBrandDark
	}
}

// Encode is the inverse of Normalize for normalized cards. Optional fields are
// left out when empty so the canonical query stays short.
func Encode(c models.Card) url.Values {
	q := url.Values{}
	q.Set(KeyTitle, c.Title)
	q.Set(KeySubtitle, c.Subtitle)
	q.Set(KeyTheme, string(c.Theme))
	q.Set(KeyBrand, c.Brand)
	q.Set(KeyAccent, c.Accent)
	q.Set(KeyBackground, string(c.Background))
	q.Set(KeyPattern, string(c.Pattern))
	q.Set(KeyTemplate, string(c.Template))
	q.Set(KeySize, string(c.Size))
	q.Set(KeyRadius, strconv.Itoa(c.Radius))
	if c.Logo != "" {
		q.Set(KeyLogo, c.Logo)
	}
	if c.QR != "" {
		q.Set(KeyQR, c.QR)
	}
	return q
}

// CanonicalQuery returns the sorted, encoded query string for c.
func CanonicalQuery(c models.Card) string {
	return Encode(c).Encode()
}

func text(raw, def string, limit int) string {
	if raw == "" {
		return def
	}
	raw = strings.ToValidUTF8(raw, "\uFFFD")
	if utf8.RuneCountInString(raw) <= limit {
		return raw
	}
	return string([]rune(raw)[:limit])
}

func oneOf[T ~string](raw string, allowed []T, def T) T {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range allowed {
		if a == v {
			return a
		}
	}
	return def
}

func clamp(raw string, def, lo, hi int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	f = math.Round(f)
	if f < float64(lo) {
		return lo
	}
	if f > float64(hi) {
		return hi
	}
	return int(f)
}

func hexColor(raw, def string) string {
	c, err := style.ParseHex(raw)
	if err != nil {
		return def
	}
	return style.Hex(c)
}
