package params

import "ogstudio/internal/models"

// Preset is a named starting point for the Studio editor.
type Preset struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Card        models.Card `json:"params"`
}

var presets = []Preset{
	{
		Name:        "launch",
		Description: "Perfect for product launches and announcements",
		Card: models.Card{
			Title:      "Product Launch",
			Subtitle:   "Announcing our new feature",
			Theme:      models.ThemeDark,
			Brand:      "#6366f1",
			Accent:     DefaultAccent,
			Background: models.BackgroundRadial,
			Pattern:    models.PatternDots,
			Template:   models.TemplateLaunch,
			Size:       models.SizeOG,
			Radius:     16,
		},
	},
	{
		Name:        "blog",
		Description: "Clean layout for blog posts and articles",
		Card: models.Card{
			Title:      "How to Build Fast APIs",
			Subtitle:   "Performance tips and best practices",
			Theme:      models.ThemeLight,
			Brand:      "#0891b2",
			Accent:     DefaultAccent,
			Background: models.BackgroundSolid,
			Pattern:    models.PatternGrid,
			Template:   models.TemplateBlog,
			Size:       models.SizeOG,
			Radius:     12,
		},
	},
	{
		Name:        "speaker",
		Description: "Professional speaker and profile cards",
		Card: models.Card{
			Title:      "Sarah Chen",
			Subtitle:   "Principal Engineer at TechCorp",
			Theme:      models.ThemeDark,
			Brand:      "#dc2626",
			Accent:     "#f97316",
			Background: models.BackgroundMesh,
			Pattern:    models.PatternNone,
			Template:   models.TemplateSpeaker,
			Size:       models.SizeOG,
			Radius:     32,
		},
	},
	{
		Name:        "product",
		Description: "Showcase products with emphasis and glow",
		Card: models.Card{
			Title:      "OG Studio Pro",
			Subtitle:   "Advanced features for teams",
			Theme:      models.ThemeGradient,
			Brand:      "#7c3aed",
			Accent:     "#06b6d4",
			Background: models.BackgroundGradient,
			Pattern:    models.PatternWaves,
			Template:   models.TemplateProduct,
			Size:       models.SizeOG,
			Radius:     24,
		},
	},
}

// Presets returns a copy of the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
