package style

import (
	"errors"
	"image/color"
	"reflect"
	"testing"

	"ogstudio/internal/models"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff8800", color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, true},
		{"FF8800", color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, true},
		{"#f80", color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, true},
		{"", color.NRGBA{}, false},
		{"#ff88", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.ok {
			if err != nil {
				t.Errorf("%q: unexpected error %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidHex) {
			t.Errorf("%q: expected ErrInvalidHex, got %v", tt.in, err)
		}
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.NRGBA{R: 0xab, G: 0x01, B: 0xff, A: 0x10}); got != "#ab01ff" {
		t.Errorf("expected #ab01ff, got %s", got)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	a := Resolve(models.ThemeGradient, models.BackgroundMesh, models.PatternWaves, "#123456", "#654321")
	b := Resolve(models.ThemeGradient, models.BackgroundMesh, models.PatternWaves, "#123456", "#654321")
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical styles for identical input")
	}
}

func TestResolve_Palettes(t *testing.T) {
	tests := []struct {
		theme models.Theme
		base  string
		text  string
	}{
		{models.ThemeDark, "#0b1220", "#e5e7eb"},
		{models.ThemeLight, "#ffffff", "#111827"},
		{models.ThemeMinimal, "#fafafa", "#18181b"},
		{models.ThemeGradient, "#111827", "#ffffff"},
	}

	for _, tt := range tests {
		st := Resolve(tt.theme, models.BackgroundSolid, models.PatternNone, "#2ea3ff", "#8b5cf6")
		if got := Hex(st.Background.Base); got != tt.base {
			t.Errorf("%s: expected base %s, got %s", tt.theme, tt.base, got)
		}
		if got := Hex(st.Text); got != tt.text {
			t.Errorf("%s: expected text %s, got %s", tt.theme, tt.text, got)
		}
	}
}

func TestResolve_UnknownFallsBack(t *testing.T) {
	got := Resolve("neon", "plaid", "stripes", "nope", "nope")
	want := Resolve(models.ThemeDark, models.BackgroundSolid, models.PatternNone, "#2ea3ff", "#8b5cf6")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected dark/solid/none fallback, got %+v", got)
	}
}

func TestResolve_GradientThemeUsesBrandAndAccent(t *testing.T) {
	st := Resolve(models.ThemeGradient, models.BackgroundSolid, models.PatternNone, "#ff0000", "#0000ff")
	if len(st.Background.Linears) != 1 {
		t.Fatalf("expected 1 linear gradient, got %d", len(st.Background.Linears))
	}
	stops := st.Background.Linears[0].Stops
	if Hex(stops[0].Color) != "#ff0000" || Hex(stops[len(stops)-1].Color) != "#0000ff" {
		t.Errorf("expected brand to accent stops, got %+v", stops)
	}
}

func TestResolve_Backgrounds(t *testing.T) {
	tests := []struct {
		bg      models.Background
		linears int
		spots   int
	}{
		{models.BackgroundSolid, 0, 0},
		{models.BackgroundRadial, 0, 2},
		{models.BackgroundGradient, 1, 0},
		{models.BackgroundMesh, 0, 4},
	}

	for _, tt := range tests {
		// minimal has no base gradient and no glow, so only the recipe shows
		st := Resolve(models.ThemeMinimal, tt.bg, models.PatternNone, "#2ea3ff", "#8b5cf6")
		if len(st.Background.Linears) != tt.linears {
			t.Errorf("%s: expected %d linears, got %d", tt.bg, tt.linears, len(st.Background.Linears))
		}
		if len(st.Background.Spots) != tt.spots {
			t.Errorf("%s: expected %d spots, got %d", tt.bg, tt.spots, len(st.Background.Spots))
		}
	}
}

func TestResolve_DarkAddsGlow(t *testing.T) {
	st := Resolve(models.ThemeDark, models.BackgroundSolid, models.PatternNone, "#2ea3ff", "#8b5cf6")
	if len(st.Background.Spots) != 2 {
		t.Errorf("expected 2 glow spots, got %d", len(st.Background.Spots))
	}
}

func TestResolve_Patterns(t *testing.T) {
	none := Resolve(models.ThemeDark, models.BackgroundSolid, models.PatternNone, "#2ea3ff", "#8b5cf6")
	if none.Overlay.Tile != 0 {
		t.Errorf("expected no overlay tile, got %v", none.Overlay.Tile)
	}

	for _, p := range []models.Pattern{models.PatternDots, models.PatternGrid, models.PatternWaves} {
		st := Resolve(models.ThemeLight, models.BackgroundSolid, p, "#2ea3ff", "#8b5cf6")
		if st.Overlay.Kind != p {
			t.Errorf("expected overlay %s, got %s", p, st.Overlay.Kind)
		}
		if st.Overlay.Tile <= 0 || st.Overlay.Mark <= 0 {
			t.Errorf("%s: expected positive tile and mark, got %+v", p, st.Overlay)
		}
		if Hex(st.Overlay.Color) != Hex(st.Text) || st.Overlay.Color.A == 0xff {
			t.Errorf("%s: expected translucent text colour, got %v", p, st.Overlay.Color)
		}
	}
}
