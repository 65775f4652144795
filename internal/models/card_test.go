package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCard_FileName(t *testing.T) {
	tests := []struct {
		card   Card
		prefix string
	}{
		{Card{Template: TemplateLaunch, Title: "Product Launch"}, "launch-Product_Launch-"},
		{Card{Template: TemplateBlog, Title: "a/b: c?"}, "blog-a_b_c-"},
		{Card{Template: TemplateDefault, Title: "  spaced  out  "}, "default-_spaced_out-"},
	}

	for _, tt := range tests {
		got := tt.card.FileName()
		if !strings.HasPrefix(got, tt.prefix) || len(got) != len(tt.prefix)+8 {
			t.Errorf("expected %q plus an 8 char hash, got %q", tt.prefix, got)
		}
		if again := tt.card.FileName(); again != got {
			t.Errorf("expected stable name, got %q then %q", got, again)
		}
	}
}

func TestCard_FileNameLongTitle(t *testing.T) {
	c := Card{Template: TemplateDefault, Title: strings.Repeat("日", 120)}
	got := c.FileName()

	if len(got) > maxFileNameBytes+9 {
		t.Errorf("expected at most %d bytes, got %d", maxFileNameBytes+9, len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("expected valid utf-8, got %q", got)
	}
}

func TestCard_FileNameDistinct(t *testing.T) {
	dark := Card{Template: TemplateDefault, Title: "Hello", Theme: ThemeDark, Size: SizeOG}
	light := dark
	light.Theme = ThemeLight
	square := dark
	square.Size = SizeSquare

	names := map[string]bool{}
	for _, c := range []Card{dark, light, square} {
		names[c.FileName()] = true
	}
	if len(names) != 3 {
		t.Errorf("expected 3 distinct names, got %v", names)
	}
}

func TestSize_Dimensions(t *testing.T) {
	if d := SizeTwitter.Dimensions(); d.Width != 1600 || d.Height != 900 {
		t.Errorf("expected 1600x900, got %dx%d", d.Width, d.Height)
	}
	if d := Size("poster").Dimensions(); d.Width != 1200 || d.Height != 630 {
		t.Errorf("expected og fallback, got %dx%d", d.Width, d.Height)
	}

	c := Card{Size: SizeSquare}
	if c.Width() != 1080 || c.Height() != 1080 {
		t.Errorf("expected 1080x1080, got %dx%d", c.Width(), c.Height())
	}
}
