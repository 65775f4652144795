package params

import "testing"

func TestPresets_AreNormalized(t *testing.T) {
	for _, p := range Presets() {
		if got := Normalize(Encode(p.Card)); got != p.Card {
			t.Errorf("preset %s is not a normalized card: %+v != %+v", p.Name, got, p.Card)
		}
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	first := Presets()
	first[0].Card.Title = "changed"

	if Presets()[0].Card.Title == "changed" {
		t.Error("expected Presets to return a copy")
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset("speaker")
	if !ok {
		t.Fatal("expected speaker preset")
	}
	if p.Card.Title != "Sarah Chen" {
		t.Errorf("expected Sarah Chen, got %s", p.Card.Title)
	}

	if _, ok := LookupPreset("missing"); ok {
		t.Error("expected missing preset to be absent")
	}
}
