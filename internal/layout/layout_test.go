package layout

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"ogstudio/internal/models"
	"ogstudio/internal/params"
	"ogstudio/internal/style"
)

func compose(q url.Values) *Tree {
	c := params.Normalize(q)
	return Compose(c, style.ForCard(c))
}

func textNodes(t *Tree) map[string]*Node {
	out := make(map[string]*Node)
	for _, n := range t.Find(KindText) {
		out[n.Text] = n
	}
	return out
}

func TestCompose_Dimensions(t *testing.T) {
	tests := []struct {
		size string
		w, h int
	}{
		{"og", 1200, 630},
		{"twitter", 1600, 900},
		{"linkedin", 1200, 627},
		{"square", 1080, 1080},
		{"bogus", 1200, 630},
	}

	for _, tt := range tests {
		tree := compose(url.Values{"size": {tt.size}})
		if tree.Width != tt.w || tree.Height != tt.h {
			t.Errorf("size %s: expected %dx%d, got %dx%d", tt.size, tt.w, tt.h, tree.Width, tree.Height)
		}
	}
}

func TestCompose_EveryTemplateShowsText(t *testing.T) {
	for _, tmpl := range params.Templates {
		tree := compose(url.Values{"template": {string(tmpl)}, "title": {"Hello"}, "subtitle": {"World"}})
		texts := textNodes(tree)
		if _, ok := texts["Hello"]; !ok {
			t.Errorf("%s: title node missing", tmpl)
		}
		if _, ok := texts["World"]; !ok {
			t.Errorf("%s: subtitle node missing", tmpl)
		}
		if tree.Fallback {
			t.Errorf("%s: regular card marked as fallback", tmpl)
		}
	}
}

func TestCompose_NodesInsideCanvas(t *testing.T) {
	long := url.Values{
		"title":    {strings.Repeat("Wide ", 24)},
		"subtitle": {strings.Repeat("subtitle ", 17)},
		"qr":       {"https://example.com"},
	}

	for _, tmpl := range params.Templates {
		for _, size := range params.Sizes {
			q := url.Values{"template": {string(tmpl)}, "size": {string(size)}}
			for k, v := range long {
				q[k] = v
			}
			tree := compose(q)
			w, h := float64(tree.Width), float64(tree.Height)

			tree.Walk(func(n *Node) {
				if n.Kind != KindText && n.Kind != KindQR {
					return
				}
				if n.X < -0.5 || n.Y < -0.5 || n.X+n.W > w+0.5 || n.Y+n.H > h+0.5 {
					t.Errorf("%s/%s: %s node out of bounds: x=%.1f y=%.1f w=%.1f h=%.1f",
						tmpl, size, n.Kind, n.X, n.Y, n.W, n.H)
				}
			})
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	q := url.Values{"template": {"product"}, "theme": {"gradient"}, "bg": {"mesh"}, "pattern": {"waves"}}
	if !reflect.DeepEqual(compose(q), compose(q)) {
		t.Error("expected identical trees for identical input")
	}
}

func TestCompose_LogoSlot(t *testing.T) {
	logo := "https://example.com/logo.png?a=1&b=2"

	for _, tmpl := range params.Templates {
		withLogo := compose(url.Values{"template": {string(tmpl)}, "logo": {logo}})
		images := withLogo.Find(KindImage)
		if len(images) != 1 {
			t.Fatalf("%s: expected 1 image node, got %d", tmpl, len(images))
		}
		if images[0].Src != logo {
			t.Errorf("%s: expected src %s, got %s", tmpl, logo, images[0].Src)
		}

		noLogo := compose(url.Values{"template": {string(tmpl)}})
		if n := len(noLogo.Find(KindImage)); n != 0 {
			t.Errorf("%s: expected no image nodes without logo, got %d", tmpl, n)
		}
		if len(noLogo.Find(KindCircle)) == 0 {
			t.Errorf("%s: expected a decorative circle without logo", tmpl)
		}
	}
}

func TestCompose_QR(t *testing.T) {
	tree := compose(url.Values{"qr": {"https://example.com"}, "template": {"launch"}})
	qrs := tree.Find(KindQR)
	if len(qrs) != 1 {
		t.Fatalf("expected 1 qr node, got %d", len(qrs))
	}
	if qrs[0].Src != "https://example.com" {
		t.Errorf("expected qr payload, got %s", qrs[0].Src)
	}
	if qrs[0].X < float64(tree.Width)/2 || qrs[0].Y < float64(tree.Height)/2 {
		t.Errorf("expected qr in the bottom-right quadrant, got (%.1f, %.1f)", qrs[0].X, qrs[0].Y)
	}

	if n := len(compose(url.Values{}).Find(KindQR)); n != 0 {
		t.Errorf("expected no qr node by default, got %d", n)
	}
}

func TestCompose_CarriesStyle(t *testing.T) {
	c := params.Normalize(url.Values{"radius": {"40"}, "pattern": {"grid"}})
	st := style.ForCard(c)
	tree := Compose(c, st)

	if tree.Radius != 40 {
		t.Errorf("expected radius 40, got %v", tree.Radius)
	}
	if tree.Overlay.Kind != models.PatternGrid {
		t.Errorf("expected grid overlay, got %s", tree.Overlay.Kind)
	}
	if tree.Background.Base != st.Background.Base {
		t.Error("expected tree background to match the style")
	}
}

func TestCompose_LargerScaleOnTwitter(t *testing.T) {
	og := textNodes(compose(url.Values{"title": {"Hi"}}))["Hi"]
	tw := textNodes(compose(url.Values{"title": {"Hi"}, "size": {"twitter"}}))["Hi"]
	if og == nil || tw == nil {
		t.Fatal("title node missing")
	}
	if tw.FontSize <= og.FontSize {
		t.Errorf("expected twitter title larger than og, got %.1f <= %.1f", tw.FontSize, og.FontSize)
	}
}

func TestFallback(t *testing.T) {
	tree := Fallback(1600, 900)

	if !tree.Fallback {
		t.Error("expected fallback flag")
	}
	if tree.Width != 1600 || tree.Height != 900 {
		t.Errorf("expected 1600x900, got %dx%d", tree.Width, tree.Height)
	}
	texts := tree.Find(KindText)
	if len(texts) != 1 || texts[0].Text != FallbackMessage {
		t.Errorf("expected a single %q text node, got %+v", FallbackMessage, texts)
	}
	if n := len(tree.Find(KindImage)); n != 0 {
		t.Errorf("expected no image nodes, got %d", n)
	}
}

func TestWrapEstimate(t *testing.T) {
	// 10 regular glyphs per line at size 10, width 53
	lines := WrapEstimate("aaaa bbbb cccc", 10, 53, false)
	want := []string{"aaaa bbbb", "cccc"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %q, got %q", want, lines)
	}

	lines = WrapEstimate(strings.Repeat("x", 25), 10, 53, false)
	if len(lines) != 3 || lines[0] != strings.Repeat("x", 10) {
		t.Errorf("expected long word split into 3 lines, got %q", lines)
	}

	if lines := WrapEstimate("   ", 10, 52, false); len(lines) != 0 {
		t.Errorf("expected no lines for blank text, got %q", lines)
	}
}

func TestKindString(t *testing.T) {
	if KindQR.String() != "qr" || Kind(99).String() != "unknown" {
		t.Errorf("unexpected kind names: %s, %s", KindQR, Kind(99))
	}
}
