package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"ogstudio/internal/layout"
	"ogstudio/internal/params"
	"ogstudio/internal/style"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testFetcher() *Fetcher {
	return NewFetcher(FetchConfig{RetryMax: 0, AllowPrivate: true})
}

func treeFor(q url.Values) *layout.Tree {
	c := params.Normalize(q)
	return layout.Compose(c, style.ForCard(c))
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	return img
}

func TestSources_Distinct(t *testing.T) {
	tree := &layout.Tree{Nodes: []*layout.Node{
		{Kind: layout.KindImage, Src: "a"},
		{Kind: layout.KindBox, Children: []*layout.Node{
			{Kind: layout.KindImage, Src: "a"},
			{Kind: layout.KindImage, Src: "b"},
			{Kind: layout.KindImage},
		}},
	}}

	got := sources(tree)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}
