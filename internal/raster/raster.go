// Package raster draws layout trees. PNG renders pixels with gg; SVG emits
// markup with svgo and leaves image fetching to the SVG consumer.
package raster

import (
	"context"

	"ogstudio/internal/layout"
)

// Rasterizer turns a layout tree into an encoded image.
type Rasterizer interface {
	Rasterize(ctx context.Context, t *layout.Tree) ([]byte, error)
	ContentType() string
}

// sources collects the distinct image URLs of a tree in paint order.
func sources(t *layout.Tree) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range t.Find(layout.KindImage) {
		if n.Src == "" || seen[n.Src] {
			continue
		}
		seen[n.Src] = true
		out = append(out, n.Src)
	}
	return out
}
