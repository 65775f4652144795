// Package layout turns a normalized card and its resolved style into a tree
// of absolutely positioned visual nodes. It does no drawing; rasterizers in
// internal/raster consume the tree.
package layout

import (
	"image/color"

	"ogstudio/internal/style"
)

type Kind int

const (
	KindBox Kind = iota
	KindText
	KindImage
	KindCircle
	KindQR
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindCircle:
		return "circle"
	case KindQR:
		return "qr"
	default:
		return "unknown"
	}
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Fit controls how an image is scaled into its node.
type Fit int

const (
	FitContain Fit = iota
	FitCover
)

// Node is a single element of the card. Coordinates are absolute pixels
// from the top-left corner of the canvas.
type Node struct {
	Kind       Kind
	X, Y, W, H float64

	// Fill paints boxes, circles and the QR background.
	Fill        color.NRGBA
	Border      color.NRGBA
	BorderWidth float64
	Radius      float64
	// Glow is the radius of a soft halo in Fill's colour around circles.
	Glow float64

	// Color is the text colour, or the QR module colour.
	Color      color.NRGBA
	Text       string
	FontSize   float64
	Bold       bool
	LineHeight float64
	Align      Align
	MaxLines   int

	// Src is an image URL (passed through verbatim) or the QR payload.
	Src string
	Fit Fit

	Children []*Node
}

// Tree is the complete description of one card.
type Tree struct {
	Width      int
	Height     int
	Radius     float64
	Background style.Background
	Overlay    style.Overlay
	Border     color.NRGBA
	Nodes      []*Node

	// Fallback marks the fixed error card.
	Fallback bool
}

// Walk visits every node depth-first in paint order.
func (t *Tree) Walk(fn func(n *Node)) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(t.Nodes)
}

// Find returns every node of the given kind.
func (t *Tree) Find(kind Kind) []*Node {
	var out []*Node
	t.Walk(func(n *Node) {
		if n.Kind == kind {
			out = append(out, n)
		}
	})
	return out
}

func shift(nodes []*Node, dx, dy float64) {
	for _, n := range nodes {
		n.X += dx
		n.Y += dy
		shift(n.Children, dx, dy)
	}
}
