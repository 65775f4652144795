package layout

import (
	"image/color"

	"ogstudio/internal/models"
	"ogstudio/internal/style"
)

// frame carries everything a template needs to place its nodes.
type frame struct {
	card  models.Card
	st    style.Style
	s     Scale
	w, h  float64
	hasQR bool
}

type composer func(f frame) []*Node

var templates = map[models.Template]composer{
	models.TemplateDefault: composeDefault,
	models.TemplateLaunch:  composeLaunch,
	models.TemplateBlog:    composeBlog,
	models.TemplateSpeaker: composeSpeaker,
	models.TemplateProduct: composeProduct,
}

// chip labels per template
var chipLabels = map[models.Template]string{
	models.TemplateDefault: "OG Studio",
	models.TemplateLaunch:  "NEW",
	models.TemplateBlog:    "BLOG",
	models.TemplateSpeaker: "SPEAKER",
	models.TemplateProduct: "PRODUCT",
}

// Compose lays out card with the resolved style st. It never fails for a
// normalized card; unknown templates use the default arrangement.
func Compose(card models.Card, st style.Style) *Tree {
	dims := card.Size.Dimensions()
	f := frame{
		card:  card,
		st:    st,
		s:     ScaleFor(card.Size),
		w:     float64(dims.Width),
		h:     float64(dims.Height),
		hasQR: card.QR != "",
	}

	compose, ok := templates[card.Template]
	if !ok {
		compose = composeDefault
	}
	nodes := compose(f)
	if f.hasQR {
		nodes = append(nodes, qrNode(f))
	}

	return &Tree{
		Width:      dims.Width,
		Height:     dims.Height,
		Radius:     float64(card.Radius),
		Background: st.Background,
		Overlay:    st.Overlay,
		Border:     st.Border,
		Nodes:      nodes,
	}
}

// column stacks nodes vertically from (x, y) with a fixed gap.
type column struct {
	x, y, w, gap float64
	center       bool
	top          float64
	nodes        []*Node
}

func newColumn(x, y, w, gap float64, center bool) *column {
	return &column{x: x, y: y, w: w, gap: gap, center: center, top: y}
}

func (c *column) add(n *Node) {
	dx := c.x - n.X
	if c.center {
		dx += (c.w - n.W) / 2
	}
	shift([]*Node{n}, dx, c.y-n.Y)
	if n.Kind == KindText && c.center {
		n.Align = AlignCenter
	}
	c.y += n.H + c.gap
	c.nodes = append(c.nodes, n)
}

func (c *column) height() float64 {
	if len(c.nodes) == 0 {
		return 0
	}
	return c.y - c.gap - c.top
}

// centerIn moves the column so it is vertically centred between top and bottom.
func (c *column) centerIn(top, bottom float64) []*Node {
	shift(c.nodes, 0, top+(bottom-top-c.height())/2-c.top)
	return c.nodes
}

func chip(f frame, label string) *Node {
	u := f.s.unit()
	size := f.s.Chip
	h := size * 1.8
	dot := 10 * u
	padX := 14 * u
	gap := 10 * u
	textW := EstimateWidth(label, size, false)

	box := &Node{
		Kind:   KindBox,
		W:      padX*2 + dot + gap + textW,
		H:      h,
		Fill:   f.st.Chip,
		Radius: h / 2,
	}
	box.Children = []*Node{
		{
			Kind: KindCircle,
			X:    padX,
			Y:    (h - dot) / 2,
			W:    dot,
			H:    dot,
			Fill: f.st.Brand,
			Glow: 12 * u,
		},
		{
			Kind:       KindText,
			X:          padX + dot + gap,
			Y:          (h - size*1.2) / 2,
			W:          textW + padX,
			H:          size * 1.2,
			Color:      f.st.Text,
			Text:       label,
			FontSize:   size,
			LineHeight: 1.2,
			MaxLines:   1,
		},
	}
	return box
}

// logoSlot fills a square area with the logo image, or with a glowing brand
// circle when there is no logo.
func logoSlot(f frame, x, y, side, markSize float64, fit Fit, round bool) *Node {
	if f.card.Logo != "" {
		n := &Node{
			Kind: KindImage,
			X:    x,
			Y:    y,
			W:    side,
			H:    side,
			Src:  f.card.Logo,
			Fit:  fit,
		}
		if round {
			n.Radius = side / 2
		}
		return n
	}
	return &Node{
		Kind: KindCircle,
		X:    x + (side-markSize)/2,
		Y:    y + (side-markSize)/2,
		W:    markSize,
		H:    markSize,
		Fill: f.st.Brand,
		Glow: markSize / 2,
	}
}

func qrNode(f frame) *Node {
	size := f.s.QR
	x := f.w - f.s.Pad - size
	y := f.h - f.s.Pad - size
	if f.card.Template == models.TemplateDefault {
		size *= 0.8
		x = f.w - f.s.Pad - size
		y = f.s.Pad * 0.75
	}
	return &Node{
		Kind:   KindQR,
		X:      x,
		Y:      y,
		W:      size,
		H:      size,
		Fill:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Color:  color.NRGBA{R: 0x0b, G: 0x12, B: 0x20, A: 0xff},
		Radius: 12 * f.s.unit(),
		Src:    f.card.QR,
	}
}

// qrReserve is the horizontal room a text column gives up for a corner QR.
func qrReserve(f frame) float64 {
	if !f.hasQR {
		return 0
	}
	return f.s.QR + f.s.Gap
}
