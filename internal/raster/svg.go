package raster

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"image/color"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"ogstudio/internal/layout"
	"ogstudio/internal/models"
	"ogstudio/internal/style"
)

const fontFamily = "font-family:Go,Inter,Helvetica,Arial,sans-serif"

// SVG writes trees as SVG markup. Image nodes become <image> references, so
// nothing is fetched here.
type SVG struct{}

func NewSVG() *SVG {
	return &SVG{}
}

func (r *SVG) ContentType() string {
	return "image/svg+xml"
}

func (r *SVG) Rasterize(ctx context.Context, t *layout.Tree) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, h := float64(t.Width), float64(t.Height)
	canvas := svg.New(&buf)
	canvas.Start(t.Width, t.Height)

	clips := make(map[*layout.Node]string)
	canvas.Def()
	canvas.ClipPath(`id="card"`)
	svgRoundRect(canvas, 0, 0, w, h, t.Radius)
	canvas.ClipEnd()
	for i, l := range t.Background.Linears {
		canvas.LinearGradient(fmt.Sprintf("linear%d", i), pct(l.X0), pct(l.Y0), pct(l.X1), pct(l.Y1), offcolors(l.Stops))
	}
	for i, s := range t.Background.Spots {
		canvas.RadialGradient(fmt.Sprintf("spot%d", i), 50, 50, 50, 50, 50, []svg.Offcolor{
			{Offset: 0, Color: style.Hex(s.Color), Opacity: opacity(s.Color)},
			{Offset: 100, Color: style.Hex(s.Color), Opacity: 0},
		})
	}
	writePattern(canvas, t.Overlay)
	t.Walk(func(n *layout.Node) {
		if n.Kind == layout.KindImage && n.Radius > 0 {
			id := fmt.Sprintf("clip%d", len(clips))
			clips[n] = id
			canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
			svgRoundRect(canvas, n.X, n.Y, n.W, n.H, n.Radius)
			canvas.ClipEnd()
		}
	})
	canvas.DefEnd()

	canvas.Group(`clip-path="url(#card)"`)
	canvas.Rect(0, 0, t.Width, t.Height, fill(t.Background.Base))
	for i := range t.Background.Linears {
		canvas.Rect(0, 0, t.Width, t.Height, fmt.Sprintf("fill:url(#linear%d)", i))
	}
	for i, s := range t.Background.Spots {
		canvas.Circle(px(s.CX*w), px(s.CY*h), px(s.R*w), fmt.Sprintf("fill:url(#spot%d)", i))
	}
	if t.Overlay.Kind != models.PatternNone && t.Overlay.Tile > 0 {
		canvas.Rect(0, 0, t.Width, t.Height, "fill:url(#overlay)")
	}
	for _, n := range t.Nodes {
		if err := writeNode(canvas, n, clips); err != nil {
			return nil, err
		}
	}
	canvas.Gend()

	if t.Border.A > 0 {
		svgRoundRect(canvas, 0.5, 0.5, w-1, h-1, t.Radius, "fill:none;"+stroke(t.Border, 1))
	}
	canvas.End()
	return buf.Bytes(), nil
}

func writePattern(canvas *svg.SVG, o style.Overlay) {
	if o.Kind == models.PatternNone || o.Tile <= 0 {
		return
	}
	tile := px(o.Tile)
	canvas.Pattern("overlay", 0, 0, tile, tile, "user")
	switch o.Kind {
	case models.PatternDots:
		canvas.Circle(tile/2, tile/2, max(1, px(o.Mark)), fill(o.Color))
	case models.PatternGrid:
		canvas.Path(fmt.Sprintf("M %d 0 L 0 0 0 %d", tile, tile), "fill:none;"+stroke(o.Color, o.Mark))
	case models.PatternWaves:
		a, q := px(o.Amplitude), tile/4
		canvas.Path(fmt.Sprintf("M 0 %d Q %d %d %d %d Q %d %d %d %d", tile/2, q, tile/2-a, tile/2, tile/2, 3*q, tile/2+a, tile, tile/2), "fill:none;"+stroke(o.Color, o.Mark))
	}
	canvas.PatternEnd()
}

func writeNode(canvas *svg.SVG, n *layout.Node, clips map[*layout.Node]string) error {
	switch n.Kind {
	case layout.KindBox:
		if n.Fill.A > 0 {
			svgRoundRect(canvas, n.X, n.Y, n.W, n.H, n.Radius, fill(n.Fill))
		}
	case layout.KindCircle:
		cx, cy, rad := n.X+n.W/2, n.Y+n.H/2, n.W/2
		if n.Glow > 0 {
			canvas.Circle(px(cx), px(cy), px(rad+n.Glow/2), fill(style.WithAlpha(n.Fill, 0x40)))
		}
		canvas.Circle(px(cx), px(cy), px(rad), fill(n.Fill))
	case layout.KindText:
		writeText(canvas, n)
	case layout.KindImage:
		aspect := `preserveAspectRatio="xMidYMid meet"`
		if n.Fit == layout.FitCover {
			aspect = `preserveAspectRatio="xMidYMid slice"`
		}
		attrs := []string{aspect}
		if id, ok := clips[n]; ok {
			attrs = append(attrs, fmt.Sprintf(`clip-path="url(#%s)"`, id))
		}
		canvas.Image(px(n.X), px(n.Y), px(n.W), px(n.H), html.EscapeString(n.Src), attrs...)
	case layout.KindQR:
		if err := writeQR(canvas, n); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := writeNode(canvas, c, clips); err != nil {
			return err
		}
	}

	if n.BorderWidth > 0 && n.Border.A > 0 {
		inset := n.BorderWidth / 2
		svgRoundRect(canvas, n.X+inset, n.Y+inset, n.W-n.BorderWidth, n.H-n.BorderWidth, n.Radius-inset,
			"fill:none;"+stroke(n.Border, n.BorderWidth))
	}
	return nil
}

func writeText(canvas *svg.SVG, n *layout.Node) {
	lineH := n.FontSize * n.LineHeight
	maxLines := n.MaxLines
	if maxLines <= 0 {
		maxLines = max(1, int(n.H/lineH))
	}
	lines := layout.WrapEstimate(n.Text, n.FontSize, n.W, n.Bold)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = strings.TrimRight(lines[maxLines-1], " ") + ellipsis
	}

	x, anchor := n.X, "start"
	switch n.Align {
	case layout.AlignCenter:
		x, anchor = n.X+n.W/2, "middle"
	case layout.AlignRight:
		x, anchor = n.X+n.W, "end"
	}
	weight := "normal"
	if n.Bold {
		weight = "bold"
	}
	textStyle := fmt.Sprintf("%s;font-size:%dpx;font-weight:%s;text-anchor:%s;dominant-baseline:central;%s",
		fontFamily, px(n.FontSize), weight, anchor, fill(n.Color))
	for i, line := range lines {
		y := n.Y + lineH*float64(i) + lineH/2
		canvas.Text(px(x), px(y), line, textStyle)
	}
}

func writeQR(canvas *svg.SVG, n *layout.Node) error {
	q, err := newQR(n.Src)
	if err != nil {
		return err
	}
	svgRoundRect(canvas, n.X, n.Y, n.W, n.H, n.Radius, fill(n.Fill))

	bitmap := q.Bitmap()
	if len(bitmap) == 0 {
		return nil
	}
	pad := math.Max(n.Radius*0.8, n.W*0.06)
	module := (n.W - 2*pad) / float64(len(bitmap))

	var d strings.Builder
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&d, "M%.2f %.2fh%.2fv%.2fh-%.2fz", n.X+pad+float64(x)*module, n.Y+pad+float64(y)*module, module, module, module)
			}
		}
	}
	canvas.Path(d.String(), fill(n.Color))
	return nil
}

func svgRoundRect(canvas *svg.SVG, x, y, w, h, radius float64, s ...string) {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		canvas.Rect(px(x), px(y), px(w), px(h), s...)
		return
	}
	canvas.Roundrect(px(x), px(y), px(w), px(h), px(radius), px(radius), s...)
}

func offcolors(stops []style.Stop) []svg.Offcolor {
	out := make([]svg.Offcolor, 0, len(stops))
	for _, s := range stops {
		out = append(out, svg.Offcolor{Offset: pct(s.Offset), Color: style.Hex(s.Color), Opacity: opacity(s.Color)})
	}
	return out
}

func fill(c color.NRGBA) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%.3f", style.Hex(c), opacity(c))
}

func stroke(c color.NRGBA, width float64) string {
	return fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%.1f", style.Hex(c), opacity(c), width)
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

func pct(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 100))
}

func px(f float64) int {
	return int(math.Round(f))
}
