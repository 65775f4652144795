package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"ogstudio/internal/layout"
	"ogstudio/internal/models"
	"ogstudio/internal/style"
	"ogstudio/pkg/logger"
)

const ellipsis = "…"

// PNG rasterizes trees with gg.
type PNG struct {
	fonts  *Fonts
	images ImageSource
	// strict turns an image that cannot be loaded into a rasterization error
	// instead of leaving the slot empty.
	strict bool
}

type PNGOption func(*PNG)

// WithImageSource sets where image nodes are loaded from. Without one, image
// nodes are left empty.
func WithImageSource(src ImageSource) PNGOption {
	return func(r *PNG) { r.images = src }
}

// WithStrictImages makes image load failures fatal for the render.
func WithStrictImages(strict bool) PNGOption {
	return func(r *PNG) { r.strict = strict }
}

func NewPNG(fonts *Fonts, opts ...PNGOption) *PNG {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	r := &PNG{fonts: fonts}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PNG) ContentType() string {
	return "image/png"
}

func (r *PNG) Rasterize(ctx context.Context, t *layout.Tree) ([]byte, error) {
	images, err := r.loadImages(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := float64(t.Width), float64(t.Height)
	dc := gg.NewContext(t.Width, t.Height)

	paintBackground(dc, t.Background, w, h)
	paintOverlay(dc, t.Overlay, w, h)
	for _, n := range t.Nodes {
		if err := r.drawNode(dc, n, images); err != nil {
			return nil, err
		}
	}

	// Corners are cut once at the end; a clip mask during painting would make
	// gg composite every text run through a full-canvas buffer.
	if t.Radius > 0 {
		dc = gg.NewContextForRGBA(clipCorners(dc.Image(), w, h, t.Radius))
	}
	if t.Border.A > 0 {
		dc.SetColor(t.Border)
		dc.SetLineWidth(1)
		roundRect(dc, 0.5, 0.5, w-1, h-1, t.Radius)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PNG) loadImages(ctx context.Context, t *layout.Tree) (map[string]image.Image, error) {
	images := make(map[string]image.Image)
	for _, src := range sources(t) {
		if r.images == nil {
			if r.strict {
				return nil, fmt.Errorf("no image source for %q", truncateForLog(src))
			}
			continue
		}
		img, err := r.images.Fetch(ctx, src)
		if err != nil {
			if r.strict {
				return nil, fmt.Errorf("failed to load image: %w", err)
			}
			logger.Warnf("omitting image %q: %v", truncateForLog(src), err)
			continue
		}
		images[src] = img
	}
	return images, nil
}

func clipCorners(img image.Image, w, h, radius float64) *image.RGBA {
	mask := gg.NewContext(int(w), int(h))
	roundRect(mask, 0, 0, w, h, radius)
	mask.Fill()

	out := image.NewRGBA(img.Bounds())
	draw.DrawMask(out, out.Bounds(), img, image.Point{}, mask.AsMask(), image.Point{}, draw.Src)
	return out
}

func roundRect(dc *gg.Context, x, y, w, h, radius float64) {
	radius = math.Min(radius, math.Min(w, h)/2)
	if radius <= 0 {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.DrawRoundedRectangle(x, y, w, h, radius)
}

func paintBackground(dc *gg.Context, bg style.Background, w, h float64) {
	dc.SetColor(bg.Base)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	for _, l := range bg.Linears {
		grad := gg.NewLinearGradient(l.X0*w, l.Y0*h, l.X1*w, l.Y1*h)
		for _, s := range l.Stops {
			grad.AddColorStop(s.Offset, s.Color)
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	}

	for _, s := range bg.Spots {
		cx, cy, rad := s.CX*w, s.CY*h, s.R*w
		grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, rad)
		grad.AddColorStop(0, s.Color)
		grad.AddColorStop(1, style.WithAlpha(s.Color, 0))
		dc.SetFillStyle(grad)
		dc.DrawCircle(cx, cy, rad)
		dc.Fill()
	}
}

func paintOverlay(dc *gg.Context, o style.Overlay, w, h float64) {
	if o.Kind == models.PatternNone || o.Tile <= 0 {
		return
	}
	dc.SetColor(o.Color)

	switch o.Kind {
	case models.PatternDots:
		for y := o.Tile / 2; y < h; y += o.Tile {
			for x := o.Tile / 2; x < w; x += o.Tile {
				dc.DrawCircle(x, y, o.Mark)
			}
		}
		dc.Fill()
	case models.PatternGrid:
		for x := o.Tile; x < w; x += o.Tile {
			dc.DrawLine(x, 0, x, h)
		}
		for y := o.Tile; y < h; y += o.Tile {
			dc.DrawLine(0, y, w, y)
		}
		dc.SetLineWidth(o.Mark)
		dc.Stroke()
	case models.PatternWaves:
		step := o.Tile / 2
		for y := step; y < h+o.Amplitude; y += step {
			dc.MoveTo(0, y)
			for x := 0.0; x < w; x += o.Tile {
				dc.QuadraticTo(x+o.Tile/4, y-o.Amplitude, x+o.Tile/2, y)
				dc.QuadraticTo(x+3*o.Tile/4, y+o.Amplitude, x+o.Tile, y)
			}
		}
		dc.SetLineWidth(o.Mark)
		dc.Stroke()
	}
}

func (r *PNG) drawNode(dc *gg.Context, n *layout.Node, images map[string]image.Image) error {
	switch n.Kind {
	case layout.KindBox:
		if n.Fill.A > 0 {
			dc.SetColor(n.Fill)
			roundRect(dc, n.X, n.Y, n.W, n.H, n.Radius)
			dc.Fill()
		}
	case layout.KindCircle:
		drawCircle(dc, n)
	case layout.KindText:
		r.drawText(dc, n)
	case layout.KindImage:
		if img, ok := images[n.Src]; ok {
			drawImage(dc, n, img)
		}
	case layout.KindQR:
		if err := drawQR(dc, n); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := r.drawNode(dc, c, images); err != nil {
			return err
		}
	}

	if n.BorderWidth > 0 && n.Border.A > 0 {
		inset := n.BorderWidth / 2
		dc.SetColor(n.Border)
		dc.SetLineWidth(n.BorderWidth)
		roundRect(dc, n.X+inset, n.Y+inset, n.W-n.BorderWidth, n.H-n.BorderWidth, n.Radius-inset)
		dc.Stroke()
	}
	return nil
}

func drawCircle(dc *gg.Context, n *layout.Node) {
	cx, cy, rad := n.X+n.W/2, n.Y+n.H/2, n.W/2
	if n.Glow > 0 {
		outer := rad + n.Glow
		grad := gg.NewRadialGradient(cx, cy, rad*0.5, cx, cy, outer)
		grad.AddColorStop(0, style.WithAlpha(n.Fill, 0x99))
		grad.AddColorStop(1, style.WithAlpha(n.Fill, 0))
		dc.SetFillStyle(grad)
		dc.DrawCircle(cx, cy, outer)
		dc.Fill()
	}
	dc.SetColor(n.Fill)
	dc.DrawCircle(cx, cy, rad)
	dc.Fill()
}

func (r *PNG) drawText(dc *gg.Context, n *layout.Node) {
	face := r.fonts.Face(n.FontSize, n.Bold)
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(n.Color)

	lineH := n.FontSize * n.LineHeight
	lines := wrapText(dc, n)

	x, ax := n.X, 0.0
	switch n.Align {
	case layout.AlignCenter:
		x, ax = n.X+n.W/2, 0.5
	case layout.AlignRight:
		x, ax = n.X+n.W, 1
	}
	for i, line := range lines {
		line = fitWidth(dc, line, n.W)
		y := n.Y + lineH*float64(i) + lineH/2
		dc.DrawStringAnchored(line, x, y, ax, 0.5)
	}
}

// wrapText wraps n.Text with the current face's metrics. The node box was
// sized from estimated advances, so the line count is capped by what the box
// holds as well as by MaxLines; otherwise an extra line would spill onto the
// node below.
func wrapText(dc *gg.Context, n *layout.Node) []string {
	limit := max(1, int(n.H/(n.FontSize*n.LineHeight)+1e-6))
	if n.MaxLines > 0 && n.MaxLines < limit {
		limit = n.MaxLines
	}

	lines := dc.WordWrap(n.Text, n.W)
	if len(lines) > limit {
		lines = lines[:limit]
		lines[limit-1] = fitWidth(dc, lines[limit-1]+ellipsis, n.W)
	}
	return lines
}

// fitWidth trims s from the end until it fits in width, marking the cut with
// an ellipsis.
func fitWidth(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + ellipsis
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return ellipsis
}

func drawImage(dc *gg.Context, n *layout.Node, img image.Image) {
	w, h := int(math.Round(n.W)), int(math.Round(n.H))
	if w <= 0 || h <= 0 {
		return
	}

	var fitted image.Image
	switch n.Fit {
	case layout.FitCover:
		fitted = imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	default:
		fitted = imaging.Fit(img, w, h, imaging.Lanczos)
	}

	dc.Push()
	if n.Radius > 0 {
		roundRect(dc, n.X, n.Y, n.W, n.H, n.Radius)
		dc.Clip()
	}
	dc.DrawImageAnchored(fitted, int(n.X+n.W/2), int(n.Y+n.H/2), 0.5, 0.5)
	dc.Pop()
}

func drawQR(dc *gg.Context, n *layout.Node) error {
	dc.SetColor(n.Fill)
	roundRect(dc, n.X, n.Y, n.W, n.H, n.Radius)
	dc.Fill()

	pad := math.Max(n.Radius*0.8, n.W*0.06)
	side := int(n.W - 2*pad)
	if side <= 0 {
		return nil
	}
	img, err := qrImage(n.Src, side, n.Color, n.Fill)
	if err != nil {
		return err
	}
	dc.DrawImage(img, int(n.X+pad), int(n.Y+pad))
	return nil
}

func truncateForLog(s string) string {
	const limit = 80
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}
