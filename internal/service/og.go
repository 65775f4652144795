package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/url"

	"ogstudio/internal/config"
	"ogstudio/internal/layout"
	"ogstudio/internal/models"
	"ogstudio/internal/params"
	"ogstudio/internal/raster"
	"ogstudio/internal/style"
	"ogstudio/pkg/logger"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Result is a rendered card ready to be written to a response or a file.
type Result struct {
	Body        []byte
	ContentType string
	Width       int
	Height      int
	Fallback    bool
	Card        models.Card
}

// OG runs the normalize, style, layout and rasterize pipeline.
type OG struct {
	png raster.Rasterizer
	svg raster.Rasterizer
}

func NewOG(pngRaster, svgRaster raster.Rasterizer) *OG {
	return &OG{png: pngRaster, svg: svgRaster}
}

// New builds the service from configuration: fonts, the image fetcher and
// both rasterizers.
func New(cfg *config.Config) (*OG, error) {
	fonts, err := raster.NewFonts(cfg.Render.FontRegular, cfg.Render.FontBold)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	fetcher := raster.NewFetcher(raster.FetchConfig{
		Timeout:      cfg.Fetch.Timeout,
		RetryMax:     cfg.Fetch.RetryMax,
		RetryWaitMax: cfg.Fetch.RetryWaitMax,
		MaxBytes:     cfg.Fetch.MaxBytes,
		UserAgent:    cfg.Fetch.UserAgent,
		AllowPrivate: cfg.Fetch.AllowPrivate,
	})
	pngRaster := raster.NewPNG(fonts,
		raster.WithImageSource(fetcher),
		raster.WithStrictImages(cfg.Render.StrictImages),
	)
	return NewOG(pngRaster, raster.NewSVG()), nil
}

// Render normalizes q and renders it. It always returns an image: when the
// card cannot be rasterized the fallback card is returned instead.
func (s *OG) Render(ctx context.Context, q url.Values, format Format) Result {
	return s.RenderCard(ctx, params.Normalize(q), format)
}

func (s *OG) RenderCard(ctx context.Context, card models.Card, format Format) Result {
	r := s.rasterizer(format)
	res := Result{
		ContentType: r.ContentType(),
		Width:       card.Width(),
		Height:      card.Height(),
		Card:        card,
	}

	tree := layout.Compose(card, style.ForCard(card))
	body, err := rasterize(ctx, r, tree)
	if err == nil {
		res.Body = body
		return res
	}
	logger.Errorf("failed to render %s card %q: %v", format, params.CanonicalQuery(card), err)

	res.Fallback = true
	body, err = rasterize(context.WithoutCancel(ctx), r, layout.Fallback(res.Width, res.Height))
	if err == nil {
		res.Body = body
		return res
	}
	logger.Errorf("failed to render fallback card: %v", err)

	res.ContentType = "image/png"
	res.Body = solidPNG(res.Width, res.Height)
	return res
}

func (s *OG) rasterizer(format Format) raster.Rasterizer {
	if format == FormatSVG {
		return s.svg
	}
	return s.png
}

// rasterize turns a panic in r into an error.
func rasterize(ctx context.Context, r raster.Rasterizer, t *layout.Tree) (body []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			body, err = nil, fmt.Errorf("rasterizer panic: %v", rec)
		}
	}()
	return r.Rasterize(ctx, t)
}

var solidColor = color.NRGBA{R: 0x0b, G: 0x12, B: 0x20, A: 0xff}

func solidPNG(width, height int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(solidColor), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logger.Errorf("failed to encode solid png: %v", err)
	}
	return buf.Bytes()
}
