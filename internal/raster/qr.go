package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

func newQR(content string) (*qrcode.QRCode, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	q.DisableBorder = true
	return q, nil
}

// qrImage renders content as a side×side QR code in the given colours.
func qrImage(content string, side int, fg, bg color.Color) (image.Image, error) {
	q, err := newQR(content)
	if err != nil {
		return nil, err
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg

	src := q.Image(256)
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	// Nearest neighbour keeps module edges sharp.
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
