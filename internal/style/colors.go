package style

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex colour")

// ParseHex accepts #rgb and #rrggbb, with or without the leading '#'.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// Hex formats c as lowercase #rrggbb, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

func rgba(s string, a uint8) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return WithAlpha(c, a)
}
