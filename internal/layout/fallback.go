package layout

import (
	"image/color"

	"ogstudio/internal/style"
)

// FallbackMessage is the only text on the error card.
const FallbackMessage = "Image generation failed"

var (
	fallbackBase = color.NRGBA{R: 0x0b, G: 0x12, B: 0x20, A: 0xff}
	fallbackText = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
)

// Fallback is the fixed card served when rasterizing the real card failed:
// a solid background and a single centred message. It references no
// external resources.
func Fallback(width, height int) *Tree {
	w, h := float64(width), float64(height)
	size := h * 0.07
	lineH := size * 1.2

	return &Tree{
		Width:      width,
		Height:     height,
		Background: style.Background{Base: fallbackBase},
		Nodes: []*Node{{
			Kind:       KindText,
			X:          w * 0.1,
			Y:          (h - lineH) / 2,
			W:          w * 0.8,
			H:          lineH,
			Color:      fallbackText,
			Text:       FallbackMessage,
			FontSize:   size,
			Bold:       true,
			LineHeight: 1.2,
			Align:      AlignCenter,
			MaxLines:   1,
		}},
		Fallback: true,
	}
}
