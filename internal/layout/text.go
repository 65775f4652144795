package layout

import (
	"image/color"
	"strings"
	"unicode/utf8"
)

// Average advance of a glyph relative to the font size for the sans faces
// the rasterizers use. Bold runs slightly wider.
const (
	advanceRegular = 0.52
	advanceBold    = 0.56
)

func advance(bold bool) float64 {
	if bold {
		return advanceBold
	}
	return advanceRegular
}

// EstimateWidth approximates the rendered width of s without font metrics.
func EstimateWidth(s string, size float64, bold bool) float64 {
	return float64(utf8.RuneCountInString(s)) * size * advance(bold)
}

// WrapEstimate breaks s into lines no wider than width using estimated glyph
// advances. Words longer than a line are split by rune.
func WrapEstimate(s string, size, width float64, bold bool) []string {
	perLine := int(width / (size * advance(bold)))
	if perLine < 1 {
		perLine = 1
	}

	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > perLine {
			flush()
			lines = append(lines, string(w[:perLine]))
			w = w[perLine:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= perLine:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
	}
	flush()
	return lines
}

// textBlock builds a text node sized for its estimated line count, capped at
// maxLines.
func textBlock(s string, size, lineHeight, width float64, bold bool, maxLines int, c color.NRGBA) *Node {
	lines := len(WrapEstimate(s, size, width, bold))
	if lines < 1 {
		lines = 1
	}
	if lines > maxLines {
		lines = maxLines
	}
	return &Node{
		Kind:       KindText,
		W:          width,
		H:          float64(lines) * size * lineHeight,
		Color:      c,
		Text:       s,
		FontSize:   size,
		Bold:       bold,
		LineHeight: lineHeight,
		MaxLines:   maxLines,
	}
}
