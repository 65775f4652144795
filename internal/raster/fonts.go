package raster

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"ogstudio/pkg/logger"
)

// Fonts holds the parsed regular and bold typefaces. Parsed fonts are
// read-only and shared; faces are created per draw because they cache glyphs.
type Fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewFonts loads TTF files from the given paths. An empty or unreadable path
// falls back to the embedded Go fonts.
func NewFonts(regularPath, boldPath string) (*Fonts, error) {
	regular, err := loadFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	bold, err := loadFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold}, nil
}

// DefaultFonts returns the embedded Go fonts.
func DefaultFonts() *Fonts {
	f, err := NewFonts("", "")
	if err != nil {
		// the embedded fonts always parse
		panic(err)
	}
	return f
}

// Face returns a new face at size points.
func (f *Fonts) Face(size float64, bold bool) font.Face {
	fnt := f.regular
	if bold {
		fnt = f.bold
	}
	return truetype.NewFace(fnt, &truetype.Options{Size: size})
}

func loadFont(path string, fallback []byte) (*truetype.Font, error) {
	data := fallback
	if path != "" {
		if custom, err := os.ReadFile(path); err != nil {
			logger.Warnf("font %q unavailable, using embedded default: %v", path, err)
		} else {
			data = custom
		}
	}
	return truetype.Parse(data)
}
