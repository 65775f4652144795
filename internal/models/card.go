package models

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeDark     Theme = "dark"
	ThemeLight    Theme = "light"
	ThemeGradient Theme = "gradient"
	ThemeMinimal  Theme = "minimal"
)

type Background string

const (
	BackgroundSolid    Background = "solid"
	BackgroundRadial   Background = "radial"
	BackgroundGradient Background = "gradient"
	BackgroundMesh     Background = "mesh"
)

type Pattern string

const (
	PatternNone  Pattern = "none"
	PatternDots  Pattern = "dots"
	PatternGrid  Pattern = "grid"
	PatternWaves Pattern = "waves"
)

type Template string

const (
	TemplateDefault Template = "default"
	TemplateLaunch  Template = "launch"
	TemplateBlog    Template = "blog"
	TemplateSpeaker Template = "speaker"
	TemplateProduct Template = "product"
)

type Size string

const (
	SizeOG       Size = "og"
	SizeTwitter  Size = "twitter"
	SizeLinkedIn Size = "linkedin"
	SizeSquare   Size = "square"
)

// Dimensions is the pixel size of a size preset.
type Dimensions struct {
	Width  int
	Height int
}

var sizeDimensions = map[Size]Dimensions{
	SizeOG:       {Width: 1200, Height: 630},
	SizeTwitter:  {Width: 1600, Height: 900},
	SizeLinkedIn: {Width: 1200, Height: 627},
	SizeSquare:   {Width: 1080, Height: 1080},
}

// Dimensions returns the output size for s, or the og size for unknown presets.
func (s Size) Dimensions() Dimensions {
	if d, ok := sizeDimensions[s]; ok {
		return d
	}
	return sizeDimensions[SizeOG]
}

// Card is the fully normalized set of parameters for one rendered image.
type Card struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Theme      Theme      `json:"theme"`
	Brand      string     `json:"brand"`
	Accent     string     `json:"accent"`
	Background Background `json:"bg"`
	Pattern    Pattern    `json:"pattern"`
	Template   Template   `json:"template"`
	Size       Size       `json:"size"`
	Radius     int        `json:"radius"`
	Logo       string     `json:"logo,omitempty"`
	QR         string     `json:"qr,omitempty"`
}

func (c *Card) Width() int {
	return c.Size.Dimensions().Width
}

func (c *Card) Height() int {
	return c.Size.Dimensions().Height
}

var (
	invalidFileChars = regexp.MustCompile(`[/\\?%*:|"<>\x00-\x1F]`)
	repeatedUnders   = regexp.MustCompile(`_+`)
)

// maxFileNameBytes leaves room for the hash suffix and an extension under the
// usual 255-byte file name limit.
const maxFileNameBytes = 100

// FileName returns a filesystem-safe base name for the card, without extension.
// The readable part is capped at maxFileNameBytes and followed by a short hash
// of every card field, so cards that share a title get distinct names.
func (c *Card) FileName() string {
	filename := string(c.Template) + "-" + c.Title

	// Replace invalid characters and spaces with an underscore
	sanitized := strings.TrimSpace(invalidFileChars.ReplaceAllString(filename, "_"))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	// remove multiple consecutive underscores
	sanitized = repeatedUnders.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(truncateBytes(sanitized, maxFileNameBytes), "_")

	return sanitized + "-" + c.hash()
}

func (c *Card) hash() string {
	data, _ := json.Marshal(c)
	return uuid.NewSHA1(uuid.NameSpaceURL, data).String()[:8]
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
