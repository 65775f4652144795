package layout

import "ogstudio/internal/models"

// Scale is one step of the type scale. Each size preset maps to exactly one
// step; sizes never interpolate between steps.
type Scale struct {
	Title    float64
	Subtitle float64
	Chip     float64
	Pad      float64
	Gap      float64
	Panel    float64
	Mark     float64
	QR       float64
}

var (
	scaleRegular = Scale{Title: 84, Subtitle: 36, Chip: 28, Pad: 64, Gap: 40, Panel: 300, Mark: 120, QR: 120}
	scaleTall    = Scale{Title: 92, Subtitle: 40, Chip: 30, Pad: 72, Gap: 44, Panel: 340, Mark: 136, QR: 140}
	scaleWide    = Scale{Title: 104, Subtitle: 44, Chip: 32, Pad: 80, Gap: 48, Panel: 380, Mark: 150, QR: 150}
)

var scales = map[models.Size]Scale{
	models.SizeOG:       scaleRegular,
	models.SizeLinkedIn: scaleRegular,
	models.SizeSquare:   scaleTall,
	models.SizeTwitter:  scaleWide,
}

// ScaleFor returns the type scale step for a size preset.
func ScaleFor(size models.Size) Scale {
	if s, ok := scales[size]; ok {
		return s
	}
	return scaleRegular
}

// unit is the spacing unit: 1 at the regular step.
func (s Scale) unit() float64 {
	return s.Chip / scaleRegular.Chip
}
