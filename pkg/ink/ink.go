// Package ink holds the freehand stroke value types shared by the page
// model, the undo log, and the renderer.
package ink

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/google/uuid"
)

// DefaultColor is used when a stroke or text element carries no color.
const DefaultColor = "#000000"

// DefaultWidth is the pen width applied when none is given.
const DefaultWidth = 2.0

// Point is a single sample on a stroke path.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one freehand ink stroke: an ordered point sequence plus
// stroke-level drawing attributes. Strokes are identified by ID so that
// undo can find them on a surface after round-trips through the model.
type Stroke struct {
	ID     string  `json:"id"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
	Points []Point `json:"points"`
}

// New builds a stroke with a fresh id and normalized attributes.
func New(hex string, width float64, points ...Point) Stroke {
	if width <= 0 {
		width = DefaultWidth
	}
	return Stroke{
		ID:     uuid.New().String(),
		Color:  NormalizeColor(hex),
		Width:  width,
		Points: append([]Point(nil), points...),
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s Stroke) Clone() Stroke {
	cp := s
	cp.Points = append([]Point(nil), s.Points...)
	return cp
}

// CloneAll deep-copies a stroke slice.
func CloneAll(strokes []Stroke) []Stroke {
	out := make([]Stroke, 0, len(strokes))
	for _, s := range strokes {
		out = append(out, s.Clone())
	}
	return out
}

// NormalizeColor canonicalizes a hex color string to lowercase "#rrggbb".
// Unparseable input falls back to the default pen color.
func NormalizeColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return DefaultColor
	}
	return c.Hex()
}

// ParseColor converts a stroke color into a drawable color.Color.
func ParseColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultColor)
	}
	return c
}
