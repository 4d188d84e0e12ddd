package page

import (
	"github.com/google/uuid"

	"tableflip.dev/inkpad/pkg/ink"
)

// ElementKind discriminates the closed set of positioned element variants.
type ElementKind string

const (
	// ElementText is a positioned text block.
	ElementText ElementKind = "text"
	// ElementImage is a positioned bitmap with a bounding box.
	ElementImage ElementKind = "image"
)

// Element is a positioned non-ink child of a page: either a text block or
// an image. The Kind tag decides which field group is meaningful; the set
// of variants is fixed and handled exhaustively by the store, the
// renderer, and the undo log.
type Element struct {
	ID   string      `json:"id"`
	Kind ElementKind `json:"type"`
	Left float64     `json:"left"`
	Top  float64     `json:"top"`

	// Text variant.
	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Foreground string  `json:"foregroundColor,omitempty"`

	// Image variant. ImageData never appears in metadata; the store writes
	// it to a sibling file and records the reference instead.
	ImageData []byte  `json:"-"`
	MaxWidth  float64 `json:"maxWidth,omitempty"`
	MaxHeight float64 `json:"maxHeight,omitempty"`
}

// NewText builds a text element at the given position.
func NewText(text string, left, top, fontSize float64, foreground string) Element {
	if fontSize <= 0 {
		fontSize = 14
	}
	return Element{
		ID:         uuid.New().String(),
		Kind:       ElementText,
		Left:       left,
		Top:        top,
		Text:       text,
		FontSize:   fontSize,
		Foreground: ink.NormalizeColor(foreground),
	}
}

// NewImage builds an image element from raw encoded bytes.
func NewImage(data []byte, left, top, maxWidth, maxHeight float64) Element {
	return Element{
		ID:        uuid.New().String(),
		Kind:      ElementImage,
		Left:      left,
		Top:       top,
		ImageData: append([]byte(nil), data...),
		MaxWidth:  maxWidth,
		MaxHeight: maxHeight,
	}
}

// Clone returns a deep copy; image bytes are duplicated so two pages never
// share a mutable buffer.
func (e Element) Clone() Element {
	cp := e
	if e.ImageData != nil {
		cp.ImageData = append([]byte(nil), e.ImageData...)
	}
	return cp
}

// CloneElements deep-copies an element slice.
func CloneElements(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		out = append(out, e.Clone())
	}
	return out
}
