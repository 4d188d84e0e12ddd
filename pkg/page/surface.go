package page

import "tableflip.dev/inkpad/pkg/ink"

// Surface is the live editing canvas contract. The page model only ever
// talks to a surface through this interface so the core can be exercised
// against an in-memory canvas in tests and in the terminal UI.
type Surface interface {
	// Strokes returns a snapshot of the surface's current strokes.
	Strokes() []ink.Stroke
	// Elements returns a snapshot of the surface's positioned elements.
	Elements() []Element

	AddStroke(s ink.Stroke)
	// RemoveStroke removes the stroke with the given id, reporting whether
	// it was present.
	RemoveStroke(id string) bool
	AddElement(e Element)
	RemoveElement(id string) bool

	// Clear drops all strokes and elements.
	Clear()
}

// Observer receives low-level content change notifications from a canvas.
// The undo log implements this to record reversible edits.
type Observer interface {
	StrokeAdded(s ink.Stroke)
	StrokeRemoved(s ink.Stroke)
	ElementAdded(e Element)
	ElementRemoved(e Element)
	Cleared()
}
