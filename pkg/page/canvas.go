package page

import "tableflip.dev/inkpad/pkg/ink"

// Canvas is the in-memory Surface used by the CLI and terminal UI. It
// keeps strokes and elements in insertion order and forwards every
// mutation to an optional Observer.
type Canvas struct {
	strokes  []ink.Stroke
	elements []Element
	observer Observer
}

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// SetObserver attaches the change-notification sink. Passing nil detaches.
func (c *Canvas) SetObserver(o Observer) {
	c.observer = o
}

// Strokes implements Surface.
func (c *Canvas) Strokes() []ink.Stroke {
	return append([]ink.Stroke(nil), c.strokes...)
}

// Elements implements Surface.
func (c *Canvas) Elements() []Element {
	return append([]Element(nil), c.elements...)
}

// AddStroke implements Surface.
func (c *Canvas) AddStroke(s ink.Stroke) {
	c.strokes = append(c.strokes, s)
	if c.observer != nil {
		c.observer.StrokeAdded(s)
	}
}

// RemoveStroke implements Surface.
func (c *Canvas) RemoveStroke(id string) bool {
	for i, s := range c.strokes {
		if s.ID == id {
			c.strokes = append(c.strokes[:i], c.strokes[i+1:]...)
			if c.observer != nil {
				c.observer.StrokeRemoved(s)
			}
			return true
		}
	}
	return false
}

// AddElement implements Surface.
func (c *Canvas) AddElement(e Element) {
	c.elements = append(c.elements, e)
	if c.observer != nil {
		c.observer.ElementAdded(e)
	}
}

// RemoveElement implements Surface.
func (c *Canvas) RemoveElement(id string) bool {
	for i, e := range c.elements {
		if e.ID == id {
			c.elements = append(c.elements[:i], c.elements[i+1:]...)
			if c.observer != nil {
				c.observer.ElementRemoved(e)
			}
			return true
		}
	}
	return false
}

// Clear implements Surface.
func (c *Canvas) Clear() {
	c.strokes = nil
	c.elements = nil
	if c.observer != nil {
		c.observer.Cleared()
	}
}
