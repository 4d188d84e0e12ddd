// Package undo keeps a bounded, strictly-LIFO log of reversible edits to
// the live surface. There is no redo: a popped record is gone.
package undo

import (
	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
)

// DefaultLimit bounds the stack; the oldest record is dropped past it.
const DefaultLimit = 100

// Kind tags the closed set of reversible edit records.
type Kind int

const (
	AddStroke Kind = iota
	RemoveStroke
	AddElement
	RemoveElement
)

// Record is one reversible edit. Stroke or Element is populated according
// to Kind; elements carry their (left, top) at time of capture.
type Record struct {
	Kind    Kind
	Stroke  ink.Stroke
	Element page.Element
}

// Log records surface mutations while idle and replays their inverses on
// request. It implements page.Observer so a canvas can feed it directly.
type Log struct {
	records    []Record
	limit      int
	suppressed bool
}

// New returns an empty log with the default bound.
func New() *Log {
	return &Log{limit: DefaultLimit}
}

// Len reports the current stack depth.
func (l *Log) Len() int {
	return len(l.records)
}

// Suppress runs fn with recording disabled, so mutations performed by an
// undo (or any programmatic bulk revert) are not re-recorded as new
// entries. Recording resumes as soon as fn returns.
func (l *Log) Suppress(fn func()) {
	prev := l.suppressed
	l.suppressed = true
	defer func() { l.suppressed = prev }()
	fn()
}

func (l *Log) push(r Record) {
	if l.suppressed {
		return
	}
	l.records = append(l.records, r)
	if len(l.records) > l.limit {
		l.records = l.records[len(l.records)-l.limit:]
	}
}

// StrokeAdded implements page.Observer.
func (l *Log) StrokeAdded(s ink.Stroke) {
	l.push(Record{Kind: AddStroke, Stroke: s.Clone()})
}

// StrokeRemoved implements page.Observer.
func (l *Log) StrokeRemoved(s ink.Stroke) {
	l.push(Record{Kind: RemoveStroke, Stroke: s.Clone()})
}

// ElementAdded implements page.Observer.
func (l *Log) ElementAdded(e page.Element) {
	l.push(Record{Kind: AddElement, Element: e.Clone()})
}

// ElementRemoved implements page.Observer.
func (l *Log) ElementRemoved(e page.Element) {
	l.push(Record{Kind: RemoveElement, Element: e.Clone()})
}

// Cleared implements page.Observer: wholesale surface clears invalidate
// the whole history.
func (l *Log) Cleared() {
	if l.suppressed {
		return
	}
	l.Clear()
}

// Clear drops all records.
func (l *Log) Clear() {
	l.records = nil
}

// Undo pops the most recent record and applies its inverse to the
// surface. It reports whether a record was undone; an empty log is a
// no-op. If the referenced stroke or element has since disappeared from
// the surface the inversion silently does nothing, tolerating drift
// between the log and the surface.
func (l *Log) Undo(sf page.Surface) bool {
	if len(l.records) == 0 {
		return false
	}
	last := len(l.records) - 1
	rec := l.records[last]
	l.records = l.records[:last]

	l.Suppress(func() {
		switch rec.Kind {
		case AddStroke:
			sf.RemoveStroke(rec.Stroke.ID)
		case RemoveStroke:
			sf.AddStroke(rec.Stroke.Clone())
		case AddElement:
			sf.RemoveElement(rec.Element.ID)
		case RemoveElement:
			sf.AddElement(rec.Element.Clone())
		}
	})
	return true
}
