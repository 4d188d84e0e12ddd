// Package page implements the in-memory page model: identity, metadata,
// captured content, and the capture/restore transforms against a live
// editing surface.
package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/inkpad/pkg/ink"
)

// NoteType classifies a page's lifecycle.
type NoteType string

const (
	// TypeNormal pages are OneNote-bound and never persisted locally.
	TypeNormal NoteType = "normal"
	// TypeScheduleReminder pages are local-only and carry a target time.
	TypeScheduleReminder NoteType = "schedule-reminder"
)

// ParseType converts a stored enum name back into a NoteType.
func ParseType(raw string) (NoteType, error) {
	switch t := NoteType(strings.ToLower(strings.TrimSpace(raw))); t {
	case "", TypeNormal:
		return TypeNormal, nil
	case TypeScheduleReminder:
		return TypeScheduleReminder, nil
	default:
		return TypeNormal, fmt.Errorf("page: unknown note type %q", raw)
	}
}

// Page is the unit of content. StorageID doubles as the on-disk directory
// name and is never reassigned after construction.
type Page struct {
	StorageID   string     `json:"storageId"`
	Title       string     `json:"title"`
	NoteType    NoteType   `json:"noteType"`
	TargetTime  *Timestamp `json:"targetTime,omitempty"`
	HasReminded bool       `json:"hasReminded"`
	Created     Timestamp  `json:"createdAt"`
	Modified    Timestamp  `json:"modifiedAt"`

	// Captured content. Not part of the metadata record; the store
	// serializes strokes and image bytes to sibling artifacts.
	Strokes  []ink.Stroke `json:"-"`
	Children []Element    `json:"-"`
}

// New creates a fresh, empty page with a new storage id.
func New(title string) *Page {
	return &Page{
		StorageID: uuid.New().String(),
		Title:     title,
		NoteType:  TypeNormal,
		Created:   Now(),
		Modified:  Now(),
	}
}

// CaptureFrom replaces the page's stored content with a deep copy of the
// surface's current strokes and elements and stamps the modification time.
// Call this before switching the surface to another page, or the outgoing
// page's edits are lost.
func (p *Page) CaptureFrom(s Surface) {
	p.Strokes = ink.CloneAll(s.Strokes())
	p.Children = CloneElements(s.Elements())
	p.Modified = Now()
}

// RestoreTo clears the surface and repopulates it from the page's stored
// content. Everything is cloned on the way out so later surface edits
// cannot alias back into the stored copy.
func (p *Page) RestoreTo(s Surface) {
	s.Clear()
	for _, st := range p.Strokes {
		s.AddStroke(st.Clone())
	}
	for _, e := range p.Children {
		s.AddElement(e.Clone())
	}
}

// Remind converts the page into a scheduled reminder firing at the given
// time. The reminded flag is left alone: a page that already fired stays
// fired, so moving the target of a spent reminder never re-fires it.
func (p *Page) Remind(at time.Time) {
	p.NoteType = TypeScheduleReminder
	p.TargetTime = &Timestamp{Time: at}
}

// MarkReminded latches the reminded flag. The flag is monotonic: no core
// operation ever sets it back to false.
func (p *Page) MarkReminded() {
	p.HasReminded = true
}

// Due reports whether the reminder should fire at the given instant.
func (p *Page) Due(now time.Time) bool {
	if p.NoteType != TypeScheduleReminder || p.HasReminded || p.TargetTime == nil {
		return false
	}
	return !p.TargetTime.After(now)
}

// PlainText joins the page's text elements in order, one per line. Used
// for clipboard export and the OneNote page body.
func (p *Page) PlainText() string {
	var lines []string
	for _, e := range p.Children {
		if e.Kind == ElementText && e.Text != "" {
			lines = append(lines, e.Text)
		}
	}
	return strings.Join(lines, "\n")
}
