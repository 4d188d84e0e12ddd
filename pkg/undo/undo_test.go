package undo

import (
	"fmt"
	"testing"

	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
)

// wire returns a canvas feeding its change notifications into a fresh log.
func wire() (*page.Canvas, *Log) {
	c := page.NewCanvas()
	l := New()
	c.SetObserver(l)
	return c, l
}

func TestUndoReversesAddsInLIFOOrder(t *testing.T) {
	c, l := wire()

	const n = 5
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s := ink.New("#000000", 1, ink.Point{X: float64(i)})
		c.AddStroke(s)
		ids = append(ids, s.ID)
	}
	if l.Len() != n {
		t.Fatalf("expected %d records, got %d", n, l.Len())
	}

	for i := n - 1; i >= 0; i-- {
		if !l.Undo(c) {
			t.Fatalf("undo %d reported empty log", i)
		}
		left := c.Strokes()
		if len(left) != i {
			t.Fatalf("expected %d strokes after undo, got %d", i, len(left))
		}
		// Most recent stroke must disappear first.
		for _, s := range left {
			if s.ID == ids[i] {
				t.Fatalf("stroke %d still present after its undo", i)
			}
		}
	}

	if l.Undo(c) {
		t.Fatal("undo on empty log should be a no-op")
	}
}

func TestUndoDoesNotRecordItself(t *testing.T) {
	c, l := wire()

	c.AddStroke(ink.New("#000000", 1, ink.Point{}))
	c.AddElement(page.NewText("x", 1, 2, 14, ""))
	depth := l.Len()

	for i := 0; i < depth; i++ {
		before := l.Len()
		l.Undo(c)
		if l.Len() != before-1 {
			t.Fatalf("stack depth went %d -> %d; undo must strictly decrease by one", before, l.Len())
		}
	}
}

func TestUndoRestoresRemovedStroke(t *testing.T) {
	c, l := wire()

	s := ink.New("#ff0000", 2, ink.Point{X: 1, Y: 1})
	c.AddStroke(s)
	c.RemoveStroke(s.ID)
	if len(c.Strokes()) != 0 {
		t.Fatal("stroke not removed")
	}

	// Top of stack is the removal; undoing it re-adds the stroke.
	l.Undo(c)
	strokes := c.Strokes()
	if len(strokes) != 1 || strokes[0].ID != s.ID {
		t.Fatalf("removed stroke not restored: %+v", strokes)
	}
}

func TestUndoRestoresElementAtRecordedPosition(t *testing.T) {
	c, l := wire()

	e := page.NewText("note", 12, 34, 14, "#000000")
	c.AddElement(e)
	c.RemoveElement(e.ID)

	l.Undo(c)
	els := c.Elements()
	if len(els) != 1 {
		t.Fatalf("expected restored element, got %d", len(els))
	}
	if els[0].Left != 12 || els[0].Top != 34 {
		t.Fatalf("element restored at (%v, %v), want (12, 34)", els[0].Left, els[0].Top)
	}
}

func TestUndoToleratesDrift(t *testing.T) {
	c, l := wire()

	s := ink.New("#000000", 1, ink.Point{})
	c.AddStroke(s)

	// The stroke vanishes behind the log's back.
	l.Suppress(func() { c.RemoveStroke(s.ID) })

	if !l.Undo(c) {
		t.Fatal("undo should still consume the record")
	}
	if len(c.Strokes()) != 0 {
		t.Fatal("undo of a missing stroke mutated the surface")
	}
}

func TestSurfaceClearDropsRecords(t *testing.T) {
	c, l := wire()

	c.AddStroke(ink.New("#000000", 1, ink.Point{}))
	c.AddElement(page.NewText("x", 0, 0, 14, ""))
	c.Clear()

	if l.Len() != 0 {
		t.Fatalf("expected empty log after surface clear, got %d", l.Len())
	}
}

func TestLogIsBounded(t *testing.T) {
	c, l := wire()

	for i := 0; i < DefaultLimit+25; i++ {
		c.AddStroke(ink.New("#000000", 1, ink.Point{X: float64(i)}))
	}
	if l.Len() != DefaultLimit {
		t.Fatalf("expected log capped at %d, got %d", DefaultLimit, l.Len())
	}
}

func TestEraseGestureUndoesPerStroke(t *testing.T) {
	c, l := wire()

	// A multi-stroke erase pushes one record per stroke, most recent last.
	var ids []string
	for i := 0; i < 3; i++ {
		s := ink.New("#000000", 1, ink.Point{X: float64(i)})
		c.AddStroke(s)
		ids = append(ids, s.ID)
	}
	for _, id := range ids {
		c.RemoveStroke(id)
	}

	// Three undos bring back all three strokes, one at a time.
	for i := 1; i <= 3; i++ {
		l.Undo(c)
		if got := len(c.Strokes()); got != i {
			t.Fatalf("after %d undos expected %d strokes, got %d", i, i, got)
		}
	}
}

func ExampleLog_Undo() {
	c := page.NewCanvas()
	l := New()
	c.SetObserver(l)

	c.AddStroke(ink.New("#000000", 1, ink.Point{X: 1}))
	fmt.Println(len(c.Strokes()), l.Len())
	l.Undo(c)
	fmt.Println(len(c.Strokes()), l.Len())
	// Output:
	// 1 1
	// 0 0
}
