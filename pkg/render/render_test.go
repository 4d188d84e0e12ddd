package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
)

func encodedSquare(t *testing.T, side int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestPNGProducesDecodableImage(t *testing.T) {
	p := page.New("sketch")
	p.Strokes = []ink.Stroke{
		ink.New("#ff0000", 3, ink.Point{X: 0, Y: 0}, ink.Point{X: 50, Y: 50}, ink.Point{X: 100, Y: 0}),
	}
	p.Children = []page.Element{
		page.NewText("hello\nworld", 10, 60, 16, "#000000"),
		page.NewImage(encodedSquare(t, 40), 120, 10, 64, 64),
	}

	data, err := PNG(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() < 100 || b.Dy() < 60 {
		t.Fatalf("rendered image too small for content: %v", b)
	}
}

func TestImageRejectsEmptyPage(t *testing.T) {
	if _, err := Image(page.New("blank")); err == nil {
		t.Fatal("expected error for empty page")
	}
}

func TestSingleTapRenders(t *testing.T) {
	p := page.New("dot")
	p.Strokes = []ink.Stroke{ink.New("#000000", 4, ink.Point{X: 5, Y: 5})}
	if _, err := Image(p); err != nil {
		t.Fatalf("single-point stroke: %v", err)
	}
}

func TestHTMLDocument(t *testing.T) {
	p := page.New("lunch <plan>")
	p.Children = []page.Element{
		page.NewText("soup & bread", 0, 0, 14, ""),
	}

	doc := HTML(p, "pageImage")
	for _, want := range []string{
		"<title>lunch &lt;plan&gt;</title>",
		"<p>soup &amp; bread</p>",
		`src="name:pageImage"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestHTMLWithoutImagePart(t *testing.T) {
	p := page.New("text only")
	doc := HTML(p, "")
	if strings.Contains(doc, "<img") {
		t.Fatalf("unexpected img tag:\n%s", doc)
	}
}
