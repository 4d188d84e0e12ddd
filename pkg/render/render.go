// Package render rasterizes a page to PNG and builds the HTML document
// used when pushing a page to OneNote.
package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"tableflip.dev/inkpad/pkg/ink"
	"tableflip.dev/inkpad/pkg/page"
)

const (
	padding        = 16.0
	lineSpacing    = 1.4
	charAspect     = 0.6 // rough glyph width as a fraction of font size
	defaultImgSide = 200.0
)

// Image renders the page's strokes and elements onto a white canvas sized
// to their bounds. An empty page cannot be rendered.
func Image(p *page.Page) (image.Image, error) {
	if len(p.Strokes) == 0 && len(p.Children) == 0 {
		return nil, fmt.Errorf("render: page %q has no content", p.Title)
	}

	minX, minY, maxX, maxY := bounds(p)
	width := int(maxX - minX + 2*padding)
	height := int(maxY - minY + 2*padding)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("render: degenerate bounds %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %v", err)
	}

	offX := padding - minX
	offY := padding - minY

	// Elements first, ink on top, matching the editing surface's stacking.
	for _, e := range p.Children {
		switch e.Kind {
		case page.ElementText:
			drawText(dc, ttf, e, offX, offY)
		case page.ElementImage:
			if err := drawImage(dc, e, offX, offY); err != nil {
				return nil, err
			}
		}
	}
	for _, s := range p.Strokes {
		drawStroke(dc, s, offX, offY)
	}

	return dc.Image(), nil
}

// PNG renders the page and encodes it.
func PNG(p *page.Page) ([]byte, error) {
	img, err := Image(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawStroke(dc *gg.Context, s ink.Stroke, offX, offY float64) {
	if len(s.Points) == 0 {
		return
	}
	dc.SetColor(ink.ParseColor(s.Color))
	dc.SetLineWidth(s.Width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	first := s.Points[0]
	if len(s.Points) == 1 {
		// A tap leaves a dot.
		dc.DrawCircle(first.X+offX, first.Y+offY, s.Width/2)
		dc.Fill()
		return
	}
	dc.MoveTo(first.X+offX, first.Y+offY)
	for _, pt := range s.Points[1:] {
		dc.LineTo(pt.X+offX, pt.Y+offY)
	}
	dc.Stroke()
}

func drawText(dc *gg.Context, ttf *truetype.Font, e page.Element, offX, offY float64) {
	size := e.FontSize
	if size <= 0 {
		size = 14
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(ink.ParseColor(e.Foreground))

	lineHeight := size * lineSpacing
	for i, line := range strings.Split(e.Text, "\n") {
		dc.DrawString(line, e.Left+offX, e.Top+offY+size+float64(i)*lineHeight)
	}
}

func drawImage(dc *gg.Context, e page.Element, offX, offY float64) error {
	img, _, err := image.Decode(bytes.NewReader(e.ImageData))
	if err != nil {
		return fmt.Errorf("render: decode image element: %w", err)
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return nil
	}

	maxW, maxH := e.MaxWidth, e.MaxHeight
	if maxW <= 0 {
		maxW = defaultImgSide
	}
	if maxH <= 0 {
		maxH = defaultImgSide
	}
	scale := 1.0
	if s := maxW / w; s < scale {
		scale = s
	}
	if s := maxH / h; s < scale {
		scale = s
	}

	dc.Push()
	dc.Translate(e.Left+offX, e.Top+offY)
	dc.Scale(scale, scale)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
	return nil
}

// bounds estimates the drawn extent of the page content. Text extent is
// approximated from the font size; the exact value only affects margins.
func bounds(p *page.Page) (minX, minY, maxX, maxY float64) {
	first := true
	include := func(x0, y0, x1, y1 float64) {
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			return
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}

	for _, s := range p.Strokes {
		for _, pt := range s.Points {
			include(pt.X-s.Width, pt.Y-s.Width, pt.X+s.Width, pt.Y+s.Width)
		}
	}
	for _, e := range p.Children {
		switch e.Kind {
		case page.ElementText:
			size := e.FontSize
			if size <= 0 {
				size = 14
			}
			var wChars, lines float64
			for _, line := range strings.Split(e.Text, "\n") {
				lines++
				if l := float64(len(line)); l > wChars {
					wChars = l
				}
			}
			include(e.Left, e.Top, e.Left+wChars*size*charAspect, e.Top+lines*size*lineSpacing)
		case page.ElementImage:
			w, h := e.MaxWidth, e.MaxHeight
			if w <= 0 {
				w = defaultImgSide
			}
			if h <= 0 {
				h = defaultImgSide
			}
			include(e.Left, e.Top, e.Left+w, e.Top+h)
		}
	}
	return minX, minY, maxX, maxY
}

// HTML builds the OneNote page document: the page's text content followed
// by a reference to the rendered image part named in the multipart upload.
func HTML(p *page.Page, imagePart string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Title))
	fmt.Fprintf(&b, "<meta name=\"created\" content=%q />\n", p.Created.String())
	b.WriteString("</head>\n<body>\n")
	for _, e := range p.Children {
		if e.Kind == page.ElementText && e.Text != "" {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(e.Text))
		}
	}
	if imagePart != "" {
		fmt.Fprintf(&b, "<img src=\"name:%s\" alt=%q />\n", imagePart, p.Title)
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
