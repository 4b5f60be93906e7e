package maprender

import (
	"fmt"
	"image/color"
	"strings"
)

// SVGBuilder provides a fluent interface for building the small SVG
// documents the map renderer needs. All elements except text are ones
// the rasterizer supports; Text output is for SVG files only.
type SVGBuilder struct {
	width, height int
	elements      []string
}

// NewSVGBuilder creates a builder with the given pixel dimensions.
func NewSVGBuilder(width, height int) *SVGBuilder {
	return &SVGBuilder{
		width:    width,
		height:   height,
		elements: make([]string, 0, 64),
	}
}

// Rect adds a filled rectangle.
func (b *SVGBuilder) Rect(x, y, w, h float64, fill string) *SVGBuilder {
	b.elements = append(b.elements, fmt.Sprintf(
		`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
		x, y, w, h, fill))
	return b
}

// Circle adds a circle element.
func (b *SVGBuilder) Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64) *SVGBuilder {
	var s strings.Builder
	s.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"`, cx, cy, r))
	if fill != "" {
		s.WriteString(fmt.Sprintf(` fill="%s"`, fill))
	}
	if stroke != "" {
		s.WriteString(fmt.Sprintf(` stroke="%s"`, stroke))
	}
	if strokeWidth > 0 {
		s.WriteString(fmt.Sprintf(` stroke-width="%.1f"`, strokeWidth))
	}
	s.WriteString("/>")
	b.elements = append(b.elements, s.String())
	return b
}

// CircleRGBA adds a filled circle with an RGBA color.
func (b *SVGBuilder) CircleRGBA(cx, cy, r float64, col color.RGBA) *SVGBuilder {
	return b.Circle(cx, cy, r, rgb(col), "", 0)
}

// CircleOutline adds an unfilled circle outline.
func (b *SVGBuilder) CircleOutline(cx, cy, r float64, stroke string, strokeWidth float64) *SVGBuilder {
	return b.Circle(cx, cy, r, "none", stroke, strokeWidth)
}

// Line adds a line segment.
func (b *SVGBuilder) Line(x1, y1, x2, y2 float64, stroke string, strokeWidth float64) *SVGBuilder {
	b.elements = append(b.elements, fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`,
		x1, y1, x2, y2, stroke, strokeWidth))
	return b
}

// Text adds a text label anchored at its middle.
func (b *SVGBuilder) Text(x, y float64, size float64, fill, text string) *SVGBuilder {
	b.elements = append(b.elements, fmt.Sprintf(
		`<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s" text-anchor="middle" font-family="sans-serif">%s</text>`,
		x, y, size, fill, escapeText(text)))
	return b
}

// String assembles the final SVG document.
func (b *SVGBuilder) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		b.width, b.height, b.width, b.height))
	s.WriteString("\n")
	for _, el := range b.elements {
		s.WriteString("  ")
		s.WriteString(el)
		s.WriteString("\n")
	}
	s.WriteString("</svg>\n")
	return s.String()
}

func rgb(col color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", col.R, col.G, col.B)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
