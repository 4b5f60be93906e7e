// Package maprender renders the galaxy grid to SVG and PNG files. It
// is a file exporter, not a front-end: the CLI uses it to drop a map
// image after each turn. Rendering always shows the full galaxy (every
// star's owner and every fleet); there is no per-player fog filtering.
package maprender

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/space-conquest/conquest"
)

// RenderOptions controls how the map is rendered.
type RenderOptions struct {
	Width      int  // Image width in pixels (default 720)
	Height     int  // Image height in pixels (default 600)
	Padding    int  // Padding around the grid (default 30)
	ShowNames  bool // Draw star names under each star
	ShowFleets bool // Draw in-transit fleet paths
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() *RenderOptions {
	return &RenderOptions{
		Width:      720,
		Height:     600,
		Padding:    30,
		ShowNames:  true,
		ShowFleets: true,
	}
}

// ownerColors assigns a display color per owner.
var ownerColors = map[conquest.Owner]color.RGBA{
	conquest.OwnerP1:   {R: 64, G: 128, B: 255, A: 255},
	conquest.OwnerP2:   {R: 230, G: 80, B: 64, A: 255},
	conquest.OwnerNPC:  {R: 160, G: 160, B: 160, A: 255},
	conquest.OwnerNone: {R: 80, G: 80, B: 80, A: 255},
}

// Renderer draws a game's galaxy.
type Renderer struct {
	game *conquest.Game
}

// New creates a Renderer for a game.
func New(g *conquest.Game) *Renderer {
	return &Renderer{game: g}
}

// RenderSVG renders the map as an SVG string.
func (r *Renderer) RenderSVG(opts *RenderOptions) string {
	if opts == nil {
		opts = DefaultOptions()
	}

	svg := NewSVGBuilder(opts.Width, opts.Height)
	svg.Rect(0, 0, float64(opts.Width), float64(opts.Height), "rgb(8,8,24)")

	padding := float64(opts.Padding)
	cellW := (float64(opts.Width) - 2*padding) / float64(conquest.GridWidth-1)
	cellH := (float64(opts.Height) - 2*padding) / float64(conquest.GridHeight-1)

	transform := func(x, y int) (float64, float64) {
		return padding + float64(x)*cellW, padding + float64(y)*cellH
	}

	// Fleet paths first so stars draw on top.
	if opts.ShowFleets {
		for _, f := range r.game.Fleets {
			origin, ok := r.game.Star(f.Origin)
			if !ok {
				continue
			}
			dest, ok := r.game.Star(f.Dest)
			if !ok {
				continue
			}
			x1, y1 := transform(origin.X, origin.Y)
			x2, y2 := transform(dest.X, dest.Y)
			col := ownerColors[f.Owner]
			svg.Line(x1, y1, x2, y2, rgb(col), 1)
		}
	}

	for _, id := range r.game.StarIDs() {
		s := r.game.Stars[id]
		px, py := transform(s.X, s.Y)
		col := ownerColors[s.Owner]

		radius := 4 + float64(s.BaseRU)
		svg.CircleRGBA(px, py, radius, col)
		if s.IsHome {
			svg.CircleOutline(px, py, radius+3, "rgb(255,215,0)", 1.5)
		}
		if opts.ShowNames {
			label := fmt.Sprintf("%s %s", s.ID, s.Name)
			svg.Text(px, py+radius+12, 10, "rgb(220,220,220)", label)
		}
	}

	return svg.String()
}

// RenderPNG rasterizes the map into an image.
func (r *Renderer) RenderPNG(opts *RenderOptions) (image.Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// The rasterizer handles shapes only, so labels are dropped from
	// the PNG path.
	rasterOpts := *opts
	rasterOpts.ShowNames = false

	svgStr := r.RenderSVG(&rasterOpts)
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated SVG: %w", err)
	}

	w, h := opts.Width, opts.Height
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return img, nil
}

// SavePNG renders the map and writes it to a file.
func (r *Renderer) SavePNG(filename string, opts *RenderOptions) error {
	img, err := r.RenderPNG(opts)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveSVG renders the map and writes the SVG document to a file.
func (r *Renderer) SaveSVG(filename string, opts *RenderOptions) error {
	return os.WriteFile(filename, []byte(r.RenderSVG(opts)), 0o644)
}
