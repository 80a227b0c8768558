// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resource

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// SubpixelShifts are the horizontal fractional-pixel offsets each glyph
// is rasterized at. Text at small sizes looks noticeably sharper when the
// renderer can pick the bitmap matching a glyph's actual subpixel
// position instead of always rounding to a whole pixel.
var SubpixelShifts = []float64{0, 0.25, 0.5, 0.75}

// Glyph is one rasterized variant of a single codepoint: its bitmap plus
// the metrics needed to place it in a text run.
type Glyph struct {
	Rune         rune
	Shift        float64
	Width        int
	Height       int
	BearingX     int
	BearingY     int
	Advance      int
	Pix          []byte // single-channel (alpha) coverage, row-major
}

// Font is a rasterized set of glyphs for one TTF/OTF file at one point
// size, with one Glyph per (rune, subpixel shift) pair.
type Font struct {
	Size       int
	LineHeight int
	Ascent     int
	Glyphs     map[rune][]Glyph // indexed in SubpixelShifts order
}

// Glyph returns the rasterized glyph for r nearest the requested
// fractional pixel shift.
func (f *Font) Glyph(r rune, shift float64) (Glyph, bool) {
	variants, ok := f.Glyphs[r]
	if !ok || len(variants) == 0 {
		return Glyph{}, false
	}
	best, bestDist := variants[0], 2.0
	for _, g := range variants {
		d := g.Shift - shift
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = g, d
		}
	}
	return best, true
}

// LoadTTF parses a TTF/OTF byte stream and rasterizes every rune in runes
// at the given point size, producing one monochrome bitmap per subpixel
// shift in SubpixelShifts.
func LoadTTF(ttfBytes []byte, size int, runes []rune) (*Font, error) {
	parsed, err := opentype.Parse(ttfBytes)
	if err != nil {
		return nil, fmt.Errorf("resource: parse ttf: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("resource: ttf face: %w", err)
	}

	f := &Font{
		Size:       size,
		LineHeight: face.Metrics().Height.Round(),
		Ascent:     face.Metrics().Ascent.Round(),
		Glyphs:     make(map[rune][]Glyph, len(runes)),
	}

	for _, r := range runes {
		bounds, _, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		variants := make([]Glyph, 0, len(SubpixelShifts))
		for _, shift := range SubpixelShifts {
			g, err := rasterizeGlyph(face, r, bounds, shift)
			if err != nil {
				continue
			}
			variants = append(variants, g)
		}
		if len(variants) > 0 {
			f.Glyphs[r] = variants
		}
	}
	return f, nil
}

// rasterizeGlyph draws a single rune into a tightly-cropped alpha-only
// bitmap, offsetting the drawing origin by shift fractional pixels so
// callers can pick the closest-matching bitmap for a glyph's true
// subpixel position.
func rasterizeGlyph(face font.Face, r rune, bounds fixed.Rectangle26_6, shift float64) (Glyph, error) {
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	width, height := maxX-minX+2, maxY-minY+2
	if width <= 0 || height <= 0 {
		return Glyph{}, fmt.Errorf("resource: empty glyph bounds for %q", r)
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	dot := fixed.Point26_6{
		X: fixed.I(-minX+1) + fixed.Int26_6(shift*64),
		Y: fixed.I(-minY + 1),
	}
	dr, mask, maskp, advance, ok := face.Glyph(dot, r)
	if !ok {
		return Glyph{}, fmt.Errorf("resource: no glyph for %q", r)
	}
	draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, maskp, draw.Over)

	return Glyph{
		Rune:     r,
		Shift:    shift,
		Width:    width,
		Height:   height,
		BearingX: minX,
		BearingY: minY,
		Advance:  advance.Round(),
		Pix:      dst.Pix,
	}, nil
}

// fontLoader implements Loader for KindFont, reading a TTF file from disk
// and rasterizing the given rune set at a fixed size.
type fontLoader struct {
	baseDir string
	size    int
	runes   []rune
}

// NewFontLoader creates a Loader that resolves font names relative to
// baseDir, rasterizing every font at the given point size and rune set.
func NewFontLoader(baseDir string, size int, runes []rune) Loader {
	return &fontLoader{baseDir: baseDir, size: size, runes: runes}
}

func (l *fontLoader) Load(name string) (any, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("resource: read font %s: %w", name, err)
	}
	return LoadTTF(data, l.size, l.runes)
}

func (l *fontLoader) Release(payload any) {}
