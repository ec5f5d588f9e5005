package u8g2

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face implements font.Face for a u8g2 font so that it can be used with font.Drawer. Glyphs are drawn at integer pixel positions; the dot is rounded.
type Face struct {
	font *Font
}

var _ font.Face = (*Face)(nil)

// NewFace returns a font.Face for f.
func NewFace(f *Font) *Face {
	return &Face{f}
}

// Close implements font.Face.
func (face *Face) Close() error {
	return nil
}

// Glyph implements font.Face.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	g, err := face.font.Glyph(r)
	if err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	dr := g.Bounds().Add(image.Pt(dot.X.Round(), dot.Y.Round()))
	return dr, g.Mask(), image.Point{}, fixed.I(g.Advance), true
}

// GlyphBounds implements font.Face.
func (face *Face) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	g, err := face.font.Glyph(r)
	if err != nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	b := g.Bounds()
	bounds := fixed.Rectangle26_6{
		Min: fixed.P(b.Min.X, b.Min.Y),
		Max: fixed.P(b.Max.X, b.Max.Y),
	}
	return bounds, fixed.I(g.Advance), true
}

// GlyphAdvance implements font.Face.
func (face *Face) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	g, err := face.font.Glyph(r)
	if err != nil {
		return 0, false
	}
	return fixed.I(g.Advance), true
}

// Kern implements font.Face. The format has no kerning.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics implements font.Face. Ascent and descent are those of 'A' and 'g' as stored in the header, the x-height is taken from the glyph 'x' if present.
func (face *Face) Metrics() font.Metrics {
	h := face.font.Header
	metrics := font.Metrics{
		Height:     fixed.I(int(h.MaxCharHeight)),
		Ascent:     fixed.I(int(h.AscentA)),
		Descent:    fixed.I(-int(h.DescentG)),
		CapHeight:  fixed.I(int(h.AscentA)),
		CaretSlope: image.Pt(0, 1),
	}
	if g, err := face.font.Glyph('x'); err == nil {
		metrics.XHeight = fixed.I(g.Height + g.YOffset)
	}
	return metrics
}
