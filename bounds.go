package u8g2

// Bounds is a bounding box in font units with y pointing up, as used by the glyph offsets.
type Bounds struct {
	XMin, XMax, YMin, YMax int
}

// Empty returns true if no glyph with pixels has been added.
func (b Bounds) Empty() bool {
	return b.XMax <= b.XMin || b.YMax <= b.YMin
}

// Add extends the bounds to include the glyph's bitmap box. Glyphs without pixels do not change the bounds.
func (b *Bounds) Add(g *Glyph) {
	if g.Width == 0 || g.Height == 0 {
		return
	}
	xmin, ymin := g.XOffset, g.YOffset
	xmax, ymax := xmin+g.Width, ymin+g.Height
	if b.Empty() {
		b.XMin, b.XMax, b.YMin, b.YMax = xmin, xmax, ymin, ymax
		return
	}
	b.XMin = min(b.XMin, xmin)
	b.XMax = max(b.XMax, xmax)
	b.YMin = min(b.YMin, ymin)
	b.YMax = max(b.YMax, ymax)
}

// InkBounds decodes every glyph and returns the union of their bitmap boxes.
func (f *Font) InkBounds() (Bounds, error) {
	records, err := f.Records()
	if err != nil {
		return Bounds{}, err
	}

	var bounds Bounds
	for _, rec := range records {
		g, err := f.decode(rec)
		if err != nil {
			return Bounds{}, err
		}
		bounds.Add(g)
	}
	return bounds, nil
}
