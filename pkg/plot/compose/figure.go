package compose

// Point is a coordinate in figure space. The Y axis points up; sinks flip it
// when targeting formats with a downward axis.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Anchor controls horizontal text alignment relative to its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
)

// Polygon is a closed shape. When Fill is false only the outline is drawn,
// in Color.
type Polygon struct {
	Points []Point
	Color  string
	Fill   bool
}

// Text is a label placed with its baseline at Position.
type Text struct {
	Position Point
	Size     float64
	Value    string
	Anchor   Anchor
}

// Bounds is the axis-aligned extent of a figure.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Figure is an ordered list of primitives in paint order, with running bounds.
// Primitives added later paint over earlier ones.
type Figure struct {
	Polygons []Polygon
	Texts    []Text

	bounds Bounds
	empty  bool
}

// NewFigure returns an empty figure.
func NewFigure() *Figure {
	return &Figure{empty: true}
}

// charWidthRatio approximates glyph width as a fraction of font size, for
// bounds estimation only. Sinks that need exact metrics measure themselves.
const charWidthRatio = 0.6

// AddPolygon appends p and grows the bounds to cover it.
func (f *Figure) AddPolygon(p Polygon) {
	for _, pt := range p.Points {
		f.grow(pt.X, pt.Y)
	}
	f.Polygons = append(f.Polygons, p)
}

// AddText appends t and grows the bounds by an estimated text box.
func (f *Figure) AddText(t Text) {
	w := charWidthRatio * t.Size * float64(len([]rune(t.Value)))
	switch t.Anchor {
	case AnchorMiddle:
		f.grow(t.Position.X-w/2, t.Position.Y)
		f.grow(t.Position.X+w/2, t.Position.Y+t.Size)
	default:
		f.grow(t.Position.X, t.Position.Y)
		f.grow(t.Position.X+w, t.Position.Y+t.Size)
	}
	f.Texts = append(f.Texts, t)
}

// Bounds returns the extent of everything added so far.
func (f *Figure) Bounds() Bounds { return f.bounds }

func (f *Figure) grow(x, y float64) {
	if f.empty {
		f.bounds = Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
		f.empty = false
		return
	}
	if x < f.bounds.MinX {
		f.bounds.MinX = x
	}
	if x > f.bounds.MaxX {
		f.bounds.MaxX = x
	}
	if y < f.bounds.MinY {
		f.bounds.MinY = y
	}
	if y > f.bounds.MaxY {
		f.bounds.MaxY = y
	}
}
