package layout

// Direction indicates which way a marker's apex points along the axis.
// By convention Right is the + strand and Left the - strand.
type Direction int

const (
	Left Direction = iota
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Marker is one directional triangular glyph representing a genomic feature.
// The flat vertical edge sits at Position; the apex points in Direction.
// HeightOffset is the vertical lane offset assigned by the Engine; it starts
// at zero and only ever increases during a single Place call.
type Marker struct {
	Position     float64 // Mb from the start of the chromosome
	Filled       bool    // filled = gene, outline only = pseudogene
	Direction    Direction
	Color        string // opaque color token, passed through to the renderer
	HeightOffset float64
}
