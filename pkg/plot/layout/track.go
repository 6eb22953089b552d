package layout

import (
	"cmp"
	"slices"
)

// Track holds the markers and axis metadata for one chromosome.
// A Track owns its markers exclusively: they are stored by value and mutated
// in place by the Engine, never shared between tracks.
type Track struct {
	Markers    []Marker
	Length     float64 // chromosome length in Mb
	SplitPoint float64 // centromere position in Mb, in [0, Length]
	Label      string  // optional display label, e.g. "Chr. 1"

	// Extent is the vertical space consumed by the placed markers
	// (max HeightOffset + marker height). Set by Engine.Place; zero for an
	// empty track. Composition uses it to offset the next track upward.
	Extent float64
}

// SortByPosition orders the markers by ascending position.
// The Engine requires this order; ties keep their relative order.
func (t *Track) SortByPosition() {
	slices.SortStableFunc(t.Markers, func(a, b Marker) int {
		return cmp.Compare(a.Position, b.Position)
	})
}
