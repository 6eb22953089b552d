// Package layout places directional feature markers into vertical lanes.
//
// Each chromosome is represented by a [Track] of triangular [Marker] values
// sharing one horizontal genomic-position axis. The [Engine] scans markers in
// ascending position order and raises each one just far enough that it no
// longer overlaps any previously placed marker, so dense clusters fan out
// into stacked lanes while opposite-facing neighbours nest together.
//
// The geometry of a single pairwise check lives in [Geometry.RequiredClearance];
// a zone index keeps those checks local instead of quadratic.
//
// # Usage
//
//	engine := layout.NewEngine(layout.DefaultGeometry())
//	track := &layout.Track{Markers: markers, Length: 132.9, SplitPoint: 63.0}
//	track.SortByPosition()
//	if err := engine.Place(track); err != nil {
//	    return err
//	}
//	// track.Markers[i].HeightOffset and track.Extent are now populated.
package layout
