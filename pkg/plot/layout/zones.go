package layout

import "math"

// zoneIndex buckets placed markers into fixed-width spans of the position
// axis. Clearance rules have bounded horizontal reach, so a placement only
// needs to consult the buckets within that reach instead of every marker.
//
// A marker's zone is assigned once, when it is placed, and never updated.
type zoneIndex struct {
	width float64
	zones map[int][]int // zone id -> indices into the track's marker slice
}

func newZoneIndex(width float64) *zoneIndex {
	return &zoneIndex{width: width, zones: make(map[int][]int)}
}

func (z *zoneIndex) zone(pos float64) int {
	return int(math.Floor(pos / z.width))
}

// add records the marker at index i as placed.
func (z *zoneIndex) add(pos float64, i int) {
	id := z.zone(pos)
	z.zones[id] = append(z.zones[id], i)
}

// near returns the indices of placed markers in zones [zone(pos)-back, zone(pos)].
// Markers are placed in ascending position order, so only trailing zones can
// contain a marker within reach of pos.
func (z *zoneIndex) near(pos float64, back int) []int {
	id := z.zone(pos)
	var out []int
	for zid := id - back; zid <= id; zid++ {
		out = append(out, z.zones[zid]...)
	}
	return out
}
