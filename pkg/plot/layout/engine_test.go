package layout

import (
	"math"
	"math/rand"
	"testing"
)

// assertNoOverlap checks the post-condition that every marker clears every
// marker placed before it, regardless of how many zones separate them.
func assertNoOverlap(t *testing.T, g Geometry, track *Track) {
	t.Helper()
	for j := range track.Markers {
		for i := 0; i < j; i++ {
			placing, ref := &track.Markers[j], &track.Markers[i]
			if c := g.RequiredClearance(placing, ref); c != 0 {
				t.Errorf("markers %d (%.3f Mb) and %d (%.3f Mb) still conflict: clearance %v",
					i, ref.Position, j, placing.Position, c)
			}
		}
	}
}

func TestPlaceEmptyTrack(t *testing.T) {
	engine := NewEngine(DefaultGeometry())
	track := &Track{Length: 100, SplitPoint: 50}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if track.Extent != 0 {
		t.Errorf("Extent = %v, want 0 for an empty track", track.Extent)
	}
}

func TestPlaceSingleMarker(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)
	track := &Track{
		Markers: []Marker{{Position: 10, Direction: Right}},
		Length:  100,
	}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if track.Markers[0].HeightOffset != 0 {
		t.Errorf("HeightOffset = %v, want 0", track.Markers[0].HeightOffset)
	}
	if track.Extent != g.MarkerHeight {
		t.Errorf("Extent = %v, want %v", track.Extent, g.MarkerHeight)
	}
}

func TestPlaceTwoRightMarkersStack(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)
	track := &Track{
		Markers: []Marker{
			{Position: 0, Direction: Right},
			{Position: 0.05, Direction: Right},
		},
		Length: 100,
	}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if off := track.Markers[0].HeightOffset; off != 0 {
		t.Errorf("first marker HeightOffset = %v, want 0", off)
	}
	want := g.MarkerHeight - g.Slope*0.05
	if off := track.Markers[1].HeightOffset; !almostEqual(off, want) {
		t.Errorf("second marker HeightOffset = %v, want %v", off, want)
	}
	if track.Extent <= g.MarkerHeight {
		t.Errorf("Extent = %v, want more than one marker height", track.Extent)
	}
	assertNoOverlap(t, g, track)
}

func TestPlaceConvergingPairNests(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)
	track := &Track{
		Markers: []Marker{
			{Position: 0, Direction: Left},
			{Position: 0.05, Direction: Right},
		},
		Length: 100,
	}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if off := track.Markers[1].HeightOffset; !almostEqual(off, g.MarkerHeight) {
		t.Errorf("nested marker HeightOffset = %v, want %v", off, g.MarkerHeight)
	}
	assertNoOverlap(t, g, track)
}

func TestPlaceFarMarkersStayGrounded(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)

	for _, dirs := range [][2]Direction{{Left, Left}, {Left, Right}, {Right, Left}, {Right, Right}} {
		track := &Track{
			Markers: []Marker{
				{Position: 0, Direction: dirs[0]},
				{Position: 50, Direction: dirs[1]},
			},
			Length: 100,
		}
		if err := engine.Place(track); err != nil {
			t.Fatalf("Place() error = %v", err)
		}
		for i, m := range track.Markers {
			if m.HeightOffset != 0 {
				t.Errorf("dirs %v/%v: marker %d HeightOffset = %v, want 0",
					dirs[0], dirs[1], i, m.HeightOffset)
			}
		}
	}
}

func TestPlaceFindsConflictsAcrossZones(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)

	// Two stacked markers near the end of zone 0 raise the reference to one
	// marker height; the left-facing marker in zone 2 is 3.1 Mb away - inside
	// the opposed reach of 3.3 but two zone boundaries over. Missing it would
	// be exactly the false negative a hard-coded window risks.
	track := &Track{
		Markers: []Marker{
			{Position: 2.95, Direction: Right},
			{Position: 2.95, Direction: Right},
			{Position: 6.05, Direction: Left},
		},
		Length: 100,
	}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if off := track.Markers[2].HeightOffset; off == 0 {
		t.Error("cross-zone conflict was not detected")
	}
	assertNoOverlap(t, g, track)
}

func TestPlaceRandomMarkersNoOverlap(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)
	rng := rand.New(rand.NewSource(42))

	markers := make([]Marker, 100)
	for i := range markers {
		dir := Left
		if rng.Intn(2) == 1 {
			dir = Right
		}
		markers[i] = Marker{Position: rng.Float64() * 30, Direction: dir}
	}

	track := &Track{Markers: markers, Length: 30}
	track.SortByPosition()

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	assertNoOverlap(t, g, track)

	var maxTop float64
	for _, m := range track.Markers {
		if m.HeightOffset < 0 {
			t.Errorf("marker at %.3f Mb has negative offset %v", m.Position, m.HeightOffset)
		}
		maxTop = math.Max(maxTop, m.HeightOffset+g.MarkerHeight)
	}
	if !almostEqual(track.Extent, maxTop) {
		t.Errorf("Extent = %v, want %v", track.Extent, maxTop)
	}
}

func TestPlaceIsIdempotent(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)
	rng := rand.New(rand.NewSource(7))

	markers := make([]Marker, 40)
	for i := range markers {
		dir := Left
		if rng.Intn(2) == 1 {
			dir = Right
		}
		markers[i] = Marker{Position: rng.Float64() * 10, Direction: dir}
	}
	track := &Track{Markers: markers, Length: 10}
	track.SortByPosition()

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	first := make([]float64, len(track.Markers))
	for i, m := range track.Markers {
		first[i] = m.HeightOffset
	}
	extent := track.Extent

	if err := engine.Place(track); err != nil {
		t.Fatalf("second Place() error = %v", err)
	}
	for i, m := range track.Markers {
		if m.HeightOffset != first[i] {
			t.Errorf("marker %d moved from %v to %v on re-placement", i, first[i], m.HeightOffset)
		}
	}
	if track.Extent != extent {
		t.Errorf("Extent changed from %v to %v on re-placement", extent, track.Extent)
	}
}

func TestPlaceTerminatesOnDenseInput(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)

	// Hundreds of markers at the same position force the deepest stacks the
	// fixed-point loop ever sees; the bounded-iteration guard must not trip.
	markers := make([]Marker, 300)
	for i := range markers {
		dir := Left
		if i%2 == 0 {
			dir = Right
		}
		markers[i] = Marker{Position: 5, Direction: dir}
	}
	track := &Track{Markers: markers, Length: 10}

	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	assertNoOverlap(t, g, track)
}

func TestPlaceEqualPositionOrderIndependence(t *testing.T) {
	g := DefaultGeometry()
	engine := NewEngine(g)

	build := func(dirs []Direction) *Track {
		markers := make([]Marker, len(dirs))
		for i, d := range dirs {
			markers[i] = Marker{Position: 1, Direction: d}
		}
		return &Track{Markers: markers, Length: 10}
	}

	// Reordering equal-position markers may change individual offsets, but
	// every ordering must settle into a conflict-free configuration.
	orders := [][]Direction{
		{Left, Right, Left, Right},
		{Right, Left, Right, Left},
		{Left, Left, Right, Right},
		{Right, Right, Left, Left},
	}
	for _, dirs := range orders {
		track := build(dirs)
		if err := engine.Place(track); err != nil {
			t.Fatalf("Place(%v) error = %v", dirs, err)
		}
		assertNoOverlap(t, g, track)
	}
}

func TestPlaceRecordsConflicts(t *testing.T) {
	g := DefaultGeometry()
	log := &ConflictLog{}
	engine := NewEngine(g, WithConflictLog(log))

	track := &Track{
		Markers: []Marker{
			{Position: 0, Direction: Right},
			{Position: 0.05, Direction: Right},
		},
		Length: 100,
	}
	if err := engine.Place(track); err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	if len(log.Conflicts) == 0 {
		t.Fatal("no conflicts recorded")
	}
	for _, c := range log.Conflicts {
		if c.Raise <= 0 {
			t.Errorf("recorded raise %v, want > 0", c.Raise)
		}
		if c.Reference >= c.Placing {
			t.Errorf("reference %d placed after placing %d", c.Reference, c.Placing)
		}
	}

	log.Reset()
	if len(log.Conflicts) != 0 {
		t.Errorf("Reset() left %d conflicts", len(log.Conflicts))
	}
}
