package compose

import (
	"testing"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

func newComposer() *Composer {
	return New(layout.NewEngine(layout.DefaultGeometry()))
}

func TestAddTrackDrawsMarkersAndBar(t *testing.T) {
	c := newComposer()
	track := &layout.Track{
		Markers: []layout.Marker{
			{Position: 10, Direction: layout.Right, Color: "#b326ff", Filled: true},
			{Position: 40, Direction: layout.Left, Color: "orange"},
		},
		Length:     100,
		SplitPoint: 50,
		Label:      "Chr. 1",
	}

	if err := c.AddTrack(track); err != nil {
		t.Fatalf("AddTrack() error = %v", err)
	}

	fig := c.Figure()
	// 2 markers + 2 arms drawn as fill and outline each.
	if got := len(fig.Polygons); got != 6 {
		t.Fatalf("got %d polygons, want 6", got)
	}
	if got := len(fig.Texts); got != 1 {
		t.Fatalf("got %d texts, want 1", got)
	}
	if fig.Texts[0].Value != "Chr. 1" {
		t.Errorf("label = %q, want %q", fig.Texts[0].Value, "Chr. 1")
	}

	tri := fig.Polygons[0]
	if len(tri.Points) != 3 {
		t.Fatalf("marker polygon has %d points, want 3", len(tri.Points))
	}
	if !tri.Fill {
		t.Error("filled marker rendered as outline")
	}
	apex := tri.Points[2]
	if apex.X <= tri.Points[0].X {
		t.Errorf("right-facing apex at %.2f, want right of %.2f", apex.X, tri.Points[0].X)
	}

	outline := fig.Polygons[1]
	if outline.Fill {
		t.Error("unfilled marker rendered filled")
	}
}

func TestAddTrackStacksUpward(t *testing.T) {
	c := newComposer()
	g := layout.DefaultGeometry()

	first := &layout.Track{
		Markers: []layout.Marker{{Position: 10, Direction: layout.Right}},
		Length:  100,
	}
	second := &layout.Track{
		Markers: []layout.Marker{{Position: 10, Direction: layout.Right}},
		Length:  100,
	}
	if err := c.AddTrack(first); err != nil {
		t.Fatal(err)
	}
	if err := c.AddTrack(second); err != nil {
		t.Fatal(err)
	}

	m := DefaultMetrics(g)
	firstBase := c.Figure().Polygons[0].Points[0].Y
	secondBase := c.Figure().Polygons[3].Points[0].Y

	if firstBase != 0 {
		t.Errorf("first track base = %v, want 0", firstBase)
	}
	want := first.Extent + m.LabelSize
	if secondBase != want {
		t.Errorf("second track base = %v, want %v", secondBase, want)
	}
}

func TestAddTrackSkipsDegenerateArm(t *testing.T) {
	c := newComposer()
	track := &layout.Track{Length: 100, SplitPoint: 0}

	if err := c.AddTrack(track); err != nil {
		t.Fatalf("AddTrack() error = %v", err)
	}
	// Only the q arm: one fill, one outline.
	if got := len(c.Figure().Polygons); got != 2 {
		t.Errorf("got %d polygons, want 2", got)
	}
}

func TestAddTrackValidation(t *testing.T) {
	tests := []struct {
		name  string
		track *layout.Track
	}{
		{"zero length", &layout.Track{Length: 0}},
		{"negative split point", &layout.Track{Length: 100, SplitPoint: -1}},
		{"split point beyond length", &layout.Track{Length: 100, SplitPoint: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newComposer().AddTrack(tt.track)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestFinalizeAddsScaleBarAndKey(t *testing.T) {
	c := newComposer()
	track := &layout.Track{Length: 132.876, SplitPoint: 63}
	if err := c.AddTrack(track); err != nil {
		t.Fatal(err)
	}

	before := len(c.Figure().Polygons)
	key := []KeyEntry{
		{Color: "#b326ff", Label: "GRs"},
		{Color: "orange", Label: "IRs"},
	}
	if err := c.Finalize(key); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	fig := c.Figure()
	// Scale bar plus one square per key entry.
	if got := len(fig.Polygons) - before; got != 3 {
		t.Errorf("Finalize added %d polygons, want 3", got)
	}

	caption := fig.Texts[0]
	if caption.Value != "10 Mb" {
		t.Errorf("caption = %q, want %q", caption.Value, "10 Mb")
	}
	if caption.Anchor != AnchorMiddle {
		t.Error("caption should be centered")
	}

	if got := fig.Texts[1].Value; got != "GRs" {
		t.Errorf("first key label = %q, want GRs", got)
	}
	if got := fig.Texts[2].Value; got != "IRs" {
		t.Errorf("second key label = %q, want IRs", got)
	}
	if fig.Texts[1].Position.Y <= fig.Texts[2].Position.Y {
		t.Error("key entries should run top to bottom")
	}
}

func TestFinalizeWithoutTracks(t *testing.T) {
	err := newComposer().Finalize(nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestFigureBounds(t *testing.T) {
	f := NewFigure()
	f.AddPolygon(Polygon{Points: []Point{{X: -1, Y: 2}, {X: 5, Y: -3}}})
	f.AddPolygon(Polygon{Points: []Point{{X: 10, Y: 7}}})

	b := f.Bounds()
	if b.MinX != -1 || b.MaxX != 10 || b.MinY != -3 || b.MaxY != 7 {
		t.Errorf("Bounds() = %+v", b)
	}
	if b.Width() != 11 || b.Height() != 10 {
		t.Errorf("Width/Height = %v/%v, want 11/10", b.Width(), b.Height())
	}
}
