// Package compose assembles placed tracks into a renderable figure.
//
// Tracks are added bottom-up: each AddTrack call draws the chromosome bar,
// the placed markers and the track label at the current base offset, then
// advances the offset past the tallest marker stack. Finalize adds the scale
// bar and, optionally, a color key. The resulting Figure is a flat list of
// polygons and text consumed by the sinks.
package compose

import (
	"fmt"

	"github.com/karyoviz/karyoplot/pkg/errors"
	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// Arm colors for the chromosome bar.
const (
	pArmColor   = "lightgrey"
	qArmColor   = "grey"
	outlineInk  = "black"
	scaleHeight = 0.3
)

// Metrics holds the visual constants that are independent of marker geometry.
// Scale is the scale bar length in Mb; BarHeight and FontSize track the marker
// height, LabelSize is the vertical spacing reserved between tracks.
type Metrics struct {
	Scale     float64
	BarHeight float64
	FontSize  float64
	LabelSize float64
}

// DefaultMetrics derives the stock metrics from a marker geometry.
func DefaultMetrics(g layout.Geometry) Metrics {
	return Metrics{
		Scale:     10,
		BarHeight: 1.2 * g.MarkerHeight,
		FontSize:  1.4 * g.MarkerHeight,
		LabelSize: 20,
	}
}

// KeyEntry is one row of the color key, drawn top to bottom in slice order.
type KeyEntry struct {
	Color string
	Label string
}

// Composer builds a Figure from tracks. Create one per figure; it is not safe
// for concurrent use.
type Composer struct {
	engine  *layout.Engine
	metrics Metrics
	fig     *Figure
	tracks  []*layout.Track

	// baseOffset is the Y of the current track's marker baseline; nextOffset
	// trails the tallest stack seen so far, so the following track clears it.
	baseOffset float64
	nextOffset float64
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithMetrics overrides the visual constants.
func WithMetrics(m Metrics) ComposerOption {
	return func(c *Composer) { c.metrics = m }
}

// New creates a Composer placing markers with engine.
func New(engine *layout.Engine, opts ...ComposerOption) *Composer {
	c := &Composer{
		engine:  engine,
		metrics: DefaultMetrics(engine.Geometry()),
		fig:     NewFigure(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Figure returns the figure built so far.
func (c *Composer) Figure() *Figure { return c.fig }

// Tracks returns the tracks added so far, with placement applied.
func (c *Composer) Tracks() []*layout.Track { return c.tracks }

// AddTrack places t's markers and draws the track at the current base offset.
// Tracks stack bottom-up: the first track added sits at the bottom of the
// figure. The track is sorted and placed in-place.
func (c *Composer) AddTrack(t *layout.Track) error {
	if t.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "track %q: length must be positive", t.Label)
	}
	if t.SplitPoint < 0 || t.SplitPoint > t.Length {
		return errors.New(errors.ErrCodeInvalidInput,
			"track %q: split point %.3f outside [0, %.3f]", t.Label, t.SplitPoint, t.Length)
	}

	t.SortByPosition()
	if err := c.engine.Place(t); err != nil {
		return err
	}

	g := c.engine.Geometry()
	for i := range t.Markers {
		c.drawMarker(&t.Markers[i], g)
	}
	c.drawBar(t)
	if t.Label != "" {
		c.fig.AddText(Text{
			Position: Point{
				X: -g.MarkerHeight,
				Y: c.baseOffset - c.metrics.BarHeight*2 - c.metrics.FontSize,
			},
			Size:  c.metrics.FontSize,
			Value: t.Label,
		})
	}

	if top := c.baseOffset + t.Extent; top > c.nextOffset {
		c.nextOffset = top
	}
	c.baseOffset = c.nextOffset + c.metrics.LabelSize
	c.nextOffset = c.baseOffset

	c.tracks = append(c.tracks, t)
	return nil
}

func (c *Composer) drawMarker(m *layout.Marker, g layout.Geometry) {
	dir := -1.0
	if m.Direction == layout.Right {
		dir = 1.0
	}
	base := m.HeightOffset + c.baseOffset
	c.fig.AddPolygon(Polygon{
		Points: []Point{
			{X: m.Position, Y: base},
			{X: m.Position, Y: base + g.MarkerHeight},
			{X: m.Position + dir*g.ApexOffset(), Y: base + g.MarkerHeight/2},
		},
		Color: m.Color,
		Fill:  m.Filled,
	})
}

// drawBar draws the chromosome as two divoted octagons meeting at the
// centromere, each filled and then outlined.
func (c *Composer) drawBar(t *layout.Track) {
	g := c.engine.Geometry()
	y1 := c.baseOffset - g.MarkerHeight/4 - c.metrics.BarHeight
	y2 := c.baseOffset - g.MarkerHeight/4

	arm := func(x1, x2 float64) []Point {
		divot := c.metrics.BarHeight / 5
		corner := c.metrics.BarHeight / 3
		return []Point{
			{X: x1 + divot, Y: y1},
			{X: x2 - divot, Y: y1},
			{X: x2, Y: y1 + corner},
			{X: x2, Y: y2 - corner},
			{X: x2 - divot, Y: y2},
			{X: x1 + divot, Y: y2},
			{X: x1, Y: y2 - corner},
			{X: x1, Y: y1 + corner},
		}
	}

	draw := func(points []Point, color string) {
		c.fig.AddPolygon(Polygon{Points: points, Color: color, Fill: true})
		c.fig.AddPolygon(Polygon{Points: points, Color: outlineInk, Fill: false})
	}
	if t.SplitPoint > 0 {
		draw(arm(0, t.SplitPoint), pArmColor)
	}
	if t.SplitPoint < t.Length {
		draw(arm(t.SplitPoint, t.Length), qArmColor)
	}
}

// Finalize draws the scale bar under the bottom track and, when key is
// non-empty, the color key to the right of it. Call it once, after the last
// AddTrack.
func (c *Composer) Finalize(key []KeyEntry) error {
	if len(c.tracks) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tracks to finalize")
	}

	s := c.metrics.Scale
	x := c.tracks[0].Length
	barY := -c.metrics.BarHeight * 2.5
	c.fig.AddPolygon(Polygon{
		Points: []Point{
			{X: x - s*3, Y: barY},
			{X: x - s*2, Y: barY},
			{X: x - s*2, Y: barY - scaleHeight},
			{X: x - s*3, Y: barY - scaleHeight},
		},
		Color: outlineInk,
		Fill:  true,
	})
	c.fig.AddText(Text{
		Position: Point{X: x - s*2.5, Y: -c.metrics.BarHeight * 4},
		Size:     c.metrics.FontSize,
		Value:    fmt.Sprintf("%g Mb", s),
		Anchor:   AnchorMiddle,
	})

	if len(key) > 0 {
		c.drawKey(key, Point{X: x + s*2, Y: s * 3})
	}
	return nil
}

func (c *Composer) drawKey(key []KeyEntry, pos Point) {
	sq := c.metrics.Scale * 0.6
	yoff := 0.0
	for _, entry := range key {
		c.fig.AddPolygon(Polygon{
			Points: []Point{
				{X: pos.X, Y: pos.Y + yoff},
				{X: pos.X + sq, Y: pos.Y + yoff},
				{X: pos.X + sq, Y: pos.Y + yoff + sq},
				{X: pos.X, Y: pos.Y + yoff + sq},
			},
			Color: entry.Color,
			Fill:  true,
		})
		c.fig.AddText(Text{
			Position: Point{X: pos.X + sq*1.3, Y: pos.Y + yoff + sq*0.1},
			Size:     sq,
			Value:    entry.Label,
		})
		yoff -= sq * 1.7
	}
}
