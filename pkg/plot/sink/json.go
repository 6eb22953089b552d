package sink

import (
	"encoding/json"

	"github.com/karyoviz/karyoplot/pkg/plot/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style    string
	geometry *layout.Geometry
}

// WithJSONStyle records the style name (e.g. "classic", "mono") in the JSON
// output for documentation or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONGeometry records the marker geometry the layout was placed with,
// enabling reproducible re-rendering.
func WithJSONGeometry(g layout.Geometry) JSONOption {
	return func(r *jsonRenderer) { r.geometry = &g }
}

type jsonOutput struct {
	Style    string        `json:"style,omitempty"`
	Geometry *jsonGeometry `json:"geometry,omitempty"`
	Tracks   []jsonTrack   `json:"tracks"`
}

type jsonGeometry struct {
	MarkerHeight float64 `json:"marker_height"`
	Slope        float64 `json:"slope"`
	SmallGap     float64 `json:"small_gap"`
	LargeGap     float64 `json:"large_gap"`
	TinyGap      float64 `json:"tiny_gap"`
}

type jsonTrack struct {
	Label      string       `json:"label,omitempty"`
	Length     float64      `json:"length"`
	SplitPoint float64      `json:"split_point"`
	Extent     float64      `json:"extent"`
	Markers    []jsonMarker `json:"markers"`
}

type jsonMarker struct {
	Position     float64 `json:"position"`
	Direction    string  `json:"direction"`
	Filled       bool    `json:"filled"`
	Color        string  `json:"color,omitempty"`
	HeightOffset float64 `json:"height_offset"`
}

// RenderJSON exports placed tracks as a pretty-printed JSON document: marker
// positions with their assigned lane offsets, per-track extents, and the
// render options needed to reproduce the figure. It does not modify the
// tracks and is safe to call concurrently.
func RenderJSON(tracks []*layout.Track, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Style:  r.style,
		Tracks: make([]jsonTrack, 0, len(tracks)),
	}
	if r.geometry != nil {
		out.Geometry = &jsonGeometry{
			MarkerHeight: r.geometry.MarkerHeight,
			Slope:        r.geometry.Slope,
			SmallGap:     r.geometry.SmallGap,
			LargeGap:     r.geometry.LargeGap,
			TinyGap:      r.geometry.TinyGap,
		}
	}

	for _, t := range tracks {
		jt := jsonTrack{
			Label:      t.Label,
			Length:     t.Length,
			SplitPoint: t.SplitPoint,
			Extent:     t.Extent,
			Markers:    make([]jsonMarker, 0, len(t.Markers)),
		}
		for _, m := range t.Markers {
			jt.Markers = append(jt.Markers, jsonMarker{
				Position:     m.Position,
				Direction:    m.Direction.String(),
				Filled:       m.Filled,
				Color:        m.Color,
				HeightOffset: m.HeightOffset,
			})
		}
		out.Tracks = append(out.Tracks, jt)
	}

	return json.MarshalIndent(out, "", "  ")
}
