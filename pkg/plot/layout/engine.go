package layout

import (
	"math"

	"github.com/karyoviz/karyoplot/pkg/errors"
)

// maxPasses bounds the fixed-point loop for a single marker. The clearance
// rules are monotone (offsets only increase, and a satisfied comparison never
// re-triggers at a larger value), so hitting this limit means a rule violated
// that contract rather than a recoverable runtime condition.
const maxPasses = 1000

// Engine places the markers of one track at a time.
// It is stateless between Place calls and safe to reuse across tracks;
// within a call it borrows the track's markers mutably and exclusively.
type Engine struct {
	geom Geometry
	log  *ConflictLog
}

// Option configures an Engine.
type Option func(*Engine)

// WithConflictLog records every raise the engine applies into log.
// Intended for the conflict-graph debug view; placement is unaffected.
func WithConflictLog(log *ConflictLog) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates an engine for the given geometry.
func NewEngine(geom Geometry, opts ...Option) *Engine {
	e := &Engine{geom: geom}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Geometry returns the constants the engine places with.
func (e *Engine) Geometry() Geometry { return e.geom }

// Place assigns a HeightOffset to every marker in t and sets t.Extent.
// Markers must be sorted by ascending position (see Track.SortByPosition)
// with HeightOffset zero for a fresh layout; re-running Place on an
// already-stable track changes nothing.
//
// Placement is deterministic given the scan order. For each marker the engine
// queries the zone index for previously placed neighbours, then repeats full
// passes over them - raising the marker immediately whenever a pass finds a
// nonzero clearance, so later checks in the same pass see the raised value -
// until a pass applies no raise.
func (e *Engine) Place(t *Track) error {
	t.Extent = 0
	if len(t.Markers) == 0 {
		return nil
	}

	zones := newZoneIndex(e.geom.MarkerHeight)
	back := int(math.Ceil(e.geom.maxReach() / e.geom.MarkerHeight))

	for i := range t.Markers {
		m := &t.Markers[i]
		candidates := zones.near(m.Position, back)

		for pass := 0; ; pass++ {
			if pass == maxPasses {
				return errors.New(errors.ErrCodeConvergence,
					"marker at %.3f Mb did not stabilize after %d passes", m.Position, maxPasses)
			}
			raised := false
			for _, j := range candidates {
				ref := &t.Markers[j]
				if c := e.geom.RequiredClearance(m, ref); c > 0 {
					m.HeightOffset += c
					raised = true
					if e.log != nil {
						e.log.record(i, j, c)
					}
				}
			}
			if !raised {
				break
			}
		}

		zones.add(m.Position, i)
		if top := m.HeightOffset + e.geom.MarkerHeight; top > t.Extent {
			t.Extent = top
		}
	}
	return nil
}
