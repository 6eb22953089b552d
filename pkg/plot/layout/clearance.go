package layout

import "math"

// Geometry holds the visual constants that drive marker shape and spacing.
// All values are in the same axis units as marker positions (Mb).
//
// A marker is a right triangle: a vertical edge of height MarkerHeight at its
// position, with the apex at position ± MarkerHeight/(2·Slope) at mid-height.
// The gap constants are minimum separations used by the clearance rules:
// SmallGap pads the horizontal thresholds, LargeGap is the band a marker must
// clear to pass underneath another, TinyGap is the extra bump applied to
// near head-on collisions.
type Geometry struct {
	MarkerHeight float64
	Slope        float64
	SmallGap     float64
	LargeGap     float64
	TinyGap      float64
}

// DefaultGeometry returns the constants used by the stock figure style.
func DefaultGeometry() Geometry {
	const h = 3.0
	return Geometry{
		MarkerHeight: h,
		Slope:        1,
		SmallGap:     0.1 * h,
		LargeGap:     3 * h,
		TinyGap:      1.5,
	}
}

// ApexOffset is the horizontal distance from a marker's flat edge to its apex.
func (g Geometry) ApexOffset() float64 {
	return g.MarkerHeight / (2 * g.Slope)
}

// maxReach is the largest Δposition at which any clearance rule can still
// fire: the right-facing-reference vs left-facing-placing threshold. The zone
// query window is derived from it, so retuning the constants cannot silently
// push a conflict outside the window.
func (g Geometry) maxReach() float64 {
	return g.MarkerHeight/g.Slope + g.SmallGap
}

// RequiredClearance reports the extra vertical offset placing needs so that
// it no longer overlaps the already-placed reference, or 0 if the pair is
// compatible. It is pure and deliberately asymmetric: the scan visits markers
// in ascending position order, so Δposition = placing − reference is >= 0.
//
// The three branches are keyed on (reference.Direction, placing.Direction).
// They share the same formula shape: a horizontal threshold beyond which the
// pair cannot touch, a clearance height the placing marker must reach to sit
// above the reference, and a below band in which it may stay underneath.
func (g Geometry) RequiredClearance(placing, reference *Marker) float64 {
	dx := placing.Position - reference.Position

	if reference.Direction == Left {
		if placing.Direction == Right {
			// Converging apexes: close pairs within one marker height of
			// each other vertically nest, placing stacked directly on top.
			if dx < g.SmallGap &&
				reference.HeightOffset-g.MarkerHeight <= placing.HeightOffset &&
				reference.HeightOffset+g.MarkerHeight >= placing.HeightOffset {
				return reference.HeightOffset + g.MarkerHeight - placing.HeightOffset
			}
			return 0
		}

		// Both pointing left.
		if dx > g.ApexOffset()+g.SmallGap {
			return 0
		}
		clearance := reference.HeightOffset + g.MarkerHeight - g.Slope*dx
		if placing.HeightOffset >= clearance {
			return 0
		}
		below := reference.HeightOffset - g.LargeGap + g.Slope*dx - g.MarkerHeight
		if placing.HeightOffset <= below {
			return 0
		}
		return clearance - placing.HeightOffset
	}

	// Reference points right. A left-facing placing marker meets it head on
	// and stays in reach for a full marker width; a right-facing one tucks
	// behind it after half a width.
	threshold := g.ApexOffset() + g.SmallGap
	if placing.Direction == Left {
		threshold = g.MarkerHeight/g.Slope + g.SmallGap
	}
	if dx > threshold {
		return 0
	}
	clearance := reference.HeightOffset + g.MarkerHeight - g.Slope*dx
	if placing.Direction == Left && math.Abs(dx-g.ApexOffset()) < g.ApexOffset()*0.3 {
		// Apexes nearly coincide (overlap beyond 70% of the apex offset).
		clearance += g.TinyGap
	}
	if placing.HeightOffset >= clearance {
		return 0
	}
	below := reference.HeightOffset + g.Slope*dx - g.LargeGap - g.MarkerHeight
	if placing.HeightOffset <= below {
		return 0
	}
	return clearance - placing.HeightOffset
}
