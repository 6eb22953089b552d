package layout

// Conflict records one raise applied during placement: the already-placed
// reference marker forced the placing marker higher by Raise.
// Indices refer to the track's marker slice in scan order.
type Conflict struct {
	Placing   int
	Reference int
	Raise     float64
}

// ConflictLog accumulates the raises applied while placing one track.
// Attach it to an Engine with [WithConflictLog]; the conflicts command turns
// it into a DOT graph for debugging lane assignment.
type ConflictLog struct {
	Conflicts []Conflict
}

func (l *ConflictLog) record(placing, reference int, raise float64) {
	l.Conflicts = append(l.Conflicts, Conflict{
		Placing:   placing,
		Reference: reference,
		Raise:     raise,
	})
}

// Reset clears the log for reuse with another track.
func (l *ConflictLog) Reset() {
	l.Conflicts = l.Conflicts[:0]
}
