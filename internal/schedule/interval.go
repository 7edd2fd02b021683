package schedule

// Interval is a half-open time-of-day range [Start, End).
type Interval struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewInterval validates start < end.
func NewInterval(start, end Clock) (Interval, error) {
	if start >= end {
		return Interval{}, &ValidationError{Field: "end", Reason: "start must be earlier than end"}
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share at least one minute.
// Touching intervals such as [10:00,12:00) and [12:00,14:00) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// Minutes is the length of the interval.
func (a Interval) Minutes() int { return int(a.End - a.Start) }

func (a Interval) String() string { return a.Start.String() + "-" + a.End.String() }

// OverlapsAny reports whether iv intersects any of the given intervals.
func OverlapsAny(iv Interval, others []Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}
