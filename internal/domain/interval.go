package domain

import "time"

// Interval closed range of instants [Start, End]
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps inclusive overlap test: touching endpoints count as overlap
func (i Interval) Overlaps(other Interval) bool {
	return !i.Start.After(other.End) && !i.End.Before(other.Start)
}

// IsValid returns true if Start is not after End
func (i Interval) IsValid() bool {
	return !i.Start.After(i.End)
}
