package domain

import "fmt"

// Capacity is either Unlimited or Limited(n)
// The zero value is Unlimited
type Capacity struct {
	limited bool
	seats   int
}

// Unlimited capacity: no seat cap configured
func Unlimited() Capacity {
	return Capacity{}
}

// Limited capacity of n seats
func Limited(n int) Capacity {
	return Capacity{limited: true, seats: n}
}

// CapacityFromNullable maps a nullable seat column to a Capacity
func CapacityFromNullable(seats *int) Capacity {
	if seats == nil {
		return Unlimited()
	}
	return Limited(*seats)
}

// IsUnlimited returns true if no seat cap applies
func (c Capacity) IsUnlimited() bool {
	return !c.limited
}

// Seats returns the seat cap; ok is false for Unlimited
func (c Capacity) Seats() (seats int, ok bool) {
	return c.seats, c.limited
}

// String implements fmt.Stringer
func (c Capacity) String() string {
	if !c.limited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", c.seats)
}

// CapacitySource tells where the effective capacity came from
type CapacitySource string

const (
	CapacitySourceBase       CapacitySource = "base"
	CapacitySourceAdjustment CapacitySource = "adjustment"
)

// Availability is the outcome of a remaining seats computation
type Availability struct {
	Capacity       Capacity
	CapacitySource CapacitySource
	AdjustmentID   *int64
	BookedSeats    int
	// Remaining is capacity minus booked seats; it is negative when the
	// schedule is already overbooked. Zero when capacity is zero or negative.
	// Meaningless for unlimited capacity.
	Remaining int
}

// NewAvailability computes remaining seats for an effective capacity and committed demand
func NewAvailability(capacity Capacity, source CapacitySource, adjustmentID *int64, booked int) Availability {
	a := Availability{
		Capacity:       capacity,
		CapacitySource: source,
		AdjustmentID:   adjustmentID,
		BookedSeats:    booked,
	}

	seats, limited := capacity.Seats()
	if !limited {
		return a
	}

	if seats <= 0 {
		a.Remaining = 0
		return a
	}

	a.Remaining = seats - booked
	return a
}

// IsUnlimited returns true if the schedule has no seat cap
func (a Availability) IsUnlimited() bool {
	return a.Capacity.IsUnlimited()
}

// AvailableSeats returns how many seats can still be booked (never negative)
// The second value is false for unlimited capacity
func (a Availability) AvailableSeats() (int, bool) {
	if a.IsUnlimited() {
		return 0, false
	}
	if a.Remaining < 0 {
		return 0, true
	}
	return a.Remaining, true
}

// IsOverbooked returns true if committed demand already exceeds capacity
func (a Availability) IsOverbooked() bool {
	return !a.IsUnlimited() && a.Remaining < 0
}

// IsFull returns true if no more seats can be booked
func (a Availability) IsFull() bool {
	return !a.IsUnlimited() && a.Remaining <= 0
}

// CanAccommodate returns true if the requested number of seats fits
func (a Availability) CanAccommodate(seats int) bool {
	if a.IsUnlimited() {
		return true
	}
	return seats <= a.Remaining
}
