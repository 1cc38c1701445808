package booking

import (
	"time"

	"github.com/lodgeworks/service-rentals/internal/domain"
)

// dateLayout is the wire format for check-in/check-out dates.
const dateLayout = "2006-01-02"

// Stay is the half-open date interval [CheckIn, CheckOut) of a booking.
// Check-out day is excluded, so adjacent stays can share a boundary date
// without conflicting.
type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStay creates a Stay, normalizing both endpoints to midnight UTC.
// The check-out date must be strictly after the check-in date.
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if !out.After(in) {
		return Stay{}, domain.NewValidationError("check-out must be after check-in")
	}
	return Stay{checkIn: in, checkOut: out}, nil
}

// ParseStay creates a Stay from YYYY-MM-DD strings.
func ParseStay(checkIn, checkOut string) (Stay, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return Stay{}, domain.NewValidationError("invalid check-in date, expected YYYY-MM-DD")
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return Stay{}, domain.NewValidationError("invalid check-out date, expected YYYY-MM-DD")
	}
	return NewStay(in, out)
}

// CheckIn returns the first night of the stay.
func (s Stay) CheckIn() time.Time { return s.checkIn }

// CheckOut returns the departure date, excluded from the stay.
func (s Stay) CheckOut() time.Time { return s.checkOut }

// Nights returns the number of nights in the stay.
func (s Stay) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals intersect:
// [a1,b1) and [a2,b2) overlap iff a1 < b2 and a2 < b1.
func (s Stay) Overlaps(other Stay) bool {
	return s.checkIn.Before(other.checkOut) && other.checkIn.Before(s.checkOut)
}

// ElapsedAt reports whether the stay has fully passed at the given instant.
func (s Stay) ElapsedAt(t time.Time) bool {
	return !t.Before(s.checkOut)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
