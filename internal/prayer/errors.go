package prayer

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefined is reported for an event whose sun altitude is never
	// reached on the requested date, typically at high latitudes.
	ErrUndefined = errors.New("prayer time undefined for this date and latitude")

	// ErrInvalidInput is returned for non-finite or out-of-range coordinates,
	// offsets or twilight angles.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDate is returned when year/month/day is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// UndefinedError describes an event that has no hour angle.
// Cos is the out-of-range cosine that the hour angle would have needed.
type UndefinedError struct {
	Event Event
	Cos   float64
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("%s: sun does not reach the required altitude (cos %.4f)", e.Event, e.Cos)
}

func (e *UndefinedError) Unwrap() error {
	return ErrUndefined
}
