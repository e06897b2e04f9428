package booking

import "errors"

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrPatientNotFound = errors.New("patient not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidSchedule covers both unparsable date/time input and
	// schedules that are not strictly in the future.
	ErrInvalidSchedule = errors.New("invalid or past appointment schedule")
	// ErrSlotTaken fires when the doctor already holds a pending booking at
	// the requested date and time.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrInvalidTransition fires on any status write out of a terminal state.
	ErrInvalidTransition = errors.New("booking already completed or cancelled")
)
