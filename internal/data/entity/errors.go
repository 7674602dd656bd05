package entity

import "errors"

var (
	ErrSeatsUnavailable = errors.New("seats no longer available")
	ErrInvalidSeat      = errors.New("invalid seat")
	ErrScheduleInactive = errors.New("schedule is not active")
	ErrScheduleModified = errors.New("schedule was modified concurrently")
	ErrPriceChanged     = errors.New("schedule price changed")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrBookingCancelled = errors.New("cannot pay for a cancelled booking")
	ErrPaymentSettled   = errors.New("booking payment already settled")
	ErrScheduleBooked   = errors.New("schedule has active bookings")
)
