package entity

import (
	"fmt"
	"slices"
	"time"

	"bus-booking/internal/seating"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeClock parses an H:MM or HH:MM clock time and returns it zero padded as HH:MM.
func NormalizeClock(raw string) (string, error) {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", raw, err)
	}
	return t.Format(TimeLayout), nil
}

// ClockMinutes returns the minutes since midnight of a clock time, or -1 when malformed.
func ClockMinutes(clock string) int {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

type Schedule struct {
	BaseNoDelete
	CompanyID      uuid.UUID `db:"company_id"`
	BusID          uuid.UUID `db:"bus_id"`
	RouteID        uuid.UUID `db:"route_id"`
	Date           time.Time `db:"travel_date"`
	DepartureTime  string    `db:"departure_time"`
	ArrivalTime    string    `db:"arrival_time"`
	Price          float64   `db:"price"`
	AvailableSeats int       `db:"available_seats"`
	BookedSeats    []string  `db:"booked_seats"`
	IsActive       bool      `db:"is_active"`
	Version        int       `db:"version"`
}

// DepartureAt combines the travel date and departure time in UTC.
func (s *Schedule) DepartureAt() (time.Time, error) {
	return combine(s.Date, s.DepartureTime)
}

// ArrivalAt combines the travel date and arrival time in UTC. An arrival clock time
// earlier than the departure clock time lands on the following day.
func (s *Schedule) ArrivalAt() (time.Time, error) {
	departure, err := s.DepartureAt()
	if err != nil {
		return time.Time{}, err
	}

	arrival, err := combine(s.Date, s.ArrivalTime)
	if err != nil {
		return time.Time{}, err
	}

	if arrival.Before(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}
	return arrival, nil
}

func combine(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// Reserve books seats on a bus with totalSeats seats. It either applies the whole
// selection or leaves the schedule untouched.
func (s *Schedule) Reserve(totalSeats int, seats []string) error {
	if !s.IsActive {
		return ErrScheduleInactive
	}
	if len(seats) == 0 {
		return fmt.Errorf("%w: no seats requested", ErrInvalidSeat)
	}

	seen := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		if !seating.Valid(totalSeats, seat) {
			return fmt.Errorf("%w: %s", ErrInvalidSeat, seat)
		}
		if _, dup := seen[seat]; dup {
			return fmt.Errorf("%w: %s", ErrInvalidSeat, seat)
		}
		seen[seat] = struct{}{}

		if slices.Contains(s.BookedSeats, seat) {
			return fmt.Errorf("%w: %s", ErrSeatsUnavailable, seat)
		}
	}

	if s.AvailableSeats < len(seats) {
		return ErrSeatsUnavailable
	}

	s.BookedSeats = append(slices.Clone(s.BookedSeats), seats...)
	s.AvailableSeats -= len(seats)
	return nil
}

// Release returns seats to inventory. Seats the schedule does not hold are ignored,
// so the counter moves by exactly the number of seats removed.
func (s *Schedule) Release(seats []string) int {
	remaining := make([]string, 0, len(s.BookedSeats))
	released := 0
	for _, booked := range s.BookedSeats {
		if slices.Contains(seats, booked) {
			released++
			continue
		}
		remaining = append(remaining, booked)
	}

	s.BookedSeats = remaining
	s.AvailableSeats += released
	return released
}

// CheckInventory verifies availableSeats + |bookedSeats| == totalSeats with no duplicate labels.
func (s *Schedule) CheckInventory(totalSeats int) error {
	if s.AvailableSeats < 0 {
		return fmt.Errorf("schedule %s: negative available seats %d", s.ID, s.AvailableSeats)
	}

	seen := make(map[string]struct{}, len(s.BookedSeats))
	for _, seat := range s.BookedSeats {
		if _, dup := seen[seat]; dup {
			return fmt.Errorf("schedule %s: seat %s booked twice", s.ID, seat)
		}
		if !seating.Valid(totalSeats, seat) {
			return fmt.Errorf("schedule %s: seat %s not on bus", s.ID, seat)
		}
		seen[seat] = struct{}{}
	}

	if s.AvailableSeats+len(s.BookedSeats) != totalSeats {
		return fmt.Errorf("schedule %s: %d available + %d booked != %d seats",
			s.ID, s.AvailableSeats, len(s.BookedSeats), totalSeats)
	}
	return nil
}
