package seating

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownSeat         = errors.New("seat does not exist on this bus")
	ErrSeatBooked          = errors.New("seat is already booked")
	ErrSelectionFull       = errors.New("selection full")
	ErrDuplicateSeat       = errors.New("seat selected more than once")
	ErrIncompleteSelection = errors.New("incomplete seat selection")
)

// Selector accumulates a seat selection of exactly Required seats against a schedule's inventory.
// It is not safe for concurrent use.
type Selector struct {
	seats    map[string]bool // label -> booked
	required int
	selected []string
}

func NewSelector(layout, booked []string, required int) *Selector {
	seats := make(map[string]bool, len(layout))
	for _, label := range layout {
		seats[label] = false
	}
	for _, label := range booked {
		if _, ok := seats[label]; ok {
			seats[label] = true
		}
	}

	return &Selector{
		seats:    seats,
		required: required,
		selected: make([]string, 0, max(required, 0)),
	}
}

func (s *Selector) Required() int {
	return s.required
}

// Toggle selects seat, or deselects it when it is already selected.
// Booked seats and clicks past the required count leave the selection unchanged.
func (s *Selector) Toggle(seat string) (selected bool, err error) {
	booked, ok := s.seats[seat]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownSeat, seat)
	}

	if i := slices.Index(s.selected, seat); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return false, nil
	}

	if booked {
		return false, fmt.Errorf("%w: %s", ErrSeatBooked, seat)
	}

	if len(s.selected) >= s.required {
		return false, fmt.Errorf("%w: can only select %d seats", ErrSelectionFull, s.required)
	}

	s.selected = append(s.selected, seat)
	return true, nil
}

func (s *Selector) Selected() []string {
	return slices.Clone(s.selected)
}

func (s *Selector) Complete() bool {
	return s.required > 0 && len(s.selected) == s.required
}

// Selection returns the seats in click order once exactly Required seats are chosen.
func (s *Selector) Selection() ([]string, bool) {
	if !s.Complete() {
		return nil, false
	}
	return s.Selected(), true
}

// Select applies a whole request. Every seat must be distinct, on the bus and free,
// and the request must contain exactly n seats.
func Select(layout, booked []string, n int, seats []string) ([]string, error) {
	sel := NewSelector(layout, booked, n)

	seen := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		if _, dup := seen[seat]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, seat)
		}
		seen[seat] = struct{}{}

		if _, err := sel.Toggle(seat); err != nil {
			return nil, err
		}
	}

	selection, ok := sel.Selection()
	if !ok {
		return nil, fmt.Errorf("%w: select exactly %d seats, got %d", ErrIncompleteSelection, n, len(seats))
	}
	return selection, nil
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatHeld      SeatStatus = "held"
)

type SeatState struct {
	Label  string     `json:"label"`
	Status SeatStatus `json:"status"`
}

// Map renders the seat map row by row. A seat both booked and held reports booked.
func Map(layout, booked, held []string) [][]SeatState {
	rows := Rows(layout)
	out := make([][]SeatState, len(rows))
	for i, row := range rows {
		out[i] = make([]SeatState, len(row))
		for j, label := range row {
			status := SeatAvailable
			switch {
			case slices.Contains(booked, label):
				status = SeatBooked
			case slices.Contains(held, label):
				status = SeatHeld
			}
			out[i][j] = SeatState{Label: label, Status: status}
		}
	}
	return out
}
