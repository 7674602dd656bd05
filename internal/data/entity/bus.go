package entity

import (
	"slices"

	"github.com/google/uuid"
)

type BusType string

const (
	BusTypeAC          BusType = "AC"
	BusTypeNonAC       BusType = "Non-AC"
	BusTypeSleeper     BusType = "Sleeper"
	BusTypeSemiSleeper BusType = "Semi-Sleeper"
)

const MaxBusSeats = 100

// Amenities is the closed set a bus may advertise.
var Amenities = []string{"wifi", "ac", "charging", "toilet", "tv", "snacks", "water", "blanket"}

type Bus struct {
	BaseNoDelete
	CompanyID  uuid.UUID `db:"company_id"`
	BusNumber  string    `db:"bus_number"`
	BusType    BusType   `db:"bus_type"`
	TotalSeats int       `db:"total_seats"`
	Amenities  []string  `db:"amenities"`
	IsActive   bool      `db:"is_active"`
}

// HasAmenities reports whether the bus offers every amenity in want.
func (b *Bus) HasAmenities(want []string) bool {
	for _, a := range want {
		if !slices.Contains(b.Amenities, a) {
			return false
		}
	}
	return true
}
