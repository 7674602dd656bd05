package entity

import "github.com/google/uuid"

type Route struct {
	BaseNoDelete
	CompanyID   uuid.UUID `db:"company_id"`
	Origin      string    `db:"origin"`
	Destination string    `db:"destination"`
	Distance    float64   `db:"distance"`
	Duration    int       `db:"duration"` // minutes
	Stops       []string  `db:"stops"`
	IsActive    bool      `db:"is_active"`
}
