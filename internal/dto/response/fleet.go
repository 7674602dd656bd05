package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BusResponse struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	BusNumber  string         `json:"bus_number"`
	BusType    entity.BusType `json:"bus_type"`
	TotalSeats int            `json:"total_seats"`
	Amenities  []string       `json:"amenities"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
}

type RouteResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Distance    float64   `json:"distance"`
	Duration    int       `json:"duration"`
	Stops       []string  `json:"stops"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ScheduleResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	BusID          string    `json:"bus_id"`
	RouteID        string    `json:"route_id"`
	Date           string    `json:"date"`
	DepartureTime  string    `json:"departure_time"`
	ArrivalTime    string    `json:"arrival_time"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
	BookedSeats    []string  `json:"booked_seats"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func BusToResponse(b *entity.Bus) BusResponse {
	amenities := b.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return BusResponse{
		ID:         b.ID.String(),
		CompanyID:  b.CompanyID.String(),
		BusNumber:  b.BusNumber,
		BusType:    b.BusType,
		TotalSeats: b.TotalSeats,
		Amenities:  amenities,
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
	}
}

func RouteToResponse(r *entity.Route) RouteResponse {
	stops := r.Stops
	if stops == nil {
		stops = []string{}
	}
	return RouteResponse{
		ID:          r.ID.String(),
		CompanyID:   r.CompanyID.String(),
		Origin:      r.Origin,
		Destination: r.Destination,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Stops:       stops,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

func ScheduleToResponse(s *entity.Schedule) ScheduleResponse {
	booked := s.BookedSeats
	if booked == nil {
		booked = []string{}
	}
	return ScheduleResponse{
		ID:             s.ID.String(),
		CompanyID:      s.CompanyID.String(),
		BusID:          s.BusID.String(),
		RouteID:        s.RouteID.String(),
		Date:           s.Date.Format(entity.DateLayout),
		DepartureTime:  s.DepartureTime,
		ArrivalTime:    s.ArrivalTime,
		Price:          s.Price,
		AvailableSeats: s.AvailableSeats,
		BookedSeats:    booked,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}
