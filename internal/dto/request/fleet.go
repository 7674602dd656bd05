package request

type BusRequest struct {
	BusNumber  string   `json:"bus_number" validate:"required,max=50"`
	BusType    string   `json:"bus_type" validate:"required,oneof=AC Non-AC Sleeper Semi-Sleeper"`
	TotalSeats int      `json:"total_seats" validate:"required,min=1,max=100"`
	Amenities  []string `json:"amenities" validate:"unique,dive,oneof=wifi ac charging toilet tv snacks water blanket"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

type RouteRequest struct {
	Origin      string   `json:"origin" validate:"required,max=100"`
	Destination string   `json:"destination" validate:"required,max=100,nefield=Origin"`
	Distance    float64  `json:"distance" validate:"required,gt=0"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Stops       []string `json:"stops" validate:"dive,required,max=100"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type ScheduleRequest struct {
	BusID         string  `json:"bus_id" validate:"required,uuid"`
	RouteID       string  `json:"route_id" validate:"required,uuid"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	DepartureTime string  `json:"departure_time" validate:"required,datetime=15:04"`
	ArrivalTime   string  `json:"arrival_time" validate:"required,datetime=15:04"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	IsActive      *bool   `json:"is_active,omitempty"`
}
