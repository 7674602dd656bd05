package response

// SearchResult is one bookable schedule with the reference data it points at.
type SearchResult struct {
	Schedule ScheduleResponse `json:"schedule"`
	Route    RouteResponse    `json:"route"`
	Bus      BusResponse      `json:"bus"`
	Company  CompanySummary   `json:"company"`
}

type CompanySummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Logo  *string `json:"logo,omitempty"`
}

// SeatMapResponse lays the bus out row by row with each seat's state.
type SeatMapResponse struct {
	ScheduleID     string       `json:"schedule_id"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	Rows           [][]SeatCell `json:"rows"`
}

type SeatCell struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// ScheduleDetailResponse is the public view of one schedule.
type ScheduleDetailResponse struct {
	SearchResult
	Duration string `json:"duration"`
}
