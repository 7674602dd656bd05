package request

type SearchScheduleRequest struct {
	From       string   `validate:"required"`
	To         string   `validate:"required"`
	Date       string   `validate:"required,datetime=2006-01-02"`
	Passengers int      `validate:"min=1,max=100"`
	BusType    string   `validate:"omitempty,oneof=AC Non-AC Sleeper Semi-Sleeper"`
	MinPrice   float64  `validate:"min=0"`
	MaxPrice   float64  `validate:"omitempty,gtefield=MinPrice"`
	DepartFrom string   `validate:"omitempty,datetime=15:04"`
	DepartTo   string   `validate:"omitempty,datetime=15:04"`
	Amenities  []string `validate:"dive,oneof=wifi ac charging toilet tv snacks water blanket"`
	Company    string
}
