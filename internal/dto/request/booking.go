package request

type HoldRequest struct {
	Seats      []string `json:"seats" validate:"required,min=1,max=100,unique,dive,required"`
	Passengers int      `json:"passengers" validate:"required,min=1,max=100"`
}

type PassengerRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Age        int    `json:"age" validate:"min=0,max=120"`
	Gender     string `json:"gender" validate:"required,oneof=male female other"`
	SeatNumber string `json:"seat_number" validate:"required"`
}

type CreateBookingRequest struct {
	ScheduleID string             `json:"schedule_id" validate:"required,uuid"`
	HoldToken  string             `json:"hold_token" validate:"required,uuid"`
	Flow       string             `json:"flow" validate:"required,oneof=pay_immediately reserve_then_pay"`
	Phone      *string            `json:"phone,omitempty" validate:"omitempty,mwphone"`
	Passengers []PassengerRequest `json:"passengers" validate:"required,min=1,unique=SeatNumber,dive"`
}

// Seats returns passenger seats in request order.
func (r *CreateBookingRequest) Seats() []string {
	seats := make([]string, len(r.Passengers))
	for i, p := range r.Passengers {
		seats[i] = p.SeatNumber
	}
	return seats
}

type PayBookingRequest struct {
	Phone *string `json:"phone,omitempty" validate:"omitempty,mwphone"`
}
