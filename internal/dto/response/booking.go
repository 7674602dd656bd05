package response

import (
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"
)

type HoldResponse struct {
	Token      string    `json:"token"`
	ScheduleID string    `json:"schedule_id"`
	Seats      []string  `json:"seats"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type PassengerResponse struct {
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	Gender     entity.Gender `json:"gender"`
	SeatNumber string        `json:"seat_number"`
}

// TripSummary is the denormalized trip a booking refers to. Fields stay empty when the
// referenced record no longer exists.
type TripSummary struct {
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	Date          string `json:"date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	BusNumber     string `json:"bus_number,omitempty"`
	BusType       string `json:"bus_type,omitempty"`
}

type BookingResponse struct {
	ID             string               `json:"id"`
	Reference      string               `json:"reference"`
	UserID         string               `json:"user_id"`
	ScheduleID     string               `json:"schedule_id"`
	CompanyID      string               `json:"company_id"`
	Passengers     []PassengerResponse  `json:"passengers"`
	SeatNumbers    []string             `json:"seat_numbers"`
	TotalAmount    float64              `json:"total_amount"`
	BookingStatus  entity.BookingStatus `json:"booking_status"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	PaymentID      *string              `json:"payment_id,omitempty"`
	PaymentService *string              `json:"payment_service,omitempty"`
	TransactionID  *string              `json:"transaction_id,omitempty"`
	Flow           entity.BookingFlow   `json:"flow"`
	Trip           *TripSummary         `json:"trip,omitempty"`
	BookingDate    time.Time            `json:"booking_date"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type PaymentResponse struct {
	BookingID     string               `json:"booking_id"`
	PaymentID     string               `json:"payment_id"`
	Service       string               `json:"service"`
	TransactionID string               `json:"transaction_id"`
	Amount        float64              `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	PaidAt        time.Time            `json:"paid_at"`
}

type TicketVerificationResponse struct {
	Valid     bool      `json:"valid"`
	BookingID string    `json:"booking_id"`
	Seats     []string  `json:"seats"`
	ExpiresAt time.Time `json:"expires_at"`
	Reason    string    `json:"reason,omitempty"`
}

func BookingToResponse(b *entity.Booking, trip *TripSummary) BookingResponse {
	passengers := make([]PassengerResponse, len(b.PassengerDetails))
	for i, p := range b.PassengerDetails {
		passengers[i] = PassengerResponse{
			Name:       p.Name,
			Age:        p.Age,
			Gender:     p.Gender,
			SeatNumber: p.SeatNumber,
		}
	}

	return BookingResponse{
		ID:             b.ID.String(),
		Reference:      utils.ShortRef(b.ID.String()),
		UserID:         b.UserID.String(),
		ScheduleID:     b.ScheduleID.String(),
		CompanyID:      b.CompanyID.String(),
		Passengers:     passengers,
		SeatNumbers:    b.SeatNumbers,
		TotalAmount:    b.TotalAmount,
		BookingStatus:  b.BookingStatus,
		PaymentStatus:  b.PaymentStatus,
		PaymentID:      b.PaymentID,
		PaymentService: b.PaymentService,
		TransactionID:  b.TransactionID,
		Flow:           b.Flow,
		Trip:           trip,
		BookingDate:    b.BookingDate,
		UpdatedAt:      b.UpdatedAt,
	}
}
