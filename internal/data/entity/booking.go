package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// BookingFlow names how a booking is settled.
type BookingFlow string

const (
	// FlowPayImmediately charges during creation; the booking is written confirmed and paid.
	FlowPayImmediately BookingFlow = "pay_immediately"
	// FlowReserveThenPay writes the booking confirmed with payment pending until a later pay call.
	FlowReserveThenPay BookingFlow = "reserve_then_pay"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type PassengerDetail struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	SeatNumber string `json:"seatNumber"`
}

type Booking struct {
	BaseNoDelete
	UserID           uuid.UUID         `db:"user_id"`
	ScheduleID       uuid.UUID         `db:"schedule_id"`
	CompanyID        uuid.UUID         `db:"company_id"`
	PassengerDetails []PassengerDetail `db:"passenger_details"`
	SeatNumbers      []string          `db:"seat_numbers"`
	TotalAmount      float64           `db:"total_amount"`
	BookingStatus    BookingStatus     `db:"booking_status"`
	PaymentStatus    PaymentStatus     `db:"payment_status"`
	PaymentID        *string           `db:"payment_id"`
	PaymentService   *string           `db:"payment_service"`
	TransactionID    *string           `db:"transaction_id"`
	Flow             BookingFlow       `db:"flow"`
	BookingDate      time.Time         `db:"booking_date"`
}

// SeatsMatchPassengers reports whether every seat has exactly one passenger with that seat label.
func (b *Booking) SeatsMatchPassengers() bool {
	if len(b.SeatNumbers) != len(b.PassengerDetails) {
		return false
	}

	seats := make(map[string]int, len(b.SeatNumbers))
	for _, s := range b.SeatNumbers {
		seats[s]++
	}
	for _, p := range b.PassengerDetails {
		seats[p.SeatNumber]--
	}
	for _, n := range seats {
		if n != 0 {
			return false
		}
	}
	return true
}

func (b *Booking) IsCancelled() bool {
	return b.BookingStatus == BookingStatusCancelled
}

// Ticketed is true for bookings that are confirmed and paid.
func (b *Booking) Ticketed() bool {
	return b.BookingStatus == BookingStatusConfirmed && b.PaymentStatus == PaymentStatusPaid
}

// Cancel moves the booking to its terminal state.
func (b *Booking) Cancel(now time.Time) error {
	if b.IsCancelled() {
		return ErrAlreadyCancelled
	}
	b.BookingStatus = BookingStatusCancelled
	b.UpdatedAt = now
	return nil
}

// MarkPaid attaches a settled payment. Paying again replaces the previous transaction id.
func (b *Booking) MarkPaid(paymentID, service, transactionID string, now time.Time) error {
	if b.IsCancelled() {
		return ErrBookingCancelled
	}
	b.PaymentStatus = PaymentStatusPaid
	b.PaymentID = &paymentID
	b.PaymentService = &service
	b.TransactionID = &transactionID
	b.UpdatedAt = now
	return nil
}
