// Package payment is the boundary to the settlement provider.
package payment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrIntentNotFound  = errors.New("payment intent not found")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrInvalidWebhook  = errors.New("invalid payment webhook")
)

type Charge struct {
	BookingID string
	Amount    float64
	Currency  string
	Phone     string
}

type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentSucceeded IntentStatus = "succeeded"
	IntentFailed    IntentStatus = "failed"
)

type Intent struct {
	ID        string       `json:"id"`
	BookingID string       `json:"bookingId"`
	Service   string       `json:"service"`
	Amount    float64      `json:"amount"`
	Currency  string       `json:"currency"`
	Status    IntentStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Receipt is a settled payment.
type Receipt struct {
	PaymentID     string    `json:"paymentId"`
	IntentID      string    `json:"intentId"`
	BookingID     string    `json:"bookingId"`
	Service       string    `json:"service"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	PaidAt        time.Time `json:"paidAt"`
}

// Gateway initiates charges, confirms them synchronously, or accepts the provider's callback.
type Gateway interface {
	Initiate(ctx context.Context, charge Charge) (*Intent, error)
	Confirm(ctx context.Context, intentID string) (*Receipt, error)
	HandleWebhook(ctx context.Context, payload []byte) (*Receipt, error)
}
