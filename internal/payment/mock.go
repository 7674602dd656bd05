package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// WebhookPayload is the callback body the mock provider accepts.
type WebhookPayload struct {
	IntentID string       `json:"intentId" validate:"required"`
	Status   IntentStatus `json:"status" validate:"required,oneof=succeeded failed"`
}

// MockGateway settles every charge without contacting a provider. Each intent settles once.
// Transaction ids look like TXN-1a2b3c4d.
type MockGateway struct {
	service string
	log     *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	intents map[string]*Intent
}

func NewMockGateway(service string, log *zap.Logger) *MockGateway {
	return &MockGateway{
		service: service,
		log:     log.With(zap.String("gateway", service)),
		now:     time.Now,
		intents: make(map[string]*Intent),
	}
}

func (g *MockGateway) Initiate(ctx context.Context, charge Charge) (*Intent, error) {
	if charge.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrPaymentDeclined)
	}

	intent := &Intent{
		ID:        utils.GeneratePaymentID(),
		BookingID: charge.BookingID,
		Service:   g.service,
		Amount:    charge.Amount,
		Currency:  charge.Currency,
		Status:    IntentPending,
		CreatedAt: g.now(),
	}

	g.mu.Lock()
	g.intents[intent.ID] = intent
	g.mu.Unlock()

	g.log.Info("Payment initiated",
		zap.String("intent_id", intent.ID),
		zap.String("booking_id", charge.BookingID),
		zap.Float64("amount", charge.Amount))

	copied := *intent
	return &copied, nil
}

func (g *MockGateway) Confirm(ctx context.Context, intentID string) (*Receipt, error) {
	return g.settle(intentID, IntentSucceeded)
}

func (g *MockGateway) HandleWebhook(ctx context.Context, payload []byte) (*Receipt, error) {
	var body WebhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}
	if errs := utils.ValidateStruct(body); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWebhook, utils.FormatValidationErrors(errs))
	}
	return g.settle(body.IntentID, body.Status)
}

func (g *MockGateway) settle(intentID string, status IntentStatus) (*Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIntentNotFound, intentID)
	}

	// An intent settles once. Later callbacks for it are unknown.
	delete(g.intents, intentID)

	intent.Status = status
	if status != IntentSucceeded {
		g.log.Warn("Payment failed", zap.String("intent_id", intentID))
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, intentID)
	}

	receipt := &Receipt{
		PaymentID:     intent.ID,
		IntentID:      intent.ID,
		BookingID:     intent.BookingID,
		Service:       g.service,
		TransactionID: utils.GenerateTransactionID(),
		Amount:        intent.Amount,
		PaidAt:        g.now(),
	}

	g.log.Info("Payment settled",
		zap.String("intent_id", intentID),
		zap.String("transaction_id", receipt.TransactionID))

	return receipt, nil
}
