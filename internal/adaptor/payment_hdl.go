package adaptor

import (
	"io"
	"net/http"

	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxWebhookBody = 64 << 10

// PaymentHandler receives settlement callbacks from the payment provider.
type PaymentHandler struct {
	base
	service usecase.BookingService
}

func NewPaymentHandler(service usecase.BookingService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		base:    newBase(log, "payment"),
		service: service,
	}
}

// Webhook handles POST /api/payments/webhook
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	receipt, err := h.service.HandlePaymentWebhook(r.Context(), payload)
	if err != nil {
		h.handleServiceError(w, err, "handle payment webhook")
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", receipt)
}
