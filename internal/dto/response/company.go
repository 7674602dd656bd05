package response

import (
	"time"

	"bus-booking/internal/data/entity"

	"github.com/google/uuid"
)

type CompanyResponse struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Description    string    `json:"description"`
	Logo           *string   `json:"logo,omitempty"`
	IsActive       bool      `json:"is_active"`
	PaymentService *string   `json:"payment_service,omitempty"`
	TransactionID  *string   `json:"transaction_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func CompanyToResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID.String(),
		OwnerID:        c.OwnerID.String(),
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		Description:    c.Description,
		Logo:           c.Logo,
		IsActive:       c.IsActive,
		PaymentService: c.PaymentService,
		TransactionID:  c.TransactionID,
		CreatedAt:      c.CreatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
