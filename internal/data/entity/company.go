package entity

import "github.com/google/uuid"

type Company struct {
	BaseNoDelete
	OwnerID        uuid.UUID `db:"owner_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	Description    string    `db:"description"`
	Logo           *string   `db:"logo"`
	IsActive       bool      `db:"is_active"`
	PaymentService *string   `db:"payment_service"`
	TransactionID  *string   `db:"transaction_id"`
}
