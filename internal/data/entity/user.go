package entity

import "github.com/google/uuid"

type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleCompanyAdmin UserRole = "company_admin"
)

type User struct {
	Base
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password"`
	Phone        *string    `db:"phone"`
	Role         UserRole   `db:"role"`
	CompanyID    *uuid.UUID `db:"company_id"`
	IsActive     bool       `db:"is_active"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
