// Package authz holds authorization decisions with no I/O, so handlers and
// middleware only act on their result.
package authz

import (
	"context"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
)

const (
	RouteHome          = "/"
	RouteAdmin         = "/admin"
	RouteCreateCompany = "/create-company"
	RouteRegister      = "/register"
	RouteLogin         = "/login"
)

// Principal is the authenticated caller as seen by authorization rules.
type Principal struct {
	UserID    uuid.UUID
	Role      entity.UserRole
	CompanyID *uuid.UUID
}

func PrincipalOf(user *entity.User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{UserID: user.ID, Role: user.Role, CompanyID: user.CompanyID}
}

// LandingRoute picks where a signed-in user belongs. A nil principal means the
// identity exists but has no profile yet.
func LandingRoute(p *Principal) string {
	if p == nil {
		return RouteRegister
	}

	switch p.Role {
	case entity.RoleCompanyAdmin:
		if p.CompanyID == nil {
			return RouteCreateCompany
		}
		return RouteAdmin
	case entity.RoleCustomer:
		return RouteHome
	default:
		return RouteLogin
	}
}

// CanManageCompany is true for the admin who owns companyID.
func CanManageCompany(p *Principal, companyID uuid.UUID) bool {
	return p != nil &&
		p.Role == entity.RoleCompanyAdmin &&
		p.CompanyID != nil &&
		*p.CompanyID == companyID
}

// CanCreateCompany is true for a company admin who does not own a company yet.
func CanCreateCompany(p *Principal) bool {
	return p != nil && p.Role == entity.RoleCompanyAdmin && p.CompanyID == nil
}

// CanAccessBooking allows the booking's customer and the admin of the operating company.
func CanAccessBooking(p *Principal, b *entity.Booking) bool {
	if p == nil || b == nil {
		return false
	}
	return b.UserID == p.UserID || CanManageCompany(p, b.CompanyID)
}

// CanCancelBooking follows the same rule as CanAccessBooking.
func CanCancelBooking(p *Principal, b *entity.Booking) bool {
	return CanAccessBooking(p, b)
}

// CanPayBooking is reserved for the customer who made the booking.
func CanPayBooking(p *Principal, b *entity.Booking) bool {
	return p != nil && b != nil && b.UserID == p.UserID
}

// FromContext rebuilds the principal stored by the auth middleware.
func FromContext(ctx context.Context) *Principal {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}

	role, _ := utils.GetRoleFromContext(ctx)
	p := &Principal{UserID: userID, Role: entity.UserRole(role)}
	if companyID, ok := utils.GetCompanyIDFromContext(ctx); ok {
		p.CompanyID = &companyID
	}
	return p
}
