package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCompany(
	r chi.Router,
	companyHandler *adaptor.CompanyHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/companies - company admin without a company yet
	r.With(
		authenticated(repo, config, log),
		middleware.RequireRole(log, entity.RoleCompanyAdmin),
	).Post("/api/companies", companyHandler.CreateCompany)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/company", func(r chi.Router) {
		r.Use(companyAdmin(repo, config, log)...)

		r.Get("/", companyHandler.GetCompany)
		r.Put("/", companyHandler.UpdateCompany)
	})

	r.With(companyAdmin(repo, config, log)...).Get("/api/admin/dashboard", companyHandler.Dashboard)
}
