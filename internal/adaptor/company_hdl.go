package adaptor

import (
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type CompanyHandler struct {
	base
	service   usecase.CompanyService
	dashboard usecase.DashboardService
}

func NewCompanyHandler(service usecase.CompanyService, dashboard usecase.DashboardService, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		base:      newBase(log, "company"),
		service:   service,
		dashboard: dashboard,
	}
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.CompanyRequest
	if !h.decode(w, r, &req) {
		return
	}

	company, err := h.service.CreateCompany(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "create company")
		return
	}

	utils.ResponseCreated(w, "Company created successfully", company)
}

// GetCompany handles GET /api/admin/company
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	company, err := h.service.GetCompany(r.Context(), p)
	if err != nil {
		h.handleServiceError(w, err, "get company")
		return
	}

	utils.ResponseSuccess(w, "success", company)
}

// UpdateCompany handles PUT /api/admin/company
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.CompanyRequest
	if !h.decode(w, r, &req) {
		return
	}

	company, err := h.service.UpdateCompany(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "update company")
		return
	}

	utils.ResponseSuccess(w, "Company updated successfully", company)
}

// Dashboard handles GET /api/admin/dashboard
func (h *CompanyHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboard.Dashboard(r.Context(), p)
	if err != nil {
		h.handleServiceError(w, err, "load dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
