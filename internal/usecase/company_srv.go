package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, p *authz.Principal, req *request.CompanyRequest) (*response.CompanyResponse, error)
	GetCompany(ctx context.Context, p *authz.Principal) (*response.CompanyResponse, error)
	UpdateCompany(ctx context.Context, p *authz.Principal, req *request.CompanyRequest) (*response.CompanyResponse, error)
}

type companyService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCompanyService(repo *repository.Repository, log *zap.Logger) CompanyService {
	return &companyService{
		repo: repo,
		log:  log.With(zap.String("service", "company")),
	}
}

func (s *companyService) CreateCompany(ctx context.Context, p *authz.Principal, req *request.CompanyRequest) (*response.CompanyResponse, error) {
	if !authz.CanCreateCompany(p) {
		return nil, fmt.Errorf("only a company admin without a company can create one: %w", ErrForbidden)
	}

	if err := validate(req); err != nil {
		s.log.Warn("Create company validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	company := &entity.Company{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OwnerID:     p.UserID,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       utils.CleanPhone(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		Description: strings.TrimSpace(req.Description),
		Logo:        req.Logo,
		IsActive:    true,
	}

	if err := s.repo.Company.CreateForOwner(ctx, company); err != nil {
		s.log.Error("Failed to create company", zap.Error(err), zap.String("owner_id", p.UserID.String()))
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.log.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("owner_id", p.UserID.String()))

	resp := response.CompanyToResponse(company)
	return &resp, nil
}

func (s *companyService) GetCompany(ctx context.Context, p *authz.Principal) (*response.CompanyResponse, error) {
	company, err := s.ownCompany(ctx, p)
	if err != nil {
		return nil, err
	}

	resp := response.CompanyToResponse(company)
	return &resp, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, p *authz.Principal, req *request.CompanyRequest) (*response.CompanyResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update company validation failed", zap.Error(err))
		return nil, err
	}

	company, err := s.ownCompany(ctx, p)
	if err != nil {
		return nil, err
	}

	company.Name = strings.TrimSpace(req.Name)
	company.Email = strings.ToLower(strings.TrimSpace(req.Email))
	company.Phone = utils.CleanPhone(req.Phone)
	company.Address = strings.TrimSpace(req.Address)
	company.Description = strings.TrimSpace(req.Description)
	company.Logo = req.Logo
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.log.Error("Failed to update company", zap.Error(err), zap.String("company_id", company.ID.String()))
		return nil, fmt.Errorf("update company: %w", err)
	}

	s.log.Info("Company updated", zap.String("company_id", company.ID.String()))
	resp := response.CompanyToResponse(company)
	return &resp, nil
}

// ownCompany loads the company the principal administers.
func (s *companyService) ownCompany(ctx context.Context, p *authz.Principal) (*entity.Company, error) {
	if p == nil || p.CompanyID == nil || !authz.CanManageCompany(p, *p.CompanyID) {
		return nil, fmt.Errorf("company access denied: %w", ErrForbidden)
	}

	company, err := s.repo.Company.FindByID(ctx, *p.CompanyID)
	if err != nil {
		s.log.Error("Failed to find company", zap.Error(err), zap.String("company_id", p.CompanyID.String()))
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, notFound("company", *p.CompanyID)
	}
	return company, nil
}
