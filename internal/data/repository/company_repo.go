package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CompanyRepository interface {
	// CreateForOwner inserts the company and links it to its admin in one transaction.
	CreateForOwner(ctx context.Context, company *entity.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}

type companyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCompanyRepository(db database.PgxIface, log *zap.Logger) CompanyRepository {
	return &companyRepository{
		db:  db,
		log: log.With(zap.String("repository", "company")),
	}
}

const companyColumns = `id, owner_id, name, email, phone, address, description, logo,
	is_active, payment_service, transaction_id, created_at, updated_at`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Description,
		&c.Logo,
		&c.IsActive,
		&c.PaymentService,
		&c.TransactionID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) CreateForOwner(ctx context.Context, company *entity.Company) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO companies (id, owner_id, name, email, phone, address, description, logo,
			                       is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		if _, err := tx.Exec(ctx, insert,
			company.ID,
			company.OwnerID,
			company.Name,
			company.Email,
			company.Phone,
			company.Address,
			company.Description,
			company.Logo,
			company.IsActive,
			company.CreatedAt,
			company.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert company: %w", err)
		}

		link := `
			UPDATE users SET company_id = $2, updated_at = NOW()
			WHERE id = $1 AND company_id IS NULL AND role = 'company_admin'
		`
		result, err := tx.Exec(ctx, link, company.OwnerID, company.ID)
		if err != nil {
			return fmt.Errorf("link company owner: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("owner %s already has a company", company.OwnerID)
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create company",
			zap.Error(err),
			zap.String("owner_id", company.OwnerID.String()),
		)
		return fmt.Errorf("create company %s: %w", company.Name, err)
	}

	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find company by ID", zap.Error(err), zap.String("company_id", id.String()))
		return nil, fmt.Errorf("find company by ID %s: %w", id, err)
	}

	return company, nil
}

func (r *companyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Company, error) {
	out := make(map[uuid.UUID]*entity.Company, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find companies", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find companies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			r.log.Error("Failed to scan company row", zap.Error(err))
			return nil, fmt.Errorf("scan company row: %w", err)
		}
		out[company.ID] = company
	}

	return out, rows.Err()
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, email = $3, phone = $4, address = $5, description = $6, logo = $7,
		    is_active = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.Phone,
		company.Address,
		company.Description,
		company.Logo,
		company.IsActive,
		company.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update company", zap.Error(err), zap.String("company_id", company.ID.String()))
		return fmt.Errorf("update company %s: %w", company.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("company %s not found", company.ID)
	}

	return nil
}
