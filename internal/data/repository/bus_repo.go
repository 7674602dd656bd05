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

type BusRepository interface {
	Create(ctx context.Context, bus *entity.Bus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Bus, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Bus, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	Update(ctx context.Context, bus *entity.Bus) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

const busColumns = `id, company_id, bus_number, bus_type, total_seats, amenities, is_active, created_at, updated_at`

func scanBus(row pgx.Row) (*entity.Bus, error) {
	var b entity.Bus
	err := row.Scan(
		&b.ID,
		&b.CompanyID,
		&b.BusNumber,
		&b.BusType,
		&b.TotalSeats,
		&b.Amenities,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *busRepository) Create(ctx context.Context, bus *entity.Bus) error {
	query := `
		INSERT INTO buses (id, company_id, bus_number, bus_type, total_seats, amenities,
		                   is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.CompanyID,
		bus.BusNumber,
		bus.BusType,
		bus.TotalSeats,
		bus.Amenities,
		bus.IsActive,
		bus.CreatedAt,
		bus.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create bus",
			zap.Error(err),
			zap.String("company_id", bus.CompanyID.String()),
			zap.String("bus_number", bus.BusNumber),
		)
		return fmt.Errorf("create bus %s: %w", bus.BusNumber, err)
	}

	return nil
}

func (r *busRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE id = $1`

	bus, err := scanBus(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus by ID", zap.Error(err), zap.String("bus_id", id.String()))
		return nil, fmt.Errorf("find bus by ID %s: %w", id, err)
	}

	return bus, nil
}

func (r *busRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Bus, error) {
	out := make(map[uuid.UUID]*entity.Bus, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+busColumns+` FROM buses WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to find buses", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find buses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		out[bus.ID] = bus
	}

	return out, rows.Err()
}

func (r *busRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Bus, error) {
	query := `
		SELECT ` + busColumns + `
		FROM buses
		WHERE company_id = $1
		ORDER BY is_active DESC, bus_number
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find buses by company",
			zap.Error(err),
			zap.String("company_id", companyID.String()),
		)
		return nil, fmt.Errorf("find buses of company %s: %w", companyID, err)
	}
	defer rows.Close()

	var buses []*entity.Bus
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		buses = append(buses, bus)
	}

	return buses, rows.Err()
}

func (r *busRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM buses WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count buses", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("count buses of company %s: %w", companyID, err)
	}
	return count, nil
}

func (r *busRepository) Update(ctx context.Context, bus *entity.Bus) error {
	query := `
		UPDATE buses
		SET bus_number = $2, bus_type = $3, total_seats = $4, amenities = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.BusNumber,
		bus.BusType,
		bus.TotalSeats,
		bus.Amenities,
		bus.IsActive,
		bus.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update bus", zap.Error(err), zap.String("bus_id", bus.ID.String()))
		return fmt.Errorf("update bus %s: %w", bus.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", bus.ID)
	}

	return nil
}

func (r *busRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE buses SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to deactivate bus", zap.Error(err), zap.String("bus_id", id.String()))
		return fmt.Errorf("deactivate bus %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", id)
	}

	r.log.Info("Bus deactivated", zap.String("bus_id", id.String()))
	return nil
}
