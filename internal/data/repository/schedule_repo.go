package repository

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Schedule, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	CountByBus(ctx context.Context, busID uuid.UUID) (int64, error)
	// FindBookable returns active schedules on date with at least passengers seats left.
	FindBookable(ctx context.Context, date time.Time, passengers int) ([]*entity.Schedule, error)
	// Update writes the editable fields. It fails with entity.ErrScheduleModified when the
	// stored version no longer matches schedule.Version.
	Update(ctx context.Context, schedule *entity.Schedule) error
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

const scheduleColumns = `s.id, s.company_id, s.bus_id, s.route_id, s.travel_date, s.departure_time,
	s.arrival_time, s.price, s.available_seats, s.booked_seats, s.is_active, s.version,
	s.created_at, s.updated_at`

func scanSchedule(row pgx.Row, extra ...any) (*entity.Schedule, error) {
	var s entity.Schedule
	dest := []any{
		&s.ID,
		&s.CompanyID,
		&s.BusID,
		&s.RouteID,
		&s.Date,
		&s.DepartureTime,
		&s.ArrivalTime,
		&s.Price,
		&s.AvailableSeats,
		&s.BookedSeats,
		&s.IsActive,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if s.BookedSeats == nil {
		s.BookedSeats = []string{}
	}
	return &s, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, company_id, bus_id, route_id, travel_date, departure_time,
		                       arrival_time, price, available_seats, booked_seats, is_active,
		                       version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.CompanyID,
		schedule.BusID,
		schedule.RouteID,
		schedule.Date,
		schedule.DepartureTime,
		schedule.ArrivalTime,
		schedule.Price,
		schedule.AvailableSeats,
		schedule.BookedSeats,
		schedule.IsActive,
		schedule.Version,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create schedule",
			zap.Error(err),
			zap.String("company_id", schedule.CompanyID.String()),
			zap.String("bus_id", schedule.BusID.String()),
			zap.String("route_id", schedule.RouteID.String()),
		)
		return fmt.Errorf("create schedule: %w", err)
	}

	return nil
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules s WHERE s.id = $1`

	schedule, err := scanSchedule(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find schedule by ID", zap.Error(err), zap.String("schedule_id", id.String()))
		return nil, fmt.Errorf("find schedule by ID %s: %w", id, err)
	}

	return schedule, nil
}

func (r *scheduleRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		WHERE s.company_id = $1
		ORDER BY s.travel_date DESC, s.departure_time::time
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "find schedules by company", query, companyID, limit, offset)
}

func (r *scheduleRepository) FindBookable(ctx context.Context, date time.Time, passengers int) ([]*entity.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules s
		WHERE s.is_active = TRUE
		  AND s.travel_date = $1
		  AND s.available_seats >= $2
		ORDER BY s.departure_time::time
	`

	return r.list(ctx, "find bookable schedules", query, date, passengers)
}

func (r *scheduleRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Schedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	return schedules, rows.Err()
}

func (r *scheduleRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM schedules WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count schedules", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("count schedules of company %s: %w", companyID, err)
	}
	return count, nil
}

func (r *scheduleRepository) CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM schedules WHERE company_id = $1 AND is_active = TRUE`
	if err := r.db.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		r.log.Error("Failed to count active schedules", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("count active schedules of company %s: %w", companyID, err)
	}
	return count, nil
}

func (r *scheduleRepository) CountByBus(ctx context.Context, busID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM schedules WHERE bus_id = $1`, busID).Scan(&count); err != nil {
		r.log.Error("Failed to count bus schedules", zap.Error(err), zap.String("bus_id", busID.String()))
		return 0, fmt.Errorf("count schedules of bus %s: %w", busID, err)
	}
	return count, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET bus_id = $2, route_id = $3, travel_date = $4, departure_time = $5,
		    arrival_time = $6, price = $7, available_seats = $8, is_active = $9,
		    version = version + 1, updated_at = $10
		WHERE id = $1 AND version = $11
	`

	result, err := r.db.Exec(ctx, query,
		schedule.ID,
		schedule.BusID,
		schedule.RouteID,
		schedule.Date,
		schedule.DepartureTime,
		schedule.ArrivalTime,
		schedule.Price,
		schedule.AvailableSeats,
		schedule.IsActive,
		schedule.UpdatedAt,
		schedule.Version,
	)
	if err != nil {
		r.log.Error("Failed to update schedule", zap.Error(err), zap.String("schedule_id", schedule.ID.String()))
		return fmt.Errorf("update schedule %s: %w", schedule.ID, err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Schedule update lost a version race",
			zap.String("schedule_id", schedule.ID.String()),
			zap.Int("version", schedule.Version),
		)
		return entity.ErrScheduleModified
	}

	schedule.Version++
	return nil
}
