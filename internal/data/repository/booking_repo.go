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

// BookingRepository holds the read side of bookings. Writes that touch inventory go
// through InventoryRepository.
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	// FindExpiredUnpaid lists reserve_then_pay bookings still awaiting payment that were
	// created before cutoff.
	FindExpiredUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)
	// RevenueByCompany sums paid, non-cancelled bookings.
	RevenueByCompany(ctx context.Context, companyID uuid.UUID) (float64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, schedule_id, company_id, passenger_details, seat_numbers,
	total_amount, booking_status, payment_status, payment_id, payment_service, transaction_id,
	flow, booking_date, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ScheduleID,
		&b.CompanyID,
		&b.PassengerDetails,
		&b.SeatNumbers,
		&b.TotalAmount,
		&b.BookingStatus,
		&b.PaymentStatus,
		&b.PaymentID,
		&b.PaymentService,
		&b.TransactionID,
		&b.Flow,
		&b.BookingDate,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.list(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find bookings of user %s: %w", userID, err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.list(ctx, query, companyID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by company", zap.Error(err), zap.String("company_id", companyID.String()))
		return nil, fmt.Errorf("find bookings of company %s: %w", companyID, err)
	}
	return bookings, nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count user bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("count bookings of user %s: %w", userID, err)
	}
	return count, nil
}

func (r *bookingRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE company_id = $1`, companyID).Scan(&count); err != nil {
		r.log.Error("Failed to count company bookings", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("count bookings of company %s: %w", companyID, err)
	}
	return count, nil
}

func (r *bookingRepository) FindExpiredUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM bookings
		WHERE flow = $1
		  AND payment_status = $2
		  AND booking_status <> $3
		  AND booking_date < $4
		ORDER BY booking_date
		LIMIT $5
	`

	rows, err := r.db.Query(ctx, query,
		entity.FlowReserveThenPay,
		entity.PaymentStatusPending,
		entity.BookingStatusCancelled,
		cutoff,
		limit,
	)
	if err != nil {
		r.log.Error("Failed to find expired unpaid bookings", zap.Error(err))
		return nil, fmt.Errorf("find expired unpaid bookings: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect expired booking ids: %w", err)
	}
	return ids, nil
}

func (r *bookingRepository) RevenueByCompany(ctx context.Context, companyID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)::float8
		FROM bookings
		WHERE company_id = $1
		  AND payment_status = 'paid'
		  AND booking_status <> 'cancelled'
	`

	var revenue float64
	if err := r.db.QueryRow(ctx, query, companyID).Scan(&revenue); err != nil {
		r.log.Error("Failed to sum company revenue", zap.Error(err), zap.String("company_id", companyID.String()))
		return 0, fmt.Errorf("sum revenue of company %s: %w", companyID, err)
	}
	return revenue, nil
}
