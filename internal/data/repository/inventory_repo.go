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

// CancelMode selects the rules applied when a booking is cancelled.
type CancelMode int

const (
	// CancelRequested is a customer or admin cancellation.
	CancelRequested CancelMode = iota
	// CancelExpired is the sweeper cancelling an unpaid booking. It only applies while
	// payment is still pending and marks the payment failed.
	CancelExpired
)

// PaymentRecord is what a settled payment writes onto a booking.
type PaymentRecord struct {
	PaymentID     string
	Service       string
	TransactionID string
	PaidAt        time.Time
}

// InventoryRepository applies every write that moves seats between a schedule and its
// bookings. Each call runs in a single transaction with the schedule row locked.
type InventoryRepository interface {
	// CreateBooking reserves booking.SeatNumbers on the schedule and inserts the booking.
	// It returns the schedule as committed.
	CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Schedule, error)
	// CancelBooking cancels the booking and returns its seats to the schedule.
	CancelBooking(ctx context.Context, bookingID uuid.UUID, mode CancelMode) (*entity.Booking, error)
	// MarkPaid attaches a payment to the booking and stamps it on the booking's company.
	MarkPaid(ctx context.Context, bookingID uuid.UUID, payment PaymentRecord) (*entity.Booking, error)
	// RetireSchedule deactivates a schedule that has no active bookings.
	RetireSchedule(ctx context.Context, scheduleID uuid.UUID) error
}

type inventoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewInventoryRepository(db database.PgxIface, log *zap.Logger) InventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "inventory")),
	}
}

// lockSchedule loads the schedule with its bus capacity and holds the row lock until the
// transaction ends.
func lockSchedule(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Schedule, int, error) {
	query := `
		SELECT ` + scheduleColumns + `, b.total_seats
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		WHERE s.id = $1
		FOR UPDATE OF s
	`

	var totalSeats int
	schedule, err := scanSchedule(q.QueryRow(ctx, query, id), &totalSeats)
	if err == pgx.ErrNoRows {
		return nil, 0, fmt.Errorf("schedule %s not found", id)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("lock schedule %s: %w", id, err)
	}
	return schedule, totalSeats, nil
}

func lockBooking(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking %s: %w", id, err)
	}
	return booking, nil
}

// saveInventory writes the seat fields back, guarded by the version read under lock.
func saveInventory(ctx context.Context, q database.Querier, schedule *entity.Schedule, now time.Time) error {
	query := `
		UPDATE schedules
		SET booked_seats = $2, available_seats = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5
	`

	result, err := q.Exec(ctx, query,
		schedule.ID,
		schedule.BookedSeats,
		schedule.AvailableSeats,
		now,
		schedule.Version,
	)
	if err != nil {
		return fmt.Errorf("update schedule %s inventory: %w", schedule.ID, err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrScheduleModified
	}

	schedule.Version++
	schedule.UpdatedAt = now
	return nil
}

func (r *inventoryRepository) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Schedule, error) {
	var committed *entity.Schedule

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		schedule, totalSeats, err := lockSchedule(ctx, tx, booking.ScheduleID)
		if err != nil {
			return err
		}

		if err := schedule.CheckInventory(totalSeats); err != nil {
			r.log.Error("Schedule inventory is inconsistent", zap.Error(err))
			return fmt.Errorf("inventory check: %w", err)
		}

		if err := schedule.Reserve(totalSeats, booking.SeatNumbers); err != nil {
			return err
		}

		if amount := schedule.Price * float64(len(booking.SeatNumbers)); amount != booking.TotalAmount {
			return fmt.Errorf("%w: expected %.2f, got %.2f", entity.ErrPriceChanged, amount, booking.TotalAmount)
		}
		booking.CompanyID = schedule.CompanyID

		insert := `
			INSERT INTO bookings (id, user_id, schedule_id, company_id, passenger_details,
			                      seat_numbers, total_amount, booking_status, payment_status,
			                      payment_id, payment_service, transaction_id, flow,
			                      booking_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`
		if _, err := tx.Exec(ctx, insert,
			booking.ID,
			booking.UserID,
			booking.ScheduleID,
			booking.CompanyID,
			booking.PassengerDetails,
			booking.SeatNumbers,
			booking.TotalAmount,
			booking.BookingStatus,
			booking.PaymentStatus,
			booking.PaymentID,
			booking.PaymentService,
			booking.TransactionID,
			booking.Flow,
			booking.BookingDate,
			booking.CreatedAt,
			booking.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		if err := saveInventory(ctx, tx, schedule, booking.CreatedAt); err != nil {
			return err
		}

		if booking.PaymentService != nil && booking.TransactionID != nil {
			if err := stampCompanyPayment(ctx, tx, booking.CompanyID, *booking.PaymentService, *booking.TransactionID, booking.CreatedAt); err != nil {
				return err
			}
		}

		committed = schedule
		return nil
	})
	if err != nil {
		r.log.Warn("Booking write rolled back",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("schedule_id", booking.ScheduleID.String()),
			zap.Strings("seats", booking.SeatNumbers),
		)
		return nil, err
	}

	r.log.Info("Booking committed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("schedule_id", booking.ScheduleID.String()),
		zap.Int("available_seats", committed.AvailableSeats),
		zap.Int("version", committed.Version),
	)
	return committed, nil
}

func (r *inventoryRepository) CancelBooking(ctx context.Context, bookingID uuid.UUID, mode CancelMode) (*entity.Booking, error) {
	var cancelled *entity.Booking

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		booking, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if mode == CancelExpired {
			if booking.PaymentStatus != entity.PaymentStatusPending {
				return entity.ErrPaymentSettled
			}
			booking.PaymentStatus = entity.PaymentStatusFailed
		}

		now := time.Now().UTC()
		if err := booking.Cancel(now); err != nil {
			return err
		}

		schedule, _, err := lockSchedule(ctx, tx, booking.ScheduleID)
		if err != nil {
			return err
		}

		released := schedule.Release(booking.SeatNumbers)
		if released != len(booking.SeatNumbers) {
			r.log.Warn("Cancelled booking held seats the schedule did not list",
				zap.String("booking_id", booking.ID.String()),
				zap.Int("seats", len(booking.SeatNumbers)),
				zap.Int("released", released),
			)
		}

		if err := saveInventory(ctx, tx, schedule, now); err != nil {
			return err
		}

		update := `
			UPDATE bookings
			SET booking_status = $2, payment_status = $3, updated_at = $4
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, update, booking.ID, booking.BookingStatus, booking.PaymentStatus, now); err != nil {
			return fmt.Errorf("update booking %s status: %w", booking.ID, err)
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Booking cancelled",
		zap.String("booking_id", cancelled.ID.String()),
		zap.String("schedule_id", cancelled.ScheduleID.String()),
		zap.Strings("seats", cancelled.SeatNumbers),
		zap.Bool("expired", mode == CancelExpired),
	)
	return cancelled, nil
}

func (r *inventoryRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, payment PaymentRecord) (*entity.Booking, error) {
	var paid *entity.Booking

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		booking, err := lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if err := booking.MarkPaid(payment.PaymentID, payment.Service, payment.TransactionID, payment.PaidAt); err != nil {
			return err
		}

		update := `
			UPDATE bookings
			SET payment_status = $2, payment_id = $3, payment_service = $4,
			    transaction_id = $5, updated_at = $6
			WHERE id = $1
		`
		if _, err := tx.Exec(ctx, update,
			booking.ID,
			booking.PaymentStatus,
			booking.PaymentID,
			booking.PaymentService,
			booking.TransactionID,
			booking.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update booking %s payment: %w", booking.ID, err)
		}

		if err := stampCompanyPayment(ctx, tx, booking.CompanyID, payment.Service, payment.TransactionID, payment.PaidAt); err != nil {
			return err
		}

		paid = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Booking paid",
		zap.String("booking_id", paid.ID.String()),
		zap.String("payment_id", payment.PaymentID),
		zap.String("transaction_id", payment.TransactionID),
	)
	return paid, nil
}

func (r *inventoryRepository) RetireSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// Booking writes take the same row lock, so none can land between the count and the update.
		if _, _, err := lockSchedule(ctx, tx, scheduleID); err != nil {
			return err
		}

		var active int64
		count := `SELECT COUNT(*) FROM bookings WHERE schedule_id = $1 AND booking_status <> 'cancelled'`
		if err := tx.QueryRow(ctx, count, scheduleID).Scan(&active); err != nil {
			return fmt.Errorf("count bookings of schedule %s: %w", scheduleID, err)
		}
		if active > 0 {
			return fmt.Errorf("%w: %d", entity.ErrScheduleBooked, active)
		}

		update := `UPDATE schedules SET is_active = FALSE, version = version + 1, updated_at = NOW() WHERE id = $1`
		if _, err := tx.Exec(ctx, update, scheduleID); err != nil {
			return fmt.Errorf("deactivate schedule %s: %w", scheduleID, err)
		}
		return nil
	})
	if err != nil {
		r.log.Warn("Schedule not retired", zap.Error(err), zap.String("schedule_id", scheduleID.String()))
		return err
	}

	r.log.Info("Schedule retired", zap.String("schedule_id", scheduleID.String()))
	return nil
}

func stampCompanyPayment(ctx context.Context, q database.Querier, companyID uuid.UUID, service, transactionID string, now time.Time) error {
	query := `UPDATE companies SET payment_service = $2, transaction_id = $3, updated_at = $4 WHERE id = $1`
	if _, err := q.Exec(ctx, query, companyID, service, transactionID, now); err != nil {
		return fmt.Errorf("stamp company %s payment: %w", companyID, err)
	}
	return nil
}
