package usecase

import (
	"context"
	"errors"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/event"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	sweepBatch       = 100
	sessionRetention = 7 * 24 * time.Hour
)

// Sweeper cancels reserve-then-pay bookings left unpaid past their deadline and
// purges long-expired sessions.
type Sweeper struct {
	repo     *repository.Repository
	events   event.Publisher
	ttl      time.Duration
	interval time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewSweeper(repo *repository.Repository, events event.Publisher, config *utils.Config, log *zap.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		events:   events,
		ttl:      config.Booking.PendingPaymentTTL,
		interval: config.Booking.SweepInterval,
		log:      log.With(zap.String("service", "sweeper")),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Sweeper started", zap.Duration("interval", s.interval), zap.Duration("ttl", s.ttl))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("Sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce expires one batch of unpaid bookings and returns how many were cancelled.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.now()

	ids, err := s.repo.Booking.FindExpiredUnpaid(ctx, now.Add(-s.ttl), sweepBatch)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		booking, err := s.repo.Inventory.CancelBooking(ctx, id, repository.CancelExpired)
		// Paid or cancelled between the scan and the lock
		if errors.Is(err, entity.ErrPaymentSettled) || errors.Is(err, entity.ErrAlreadyCancelled) {
			continue
		}
		if err != nil {
			s.log.Error("Failed to expire booking", zap.Error(err), zap.String("booking_id", id.String()))
			continue
		}

		expired++
		if err := s.events.Publish(ctx, bookingEvent(event.BookingExpired, booking, now)); err != nil {
			s.log.Warn("Failed to publish booking event", zap.Error(err), zap.String("booking_id", id.String()))
		}
	}

	if expired > 0 {
		s.log.Info("Expired unpaid bookings", zap.Int("count", expired))
	}

	if removed, err := s.repo.Session.CleanExpiredSessions(ctx, sessionRetention); err != nil {
		s.log.Warn("Failed to clean sessions", zap.Error(err))
	} else if removed > 0 {
		s.log.Info("Cleaned expired sessions", zap.Int64("count", removed))
	}

	return expired, nil
}
