// Package hold keeps short-lived exclusive seat claims in Redis while a customer
// enters passenger details.
package hold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSeatsHeld    = errors.New("seats are held by another customer")
	ErrHoldNotFound = errors.New("seat hold not found or expired")
	ErrHoldMismatch = errors.New("seat hold does not cover the requested seats")
)

// Hold is one customer's claim on a set of seats of a schedule.
type Hold struct {
	Token      string    `json:"token"`
	ScheduleID string    `json:"scheduleId"`
	UserID     string    `json:"userId"`
	Seats      []string  `json:"seats"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// releaseScript deletes a key only when it still belongs to the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewStore(client *redis.Client, ttl time.Duration, log *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "seat_hold")),
		now:    time.Now,
	}
}

func seatKey(scheduleID, seat string) string {
	return fmt.Sprintf("seat_hold:%s:%s", scheduleID, seat)
}

func tokenKey(token string) string {
	return "seat_hold_token:" + token
}

// Acquire claims every seat for userID or none of them.
func (s *Store) Acquire(ctx context.Context, scheduleID, userID string, seats []string) (*Hold, error) {
	h := &Hold{
		Token:      uuid.NewString(),
		ScheduleID: scheduleID,
		UserID:     userID,
		Seats:      slices.Clone(seats),
		ExpiresAt:  s.now().Add(s.ttl),
	}

	locked := make([]string, 0, len(seats))
	rollback := func() {
		for _, seat := range locked {
			if err := s.releaseSeat(context.WithoutCancel(ctx), scheduleID, seat, h.Token); err != nil {
				s.log.Warn("Failed to roll back seat hold",
					zap.Error(err),
					zap.String("schedule_id", scheduleID),
					zap.String("seat", seat))
			}
		}
	}

	for _, seat := range seats {
		ok, err := s.client.SetNX(ctx, seatKey(scheduleID, seat), h.Token, s.ttl).Result()
		if err != nil {
			rollback()
			return nil, fmt.Errorf("hold seat %s: %w", seat, err)
		}
		if !ok {
			rollback()
			return nil, fmt.Errorf("%w: %s", ErrSeatsHeld, seat)
		}
		locked = append(locked, seat)
	}

	payload, err := json.Marshal(h)
	if err != nil {
		rollback()
		return nil, fmt.Errorf("encode hold: %w", err)
	}
	if err := s.client.Set(ctx, tokenKey(h.Token), payload, s.ttl).Err(); err != nil {
		rollback()
		return nil, fmt.Errorf("save hold %s: %w", h.Token, err)
	}

	s.log.Debug("Seats held",
		zap.String("schedule_id", scheduleID),
		zap.String("token", h.Token),
		zap.Strings("seats", seats))

	return h, nil
}

// Lookup returns the hold for token, or ErrHoldNotFound once it has expired.
func (s *Store) Lookup(ctx context.Context, token string) (*Hold, error) {
	raw, err := s.client.Get(ctx, tokenKey(token)).Bytes()
	if err == redis.Nil {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get hold %s: %w", token, err)
	}

	var h Hold
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("decode hold %s: %w", token, err)
	}
	return &h, nil
}

// Verify checks that token still exclusively holds exactly seats on scheduleID.
func (s *Store) Verify(ctx context.Context, scheduleID, token string, seats []string) error {
	h, err := s.Lookup(ctx, token)
	if err != nil {
		return err
	}
	if h.ScheduleID != scheduleID || !sameSeats(h.Seats, seats) {
		return ErrHoldMismatch
	}

	for _, seat := range seats {
		owner, err := s.client.Get(ctx, seatKey(scheduleID, seat)).Result()
		if err == redis.Nil {
			return fmt.Errorf("%w: %s", ErrHoldNotFound, seat)
		}
		if err != nil {
			return fmt.Errorf("check hold on seat %s: %w", seat, err)
		}
		if owner != token {
			return fmt.Errorf("%w: %s", ErrSeatsHeld, seat)
		}
	}
	return nil
}

// Release drops every seat claim owned by token. Releasing an expired hold is a no-op.
func (s *Store) Release(ctx context.Context, token string) error {
	h, err := s.Lookup(ctx, token)
	if errors.Is(err, ErrHoldNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var firstErr error
	for _, seat := range h.Seats {
		if err := s.releaseSeat(ctx, h.ScheduleID, seat, token); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.client.Del(ctx, tokenKey(token)).Err(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("delete hold %s: %w", token, err)
	}
	return firstErr
}

// HeldSeats lists seats of layout currently claimed by any hold on scheduleID.
func (s *Store) HeldSeats(ctx context.Context, scheduleID string, layout []string) ([]string, error) {
	if len(layout) == 0 {
		return nil, nil
	}

	keys := make([]string, len(layout))
	for i, seat := range layout {
		keys[i] = seatKey(scheduleID, seat)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list held seats of %s: %w", scheduleID, err)
	}

	var held []string
	for i, v := range values {
		if v != nil {
			held = append(held, layout[i])
		}
	}
	return held, nil
}

func (s *Store) releaseSeat(ctx context.Context, scheduleID, seat, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{seatKey(scheduleID, seat)}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release seat %s: %w", seat, err)
	}
	return nil
}

func sameSeats(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
