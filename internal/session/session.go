package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

const (
	KeySearchParams      = "searchParams"
	KeySearchResults     = "searchResults"
	KeySelectedRoute     = "selectedRoute"
	KeyCurrentBooking    = "currentBooking"
	KeyBookingPassengers = "bookingPassengers"
	KeySelectedSeats     = "selectedSeats"
	KeySearchStartTime   = "searchStartTime"

	KeySeatMap            = "seatMap"
	KeyBookingContact     = "bookingContact"
	KeyBookingIdempotency = "bookingIdempotency"
)

// ExpiryKeys are dropped when the booking hold runs out. Search params and
// results stay so the user can pick again from the same search.
var ExpiryKeys = []string{
	KeyCurrentBooking,
	KeySelectedRoute,
	KeySelectedSeats,
	KeyBookingPassengers,
	KeySeatMap,
	KeyBookingIdempotency,
}

// SearchKeys are replaced wholesale by a new search.
var SearchKeys = []string{
	KeySearchParams,
	KeySearchResults,
	KeySearchStartTime,
	KeySelectedRoute,
	KeyCurrentBooking,
	KeyBookingPassengers,
	KeySelectedSeats,
	KeySeatMap,
	KeyBookingContact,
	KeyBookingIdempotency,
}

var ErrMissingID = errors.New("session id is required")

// validator is implemented by stored types that can check their own shape.
type validator interface {
	Validate() error
}

// Session is one tab's view of the store.
type Session struct {
	ID    string
	store Store
}

func New(store Store, id string) (*Session, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	if store == nil {
		store = NewNoOpStore()
	}
	return &Session{ID: id, store: store}, nil
}

func (s *Session) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.ID, key, data)
}

func (s *Session) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.store.Delete(ctx, s.ID, keys...)
}

// Has reports whether a raw value is present, regardless of its shape.
func (s *Session) Has(ctx context.Context, key string) bool {
	_, ok := s.store.Get(ctx, s.ID, key)
	return ok
}

// Read decodes the value under key. Missing, malformed or invalid values are
// all reported as absent.
func Read[T any](ctx context.Context, s *Session, key string) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}

	data, ok := s.store.Get(ctx, s.ID, key)
	if !ok {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		slog.WarnContext(ctx, "discarding unreadable session value",
			"session_id", s.ID, "key", key, "error", err)
		return zero, false
	}

	if v, ok := any(&value).(validator); ok {
		if err := v.Validate(); err != nil {
			slog.WarnContext(ctx, "discarding invalid session value",
				"session_id", s.ID, "key", key, "error", err)
			return zero, false
		}
	}

	return value, true
}
