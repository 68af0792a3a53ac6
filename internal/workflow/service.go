// Package workflow drives one browser tab through search, route selection,
// seat allocation, passenger collection, booking and payment. All state lives
// in the tab's session; the service itself is stateless.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dharmasatrya/travelbooking/internal/countdown"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
)

// DefaultBookingFee is added on top of the fare on the payment step.
const DefaultBookingFee = 3000

var (
	ErrNoSearch      = errors.New("no active search, please search again")
	ErrHoldExpired   = errors.New("your booking session has expired, please search again")
	ErrNoRoute       = errors.New("no route selected")
	ErrRouteNotFound = errors.New("route not found in search results")
	ErrNotRoadRoute  = errors.New("seat selection is only available for road trips")
	ErrSeatsRequired = errors.New("please select your seats before booking")
	ErrNoBooking     = errors.New("no booking to pay for")
)

// Upstream is the part of the booking API the workflow needs.
type Upstream interface {
	Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error)
	CreateBooking(ctx context.Context, token string, draft models.BookingDraft, idempotencyKey string) (*models.Booking, error)
	InitializePayment(ctx context.Context, token string, req models.PaymentRequest) (*models.PaymentResponse, error)
}

type Config struct {
	AppURL     string
	BookingFee float64
	Now        func() time.Time
}

type Service struct {
	api        Upstream
	appURL     string
	bookingFee float64
	now        func() time.Time
}

func NewService(api Upstream, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	fee := cfg.BookingFee
	if fee < 0 {
		fee = 0
	}
	return &Service{
		api:        api,
		appURL:     strings.TrimRight(cfg.AppURL, "/"),
		bookingFee: fee,
		now:        now,
	}
}

// Search validates criteria, runs the search and replaces everything the
// session held about a previous search. If ctx is done by the time the answer
// arrives the result is dropped and the session is left as it was.
func (s *Service) Search(ctx context.Context, sess *session.Session, criteria models.SearchCriteria) (*models.SearchResponse, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		slog.InfoContext(ctx, "dropping stale search result", "session_id", sess.ID)
		return nil, err
	}

	// Detached so a client disconnect cannot leave half a search behind.
	wctx := context.WithoutCancel(ctx)
	if err := sess.Clear(wctx, session.SearchKeys...); err != nil {
		slog.WarnContext(ctx, "failed to clear previous search", "session_id", sess.ID, "error", err)
	}
	s.write(wctx, sess, session.KeySearchParams, criteria)
	s.write(wctx, sess, session.KeySearchResults, resp)
	s.write(wctx, sess, session.KeySearchStartTime, s.now().UnixMilli())
	s.write(wctx, sess, session.KeyBookingPassengers, make(models.PassengerList, criteria.Passengers))

	slog.InfoContext(ctx, "search stored",
		"session_id", sess.ID,
		"search_id", resp.SearchID,
		"results", len(resp.Results),
	)
	return resp, nil
}

// Status reports the hold countdown. An expired hold is reset on the spot.
func (s *Service) Status(ctx context.Context, sess *session.Session) models.SessionStatus {
	status := models.SessionStatus{SessionID: sess.ID}

	startMs, ok := session.Read[int64](ctx, sess, session.KeySearchStartTime)
	if !ok {
		status.Remaining = countdown.Format(0)
		return status
	}

	left := countdown.RemainingSeconds(countdown.StartFromMillis(startMs), s.now())
	status.RemainingSeconds = left
	status.Remaining = countdown.Format(left)
	status.Active = left > 0
	status.Expired = left == 0
	if status.Expired {
		s.expire(ctx, sess)
	}
	return status
}

// Countdown returns a ticker for the current hold.
func (s *Service) Countdown(ctx context.Context, sess *session.Session) (*countdown.Countdown, error) {
	startMs, ok := session.Read[int64](ctx, sess, session.KeySearchStartTime)
	if !ok {
		return nil, ErrNoSearch
	}
	return countdown.New(countdown.StartFromMillis(startMs), countdown.WithClock(s.now)), nil
}

// Reset forgets everything about the current tab.
func (s *Service) Reset(ctx context.Context, sess *session.Session) error {
	return sess.Clear(ctx, session.SearchKeys...)
}

// guard rejects steps that run without a search or after the hold ran out.
func (s *Service) guard(ctx context.Context, sess *session.Session) error {
	startMs, ok := session.Read[int64](ctx, sess, session.KeySearchStartTime)
	if !ok {
		return ErrNoSearch
	}
	if countdown.Expired(countdown.StartFromMillis(startMs), s.now()) {
		s.expire(ctx, sess)
		return ErrHoldExpired
	}
	return nil
}

func (s *Service) expire(ctx context.Context, sess *session.Session) {
	if !sess.Has(ctx, session.KeySelectedRoute) && !sess.Has(ctx, session.KeyCurrentBooking) &&
		!sess.Has(ctx, session.KeyBookingPassengers) {
		return
	}
	if err := sess.Clear(ctx, session.ExpiryKeys...); err != nil {
		slog.WarnContext(ctx, "failed to clear expired session", "session_id", sess.ID, "error", err)
		return
	}
	slog.InfoContext(ctx, "booking hold expired", "session_id", sess.ID)
}

func (s *Service) write(ctx context.Context, sess *session.Session, key string, value any) {
	if err := sess.Write(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "failed to write session value",
			"session_id", sess.ID, "key", key, "error", err)
	}
}

func (s *Service) criteria(ctx context.Context, sess *session.Session) (models.SearchCriteria, error) {
	c, ok := session.Read[models.SearchCriteria](ctx, sess, session.KeySearchParams)
	if !ok {
		return models.SearchCriteria{}, ErrNoSearch
	}
	return c, nil
}

func (s *Service) selectedRoute(ctx context.Context, sess *session.Session) (models.RouteOffer, error) {
	r, ok := session.Read[models.RouteOffer](ctx, sess, session.KeySelectedRoute)
	if !ok {
		return models.RouteOffer{}, ErrNoRoute
	}
	return r, nil
}
