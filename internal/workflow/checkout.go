package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dharmasatrya/travelbooking/internal/apiclient"
	"github.com/dharmasatrya/travelbooking/internal/auth"
	"github.com/dharmasatrya/travelbooking/internal/booking"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
	"github.com/dharmasatrya/travelbooking/pkg/currency"
)

// Submit builds the draft from the session and creates the booking. The
// idempotency key is stored before the call so a repeated submit of the same
// draft reuses it.
func (s *Service) Submit(ctx context.Context, sess *session.Session, token string, req models.SubmitBookingRequest) (*models.Booking, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}

	route, err := s.selectedRoute(ctx, sess)
	if err != nil {
		return nil, err
	}
	passengers, err := s.passengers(ctx, sess)
	if err != nil {
		return nil, err
	}
	contact, _ := session.Read[models.BookingContact](ctx, sess, session.KeyBookingContact)
	selected, _ := session.Read[models.SeatSelection](ctx, sess, session.KeySelectedSeats)

	draft, err := booking.Build(booking.Input{
		Route:         route,
		Passengers:    passengers,
		Contact:       contact,
		Seats:         selected,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		return nil, err
	}
	if route.TransportType.IsRoad() && len(selected) == 0 {
		return nil, ErrSeatsRequired
	}

	if err := s.checkToken(token); err != nil {
		return nil, err
	}

	var prev *models.IdempotencyToken
	if stored, ok := session.Read[models.IdempotencyToken](ctx, sess, session.KeyBookingIdempotency); ok {
		prev = &stored
	}
	idem := booking.IdempotencyTokenFor(prev, draft)
	if err := sess.Write(ctx, session.KeyBookingIdempotency, idem); err != nil {
		return nil, err
	}

	created, err := s.api.CreateBooking(ctx, token, draft, idem.Key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		slog.InfoContext(ctx, "dropping stale booking result", "session_id", sess.ID, "booking_id", created.ID)
		return nil, err
	}

	if len(created.SelectedSeats) == 0 && len(selected) > 0 {
		created.SelectedSeats = selected
	}
	s.write(ctx, sess, session.KeyCurrentBooking, created)

	slog.InfoContext(ctx, "booking created",
		"session_id", sess.ID,
		"booking_id", created.ID,
		"reference", created.BookingReference,
		"transport_type", created.TransportType,
	)
	return created, nil
}

// Summary is what the payment step shows: the cached booking plus the
// booking fee.
func (s *Service) Summary(ctx context.Context, sess *session.Session) (*models.BookingSummary, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}
	b, ok := session.Read[models.Booking](ctx, sess, session.KeyCurrentBooking)
	if !ok {
		return nil, ErrNoBooking
	}
	passengers, _ := session.Read[models.PassengerList](ctx, sess, session.KeyBookingPassengers)
	selected, _ := session.Read[models.SeatSelection](ctx, sess, session.KeySelectedSeats)

	code := b.Currency
	if code == "" {
		code = apiclient.DefaultCurrency
	}
	price := func(amount float64) models.Price {
		return models.Price{Amount: amount, Currency: code, Formatted: currency.Format(amount, code)}
	}

	return &models.BookingSummary{
		Booking:    b,
		Passengers: passengers,
		Seats:      selected,
		Fare:       price(b.TotalPrice),
		BookingFee: price(s.bookingFee),
		Total:      price(b.TotalPrice + s.bookingFee),
	}, nil
}

// InitiatePayment asks the API for a payment authorization for the cached
// booking.
func (s *Service) InitiatePayment(ctx context.Context, sess *session.Session, token string) (*models.PaymentResponse, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}
	b, ok := session.Read[models.Booking](ctx, sess, session.KeyCurrentBooking)
	if !ok {
		return nil, ErrNoBooking
	}
	if err := s.checkToken(token); err != nil {
		return nil, err
	}

	transport := b.TransportType
	if transport == "" {
		if route, err := s.selectedRoute(ctx, sess); err == nil {
			transport = route.TransportType
		}
	}

	resp, err := s.api.InitializePayment(ctx, token, s.PaymentRequestFor(b.ID, transport))
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "payment initialized",
		"session_id", sess.ID, "booking_id", b.ID, "reference", resp.Reference)
	return resp, nil
}

// PaymentRequestFor keeps the two flows' request shapes: flights send a
// callback URL, road trips send the card payment method.
func (s *Service) PaymentRequestFor(bookingID string, transport models.TransportType) models.PaymentRequest {
	req := models.PaymentRequest{BookingID: bookingID}
	if transport.IsRoad() {
		req.PaymentMethod = models.PaymentCard
		return req
	}
	if s.appURL != "" {
		req.CallbackURL = s.appURL + "/payment-success"
	}
	return req
}

// checkToken fails fast on a missing or visibly expired token so no request
// is sent that the API would reject with 401.
func (s *Service) checkToken(token string) error {
	if token == "" {
		return apiclient.NewAPIError("authorize", 0, "", apiclient.ErrUnauthorized)
	}
	if err := auth.CheckExpiry(token, s.now()); err != nil {
		return apiclient.NewAPIError("authorize", 0, "", fmt.Errorf("%w: %v", apiclient.ErrUnauthorized, err))
	}
	return nil
}
