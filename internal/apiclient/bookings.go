package apiclient

import (
	"context"
	"net/http"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/ratelimit"
)

// Search runs POST /bookings/search. Criteria are validated before anything is
// sent. Persisting the results is left to the caller.
func (c *Client) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	var resp models.SearchResponse
	err := c.do(ctx, call{
		op:      "search",
		limit:   ratelimit.OpSearch,
		method:  http.MethodPost,
		path:    "/bookings/search",
		body:    criteria,
		failure: ErrSearchFailed,
	}, &resp)
	if err != nil {
		return nil, err
	}

	normalizeResults(ctx, &resp, criteria)
	return &resp, nil
}

// CreateBooking runs POST /bookings. The response is the booking itself, not an
// envelope. idempotencyKey is sent so a resubmitted draft is not booked twice.
func (c *Client) CreateBooking(ctx context.Context, token string, draft models.BookingDraft, idempotencyKey string) (*models.Booking, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[HeaderIdempotencyKey] = idempotencyKey
	}

	var booking models.Booking
	err := c.do(ctx, call{
		op:      "create booking",
		limit:   ratelimit.OpBooking,
		method:  http.MethodPost,
		path:    "/bookings/",
		token:   token,
		body:    draft,
		headers: headers,
		failure: ErrBookingFailed,
	}, &booking)
	if err != nil {
		return nil, err
	}

	if err := booking.Validate(); err != nil {
		return nil, NewAPIError("create booking", http.StatusOK, "", ErrBookingFailed)
	}
	return &booking, nil
}

func (c *Client) InitializePayment(ctx context.Context, token string, req models.PaymentRequest) (*models.PaymentResponse, error) {
	if req.BookingID == "" {
		return nil, models.ErrMissingBookingID
	}

	var resp models.PaymentResponse
	err := c.do(ctx, call{
		op:      "initialize payment",
		limit:   ratelimit.OpPayment,
		method:  http.MethodPost,
		path:    "/payments/initialize",
		token:   token,
		body:    req,
		failure: ErrPaymentFailed,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
