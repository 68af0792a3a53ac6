package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/apiclient"
	"github.com/dharmasatrya/travelbooking/internal/booking"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/seats"
	"github.com/dharmasatrya/travelbooking/internal/session"
	"github.com/dharmasatrya/travelbooking/internal/workflow"
)

// StatusClientClosedRequest is recorded when the caller went away before the
// upstream answered.
const StatusClientClosedRequest = 499

type errorMapping struct {
	err    error
	status int
	code   string
}

var stateErrors = []errorMapping{
	{session.ErrMissingID, http.StatusBadRequest, "missing_session"},
	{workflow.ErrHoldExpired, http.StatusGone, "hold_expired"},
	{workflow.ErrNoSearch, http.StatusNotFound, "no_active_search"},
	{workflow.ErrRouteNotFound, http.StatusNotFound, "route_not_found"},
	{workflow.ErrNoRoute, http.StatusConflict, "no_route_selected"},
	{workflow.ErrNotRoadRoute, http.StatusConflict, "not_road_route"},
	{workflow.ErrNoBooking, http.StatusConflict, "no_booking"},
	{workflow.ErrSeatsRequired, http.StatusBadRequest, "seats_required"},
	{seats.ErrLimitReached, http.StatusConflict, "seat_limit_reached"},
	{seats.ErrNotSelectable, http.StatusConflict, "seat_not_selectable"},
	{seats.ErrUnknownSeat, http.StatusNotFound, "unknown_seat"},
	{seats.ErrNotOpen, http.StatusConflict, "seat_selection_closed"},
	{seats.ErrSeatCountMismatch, http.StatusBadRequest, "seat_count_mismatch"},
	{seats.ErrInvalidPassengers, http.StatusBadRequest, "validation_error"},
}

var upstreamCodes = []errorMapping{
	{apiclient.ErrSearchFailed, http.StatusBadGateway, "search_error"},
	{apiclient.ErrBookingFailed, http.StatusBadGateway, "booking_error"},
	{apiclient.ErrPaymentFailed, http.StatusBadGateway, "payment_error"},
	{apiclient.ErrAuthFailed, http.StatusBadGateway, "auth_error"},
}

// respondError writes err as an ErrorResponse.
func respondError(c echo.Context, err error) error {
	resp := classify(err)
	if resp.Code == StatusClientClosedRequest {
		slog.InfoContext(c.Request().Context(), "client went away", "path", c.Path())
		return c.NoContent(resp.Code)
	}
	if resp.Code >= http.StatusInternalServerError {
		slog.WarnContext(c.Request().Context(), "request failed",
			"path", c.Path(),
			"status", resp.Code,
			"error", err,
		)
	}
	return c.JSON(resp.Code, resp)
}

func classify(err error) models.ErrorResponse {
	var (
		verr  models.ValidationError
		ferr  *booking.FieldError
		apiEr *apiclient.APIError
	)

	switch {
	case apiclient.IsCanceled(err):
		return models.ErrorResponse{Error: "request_cancelled", Message: err.Error(), Code: StatusClientClosedRequest}
	case errors.As(err, &verr):
		return errorResponse(http.StatusBadRequest, "validation_error", verr.Error())
	case errors.As(err, &ferr):
		resp := errorResponse(http.StatusBadRequest, "validation_error", ferr.Msg)
		resp.Field = ferr.Field
		return resp
	}

	for _, m := range stateErrors {
		if errors.Is(err, m.err) {
			return errorResponse(m.status, m.code, err.Error())
		}
	}

	if errors.As(err, &apiEr) {
		return classifyUpstream(apiEr)
	}
	return errorResponse(http.StatusInternalServerError, "internal_error", "Something went wrong, please try again")
}

// classifyUpstream keeps the API's own 4xx status and message so the user
// sees why the booking was refused.
func classifyUpstream(e *apiclient.APIError) models.ErrorResponse {
	switch {
	case errors.Is(e, apiclient.ErrUnauthorized):
		return errorResponse(http.StatusUnauthorized, "session_expired", e.Message())
	case errors.Is(e, apiclient.ErrNetwork):
		return errorResponse(http.StatusBadGateway, "network_error", e.Message())
	}

	code := "upstream_error"
	for _, m := range upstreamCodes {
		if errors.Is(e, m.err) {
			code = m.code
			break
		}
	}
	status := http.StatusBadGateway
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		status = e.StatusCode
	}
	return errorResponse(status, code, e.Message())
}

func errorResponse(status int, code, msg string) models.ErrorResponse {
	return models.ErrorResponse{
		Error:   code,
		Message: msg,
		Code:    status,
	}
}

func bindError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request body: " + err.Error(),
		Code:    http.StatusBadRequest,
	})
}
