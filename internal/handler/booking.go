package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

// SubmitBooking builds the draft from the session and creates the booking
// upstream with the caller's bearer token.
func (h *Handler) SubmitBooking(c echo.Context) error {
	var req models.SubmitBookingRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}

	created, err := h.svc.Submit(c.Request().Context(), sess, bearerToken(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) BookingSummary(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.svc.Summary(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) InitializePayment(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.svc.InitiatePayment(c.Request().Context(), sess, bearerToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
