package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
)

func (h *Handler) ListPassengers(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.svc.Passengers(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"passengers": list})
}

func (h *Handler) SavePassengerName(c echo.Context) error {
	var req models.PassengerNameRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	return h.updatePassenger(c, func(ctx context.Context, sess *session.Session, idx int) (*models.PassengerEntry, error) {
		return h.svc.SavePassengerName(ctx, sess, idx, req)
	})
}

func (h *Handler) EditPassengerName(c echo.Context) error {
	return h.updatePassenger(c, h.svc.EditPassengerName)
}

func (h *Handler) SavePassengerContact(c echo.Context) error {
	var req models.PassengerContactRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	return h.updatePassenger(c, func(ctx context.Context, sess *session.Session, idx int) (*models.PassengerEntry, error) {
		return h.svc.SavePassengerContact(ctx, sess, idx, req)
	})
}

func (h *Handler) EditPassengerContact(c echo.Context) error {
	return h.updatePassenger(c, h.svc.EditPassengerContact)
}

// SaveContact stores the booking contact and add-ons of the flight flow.
func (h *Handler) SaveContact(c echo.Context) error {
	var req models.BookingContact
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.SaveContact(c.Request().Context(), sess, req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

type passengerUpdate func(ctx context.Context, sess *session.Session, idx int) (*models.PassengerEntry, error)

func (h *Handler) updatePassenger(c echo.Context, update passengerUpdate) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return respondError(c, models.ErrInvalidPassengerIndex)
	}

	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}

	entry, err := update(c.Request().Context(), sess, idx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}
