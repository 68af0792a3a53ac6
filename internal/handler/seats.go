package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/seats"
)

// SeatMapResponse carries the allocation together with a warning when the
// last tap was refused.
type SeatMapResponse struct {
	Allocation *seats.Allocation     `json:"allocation"`
	Warning    *models.ErrorResponse `json:"warning,omitempty"`
}

func (h *Handler) GetSeats(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	alloc, err := h.svc.Seats(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SeatMapResponse{Allocation: alloc})
}

func (h *Handler) OpenSeats(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	alloc, err := h.svc.OpenSeats(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SeatMapResponse{Allocation: alloc})
}

// ToggleSeat applies one tap. Taps at the limit or on a booked seat answer 409
// with the unchanged map so the client can redraw and show the warning.
func (h *Handler) ToggleSeat(c echo.Context) error {
	var req models.SeatToggleRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}

	alloc, err := h.svc.ToggleSeat(c.Request().Context(), sess, req.Seat)
	if err != nil {
		if alloc != nil && (errors.Is(err, seats.ErrLimitReached) || errors.Is(err, seats.ErrNotSelectable)) {
			warning := classify(err)
			return c.JSON(warning.Code, SeatMapResponse{Allocation: alloc, Warning: &warning})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SeatMapResponse{Allocation: alloc})
}

func (h *Handler) ConfirmSeats(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	selected, err := h.svc.ConfirmSeats(c.Request().Context(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]int{"selected_seats": selected})
}

func (h *Handler) CloseSeats(c echo.Context) error {
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.CloseSeats(c.Request().Context(), sess); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
