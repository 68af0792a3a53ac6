package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

// Search runs a new search for the tab, starting a session when the caller
// has none yet, and answers with the sorted results.
func (h *Handler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchCriteria
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	sess, err := h.session(c, true)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.svc.Search(ctx, sess, req); err != nil {
		return respondError(c, err)
	}

	results, err := h.svc.Results(ctx, sess, models.ResultsQuery{})
	if err != nil {
		return respondError(c, err)
	}
	results.Metadata.SearchTimeMs = time.Since(startTime).Milliseconds()

	return c.JSON(http.StatusOK, results)
}

// Results re-reads the stored search with the given filters and ordering.
func (h *Handler) Results(c echo.Context) error {
	startTime := time.Now()

	q, err := resultsQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse query: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}

	results, err := h.svc.Results(c.Request().Context(), sess, q)
	if err != nil {
		return respondError(c, err)
	}
	results.Metadata.SearchTimeMs = time.Since(startTime).Milliseconds()

	return c.JSON(http.StatusOK, results)
}

func (h *Handler) SelectRoute(c echo.Context) error {
	var req models.SelectRouteRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	sess, err := h.session(c, false)
	if err != nil {
		return respondError(c, err)
	}

	route, err := h.svc.SelectRoute(c.Request().Context(), sess, req.RouteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

func resultsQuery(c echo.Context) (models.ResultsQuery, error) {
	var (
		q                    models.ResultsQuery
		f                    models.SearchFilters
		priceMin, priceMax   float64
		maxStops, maxMinutes int
		depMin, depMax       string
	)

	err := echo.QueryParamsBinder(c).
		String("sort_by", &q.SortBy).
		String("sort_order", &q.SortOrder).
		Float64("price_min", &priceMin).
		Float64("price_max", &priceMax).
		Int("max_stops", &maxStops).
		Int("max_duration", &maxMinutes).
		String("departure_time_min", &depMin).
		String("departure_time_max", &depMax).
		Strings("provider", &f.Providers).
		BindError()
	if err != nil {
		return q, err
	}

	set := false
	if c.QueryParam("price_min") != "" {
		f.PriceMin, set = &priceMin, true
	}
	if c.QueryParam("price_max") != "" {
		f.PriceMax, set = &priceMax, true
	}
	if c.QueryParam("max_stops") != "" {
		f.MaxStops, set = &maxStops, true
	}
	if c.QueryParam("max_duration") != "" {
		f.MaxDuration, set = &maxMinutes, true
	}
	if depMin != "" {
		f.DepartureTimeMin, set = &depMin, true
	}
	if depMax != "" {
		f.DepartureTimeMax, set = &depMax, true
	}
	if len(f.Providers) > 0 {
		set = true
	}
	if set {
		q.Filters = &f
	}
	return q, nil
}
