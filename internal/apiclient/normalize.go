package apiclient

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/timezone"
	"github.com/dharmasatrya/travelbooking/pkg/currency"
)

const DefaultCurrency = "NGN"

var travelTimeRe = regexp.MustCompile(`(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?`)

// ParseTravelTime reads durations such as "1h 20m", "45m" or "6h".
func ParseTravelTime(s string) int {
	matches := travelTimeRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))

	var hours, mins int
	if len(matches) >= 2 && matches[1] != "" {
		hours, _ = strconv.Atoi(matches[1])
	}
	if len(matches) >= 3 && matches[2] != "" {
		mins, _ = strconv.Atoi(matches[2])
	}

	return hours*60 + mins
}

// normalizeResults fills the derived fields of each offer and drops offers that
// cannot be booked. The upstream total is kept unless offers were dropped.
func normalizeResults(ctx context.Context, resp *models.SearchResponse, criteria models.SearchCriteria) {
	results := make([]models.RouteOffer, 0, len(resp.Results))
	for _, r := range resp.Results {
		offer, ok := normalizeOffer(r, criteria)
		if !ok {
			slog.WarnContext(ctx, "dropping unbookable offer", "id", r.ID, "provider", r.Provider)
			continue
		}
		results = append(results, offer)
	}

	if len(results) != len(resp.Results) || resp.TotalResults == 0 {
		resp.TotalResults = len(results)
	}
	resp.Results = results
}

func normalizeOffer(r models.RouteOffer, criteria models.SearchCriteria) (models.RouteOffer, bool) {
	if r.TransportType == "" && len(criteria.TransportTypes) == 1 {
		r.TransportType = criteria.TransportTypes[0]
	}
	if err := r.Validate(); err != nil {
		return models.RouteOffer{}, false
	}

	r.DurationMinutes = ParseTravelTime(r.Duration)
	if r.DurationMinutes == 0 {
		r.DurationMinutes = minutesBetween(r.Departure, r.Arrival)
	}

	if r.Price.Currency == "" || r.Price.Currency == "₦" {
		r.Price.Currency = DefaultCurrency
	}
	r.Price.Formatted = currency.Format(r.Price.Amount, r.Price.Currency)

	return r, true
}

func minutesBetween(dep, arr models.Endpoint) int {
	if dep.Date == "" || arr.Date == "" {
		return 0
	}
	from, err := timezone.ParseISO(dep.Date + "T" + dep.Time)
	if err != nil {
		return 0
	}
	to, err := timezone.ParseISO(arr.Date + "T" + arr.Time)
	if err != nil || !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Minutes())
}
