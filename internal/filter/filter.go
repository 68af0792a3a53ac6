package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/ranking"
	"github.com/dharmasatrya/travelbooking/internal/timezone"
)

// Apply filters and orders stored search results and marks the cheapest and
// fastest offers. The input slice is left untouched.
func Apply(routes []models.RouteOffer, filters *models.SearchFilters, sortBy, sortOrder string) []models.RouteOffer {
	filtered := applyFilters(routes, filters)

	if strings.EqualFold(sortBy, "best_value") {
		filtered = ranking.CalculateScores(filtered)
	}

	filtered = ranking.MarkBadges(filtered)
	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(routes []models.RouteOffer, filters *models.SearchFilters) []models.RouteOffer {
	result := make([]models.RouteOffer, 0, len(routes))

	for _, r := range routes {
		if filters == nil || matchesFilters(r, filters) {
			result = append(result, r)
		}
	}

	return result
}

func matchesFilters(r models.RouteOffer, filters *models.SearchFilters) bool {
	if filters.PriceMin != nil && r.Price.Amount < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && r.Price.Amount > *filters.PriceMax {
		return false
	}

	if filters.MaxStops != nil && r.Stops > *filters.MaxStops {
		return false
	}

	if len(filters.Providers) > 0 {
		found := false
		for _, p := range filters.Providers {
			if strings.EqualFold(r.Provider, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filters.DepartureTimeMin != nil || filters.DepartureTimeMax != nil {
		dep, err := timezone.MinutesOfDay(r.Departure.Time)
		if err == nil {
			if filters.DepartureTimeMin != nil {
				if minTime, err := timezone.MinutesOfDay(*filters.DepartureTimeMin); err == nil && dep < minTime {
					return false
				}
			}
			if filters.DepartureTimeMax != nil {
				if maxTime, err := timezone.MinutesOfDay(*filters.DepartureTimeMax); err == nil && dep > maxTime {
					return false
				}
			}
		}
	}

	if filters.MaxDuration != nil && r.DurationMinutes > *filters.MaxDuration {
		return false
	}

	return true
}

func applySort(routes []models.RouteOffer, sortBy, sortOrder string) []models.RouteOffer {
	if len(routes) == 0 {
		return routes
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "cheapest":
		sort.SliceStable(routes, func(i, j int) bool {
			return routes[i].Price.Amount < routes[j].Price.Amount
		})

	case "fastest":
		sort.SliceStable(routes, func(i, j int) bool {
			return durationKey(routes[i]) < durationKey(routes[j])
		})

	case "duration":
		sort.SliceStable(routes, func(i, j int) bool {
			if ascending {
				return durationKey(routes[i]) < durationKey(routes[j])
			}
			return routes[i].DurationMinutes > routes[j].DurationMinutes
		})

	case "departure":
		sort.SliceStable(routes, func(i, j int) bool {
			a, b := departureKey(routes[i]), departureKey(routes[j])
			if ascending {
				return a < b
			}
			return a > b
		})

	case "best_value":
		sort.SliceStable(routes, func(i, j int) bool {
			if ascending {
				return routes[i].BestValueScore < routes[j].BestValueScore
			}
			return routes[i].BestValueScore > routes[j].BestValueScore
		})

	case "stops":
		sort.SliceStable(routes, func(i, j int) bool {
			if ascending {
				return routes[i].Stops < routes[j].Stops
			}
			return routes[i].Stops > routes[j].Stops
		})

	default:
		// price
		sort.SliceStable(routes, func(i, j int) bool {
			if ascending {
				return routes[i].Price.Amount < routes[j].Price.Amount
			}
			return routes[i].Price.Amount > routes[j].Price.Amount
		})
	}

	return routes
}

// durationKey sorts offers with an unknown duration last.
func durationKey(r models.RouteOffer) int {
	if r.DurationMinutes <= 0 {
		return int(^uint(0) >> 1)
	}
	return r.DurationMinutes
}

func departureKey(r models.RouteOffer) string {
	t, err := timezone.ParseISO(r.Departure.Date + "T" + r.Departure.Time)
	if err != nil {
		return r.Departure.Date + " " + r.Departure.Time
	}
	return t.UTC().Format("2006-01-02T15:04:05")
}
