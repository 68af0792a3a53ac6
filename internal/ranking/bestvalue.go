package ranking

import (
	"math"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

const (
	BadgeCheapest = "cheapest"
	BadgeFastest  = "fastest"
)

func CalculateScores(routes []models.RouteOffer) []models.RouteOffer {
	if len(routes) == 0 {
		return routes
	}

	maxPrice := findMaxPrice(routes)
	maxDuration := findMaxDuration(routes)

	result := make([]models.RouteOffer, len(routes))
	for i, r := range routes {
		result[i] = r
		result[i].BestValueScore = CalculateBestValue(r, maxPrice, maxDuration)
	}

	return result
}

// Lower score = better value
func CalculateBestValue(route models.RouteOffer, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (route.Price.Amount / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 {
		durationScore = (float64(route.DurationMinutes) / maxDuration) * 100
	}

	stopsScore := float64(route.Stops) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}

// MarkBadges tags the cheapest and the fastest offer. Ties go to the first
// offer in the slice; offers without a known duration never get "fastest".
func MarkBadges(routes []models.RouteOffer) []models.RouteOffer {
	if len(routes) == 0 {
		return routes
	}

	result := make([]models.RouteOffer, len(routes))
	copy(result, routes)

	cheapest, fastest := 0, -1
	for i := range result {
		result[i].Badges = nil
		if result[i].Price.Amount < result[cheapest].Price.Amount {
			cheapest = i
		}
		if result[i].DurationMinutes > 0 &&
			(fastest < 0 || result[i].DurationMinutes < result[fastest].DurationMinutes) {
			fastest = i
		}
	}

	result[cheapest].Badges = append(result[cheapest].Badges, BadgeCheapest)
	if fastest >= 0 {
		result[fastest].Badges = append(result[fastest].Badges, BadgeFastest)
	}
	return result
}

func findMaxPrice(routes []models.RouteOffer) float64 {
	maxPrice := 0.0
	for _, r := range routes {
		if r.Price.Amount > maxPrice {
			maxPrice = r.Price.Amount
		}
	}
	return maxPrice
}

func findMaxDuration(routes []models.RouteOffer) float64 {
	maxDuration := 0.0
	for _, r := range routes {
		dur := float64(r.DurationMinutes)
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}
