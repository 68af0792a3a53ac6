package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

func route(id, provider string, amount float64, minutes, stops int, depTime string) models.RouteOffer {
	return models.RouteOffer{
		ID:                id,
		ProviderReference: "ref-" + id,
		TransportType:     models.TransportBus,
		Provider:          provider,
		Departure:         models.Endpoint{Location: "Lagos", Date: "2025-03-20", Time: depTime},
		Price:             models.Price{Amount: amount, Currency: "NGN"},
		DurationMinutes:   minutes,
		Stops:             stops,
	}
}

func ids(routes []models.RouteOffer) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.ID
	}
	return out
}

func sample() []models.RouteOffer {
	return []models.RouteOffer{
		route("a", "GUO", 15000, 630, 0, "08:00"),
		route("b", "ABC Transport", 12000, 0, 1, "06:30"),
		route("c", "GUO", 18000, 540, 0, "14:15"),
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		sortBy, order string
		want          []string
	}{
		{"price", "asc", []string{"b", "a", "c"}},
		{"price", "desc", []string{"c", "a", "b"}},
		{"cheapest", "", []string{"b", "a", "c"}},
		{"fastest", "", []string{"c", "a", "b"}},
		{"departure", "asc", []string{"b", "a", "c"}},
		{"stops", "desc", []string{"b", "a", "c"}},
		{"", "", []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+"_"+tt.order, func(t *testing.T) {
			got := Apply(sample(), nil, tt.sortBy, tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_Filters(t *testing.T) {
	maxPrice := 16000.0
	maxStops := 0
	depMin := "07:00"
	maxDuration := 600

	tests := []struct {
		name    string
		filters models.SearchFilters
		want    []string
	}{
		{name: "price", filters: models.SearchFilters{PriceMax: &maxPrice}, want: []string{"b", "a"}},
		{name: "stops", filters: models.SearchFilters{MaxStops: &maxStops}, want: []string{"a", "c"}},
		{name: "provider", filters: models.SearchFilters{Providers: []string{"guo"}}, want: []string{"a", "c"}},
		{name: "departure", filters: models.SearchFilters{DepartureTimeMin: &depMin}, want: []string{"a", "c"}},
		{name: "duration", filters: models.SearchFilters{MaxDuration: &maxDuration}, want: []string{"b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filters
			got := Apply(sample(), &f, "price", "asc")
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_BadgesAndInputUntouched(t *testing.T) {
	in := sample()
	got := Apply(in, nil, "best_value", "asc")

	byID := map[string]models.RouteOffer{}
	for _, r := range got {
		byID[r.ID] = r
	}
	assert.Equal(t, []string{"cheapest"}, byID["b"].Badges)
	assert.Equal(t, []string{"fastest"}, byID["c"].Badges)
	assert.NotZero(t, byID["a"].BestValueScore)

	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
	assert.Empty(t, in[1].Badges)
}
