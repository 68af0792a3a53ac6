package models

import (
	"strings"

	"github.com/dharmasatrya/travelbooking/internal/timezone"
)

const (
	MinPassengers = 1
	MaxPassengers = 10
)

var seatTypes = map[string]bool{
	"economy":     true,
	"business":    true,
	"first_class": true,
	"sleeper":     true,
	"standard":    true,
}

type SearchFilters struct {
	PriceMin         *float64 `json:"price_min,omitempty"`
	PriceMax         *float64 `json:"price_max,omitempty"`
	MaxStops         *int     `json:"max_stops,omitempty"`
	Providers        []string `json:"providers,omitempty"`
	DepartureTimeMin *string  `json:"departure_time_min,omitempty"`
	DepartureTimeMax *string  `json:"departure_time_max,omitempty"`
	MaxDuration      *int     `json:"max_duration,omitempty"`
}

// SearchCriteria is the body of POST /bookings/search. Origin and destination
// are not compared; the upstream API decides whether a route makes sense.
type SearchCriteria struct {
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	DepartureDate  string          `json:"departure_date"`
	ReturnDate     *string         `json:"return_date,omitempty"`
	Passengers     int             `json:"passengers"`
	TransportTypes []TransportType `json:"transport_types"`
	SeatType       *string         `json:"seat_type,omitempty"`
}

func (r *SearchCriteria) Validate() error {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)

	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := timezone.ParseISO(r.DepartureDate); err != nil {
		return ErrInvalidDepartureDate
	}
	if r.ReturnDate != nil && *r.ReturnDate != "" {
		if _, err := timezone.ParseISO(*r.ReturnDate); err != nil {
			return ErrInvalidReturnDate
		}
	}
	if r.Passengers < MinPassengers || r.Passengers > MaxPassengers {
		return ErrInvalidPassengers
	}
	if len(r.TransportTypes) == 0 {
		return ErrMissingTransportType
	}
	for _, t := range r.TransportTypes {
		if !t.Valid() {
			return ErrInvalidTransportType
		}
	}
	if r.SeatType != nil && *r.SeatType != "" && !seatTypes[*r.SeatType] {
		return ErrInvalidSeatType
	}
	return nil
}

// Road reports whether the search targets road transport only.
func (r SearchCriteria) Road() bool {
	if len(r.TransportTypes) == 0 {
		return false
	}
	for _, t := range r.TransportTypes {
		if !t.IsRoad() {
			return false
		}
	}
	return true
}

// ResultsQuery re-reads stored search results with filtering and ordering.
type ResultsQuery struct {
	Filters   *SearchFilters `json:"filters,omitempty"`
	SortBy    string         `json:"sort_by,omitempty"`
	SortOrder string         `json:"sort_order,omitempty"`
}

func (q *ResultsQuery) Validate() error {
	if q.SortBy == "" {
		q.SortBy = "price"
	}
	if q.SortOrder == "" {
		q.SortOrder = "asc"
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		return ErrInvalidSortOrder
	}
	return nil
}

type SelectRouteRequest struct {
	RouteID string `json:"route_id"`
}

type SeatToggleRequest struct {
	Seat int `json:"seat"`
}

type PassengerNameRequest struct {
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
}

type PassengerContactRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	KinName  string `json:"kin_name"`
	KinPhone string `json:"kin_phone"`
}

type SubmitBookingRequest struct {
	TermsAccepted bool `json:"terms_accepted"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin            ValidationError = "origin is required"
	ErrMissingDestination       ValidationError = "destination is required"
	ErrMissingDepartureDate     ValidationError = "departure_date is required"
	ErrInvalidDepartureDate     ValidationError = "departure_date must be an ISO-8601 date-time"
	ErrInvalidReturnDate        ValidationError = "return_date must be an ISO-8601 date-time"
	ErrInvalidPassengers        ValidationError = "passengers must be between 1 and 10"
	ErrMissingTransportType     ValidationError = "transport_types is required"
	ErrInvalidTransportType     ValidationError = "transport type must be one of flight, bus, train"
	ErrInvalidSeatType          ValidationError = "seat_type must be one of economy, business, first_class, sleeper, standard"
	ErrInvalidSortOrder         ValidationError = "sort_order must be asc or desc"
	ErrMissingRouteID           ValidationError = "route id is required"
	ErrMissingProviderReference ValidationError = "provider_reference is required"
	ErrMissingBookingID         ValidationError = "booking id is required"
	ErrInvalidPassengerIndex    ValidationError = "passenger index out of range"
)
