package models

type TransportType string

const (
	TransportFlight TransportType = "flight"
	TransportBus    TransportType = "bus"
	TransportTrain  TransportType = "train"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportFlight, TransportBus, TransportTrain:
		return true
	}
	return false
}

// IsRoad reports whether bookings of this type go through seat selection and
// per-passenger contact collection.
func (t TransportType) IsRoad() bool {
	return t == TransportBus || t == TransportTrain
}

type Endpoint struct {
	Location string  `json:"location"`
	Terminal *string `json:"terminal,omitempty"`
	Time     string  `json:"time"`
	Date     string  `json:"date"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted,omitempty"`
}

type Baggage struct {
	CarryOn *string `json:"carry_on,omitempty"`
	Checked *string `json:"checked,omitempty"`
}

type RouteOffer struct {
	ID                string        `json:"id"`
	ProviderReference string        `json:"provider_reference"`
	TransportType     TransportType `json:"transport_type"`
	Provider          string        `json:"provider"`
	ProviderLogo      *string       `json:"provider_logo,omitempty"`
	VehicleNumber     *string       `json:"vehicle_number,omitempty"`
	FlightNumber      *string       `json:"flight_number,omitempty"`
	Departure         Endpoint      `json:"departure"`
	Arrival           Endpoint      `json:"arrival"`
	Duration          string        `json:"duration"`
	Stops             int           `json:"stops"`
	Price             Price         `json:"price"`
	AvailableSeats    *int          `json:"available_seats,omitempty"`
	Baggage           Baggage       `json:"baggage"`
	Amenities         []string      `json:"amenities,omitempty"`

	DurationMinutes int      `json:"duration_minutes,omitempty"`
	BestValueScore  float64  `json:"best_value_score,omitempty"`
	Badges          []string `json:"badges,omitempty"`
}

func (r RouteOffer) Validate() error {
	if r.ID == "" {
		return ErrMissingRouteID
	}
	if r.ProviderReference == "" {
		return ErrMissingProviderReference
	}
	if !r.TransportType.Valid() {
		return ErrInvalidTransportType
	}
	return nil
}
