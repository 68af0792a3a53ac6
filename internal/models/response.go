package models

type SearchResponse struct {
	Results      []RouteOffer `json:"results"`
	TotalResults int          `json:"total_results"`
	SearchID     string       `json:"search_id"`
}

func (r SearchResponse) Validate() error {
	for _, route := range r.Results {
		if err := route.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SearchMetadata struct {
	SessionID    string `json:"session_id"`
	SearchID     string `json:"search_id"`
	TotalResults int    `json:"total_results"`
	SearchTimeMs int64  `json:"search_time_ms"`
}

type SearchResultsResponse struct {
	Criteria SearchCriteria `json:"search_criteria"`
	Metadata SearchMetadata `json:"metadata"`
	Results  []RouteOffer   `json:"results"`
}

type SessionStatus struct {
	SessionID        string `json:"session_id"`
	Active           bool   `json:"active"`
	Expired          bool   `json:"expired"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Remaining        string `json:"remaining"`
}

// BookingSummary is what the payment step shows before redirecting.
type BookingSummary struct {
	Booking    Booking          `json:"booking"`
	Passengers []PassengerEntry `json:"passengers,omitempty"`
	Seats      []int            `json:"seats,omitempty"`
	Fare       Price            `json:"fare"`
	BookingFee Price            `json:"booking_fee"`
	Total      Price            `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"`
}
