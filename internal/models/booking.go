package models

import "strings"

const DefaultCountryCode = "+234"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// PassengerEntry is one passenger as collected step by step. The two flags
// track which parts of the form were saved; editing a part clears its flag.
type PassengerEntry struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    Gender `json:"gender"`

	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	KinName  string `json:"kin_name,omitempty"`
	KinPhone string `json:"kin_phone,omitempty"`

	NameConfirmed    bool `json:"name_confirmed"`
	ContactConfirmed bool `json:"contact_confirmed"`
}

func (p PassengerEntry) HasName() bool {
	return strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		p.Gender.Valid()
}

func (p PassengerEntry) HasContact() bool {
	return strings.TrimSpace(p.Email) != "" &&
		strings.TrimSpace(p.Phone) != "" &&
		strings.TrimSpace(p.KinName) != "" &&
		strings.TrimSpace(p.KinPhone) != ""
}

// Complete reports whether the entry can go into a booking. Flight passengers
// only need their name saved.
func (p PassengerEntry) Complete(road bool) bool {
	if !p.NameConfirmed || !p.HasName() {
		return false
	}
	if !road {
		return true
	}
	return p.ContactConfirmed && p.HasContact()
}

type PassengerList []PassengerEntry

func (l PassengerList) Validate() error {
	if len(l) < MinPassengers || len(l) > MaxPassengers {
		return ErrInvalidPassengers
	}
	return nil
}

// BookingContact is the booking-level contact form of the flight flow.
type BookingContact struct {
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	WhatsappNotification bool   `json:"whatsapp_notification"`
	ExtraBaggage         bool   `json:"extra_baggage"`
}

type SeatSelection []int

func (s SeatSelection) Validate() error {
	for _, n := range s {
		if n <= 0 {
			return ErrInvalidSeatNumber
		}
	}
	return nil
}

// External booking schema.

type PassengerDetails struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
}

type ContactDetails struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

type NextOfKin struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

type BookingMetadata struct {
	Contact              ContactDetails `json:"contact"`
	NextOfKin            *NextOfKin     `json:"next_of_kin,omitempty"`
	SelectedSeats        []int          `json:"selected_seats,omitempty"`
	WhatsappNotification bool           `json:"whatsapp_notification"`
	ExtraBaggage         bool           `json:"extra_baggage"`
}

// BookingDraft is the body of POST /bookings.
type BookingDraft struct {
	ProviderReference string             `json:"provider_reference"`
	TransportType     TransportType      `json:"transport_type"`
	Passengers        []PassengerDetails `json:"passengers"`
	Metadata          BookingMetadata    `json:"metadata"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is owned by the upstream service. The session keeps a copy for
// the payment step only.
type Booking struct {
	ID               string        `json:"id"`
	BookingReference string        `json:"booking_reference"`
	UserID           string        `json:"user_id,omitempty"`
	TransportType    TransportType `json:"transport_type"`
	Status           BookingStatus `json:"status"`
	Origin           string        `json:"origin"`
	Destination      string        `json:"destination"`
	DepartureDate    string        `json:"departure_date"`
	TotalPassengers  int           `json:"total_passengers"`
	TotalPrice       float64       `json:"total_price"`
	Currency         string        `json:"currency"`
	CreatedAt        string        `json:"created_at"`
	SelectedSeats    []int         `json:"selected_seats,omitempty"`
	ExpiresAt        *string       `json:"expires_at,omitempty"`
}

func (b Booking) Validate() error {
	if b.ID == "" {
		return ErrMissingBookingID
	}
	return nil
}

// IdempotencyToken ties a client-generated key to the draft it was minted for.
type IdempotencyToken struct {
	Fingerprint string `json:"fingerprint"`
	Key         string `json:"key"`
}

type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentWallet       PaymentMethod = "wallet"
)

type PaymentRequest struct {
	BookingID     string        `json:"booking_id"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	CallbackURL   string        `json:"callback_url,omitempty"`
}

type PaymentResponse struct {
	PaymentID        string  `json:"payment_id,omitempty"`
	AuthorizationURL *string `json:"authorization_url,omitempty"`
	AccessCode       *string `json:"access_code,omitempty"`
	Reference        string  `json:"reference"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    *int   `json:"expires_in,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

const ErrInvalidSeatNumber ValidationError = "seat numbers must be positive"
