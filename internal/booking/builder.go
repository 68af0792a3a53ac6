// Package booking turns collected passenger and contact details into the
// booking API's request body. Nothing here touches the network or the session.
package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

const PassengerTypeAdult = "adult"

// FieldError names the first input that stopped a draft from being built.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

func fieldErr(field, msg string) *FieldError {
	return &FieldError{Field: field, Msg: msg}
}

type Input struct {
	Route         models.RouteOffer
	Passengers    []models.PassengerEntry
	Contact       models.BookingContact
	Seats         []int
	TermsAccepted bool
}

// Build validates in and assembles the draft. Checks run in a fixed order and
// the first failure is returned.
func Build(in Input) (models.BookingDraft, error) {
	road := in.Route.TransportType.IsRoad()

	if !in.TermsAccepted {
		return models.BookingDraft{}, fieldErr("terms_accepted", "you must accept the terms and conditions")
	}
	if in.Route.ProviderReference == "" {
		return models.BookingDraft{}, fieldErr("provider_reference", "no route selected")
	}
	if len(in.Passengers) == 0 {
		return models.BookingDraft{}, fieldErr("passengers", "at least one passenger is required")
	}

	contact := resolveContact(in, road)
	if strings.TrimSpace(contact.Email) == "" {
		return models.BookingDraft{}, fieldErr("contact.email", "email is required")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		return models.BookingDraft{}, fieldErr("contact.phone", "phone is required")
	}

	for i, p := range in.Passengers {
		prefix := fmt.Sprintf("passengers[%d].", i)
		if strings.TrimSpace(p.FirstName) == "" {
			return models.BookingDraft{}, fieldErr(prefix+"first_name", "first name is required")
		}
		if strings.TrimSpace(p.LastName) == "" {
			return models.BookingDraft{}, fieldErr(prefix+"last_name", "last name is required")
		}
		if p.Gender == "" {
			return models.BookingDraft{}, fieldErr(prefix+"gender", "gender is required")
		}
		if !p.Gender.Valid() {
			return models.BookingDraft{}, fieldErr(prefix+"gender", "gender must be male or female")
		}
		if !p.Complete(false) {
			return models.BookingDraft{}, fieldErr(prefix+"name", "passenger name must be saved")
		}
	}

	if road {
		for i, p := range in.Passengers {
			prefix := fmt.Sprintf("passengers[%d].", i)
			if !p.ContactConfirmed || strings.TrimSpace(p.Email) == "" || strings.TrimSpace(p.Phone) == "" {
				return models.BookingDraft{}, fieldErr(prefix+"contact", "contact details must be saved")
			}
			if strings.TrimSpace(p.KinName) == "" || strings.TrimSpace(p.KinPhone) == "" {
				return models.BookingDraft{}, fieldErr(prefix+"next_of_kin", "next of kin details must be saved")
			}
		}
		if len(in.Seats) > 0 && len(in.Seats) != len(in.Passengers) {
			return models.BookingDraft{}, fieldErr("selected_seats",
				fmt.Sprintf("select exactly %d seat(s) for %d passenger(s)", len(in.Passengers), len(in.Passengers)))
		}
	}

	passengers := make([]models.PassengerDetails, len(in.Passengers))
	for i, p := range in.Passengers {
		passengers[i] = models.PassengerDetails{
			Type:      PassengerTypeAdult,
			Title:     TitleForGender(p.Gender),
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Gender:    string(p.Gender),
		}
		if road {
			passengers[i].Email = strings.TrimSpace(p.Email)
			passengers[i].Phone = strings.TrimSpace(p.Phone)
		}
	}

	meta := models.BookingMetadata{
		Contact: models.ContactDetails{
			Email:       strings.TrimSpace(contact.Email),
			Phone:       strings.TrimSpace(contact.Phone),
			CountryCode: models.DefaultCountryCode,
		},
		WhatsappNotification: contact.WhatsappNotification,
		ExtraBaggage:         contact.ExtraBaggage,
	}
	if road {
		lead := in.Passengers[0]
		meta.NextOfKin = &models.NextOfKin{
			Name:        strings.TrimSpace(lead.KinName),
			Phone:       strings.TrimSpace(lead.KinPhone),
			CountryCode: models.DefaultCountryCode,
		}
	}
	if len(in.Seats) > 0 {
		meta.SelectedSeats = append([]int(nil), in.Seats...)
	}

	return models.BookingDraft{
		ProviderReference: in.Route.ProviderReference,
		TransportType:     in.Route.TransportType,
		Passengers:        passengers,
		Metadata:          meta,
	}, nil
}

// resolveContact picks the booking contact. Road bookings have no separate
// contact form and use the lead passenger unless one was given.
func resolveContact(in Input, road bool) models.BookingContact {
	contact := in.Contact
	if !road {
		return contact
	}
	lead := in.Passengers[0]
	if strings.TrimSpace(contact.Email) == "" {
		contact.Email = lead.Email
	}
	if strings.TrimSpace(contact.Phone) == "" {
		contact.Phone = lead.Phone
	}
	return contact
}

// TitleForGender maps male to "Mr" and everything else to "Mrs". Build only
// accepts male or female, so no other value reaches a draft.
func TitleForGender(g models.Gender) string {
	if g == models.GenderMale {
		return "Mr"
	}
	return "Mrs"
}

// SplitFullName puts the first word in the first name and the rest in the
// last name.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func Fingerprint(draft models.BookingDraft) string {
	data, _ := json.Marshal(draft)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// IdempotencyTokenFor reuses prev when it was minted for the same draft and
// mints a new key otherwise.
func IdempotencyTokenFor(prev *models.IdempotencyToken, draft models.BookingDraft) models.IdempotencyToken {
	fp := Fingerprint(draft)
	if prev != nil && prev.Fingerprint == fp && prev.Key != "" {
		return *prev
	}
	return models.IdempotencyToken{
		Fingerprint: fp,
		Key:         uuid.NewString(),
	}
}
