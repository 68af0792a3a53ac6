package workflow

import (
	"context"
	"strings"

	"github.com/dharmasatrya/travelbooking/internal/booking"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
)

func (s *Service) Passengers(ctx context.Context, sess *session.Session) (models.PassengerList, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}
	return s.passengers(ctx, sess)
}

// SavePassengerName stores the name part of passenger idx. The full name is
// split on the first space.
func (s *Service) SavePassengerName(ctx context.Context, sess *session.Session, idx int, req models.PassengerNameRequest) (*models.PassengerEntry, error) {
	return s.updatePassenger(ctx, sess, idx, func(p *models.PassengerEntry) error {
		first, last := booking.SplitFullName(req.FullName)
		gender := models.Gender(strings.ToLower(strings.TrimSpace(req.Gender)))

		switch {
		case first == "":
			return &booking.FieldError{Field: "full_name", Msg: "name is required"}
		case last == "":
			return &booking.FieldError{Field: "full_name", Msg: "please enter both first and last name"}
		case gender == "":
			return &booking.FieldError{Field: "gender", Msg: "gender is required"}
		case !gender.Valid():
			return &booking.FieldError{Field: "gender", Msg: "gender must be male or female"}
		}

		p.FirstName = first
		p.LastName = last
		p.Gender = gender
		p.NameConfirmed = true
		return nil
	})
}

// EditPassengerName reopens the name form. The contact part depends on the
// name, so both flags are cleared.
func (s *Service) EditPassengerName(ctx context.Context, sess *session.Session, idx int) (*models.PassengerEntry, error) {
	return s.updatePassenger(ctx, sess, idx, func(p *models.PassengerEntry) error {
		p.NameConfirmed = false
		p.ContactConfirmed = false
		return nil
	})
}

// SavePassengerContact stores contact and next-of-kin details of a road
// passenger whose name is already saved.
func (s *Service) SavePassengerContact(ctx context.Context, sess *session.Session, idx int, req models.PassengerContactRequest) (*models.PassengerEntry, error) {
	route, err := s.selectedRoute(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !route.TransportType.IsRoad() {
		return nil, ErrNotRoadRoute
	}

	return s.updatePassenger(ctx, sess, idx, func(p *models.PassengerEntry) error {
		if !p.NameConfirmed {
			return &booking.FieldError{Field: "full_name", Msg: "save the passenger name first"}
		}

		fields := []struct{ name, value string }{
			{"email", req.Email},
			{"phone", req.Phone},
			{"kin_name", req.KinName},
			{"kin_phone", req.KinPhone},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				return &booking.FieldError{Field: f.name, Msg: "is required"}
			}
		}

		p.Email = strings.TrimSpace(req.Email)
		p.Phone = strings.TrimSpace(req.Phone)
		p.KinName = strings.TrimSpace(req.KinName)
		p.KinPhone = strings.TrimSpace(req.KinPhone)
		p.ContactConfirmed = true
		return nil
	})
}

func (s *Service) EditPassengerContact(ctx context.Context, sess *session.Session, idx int) (*models.PassengerEntry, error) {
	return s.updatePassenger(ctx, sess, idx, func(p *models.PassengerEntry) error {
		p.ContactConfirmed = false
		return nil
	})
}

// SaveContact stores the booking-level contact form of the flight flow.
func (s *Service) SaveContact(ctx context.Context, sess *session.Session, contact models.BookingContact) error {
	if err := s.guard(ctx, sess); err != nil {
		return err
	}
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Phone = strings.TrimSpace(contact.Phone)
	return sess.Write(ctx, session.KeyBookingContact, contact)
}

func (s *Service) updatePassenger(ctx context.Context, sess *session.Session, idx int, apply func(*models.PassengerEntry) error) (*models.PassengerEntry, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}

	list, err := s.passengers(ctx, sess)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(list) {
		return nil, models.ErrInvalidPassengerIndex
	}

	entry := list[idx]
	if err := apply(&entry); err != nil {
		return nil, err
	}
	list[idx] = entry

	if err := sess.Write(ctx, session.KeyBookingPassengers, list); err != nil {
		return nil, err
	}
	return &entry, nil
}

// passengers returns the stored list, rebuilding an empty one from the search
// when it is missing.
func (s *Service) passengers(ctx context.Context, sess *session.Session) (models.PassengerList, error) {
	if list, ok := session.Read[models.PassengerList](ctx, sess, session.KeyBookingPassengers); ok {
		return list, nil
	}
	criteria, err := s.criteria(ctx, sess)
	if err != nil {
		return nil, err
	}
	return make(models.PassengerList, criteria.Passengers), nil
}
