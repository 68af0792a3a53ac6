package workflow

import (
	"context"
	"errors"

	"github.com/dharmasatrya/travelbooking/internal/seats"
	"github.com/dharmasatrya/travelbooking/internal/session"
)

// OpenSeats shows the seat map for the selected road route.
func (s *Service) OpenSeats(ctx context.Context, sess *session.Session) (*seats.Allocation, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}
	route, err := s.selectedRoute(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !route.TransportType.IsRoad() {
		return nil, ErrNotRoadRoute
	}
	criteria, err := s.criteria(ctx, sess)
	if err != nil {
		return nil, err
	}

	alloc := s.allocation(ctx, sess)
	if alloc.State == seats.StateOpen {
		return alloc, nil
	}
	if err := alloc.Open(criteria.Passengers, seats.RoadLayout()); err != nil {
		return nil, err
	}
	if err := sess.Write(ctx, session.KeySeatMap, alloc); err != nil {
		return nil, err
	}
	return alloc, nil
}

// Seats returns the current allocation without changing it.
func (s *Service) Seats(ctx context.Context, sess *session.Session) (*seats.Allocation, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}
	return s.allocation(ctx, sess), nil
}

// ToggleSeat applies one tap. A limit warning is returned together with the
// unchanged allocation.
func (s *Service) ToggleSeat(ctx context.Context, sess *session.Session, seat int) (*seats.Allocation, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}

	alloc := s.allocation(ctx, sess)
	if err := alloc.Toggle(seat); err != nil {
		if errors.Is(err, seats.ErrLimitReached) || errors.Is(err, seats.ErrNotSelectable) {
			return alloc, err
		}
		return nil, err
	}
	if err := sess.Write(ctx, session.KeySeatMap, alloc); err != nil {
		return nil, err
	}
	return alloc, nil
}

// ConfirmSeats closes the seat map and records the chosen seats in ascending
// order.
func (s *Service) ConfirmSeats(ctx context.Context, sess *session.Session) ([]int, error) {
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}

	alloc := s.allocation(ctx, sess)
	selected, err := alloc.Confirm()
	if err != nil {
		return nil, err
	}

	if err := sess.Write(ctx, session.KeySeatMap, alloc); err != nil {
		return nil, err
	}
	if err := sess.Write(ctx, session.KeySelectedSeats, selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// CloseSeats dismisses the seat map without confirming.
func (s *Service) CloseSeats(ctx context.Context, sess *session.Session) error {
	alloc := s.allocation(ctx, sess)
	alloc.Close()
	return sess.Write(ctx, session.KeySeatMap, alloc)
}

func (s *Service) allocation(ctx context.Context, sess *session.Session) *seats.Allocation {
	alloc, ok := session.Read[seats.Allocation](ctx, sess, session.KeySeatMap)
	if !ok {
		return seats.NewAllocation()
	}
	return &alloc
}
