package workflow

import (
	"context"

	"github.com/dharmasatrya/travelbooking/internal/filter"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/session"
)

// Results re-reads the stored search with the given filters and ordering.
// Reading results does not require a live hold.
func (s *Service) Results(ctx context.Context, sess *session.Session, q models.ResultsQuery) (*models.SearchResultsResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	criteria, err := s.criteria(ctx, sess)
	if err != nil {
		return nil, err
	}
	stored, ok := session.Read[models.SearchResponse](ctx, sess, session.KeySearchResults)
	if !ok {
		return nil, ErrNoSearch
	}

	results := filter.Apply(stored.Results, q.Filters, q.SortBy, q.SortOrder)
	return &models.SearchResultsResponse{
		Criteria: criteria,
		Metadata: models.SearchMetadata{
			SessionID:    sess.ID,
			SearchID:     stored.SearchID,
			TotalResults: len(results),
		},
		Results: results,
	}, nil
}

// SelectRoute makes routeID the active offer. Anything collected for a
// previously selected offer is discarded.
func (s *Service) SelectRoute(ctx context.Context, sess *session.Session, routeID string) (*models.RouteOffer, error) {
	if routeID == "" {
		return nil, models.ErrMissingRouteID
	}
	if err := s.guard(ctx, sess); err != nil {
		return nil, err
	}

	criteria, err := s.criteria(ctx, sess)
	if err != nil {
		return nil, err
	}
	stored, ok := session.Read[models.SearchResponse](ctx, sess, session.KeySearchResults)
	if !ok {
		return nil, ErrNoSearch
	}

	var route *models.RouteOffer
	for i := range stored.Results {
		if stored.Results[i].ID == routeID {
			route = &stored.Results[i]
			break
		}
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	if current, err := s.selectedRoute(ctx, sess); err == nil && current.ID == route.ID {
		return route, nil
	}

	if err := sess.Clear(ctx,
		session.KeySelectedSeats,
		session.KeySeatMap,
		session.KeyCurrentBooking,
		session.KeyBookingIdempotency,
	); err != nil {
		return nil, err
	}
	if err := sess.Write(ctx, session.KeySelectedRoute, route); err != nil {
		return nil, err
	}
	s.write(ctx, sess, session.KeyBookingPassengers, make(models.PassengerList, criteria.Passengers))

	return route, nil
}
