package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/travelbooking/internal/apiclient"
	"github.com/dharmasatrya/travelbooking/internal/booking"
	"github.com/dharmasatrya/travelbooking/internal/models"
	"github.com/dharmasatrya/travelbooking/internal/seats"
	"github.com/dharmasatrya/travelbooking/internal/session"
	"github.com/dharmasatrya/travelbooking/internal/workflow/mocks"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	api   *mocks.MockUpstream
	svc   *Service
	sess  *session.Session
	clock *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := new(mocks.MockUpstream)
	clk := &clock{now: time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)}
	svc := NewService(api, Config{
		AppURL:     "https://book.example.com/",
		BookingFee: DefaultBookingFee,
		Now:        clk.Now,
	})
	sess, err := session.New(session.NewMemoryStore(), "tab-1")
	require.NoError(t, err)

	t.Cleanup(func() { api.AssertExpectations(t) })
	return &fixture{api: api, svc: svc, sess: sess, clock: clk}
}

func busCriteria(passengers int) models.SearchCriteria {
	return models.SearchCriteria{
		Origin:         "lagos",
		Destination:    "abuja",
		DepartureDate:  "2025-03-20T08:00:00",
		Passengers:     passengers,
		TransportTypes: []models.TransportType{models.TransportBus},
	}
}

func flightCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		Origin:         "LOS",
		Destination:    "ABV",
		DepartureDate:  "2025-03-20T08:00:00",
		Passengers:     1,
		TransportTypes: []models.TransportType{models.TransportFlight},
	}
}

func offer(id string, tt models.TransportType, amount float64) models.RouteOffer {
	return models.RouteOffer{
		ID:                id,
		ProviderReference: "ref-" + id,
		TransportType:     tt,
		Provider:          "GUO",
		Duration:          "10h 30m",
		DurationMinutes:   630,
		Price:             models.Price{Amount: amount, Currency: "NGN"},
	}
}

func threeBusOffers() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []models.RouteOffer{
			offer("r1", models.TransportBus, 15000),
			offer("r2", models.TransportBus, 12000),
			offer("r3", models.TransportBus, 18000),
		},
		TotalResults: 3,
		SearchID:     "s-1",
	}
}

func (f *fixture) search(t *testing.T, criteria models.SearchCriteria, resp *models.SearchResponse) {
	t.Helper()
	f.api.On("Search", mock.Anything, criteria).Return(resp, nil).Once()
	_, err := f.svc.Search(context.Background(), f.sess, criteria)
	require.NoError(t, err)
}

func TestSearch_PersistsResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(2), threeBusOffers())

	stored, ok := session.Read[models.SearchResponse](ctx, f.sess, session.KeySearchResults)
	require.True(t, ok)
	assert.Len(t, stored.Results, 3)
	assert.Equal(t, 3, stored.TotalResults)

	params, ok := session.Read[models.SearchCriteria](ctx, f.sess, session.KeySearchParams)
	require.True(t, ok)
	assert.Equal(t, "lagos", params.Origin)

	start, ok := session.Read[int64](ctx, f.sess, session.KeySearchStartTime)
	require.True(t, ok)
	assert.Equal(t, f.clock.Now().UnixMilli(), start)

	passengers, ok := session.Read[models.PassengerList](ctx, f.sess, session.KeyBookingPassengers)
	require.True(t, ok)
	assert.Len(t, passengers, 2)
}

func TestSearch_InvalidCriteriaSkipsUpstream(t *testing.T) {
	f := newFixture(t)

	c := busCriteria(0)
	_, err := f.svc.Search(context.Background(), f.sess, c)
	assert.ErrorIs(t, err, models.ErrInvalidPassengers)
	f.api.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearch_StaleResultIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.api.On("Search", mock.Anything, busCriteria(1)).
		Run(func(args mock.Arguments) { cancel() }).
		Return(threeBusOffers(), nil).Once()

	_, err := f.svc.Search(ctx, f.sess, busCriteria(1))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.sess.Has(context.Background(), session.KeySearchResults))
	assert.False(t, f.sess.Has(context.Background(), session.KeySearchStartTime))
}

func TestSearch_FailureLeavesPreviousSearch(t *testing.T) {
	f := newFixture(t)
	f.search(t, busCriteria(1), threeBusOffers())

	other := busCriteria(3)
	f.api.On("Search", mock.Anything, other).
		Return(nil, apiclient.NewAPIError("search", 500, "", apiclient.ErrSearchFailed)).Once()

	_, err := f.svc.Search(context.Background(), f.sess, other)
	assert.ErrorIs(t, err, apiclient.ErrSearchFailed)

	params, ok := session.Read[models.SearchCriteria](context.Background(), f.sess, session.KeySearchParams)
	require.True(t, ok)
	assert.Equal(t, 1, params.Passengers)
}

func TestSearch_ReplacesPreviousFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(1), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r1")
	require.NoError(t, err)

	f.search(t, busCriteria(2), threeBusOffers())
	assert.False(t, f.sess.Has(ctx, session.KeySelectedRoute))
}

func TestResults_SortAndBadges(t *testing.T) {
	f := newFixture(t)
	f.search(t, busCriteria(1), threeBusOffers())

	res, err := f.svc.Results(context.Background(), f.sess, models.ResultsQuery{SortBy: "cheapest"})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "r2", res.Results[0].ID)
	assert.Contains(t, res.Results[0].Badges, "cheapest")
	assert.Equal(t, "s-1", res.Metadata.SearchID)

	empty := newFixture(t)
	_, err = empty.svc.Results(context.Background(), empty.sess, models.ResultsQuery{})
	assert.ErrorIs(t, err, ErrNoSearch)
}

func TestSelectRoute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.search(t, busCriteria(1), threeBusOffers())

	_, err := f.svc.SelectRoute(ctx, f.sess, "missing")
	assert.ErrorIs(t, err, ErrRouteNotFound)

	route, err := f.svc.SelectRoute(ctx, f.sess, "r3")
	require.NoError(t, err)
	assert.Equal(t, "ref-r3", route.ProviderReference)

	stored, ok := session.Read[models.RouteOffer](ctx, f.sess, session.KeySelectedRoute)
	require.True(t, ok)
	assert.Equal(t, "r3", stored.ID)
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	st := f.svc.Status(ctx, f.sess)
	assert.False(t, st.Active)
	assert.False(t, st.Expired)

	f.search(t, busCriteria(1), threeBusOffers())
	st = f.svc.Status(ctx, f.sess)
	assert.True(t, st.Active)
	assert.Equal(t, 1800, st.RemainingSeconds)
	assert.Equal(t, "00:30:00", st.Remaining)

	f.clock.Advance(100 * time.Second)
	assert.Equal(t, 1700, f.svc.Status(ctx, f.sess).RemainingSeconds)

	f.clock.Advance(1750 * time.Second)
	st = f.svc.Status(ctx, f.sess)
	assert.Equal(t, 0, st.RemainingSeconds)
	assert.True(t, st.Expired)
}

func TestHoldExpiryResetsFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(1), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r1")
	require.NoError(t, err)
	_, err = f.svc.OpenSeats(ctx, f.sess)
	require.NoError(t, err)

	f.clock.Advance(31 * time.Minute)

	_, err = f.svc.ToggleSeat(ctx, f.sess, 2)
	assert.ErrorIs(t, err, ErrHoldExpired)

	for _, key := range session.ExpiryKeys {
		assert.False(t, f.sess.Has(ctx, key), key)
	}
	assert.True(t, f.sess.Has(ctx, session.KeySearchResults), "results survive expiry")

	_, err = f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
	assert.ErrorIs(t, err, ErrHoldExpired)
}

func TestStepsRequireSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SelectRoute(ctx, f.sess, "r1")
	assert.ErrorIs(t, err, ErrNoSearch)
	_, err = f.svc.OpenSeats(ctx, f.sess)
	assert.ErrorIs(t, err, ErrNoSearch)
	_, err = f.svc.InitiatePayment(ctx, f.sess, "tok")
	assert.ErrorIs(t, err, ErrNoSearch)
}

func TestSeats_FlightRouteRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, flightCriteria(), &models.SearchResponse{
		Results: []models.RouteOffer{offer("f1", models.TransportFlight, 50000)},
	})
	_, err := f.svc.SelectRoute(ctx, f.sess, "f1")
	require.NoError(t, err)

	_, err = f.svc.OpenSeats(ctx, f.sess)
	assert.ErrorIs(t, err, ErrNotRoadRoute)
}

func TestSeats_LimitWarningKeepsSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(1), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r1")
	require.NoError(t, err)
	_, err = f.svc.OpenSeats(ctx, f.sess)
	require.NoError(t, err)

	_, err = f.svc.ToggleSeat(ctx, f.sess, 2)
	require.NoError(t, err)

	alloc, err := f.svc.ToggleSeat(ctx, f.sess, 3)
	assert.ErrorIs(t, err, seats.ErrLimitReached)
	require.NotNil(t, alloc)
	assert.Equal(t, []int{2}, alloc.Selected())

	stored, err := f.svc.Seats(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, stored.Selected())
}

func TestPassengers_EditClearsFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(1), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r1")
	require.NoError(t, err)

	_, err = f.svc.SavePassengerName(ctx, f.sess, 0, models.PassengerNameRequest{FullName: "Ada", Gender: "female"})
	var fe *booking.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "full_name", fe.Field)

	_, err = f.svc.SavePassengerContact(ctx, f.sess, 0, models.PassengerContactRequest{
		Email: "a@b.c", Phone: "803", KinName: "K", KinPhone: "805",
	})
	require.ErrorAs(t, err, &fe)

	p, err := f.svc.SavePassengerName(ctx, f.sess, 0, models.PassengerNameRequest{FullName: "Ada Chioma Obi", Gender: "Female"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Chioma Obi", p.LastName)
	assert.Equal(t, models.GenderFemale, p.Gender)

	p, err = f.svc.SavePassengerContact(ctx, f.sess, 0, models.PassengerContactRequest{
		Email: "a@b.c", Phone: "803", KinName: "K", KinPhone: "805",
	})
	require.NoError(t, err)
	assert.True(t, p.Complete(true))

	p, err = f.svc.EditPassengerContact(ctx, f.sess, 0)
	require.NoError(t, err)
	assert.True(t, p.NameConfirmed)
	assert.False(t, p.ContactConfirmed)

	p, err = f.svc.EditPassengerName(ctx, f.sess, 0)
	require.NoError(t, err)
	assert.False(t, p.NameConfirmed)
	assert.False(t, p.ContactConfirmed)

	_, err = f.svc.EditPassengerName(ctx, f.sess, 5)
	assert.ErrorIs(t, err, models.ErrInvalidPassengerIndex)
}

// roadFlow walks a two-passenger bus booking up to submission.
func roadFlow(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	f.search(t, busCriteria(2), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r2")
	require.NoError(t, err)

	_, err = f.svc.OpenSeats(ctx, f.sess)
	require.NoError(t, err)
	_, err = f.svc.ToggleSeat(ctx, f.sess, 3)
	require.NoError(t, err)
	_, err = f.svc.ToggleSeat(ctx, f.sess, 2)
	require.NoError(t, err)
	got, err := f.svc.ConfirmSeats(ctx, f.sess)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, got)

	names := []models.PassengerNameRequest{
		{FullName: "Ada Obi", Gender: "female"},
		{FullName: "Tunde Bakare", Gender: "male"},
	}
	for i, n := range names {
		_, err = f.svc.SavePassengerName(ctx, f.sess, i, n)
		require.NoError(t, err)
		_, err = f.svc.SavePassengerContact(ctx, f.sess, i, models.PassengerContactRequest{
			Email:    "p@example.com",
			Phone:    "8031234567",
			KinName:  "Kin",
			KinPhone: "8039876543",
		})
		require.NoError(t, err)
	}
}

func TestRoadBooking_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	roadFlow(t, f)

	var keys []string
	isRoadDraft := mock.MatchedBy(func(d models.BookingDraft) bool {
		return d.ProviderReference == "ref-r2" &&
			len(d.Passengers) == 2 &&
			d.Passengers[0].Title == "Mrs" &&
			d.Passengers[1].Title == "Mr" &&
			d.Metadata.NextOfKin != nil &&
			assert.ObjectsAreEqual([]int{2, 3}, d.Metadata.SelectedSeats)
	})
	f.api.On("CreateBooking", mock.Anything, "tok", isRoadDraft, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(3)) }).
		Return(&models.Booking{
			ID:               "b-1",
			BookingReference: "TRV-001",
			TransportType:    models.TransportBus,
			Status:           models.BookingPending,
			TotalPrice:       24000,
			Currency:         "NGN",
		}, nil).Twice()

	b, err := f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
	require.NoError(t, err)
	assert.Equal(t, "TRV-001", b.BookingReference)
	assert.Equal(t, []int{2, 3}, b.SelectedSeats)

	_, err = f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1], "resubmitting the same draft reuses the idempotency key")

	summary, err := f.svc.Summary(ctx, f.sess)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, summary.BookingFee.Amount)
	assert.Equal(t, 27000.0, summary.Total.Amount)
	assert.Equal(t, "₦27,000", summary.Total.Formatted)
	assert.Len(t, summary.Passengers, 2)

	authURL := "https://checkout.example.com/x"
	f.api.On("InitializePayment", mock.Anything, "tok", models.PaymentRequest{
		BookingID:     "b-1",
		PaymentMethod: models.PaymentCard,
	}).Return(&models.PaymentResponse{AuthorizationURL: &authURL, Reference: "pay-1"}, nil).Once()

	pay, err := f.svc.InitiatePayment(ctx, f.sess, "tok")
	require.NoError(t, err)
	assert.Equal(t, authURL, *pay.AuthorizationURL)
}

func TestFlightBooking_CallbackPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, flightCriteria(), &models.SearchResponse{
		Results: []models.RouteOffer{offer("f1", models.TransportFlight, 50000)},
	})
	_, err := f.svc.SelectRoute(ctx, f.sess, "f1")
	require.NoError(t, err)
	_, err = f.svc.SavePassengerName(ctx, f.sess, 0, models.PassengerNameRequest{FullName: "Tunde Bakare", Gender: "male"})
	require.NoError(t, err)
	require.NoError(t, f.svc.SaveContact(ctx, f.sess, models.BookingContact{
		Email:                "tunde@example.com",
		Phone:                "8031234567",
		WhatsappNotification: true,
	}))

	f.api.On("CreateBooking", mock.Anything, "tok", mock.MatchedBy(func(d models.BookingDraft) bool {
		return d.Metadata.Contact.Email == "tunde@example.com" && d.Metadata.WhatsappNotification
	}), mock.Anything).Return(&models.Booking{ID: "b-9", TransportType: models.TransportFlight, TotalPrice: 50000}, nil).Once()

	_, err = f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
	require.NoError(t, err)

	f.api.On("InitializePayment", mock.Anything, "tok", models.PaymentRequest{
		BookingID:   "b-9",
		CallbackURL: "https://book.example.com/payment-success",
	}).Return(&models.PaymentResponse{Reference: "pay-9"}, nil).Once()

	_, err = f.svc.InitiatePayment(ctx, f.sess, "tok")
	require.NoError(t, err)
}

func TestSubmit_Errors(t *testing.T) {
	t.Run("missing gender is refused before any call", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		roadFlow(t, f)

		list, ok := session.Read[models.PassengerList](ctx, f.sess, session.KeyBookingPassengers)
		require.True(t, ok)
		list[1].Gender = ""
		require.NoError(t, f.sess.Write(ctx, session.KeyBookingPassengers, list))

		_, err := f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
		var fe *booking.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "passengers[1].gender", fe.Field)
		f.api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terms not accepted", func(t *testing.T) {
		f := newFixture(t)
		roadFlow(t, f)

		_, err := f.svc.Submit(context.Background(), f.sess, "tok", models.SubmitBookingRequest{})
		var fe *booking.FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "terms_accepted", fe.Field)
	})

	t.Run("expired token never reaches the api", func(t *testing.T) {
		f := newFixture(t)
		roadFlow(t, f)

		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": f.clock.Now().Add(-time.Minute).Unix(),
		}).SignedString([]byte("k"))
		require.NoError(t, err)

		_, err = f.svc.Submit(context.Background(), f.sess, token, models.SubmitBookingRequest{TermsAccepted: true})
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t)
		roadFlow(t, f)

		_, err := f.svc.Submit(context.Background(), f.sess, "", models.SubmitBookingRequest{TermsAccepted: true})
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	})

	t.Run("401 and 500 are distinguishable", func(t *testing.T) {
		f := newFixture(t)
		roadFlow(t, f)

		f.api.On("CreateBooking", mock.Anything, "tok", mock.Anything, mock.Anything).
			Return(nil, apiclient.NewAPIError("create booking", 401, "", apiclient.ErrUnauthorized)).Once()
		_, err := f.svc.Submit(context.Background(), f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
		assert.ErrorIs(t, err, apiclient.ErrUnauthorized)

		f.api.On("CreateBooking", mock.Anything, "tok", mock.Anything, mock.Anything).
			Return(nil, apiclient.NewAPIError("create booking", 500, "", apiclient.ErrBookingFailed)).Once()
		_, err = f.svc.Submit(context.Background(), f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
		assert.ErrorIs(t, err, apiclient.ErrBookingFailed)
		assert.NotErrorIs(t, err, apiclient.ErrUnauthorized)

		assert.False(t, f.sess.Has(context.Background(), session.KeyCurrentBooking))
	})

	t.Run("road booking needs confirmed seats", func(t *testing.T) {
		f := newFixture(t)
		roadFlow(t, f)
		require.NoError(t, f.sess.Clear(context.Background(), session.KeySelectedSeats))

		_, err := f.svc.Submit(context.Background(), f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
		assert.ErrorIs(t, err, ErrSeatsRequired)
	})
}

func TestSubmit_ReopenedNameIsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, flightCriteria(), &models.SearchResponse{
		Results: []models.RouteOffer{offer("f1", models.TransportFlight, 50000)},
	})
	_, err := f.svc.SelectRoute(ctx, f.sess, "f1")
	require.NoError(t, err)
	_, err = f.svc.SavePassengerName(ctx, f.sess, 0, models.PassengerNameRequest{FullName: "Tunde Bakare", Gender: "male"})
	require.NoError(t, err)
	p, err := f.svc.EditPassengerName(ctx, f.sess, 0)
	require.NoError(t, err)
	require.False(t, p.Complete(false))
	require.NoError(t, f.svc.SaveContact(ctx, f.sess, models.BookingContact{
		Email: "tunde@example.com",
		Phone: "8031234567",
	}))

	_, err = f.svc.Submit(ctx, f.sess, "tok", models.SubmitBookingRequest{TermsAccepted: true})
	var fe *booking.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "passengers[0].name", fe.Field)
	f.api.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, ok := session.Read[models.IdempotencyToken](ctx, f.sess, session.KeyBookingIdempotency)
	assert.False(t, ok)
}

func TestSeats_DismissedMapKeepsConfirmedSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.search(t, busCriteria(2), threeBusOffers())
	_, err := f.svc.SelectRoute(ctx, f.sess, "r2")
	require.NoError(t, err)
	_, err = f.svc.OpenSeats(ctx, f.sess)
	require.NoError(t, err)
	for _, n := range []int{3, 2} {
		_, err = f.svc.ToggleSeat(ctx, f.sess, n)
		require.NoError(t, err)
	}
	_, err = f.svc.ConfirmSeats(ctx, f.sess)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		alloc, err := f.svc.OpenSeats(ctx, f.sess)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, alloc.Selected(), "pass %d", i)
		require.NoError(t, f.svc.CloseSeats(ctx, f.sess))
	}

	stored, ok := session.Read[models.SeatSelection](ctx, f.sess, session.KeySelectedSeats)
	require.True(t, ok)
	assert.Equal(t, models.SeatSelection{2, 3}, stored)
}

func TestPaymentWithoutBooking(t *testing.T) {
	f := newFixture(t)
	f.search(t, busCriteria(1), threeBusOffers())

	_, err := f.svc.InitiatePayment(context.Background(), f.sess, "tok")
	assert.ErrorIs(t, err, ErrNoBooking)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.search(t, busCriteria(1), threeBusOffers())

	require.NoError(t, f.svc.Reset(ctx, f.sess))
	for _, key := range session.SearchKeys {
		assert.False(t, f.sess.Has(ctx, key), key)
	}
}

func TestCountdown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Countdown(context.Background(), f.sess)
	assert.ErrorIs(t, err, ErrNoSearch)

	f.search(t, busCriteria(1), threeBusOffers())
	f.clock.Advance(10 * time.Second)

	cd, err := f.svc.Countdown(context.Background(), f.sess)
	require.NoError(t, err)
	assert.Equal(t, 1790, cd.Remaining())
}
