package bookings_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"carpool-service/internal/auth"
	"carpool-service/internal/bookings"
	"carpool-service/internal/mocks"
	"carpool-service/internal/models"
	"carpool-service/internal/store"
	"carpool-service/pkg/jwt"
	"carpool-service/pkg/kafka"
	"carpool-service/pkg/logger"
)

func withClaims(claims *jwt.Claims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

func newRouter(bookingStore *mocks.BookingStore, rideStore *mocks.RideStore, cache *mocks.RideCache, pub *mocks.Publisher) http.Handler {
	log := logger.New("test")
	svc := bookings.NewService(bookingStore, rideStore, cache, pub, log)
	mw := auth.NewMiddleware(new(mocks.UserStore), new(mocks.SessionStore), log)
	h := bookings.NewHandler(svc, mw)

	r := chi.NewRouter()
	r.Use(withClaims(&jwt.Claims{UserID: "p1", Username: "passenger"}))
	h.Routes(r)
	return r
}

func rideWithSeats(id string, seats int) *models.RideWithDetails {
	return &models.RideWithDetails{
		Ride: models.Ride{
			ID: id, DriverID: "d1", CarID: "c1",
			AvailableSeats: seats, FarePerSeat: 500, Status: models.RideActive,
		},
	}
}

func postBooking(t *testing.T, r http.Handler, rideID string, seats int) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"ride_id":%q,"seats_booked":%d,"total_fare":%d}`, rideID, seats, seats*500)
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBooking(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	cache := new(mocks.RideCache)
	pub := new(mocks.Publisher)

	rideStore.On("GetByID", mock.Anything, "r1").Return(rideWithSeats("r1", 3), nil)
	bookingStore.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Return(&models.Booking{
			ID: "b1", RideID: "r1", PassengerID: "p1",
			SeatsBooked: 2, TotalFare: 1000, Status: models.BookingConfirmed,
		}, nil)
	cache.On("InvalidateRide", mock.Anything, "r1").Return(nil)

	published := make(chan struct{})
	pub.On("Publish", mock.Anything, kafka.TopicBookingCreated, "b1", mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) { close(published) })

	w := postBooking(t, newRouter(bookingStore, rideStore, cache, pub), "r1", 2)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.BookingConfirmed, resp.Status)

	created := bookingStore.Calls[0].Arguments.Get(1).(*models.Booking)
	assert.Equal(t, "p1", created.PassengerID)
	assert.Equal(t, 2, created.SeatsBooked)

	cache.AssertCalled(t, "InvalidateRide", mock.Anything, "r1")

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("booking.created was not published")
	}
}

func TestCreateBookingRideNotFound(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	rideStore.On("GetByID", mock.Anything, "ghost").Return(nil, store.ErrNotFound)

	w := postBooking(t, newRouter(bookingStore, rideStore, new(mocks.RideCache), new(mocks.Publisher)), "ghost", 1)

	assert.Equal(t, http.StatusNotFound, w.Code)
	bookingStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingRideNotActive(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	ride := rideWithSeats("r1", 3)
	ride.Status = models.RideCancelled
	rideStore.On("GetByID", mock.Anything, "r1").Return(ride, nil)

	w := postBooking(t, newRouter(bookingStore, rideStore, new(mocks.RideCache), new(mocks.Publisher)), "r1", 1)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingInsufficientSeats(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	rideStore.On("GetByID", mock.Anything, "r1").Return(rideWithSeats("r1", 1), nil)

	w := postBooking(t, newRouter(bookingStore, rideStore, new(mocks.RideCache), new(mocks.Publisher)), "r1", 2)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// A stale read can pass the precheck while another booking drains the seats;
// the storage layer then rejects the decrement and the request still fails.
func TestCreateBookingRaceLoser(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	rideStore.On("GetByID", mock.Anything, "r1").Return(rideWithSeats("r1", 2), nil)
	bookingStore.On("Create", mock.Anything, mock.Anything).Return(nil, store.ErrInsufficientSeats)

	w := postBooking(t, newRouter(bookingStore, rideStore, new(mocks.RideCache), new(mocks.Publisher)), "r1", 2)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough seats available")
}

func TestBookUntilFull(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)
	cache := new(mocks.RideCache)
	pub := new(mocks.Publisher)

	rideStore.On("GetByID", mock.Anything, "r1").Return(rideWithSeats("r1", 2), nil).Once()
	bookingStore.On("Create", mock.Anything, mock.Anything).
		Return(&models.Booking{ID: "b1", RideID: "r1", PassengerID: "p1", SeatsBooked: 2, Status: models.BookingConfirmed}, nil).Once()
	cache.On("InvalidateRide", mock.Anything, "r1").Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	r := newRouter(bookingStore, rideStore, cache, pub)

	w := postBooking(t, r, "r1", 2)
	require.Equal(t, http.StatusCreated, w.Code)

	// The ride is full now; a further request for any seats fails.
	rideStore.On("GetByID", mock.Anything, "r1").Return(rideWithSeats("r1", 0), nil)

	w = postBooking(t, r, "r1", 1)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	bookingStore.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateBookingValidation(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	rideStore := new(mocks.RideStore)

	w := postBooking(t, newRouter(bookingStore, rideStore, new(mocks.RideCache), new(mocks.Publisher)), "r1", 0)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	rideStore.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListBookings(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	bookingStore.On("ByPassenger", mock.Anything, "p1").
		Return([]*models.Booking{
			{ID: "b2", RideID: "r2", PassengerID: "p1", SeatsBooked: 1},
			{ID: "b1", RideID: "r1", PassengerID: "p1", SeatsBooked: 2},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	w := httptest.NewRecorder()
	newRouter(bookingStore, new(mocks.RideStore), new(mocks.RideCache), new(mocks.Publisher)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "b2", resp[0].ID)
}

func TestListBookingsEmptyIsArray(t *testing.T) {
	bookingStore := new(mocks.BookingStore)
	bookingStore.On("ByPassenger", mock.Anything, "p1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	w := httptest.NewRecorder()
	newRouter(bookingStore, new(mocks.RideStore), new(mocks.RideCache), new(mocks.Publisher)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}
