package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Reserve(ctx context.Context, userID int64, flightNumber string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetForUser(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newBooking() *domain.Booking {
	return &domain.Booking{
		ID:           10,
		UserID:       1,
		FlightID:     4,
		FlightNumber: "A100",
		CreatedAt:    time.Now(),
	}
}

func TestReservationService_Reserve_Success(t *testing.T) {
	repo := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}

	service := NewReservationService(repo, cache, producer, "space.bookings", WithNotificationsTopic("space.notifications"))
	ctx := context.Background()
	booking := newBooking()

	repo.On("Reserve", ctx, int64(1), "A100").Return(booking, nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()
	isCreated := mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == EventBookingCreated && e.BookingID == 10 && e.FlightNumber == "A100"
	})
	producer.On("Publish", mock.Anything, "space.bookings", "10", isCreated).Return(nil).Once()
	producer.On("Publish", mock.Anything, "space.notifications", "10", isCreated).Return(nil).Once()

	result, err := service.Reserve(ctx, 1, " A100 ")

	assert.NoError(t, err)
	assert.Equal(t, booking, result)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestReservationService_Reserve_EmptyFlightNumber(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewReservationService(repo, nil, nil, "")

	result, err := service.Reserve(context.Background(), 1, "   ")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Reserve")
}

func TestReservationService_Reserve_RepositoryErrorsPassThrough(t *testing.T) {
	cases := []error{
		domain.ErrFlightNotFound,
		domain.ErrNoSeatsAvailable,
		domain.ErrDuplicateBooking,
		errors.New("database error"),
	}

	for _, want := range cases {
		t.Run(want.Error(), func(t *testing.T) {
			repo := &MockBookingRepository{}
			cache := &MockCache{}
			producer := &MockProducer{}
			service := NewReservationService(repo, cache, producer, "space.bookings")
			ctx := context.Background()

			repo.On("Reserve", ctx, int64(1), "A100").Return(nil, want).Once()

			result, err := service.Reserve(ctx, 1, "A100")

			assert.Nil(t, result)
			assert.ErrorIs(t, err, want)
			cache.AssertNotCalled(t, "InvalidateFlights", mock.Anything)
			producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReservationService_Reserve_SideEffectFailuresDoNotFail(t *testing.T) {
	repo := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := NewReservationService(repo, cache, producer, "space.bookings", WithPublishTimeout(time.Millisecond))
	ctx := context.Background()
	booking := newBooking()

	repo.On("Reserve", ctx, int64(1), "A100").Return(booking, nil).Once()
	cache.On("InvalidateFlights", ctx).Return(errors.New("redis down")).Once()
	producer.On("Publish", mock.Anything, "space.bookings", "10", mock.Anything).Return(errors.New("broker down")).Once()

	result, err := service.Reserve(ctx, 1, "A100")

	assert.NoError(t, err)
	assert.Equal(t, booking, result)
	producer.AssertExpectations(t)
}

// Publishing must not inherit the request's cancellation.
func TestReservationService_Reserve_PublishOutlivesRequestContext(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	service := NewReservationService(repo, nil, producer, "space.bookings")
	ctx, cancel := context.WithCancel(context.Background())
	booking := newBooking()

	repo.On("Reserve", ctx, int64(1), "A100").Return(booking, nil).Run(func(mock.Arguments) { cancel() }).Once()
	producer.On("Publish", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), "space.bookings", "10", mock.Anything).
		Return(nil).Once()

	_, err := service.Reserve(ctx, 1, "A100")

	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestReservationService_Reserve_EventCarriesUserEmail(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	users := &MockUsers{}
	service := NewReservationService(repo, nil, producer, "space.bookings",
		WithNotificationsTopic("space.notifications"), WithUserDirectory(users))
	ctx := context.Background()

	repo.On("Reserve", ctx, int64(1), "A100").Return(newBooking(), nil).Once()
	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Email: "pilot@example.com"}, nil).Once()
	withEmail := mock.MatchedBy(func(e kafka.BookingEvent) bool { return e.Email == "pilot@example.com" })
	producer.On("Publish", mock.Anything, "space.bookings", "10", withEmail).Return(nil).Once()
	producer.On("Publish", mock.Anything, "space.notifications", "10", withEmail).Return(nil).Once()

	_, err := service.Reserve(ctx, 1, "A100")

	assert.NoError(t, err)
	producer.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestReservationService_Reserve_UserLookupFailureStillPublishes(t *testing.T) {
	repo := &MockBookingRepository{}
	producer := &MockProducer{}
	users := &MockUsers{}
	service := NewReservationService(repo, nil, producer, "space.bookings", WithUserDirectory(users))
	ctx := context.Background()

	repo.On("Reserve", ctx, int64(1), "A100").Return(newBooking(), nil).Once()
	users.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("db down")).Once()
	producer.On("Publish", mock.Anything, "space.bookings", "10",
		mock.MatchedBy(func(e kafka.BookingEvent) bool { return e.Email == "" && e.UserID == 1 })).Return(nil).Once()

	_, err := service.Reserve(ctx, 1, "A100")

	assert.NoError(t, err)
	producer.AssertExpectations(t)
}

func TestReservationService_ListAndGet(t *testing.T) {
	repo := &MockBookingRepository{}
	service := NewReservationService(repo, nil, nil, "")
	ctx := context.Background()
	booking := newBooking()

	repo.On("ListByUser", ctx, int64(1)).Return([]domain.Booking{*booking}, nil).Once()
	repo.On("GetForUser", ctx, int64(1), int64(10)).Return(booking, nil).Once()
	repo.On("GetForUser", ctx, int64(2), int64(10)).Return(nil, domain.ErrBookingNotFound).Once()

	list, err := service.ListByUser(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := service.Get(ctx, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, booking, got)

	_, err = service.Get(ctx, 2, 10)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	repo.AssertExpectations(t)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "booked", resultLabel(nil))
	assert.Equal(t, "no_seats", resultLabel(domain.ErrNoSeatsAvailable))
	assert.Equal(t, "duplicate", resultLabel(domain.ErrDuplicateBooking))
	assert.Equal(t, "flight_not_found", resultLabel(domain.ErrFlightNotFound))
	assert.Equal(t, "error", resultLabel(errors.New("x")))
}
