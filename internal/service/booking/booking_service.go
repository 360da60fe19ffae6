package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/kafka"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/metrics"
	"github.com/Domenick1991/spaceflights/internal/repository"
)

const EventBookingCreated = "booking_created"

type ReservationUseCase interface {
	Reserve(ctx context.Context, userID int64, flightNumber string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// UserDirectory resolves the notification address of the booking user.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ReservationService struct {
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	users              UserDirectory
	bookingTopic       string
	notificationsTopic string
	publishTimeout     time.Duration
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

func WithUserDirectory(users UserDirectory) ReservationServiceOption {
	return func(s *ReservationService) {
		s.users = users
	}
}

func WithPublishTimeout(d time.Duration) ReservationServiceOption {
	return func(s *ReservationService) {
		s.publishTimeout = d
	}
}

func NewReservationService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		bookings:       bookings,
		cache:          cache,
		producer:       producer,
		bookingTopic:   bookingTopic,
		publishTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Reserve books one seat for the user. The seat check, ledger insert and decrement happen in a
// single repository transaction; everything after it is best effort.
func (s *ReservationService) Reserve(ctx context.Context, userID int64, flightNumber string) (*domain.Booking, error) {
	flightNumber = strings.TrimSpace(flightNumber)
	if flightNumber == "" {
		return nil, domain.Validation("flight_number", "this field is required")
	}

	booking, err := s.bookings.Reserve(ctx, userID, flightNumber)
	metrics.Bookings.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		logging.Ctx(ctx).Info().Err(err).Int64("user_id", userID).Str("flight_number", flightNumber).Msg("reservation rejected")
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int64("booking_id", booking.ID).
		Int64("user_id", userID).
		Str("flight_number", flightNumber).
		Msg("seat reserved")

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate flights cache")
		}
	}
	s.publish(ctx, EventBookingCreated, booking)

	return booking, nil
}

func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *ReservationService) Get(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetForUser(ctx, userID, bookingID)
}

func (s *ReservationService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	// The request may already be finished by the time the broker answers.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		FlightID:     booking.FlightID,
		FlightNumber: booking.FlightNumber,
		CreatedAt:    booking.CreatedAt,
	}
	if s.users != nil {
		if user, err := s.users.GetByID(pubCtx, booking.UserID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("user_id", booking.UserID).Msg("booking event without email")
		} else {
			event.Email = user.Email
		}
	}
	key := strconv.FormatInt(booking.ID, 10)

	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(pubCtx, topic, key, event); err != nil {
			metrics.EventPublishFailures.WithLabelValues(topic).Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("topic", topic).Int64("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultBooked
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		return metrics.ResultNoSeats
	case errors.Is(err, domain.ErrDuplicateBooking):
		return metrics.ResultDuplicate
	case errors.Is(err, domain.ErrFlightNotFound):
		return metrics.ResultFlightMissing
	default:
		return metrics.ResultError
	}
}

var _ ReservationUseCase = (*ReservationService)(nil)
