package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/spaceflights/internal/kafka"
	"github.com/Domenick1991/spaceflights/internal/logging"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send renders the notification for a booking event. Delivery is a log line for now.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Type == "" {
		return fmt.Errorf("event without type for booking %d", event.BookingID)
	}
	logging.Ctx(ctx).Info().
		Str("to", recipient(event)).
		Str("subject", Subject(event)).
		Int64("booking_id", event.BookingID).
		Str("flight_number", event.FlightNumber).
		Msg("send email")
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case "booking_created":
		return fmt.Sprintf("Seat reserved on flight %s", event.FlightNumber)
	default:
		return fmt.Sprintf("Update for flight %s", event.FlightNumber)
	}
}

func recipient(event kafka.BookingEvent) string {
	if event.Email != "" {
		return event.Email
	}
	return fmt.Sprintf("user:%d", event.UserID)
}
