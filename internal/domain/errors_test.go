package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("reserve: %w", ErrNoSeatsAvailable)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))

	assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrFlightNotFound)))
	assert.True(t, IsConflict(ErrDuplicateBooking))
	assert.False(t, IsConflict(errors.New("boom")))
}

func TestFlightApply_IgnoresSeats(t *testing.T) {
	f := Flight{FlightNumber: "A100", Destination: "Moon", AvailableSeats: 3}
	dest := "Mars"

	f.Apply(FlightPatch{Destination: &dest})

	assert.Equal(t, "A100", f.FlightNumber)
	assert.Equal(t, "Mars", f.Destination)
	assert.Equal(t, 3, f.AvailableSeats)
}

func TestValidationError(t *testing.T) {
	err := Validation("message", "must be 10-20 characters")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: message: must be 10-20 characters", err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &ve))
	assert.Equal(t, []string{"must be 10-20 characters"}, ve.Fields["message"])
}
