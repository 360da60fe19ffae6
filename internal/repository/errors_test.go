package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "bookings_user_flight_key"}

	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgErr)))
	assert.Equal(t, "bookings_user_flight_key", uniqueConstraint(pgErr))
	assert.Empty(t, uniqueConstraint(errors.New("plain")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueViolation(errors.New("plain")))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%moon%", containsPattern("moon"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_off"))
	assert.Equal(t, "%%", containsPattern(""))
}

func TestUserConflict(t *testing.T) {
	emailErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_key"}
	assert.ErrorIs(t, userConflict(fmt.Errorf("insert: %w", emailErr)), domain.ErrEmailTaken)

	other := userConflict(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})
	assert.ErrorIs(t, other, domain.ErrAlreadyExists)
	assert.NotErrorIs(t, other, domain.ErrEmailTaken)
	assert.Contains(t, other.Error(), "users_pkey")
}
