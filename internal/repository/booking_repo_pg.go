package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Reserve books one seat on the flight for the user in a single transaction.
	Reserve(ctx context.Context, userID int64, flightNumber string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetForUser(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Reserve(ctx context.Context, userID int64, flightNumber string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// The row lock makes check-then-decrement single-writer per flight.
	var (
		flightID  int64
		available int
	)
	err = tx.QueryRow(ctx, `SELECT id, seats_available FROM space_flights WHERE flight_number=$1 FOR UPDATE`, flightNumber).
		Scan(&flightID, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("lock flight: %w", err)
	}
	if available <= 0 {
		return nil, domain.ErrNoSeatsAvailable
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE user_id=$1 AND flight_id=$2)`, userID, flightID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check booking: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateBooking
	}

	booking := &domain.Booking{UserID: userID, FlightID: flightID, FlightNumber: flightNumber}
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id) VALUES ($1, $2) RETURNING id, created_at`, userID, flightID).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE space_flights SET seats_available = seats_available - 1, updated_at = now() WHERE id=$1`, flightID); err != nil {
		return nil, fmt.Errorf("decrement seats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return booking, nil
}

const bookingSelect = `SELECT b.id, b.user_id, b.flight_id, f.flight_number, b.created_at
	FROM bookings b JOIN space_flights f ON f.id = b.flight_id`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.FlightNumber, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, bookingSelect+` WHERE b.user_id=$1 ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) GetForUser(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id=$1 AND b.user_id=$2`, bookingID, userID))
}

var _ BookingRepository = (*PGBookingRepository)(nil)
