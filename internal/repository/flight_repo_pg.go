package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, in domain.FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, f *domain.Flight) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	SearchByDestination(ctx context.Context, query string) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, destination, launch_date, seats_available, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Destination, &f.LaunchDate, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) queryFlights(ctx context.Context, sql string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.queryFlights(ctx, `SELECT `+flightColumns+` FROM space_flights ORDER BY launch_date, id`)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM space_flights WHERE id=$1`, id))
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM space_flights WHERE flight_number=$1`, flightNumber))
}

func (r *PGFlightRepository) Create(ctx context.Context, in domain.FlightInput) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO space_flights (flight_number, destination, launch_date, seats_available)
		VALUES ($1, $2, $3, $4)
		RETURNING `+flightColumns, in.FlightNumber, in.Destination, in.LaunchDate, in.AvailableSeats)
	f, err := scanFlight(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("flight_number %q: %w", in.FlightNumber, domain.ErrAlreadyExists)
		}
		return nil, err
	}
	return f, nil
}

// Update writes the descriptive fields only. seats_available is owned by the reservation path.
func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE space_flights
		SET flight_number=$1, destination=$2, launch_date=$3, updated_at=now()
		WHERE id=$4
		RETURNING `+flightColumns, f.FlightNumber, f.Destination, f.LaunchDate, f.ID)
	updated, err := scanFlight(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("flight_number %q: %w", f.FlightNumber, domain.ErrAlreadyExists)
		}
		return nil, err
	}
	return updated, nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM space_flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) SearchByDestination(ctx context.Context, query string) ([]domain.Flight, error) {
	return r.queryFlights(ctx, `SELECT `+flightColumns+` FROM space_flights WHERE destination ILIKE $1 ORDER BY launch_date, id`, containsPattern(query))
}

var _ FlightRepository = (*PGFlightRepository)(nil)
