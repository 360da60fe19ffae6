package flights

import (
	"context"
	"strings"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/metrics"
	"github.com/Domenick1991/spaceflights/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, in domain.FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, in domain.FlightInput) (*domain.Flight, error)
	Patch(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// FlightCache versions the list so that a stale read cannot overwrite a newer invalidation.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, int64, error)
	SetFlights(ctx context.Context, flights []domain.Flight, gen int64) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	var (
		gen      int64
		populate bool
	)
	if s.cache != nil {
		cached, g, err := s.cache.GetFlights(ctx)
		switch {
		case err != nil:
			metrics.FlightsCacheLookups.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Msg("flights cache read failed")
		case cached != nil:
			metrics.FlightsCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.FlightsCacheLookups.WithLabelValues("miss").Inc()
			gen, populate = g, true
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if populate {
		if err := s.cache.SetFlights(ctx, flights, gen); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to populate flights cache")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, in domain.FlightInput) (*domain.Flight, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	f, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return f, nil
}

// Update replaces the descriptive fields. in.AvailableSeats is ignored.
func (s *FlightService) Update(ctx context.Context, id int64, in domain.FlightInput) (*domain.Flight, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.FlightNumber = in.FlightNumber
	current.Destination = in.Destination
	current.LaunchDate = in.LaunchDate
	return s.save(ctx, current)
}

func (s *FlightService) Patch(ctx context.Context, id int64, patch domain.FlightPatch) (*domain.Flight, error) {
	patch.FlightNumber = trimmed(patch.FlightNumber)
	patch.Destination = trimmed(patch.Destination)
	if patch.FlightNumber != nil && *patch.FlightNumber == "" {
		return nil, domain.Validation("flight_number", "this field may not be blank")
	}
	if patch.Destination != nil && *patch.Destination == "" {
		return nil, domain.Validation("destination", "this field may not be blank")
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Apply(patch)
	return s.save(ctx, current)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) save(ctx context.Context, f *domain.Flight) (*domain.Flight, error) {
	updated, err := s.repo.Update(ctx, f)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate flights cache")
	}
}

// normalizeInput trims text fields the same way reservations trim the flight number.
func normalizeInput(in domain.FlightInput) domain.FlightInput {
	in.FlightNumber = strings.TrimSpace(in.FlightNumber)
	in.Destination = strings.TrimSpace(in.Destination)
	return in
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func validateInput(in domain.FlightInput) error {
	switch {
	case in.FlightNumber == "":
		return domain.Validation("flight_number", "this field is required")
	case in.Destination == "":
		return domain.Validation("destination", "this field is required")
	case in.LaunchDate.IsZero():
		return domain.Validation("launch_date", "this field is required")
	case in.AvailableSeats < 0:
		return domain.Validation("seats_available", "ensure this value is greater than or equal to 0")
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
