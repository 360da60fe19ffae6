package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/repository"
)

type Result struct {
	Missions []domain.Mission `json:"missions"`
	Flights  []domain.Flight  `json:"flights"`
}

type SearchUseCase interface {
	Search(ctx context.Context, query string) (*Result, error)
}

type SearchService struct {
	missions repository.MissionRepository
	flights  repository.FlightRepository
}

func NewSearchService(missions repository.MissionRepository, flights repository.FlightRepository) *SearchService {
	return &SearchService{missions: missions, flights: flights}
}

// Search matches mission names and flight destinations case-insensitively.
// An empty query returns everything.
func (s *SearchService) Search(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)

	missions, err := s.missions.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search missions: %w", err)
	}
	flights, err := s.flights.SearchByDestination(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	if missions == nil {
		missions = []domain.Mission{}
	}
	if flights == nil {
		flights = []domain.Flight{}
	}
	return &Result{Missions: missions, Flights: flights}, nil
}

var _ SearchUseCase = (*SearchService)(nil)
