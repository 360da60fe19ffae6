package missions

import (
	"context"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/repository"
)

type MissionUseCase interface {
	List(ctx context.Context) ([]domain.Mission, error)
	GetByID(ctx context.Context, id int64) (*domain.Mission, error)
	Create(ctx context.Context, m domain.Mission) (*domain.Mission, error)
	Update(ctx context.Context, id int64, m domain.Mission) (*domain.Mission, error)
	Patch(ctx context.Context, id int64, patch domain.MissionPatch) (*domain.Mission, error)
	Delete(ctx context.Context, id int64) error
}

type MissionService struct {
	repo repository.MissionRepository
}

func NewMissionService(repo repository.MissionRepository) *MissionService {
	return &MissionService{repo: repo}
}

func (s *MissionService) List(ctx context.Context) ([]domain.Mission, error) {
	return s.repo.List(ctx)
}

func (s *MissionService) GetByID(ctx context.Context, id int64) (*domain.Mission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MissionService) Create(ctx context.Context, m domain.Mission) (*domain.Mission, error) {
	if err := validate(&m); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &m)
}

func (s *MissionService) Update(ctx context.Context, id int64, m domain.Mission) (*domain.Mission, error) {
	if err := validate(&m); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	m.ID = id
	return s.repo.Update(ctx, &m)
}

func (s *MissionService) Patch(ctx context.Context, id int64, patch domain.MissionPatch) (*domain.Mission, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Apply(patch)
	if err := validate(current); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, current)
}

func (s *MissionService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validate(m *domain.Mission) error {
	switch {
	case m.Name == "":
		return domain.Validation("name", "this field is required")
	case m.LaunchSite == "":
		return domain.Validation("launch_site", "this field is required")
	case m.LandingSite == "":
		return domain.Validation("landing_site", "this field is required")
	case m.LaunchDate.IsZero():
		return domain.Validation("launch_date", "this field is required")
	case m.LandingDate.IsZero():
		return domain.Validation("landing_date", "this field is required")
	case m.LandingDate.Before(m.LaunchDate):
		return domain.Validation("landing_date", "must not be before launch_date")
	case m.CrewCapacity < 0:
		return domain.Validation("crew_capacity", "ensure this value is greater than or equal to 0")
	}
	return nil
}

var _ MissionUseCase = (*MissionService)(nil)
