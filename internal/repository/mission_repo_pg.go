package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionRepository interface {
	List(ctx context.Context) ([]domain.Mission, error)
	GetByID(ctx context.Context, id int64) (*domain.Mission, error)
	Create(ctx context.Context, m *domain.Mission) (*domain.Mission, error)
	Update(ctx context.Context, m *domain.Mission) (*domain.Mission, error)
	Delete(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, query string) ([]domain.Mission, error)
}

type PGMissionRepository struct {
	db *pgxpool.Pool
}

func NewMissionRepository(db *pgxpool.Pool) MissionRepository {
	return &PGMissionRepository{db: db}
}

const missionColumns = `id, name, launch_date, launch_site, landing_date, landing_site, crew_capacity`

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var m domain.Mission
	if err := row.Scan(&m.ID, &m.Name, &m.LaunchDate, &m.LaunchSite, &m.LandingDate, &m.LandingSite, &m.CrewCapacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMissionNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PGMissionRepository) queryMissions(ctx context.Context, sql string, args ...any) ([]domain.Mission, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	missions := make([]domain.Mission, 0)
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, rows.Err()
}

func (r *PGMissionRepository) List(ctx context.Context) ([]domain.Mission, error) {
	return r.queryMissions(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY launch_date, id`)
}

func (r *PGMissionRepository) GetByID(ctx context.Context, id int64) (*domain.Mission, error) {
	return scanMission(r.db.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE id=$1`, id))
}

func (r *PGMissionRepository) Create(ctx context.Context, m *domain.Mission) (*domain.Mission, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO missions (name, launch_date, launch_site, landing_date, landing_site, crew_capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+missionColumns, m.Name, m.LaunchDate, m.LaunchSite, m.LandingDate, m.LandingSite, m.CrewCapacity)
	created, err := scanMission(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("mission name %q: %w", m.Name, domain.ErrAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

func (r *PGMissionRepository) Update(ctx context.Context, m *domain.Mission) (*domain.Mission, error) {
	row := r.db.QueryRow(ctx, `UPDATE missions
		SET name=$1, launch_date=$2, launch_site=$3, landing_date=$4, landing_site=$5, crew_capacity=$6
		WHERE id=$7
		RETURNING `+missionColumns, m.Name, m.LaunchDate, m.LaunchSite, m.LandingDate, m.LandingSite, m.CrewCapacity, m.ID)
	updated, err := scanMission(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("mission name %q: %w", m.Name, domain.ErrAlreadyExists)
		}
		return nil, err
	}
	return updated, nil
}

func (r *PGMissionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM missions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrMissionNotFound
	}
	return nil
}

func (r *PGMissionRepository) SearchByName(ctx context.Context, query string) ([]domain.Mission, error) {
	return r.queryMissions(ctx, `SELECT `+missionColumns+` FROM missions WHERE name ILIKE $1 ORDER BY launch_date, id`, containsPattern(query))
}

var _ MissionRepository = (*PGMissionRepository)(nil)
