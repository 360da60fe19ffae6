package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, email, username, password_hash, birth_date, last_login, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.BirthDate, &u.LastLogin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (email, username, password_hash, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns, u.Email, u.Username, u.PasswordHash, u.BirthDate)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, userConflict(err)
		}
		return nil, err
	}
	return created, nil
}

const usersEmailKey = "users_email_lower_key"

func userConflict(err error) error {
	if name := uniqueConstraint(err); name != usersEmailKey {
		return fmt.Errorf("users %s: %w", name, domain.ErrAlreadyExists)
	}
	return domain.ErrEmailTaken
}

// GetByEmail matches case-insensitively. Emails are stored as given but unique on lower(email).
func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *PGUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login=now() WHERE id=$1`, id)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)
