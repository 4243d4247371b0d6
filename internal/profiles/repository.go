package profiles

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/photo-fixer/pkg/repository"
)

// Migrations holds the profiles schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const profileColumns = `id, name, description, width, height, min_kb, max_kb, created_at, updated_at`

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository returns a System backed by the profiles table.
func NewRepository(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "profiles"),
	}
}

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	err := s.Scan(
		&p.ID, &p.Name, &p.Description,
		&p.Width, &p.Height, &p.MinSizeKB, &p.MaxSizeKB,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *repo) List(ctx context.Context) ([]Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles ORDER BY name`
	return repository.QueryMany(ctx, r.db, q, nil, scanProfile)
}

func (r *repo) Find(ctx context.Context, name string) (*Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(name) = LOWER($1)`

	profile, err := repository.QueryOne(ctx, r.db, q, []any{name}, scanProfile)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &profile, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateProfileCommand) (*Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO profiles(id, name, description, width, height, min_kb, max_kb)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns

	args := []any{uuid.New(), cmd.Name, cmd.Description, cmd.Width, cmd.Height, cmd.MinSizeKB, cmd.MaxSizeKB}

	profile, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProfile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile created", "id", profile.ID, "name", profile.Name)
	return &profile, nil
}

func (r *repo) Update(ctx context.Context, name string, cmd UpdateProfileCommand) (*Profile, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE profiles
		SET name = $2, description = $3, width = $4, height = $5,
		    min_kb = $6, max_kb = $7, updated_at = NOW()
		WHERE LOWER(name) = LOWER($1)
		RETURNING ` + profileColumns

	args := []any{name, cmd.Name, cmd.Description, cmd.Width, cmd.Height, cmd.MinSizeKB, cmd.MaxSizeKB}

	profile, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProfile)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile updated", "id", profile.ID, "name", profile.Name)
	return &profile, nil
}

func (r *repo) Delete(ctx context.Context, name string) error {
	q := `DELETE FROM profiles WHERE LOWER(name) = LOWER($1)`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, name)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("profile deleted", "name", name)
	return nil
}
