package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/photo-fixer/internal/profiles"
)

func init() {
	registerSeeder(&ProfileSeeder{})
}

// ProfileSeeder upserts exam profiles. It seeds the built-in catalog unless
// a catalog file is configured.
type ProfileSeeder struct {
	file string
}

func (s *ProfileSeeder) Name() string {
	return "profiles"
}

func (s *ProfileSeeder) Description() string {
	return "Seeds exam photo profiles (built-in catalog or a catalog file)"
}

// SetFile configures a catalog file, replacing the built-in profiles.
func (s *ProfileSeeder) SetFile(path string) {
	s.file = path
}

// Seed saves each profile, updating existing rows matched by name.
func (s *ProfileSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	cmds, err := s.commands()
	if err != nil {
		return err
	}

	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return err
		}
		if err := s.saveProfile(ctx, tx, cmd); err != nil {
			return fmt.Errorf("save profile %s: %w", cmd.Name, err)
		}
	}

	fmt.Printf("seeded %d profiles\n", len(cmds))
	return nil
}

func (s *ProfileSeeder) commands() ([]profiles.CreateProfileCommand, error) {
	if s.file == "" {
		return profiles.BuiltinCommands(), nil
	}
	return profiles.LoadFile(s.file)
}

func (s *ProfileSeeder) saveProfile(ctx context.Context, tx *sql.Tx, cmd profiles.CreateProfileCommand) error {
	const query = `
		INSERT INTO profiles (id, name, description, width, height, min_kb, max_kb, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT ((LOWER(name))) DO UPDATE SET
			description = EXCLUDED.description,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			min_kb = EXCLUDED.min_kb,
			max_kb = EXCLUDED.max_kb,
			updated_at = NOW()`

	_, err := tx.ExecContext(ctx, query,
		uuid.New(), cmd.Name, cmd.Description, cmd.Width, cmd.Height, cmd.MinSizeKB, cmd.MaxSizeKB,
	)
	return err
}
