// Package main provides the seed command, which applies the profile schema
// and populates it with exam profiles.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/photo-fixer/pkg/repository"
)

// Seeder populates one domain's tables inside a caller-owned transaction.
type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

// registerSeeder is called from init functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

func runSeeder(ctx context.Context, db *sql.DB, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}
	return seed(ctx, db, []Seeder{seeder})
}

func runAllSeeders(ctx context.Context, db *sql.DB) error {
	return seed(ctx, db, listSeeders())
}

// seed runs every seeder in one transaction; any failure rolls back all of them.
func seed(ctx context.Context, db *sql.DB, list []Seeder) error {
	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range list {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
