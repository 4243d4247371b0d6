package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/profiles"
	"github.com/JaimeStill/photo-fixer/pkg/database"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn         = flag.String("dsn", "", "Database connection string (defaults to DATABASE_* settings)")
		all         = flag.Bool("all", false, "Run all seeders")
		profileSeed = flag.Bool("profiles", false, "Seed exam profiles")
		file        = flag.String("file", "", "Catalog file (.toml, .yaml, .json) to seed instead of the built-ins")
		list        = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && !*profileSeed {
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-profiles] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("failed to load .env: %v", err)
	}

	connStr, err := resolveDSN(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(conn, profiles.Migrations, "migrations"); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()

	switch {
	case *all:
		if *file != "" {
			setProfileFile(*file)
		}
		if err := runAllSeeders(ctx, conn); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")

	case *profileSeed:
		if *file != "" {
			setProfileFile(*file)
		}
		if err := runSeeder(ctx, conn, "profiles"); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("profiles seeded successfully")
	}
}

func setProfileFile(path string) {
	if seeder, ok := getSeeder("profiles"); ok {
		seeder.(*ProfileSeeder).SetFile(path)
	}
}

// resolveDSN prefers the -dsn flag, then DATABASE_DSN, then the DATABASE_*
// variables used by the server.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		return v, nil
	}

	cfg := &database.Config{}
	if err := cfg.Finalize(config.DatabaseEnv); err != nil {
		return "", fmt.Errorf("database connection required: use -dsn, %s, or DATABASE_* env vars: %w", EnvDatabaseDSN, err)
	}
	return cfg.Dsn(), nil
}
