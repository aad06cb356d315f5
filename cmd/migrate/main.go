package main

// Run database migrations, optionally seeding the embedded keyword catalog:
//   go run ./cmd/migrate -seed

import (
	"context"
	"flag"
	"log"
	"os"

	"ats-checker/internal/keywords"
	"ats-checker/internal/shared/config"
	"ats-checker/internal/shared/storage/db"
)

func main() {
	seed := flag.Bool("seed", false, "store the embedded keyword catalog as the active catalog")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	version, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		log.Printf("failed to read migration version: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied; schema version %d", version)

	if !*seed {
		return
	}
	catalog, err := keywords.EmbeddedCatalog()
	if err != nil {
		log.Printf("failed to parse embedded catalog: %v", err)
		os.Exit(1)
	}
	store := &keywords.PGStore{DB: sqlDB}
	if err := store.Save(ctx, catalog); err != nil {
		log.Printf("failed to seed keyword catalog: %v", err)
		os.Exit(1)
	}
	log.Printf("seeded keyword catalog %s with %d profiles", catalog.Version, len(catalog.Profiles))
}
