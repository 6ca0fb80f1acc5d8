package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"camcheck/adapters/postgres"
	"camcheck/internal/config"
	"camcheck/internal/errors"
	"camcheck/internal/migration"
	"camcheck/ui"
)

// initDatabase initializes the PostgreSQL database connection and
// runs pending migrations
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	log.Printf("[Main] migrations complete (schema %s)", runner.Version())

	return db, nil
}

func main() {
	// .env is optional, environment variables win
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] configuration error: %v", err)
	}

	var runs *postgres.RunRepository
	if cfg.Database.Enabled {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("[Main] database error: %v", err)
		}
		defer db.Close()
		runs = postgres.NewRunRepository(db)
		log.Printf("[Main] validation run history enabled")
	} else {
		log.Printf("[Main] DATABASE_URL not set, run history disabled")
	}

	app := ui.NewApp(cfg, runs)
	if err := app.Start(); err != nil {
		log.Fatalf("[Main] server error: %v", err)
	}
}
