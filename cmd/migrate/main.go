package main

import (
	"context"
	"flag"

	"bookshop/internal/config"
	"bookshop/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName+"-migrate", cfg)

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			log.WithError(err).Fatal("Failed to create migration")
		}
		log.Infof("Migration created: %s", *name)
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.WithError(err).Fatal("Failed to set dialect")
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, cfg.MigrationsDir); err != nil {
			log.WithError(err).Fatal("Failed to run migrations")
		}
		log.Info("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, cfg.MigrationsDir); err != nil {
			log.WithError(err).Fatal("Failed to rollback migrations")
		}
		log.Info("Migrations rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, cfg.MigrationsDir); err != nil {
			log.WithError(err).Fatal("Failed to check migration status")
		}
	default:
		log.Fatalf("Unknown command: %s. Use: up, down, status, create", *command)
	}
}
