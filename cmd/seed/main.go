package main

import (
	"context"
	"flag"
	"os"

	"bookshop/internal/catalog"
	"bookshop/internal/config"
	"bookshop/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	file := flag.String("file", "", "JSON catalog to seed instead of the built-in one")
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName+"-seed", cfg)
	fail := func(msg string, err error) {
		logger.LogError(log, msg, err, nil)
		os.Exit(1)
	}

	ctx := context.Background()

	var src catalog.Source = catalog.DefaultSource{}
	switch {
	case *file != "":
		src = catalog.FileSource{Path: *file}
	case cfg.CatalogFile != "":
		src = catalog.FileSource{Path: cfg.CatalogFile}
	}

	books, err := src.Load(ctx)
	if err != nil {
		fail("Failed to load catalog", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		fail("Failed to connect to database", err)
	}
	defer pool.Close()

	if err := catalog.NewPostgresRepo(pool, cfg.DBTimeout).Seed(ctx, books); err != nil {
		fail("Failed to seed catalog", err)
	}
	log.WithField("books", len(books)).Info("Catalog seeded")
}
