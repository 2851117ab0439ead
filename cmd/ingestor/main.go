package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"nyc_rent_dashboard/internal/adapters/dataset"
	"nyc_rent_dashboard/internal/adapters/observability"
	"nyc_rent_dashboard/internal/shared"
	mysqlrepo "nyc_rent_dashboard/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("path", cfg.DatasetPath).
		Int("workers", cfg.Workers).
		Int("batch", cfg.BatchSize).
		Msg("ingestor starting")

	listings, err := dataset.NewFileSource(cfg.DatasetPath).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	n, err := ingest(ctx, mysqlrepo.New(db), listings, cfg.Workers, cfg.BatchSize)
	_ = db.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion incomplete")
	}
	log.Info().Int("stored", n).Msg("ingestion completed")
}
