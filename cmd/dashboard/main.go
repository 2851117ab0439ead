package main

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"nyc_rent_dashboard/internal/adapters/dataset"
	server "nyc_rent_dashboard/internal/adapters/http_server"
	"nyc_rent_dashboard/internal/adapters/observability"
	redisad "nyc_rent_dashboard/internal/adapters/redis"
	"nyc_rent_dashboard/internal/adapters/remote"
	"nyc_rent_dashboard/internal/app"
	"nyc_rent_dashboard/internal/domain"
	"nyc_rent_dashboard/internal/shared"
	mysqlrepo "nyc_rent_dashboard/internal/storage/mysql"
)

func source(cfg shared.Config) (domain.ListingSource, func()) {
	switch cfg.DatasetSource {
	case shared.SourceURL:
		client := remote.New(30*time.Second, 2)
		return dataset.NewSource(cfg.DatasetURL, func(ctx context.Context) (io.ReadCloser, error) {
			return client.Open(ctx, cfg.DatasetURL)
		}), func() {}
	case shared.SourceMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }
	case shared.SourceCSV:
		return dataset.NewFileSource(cfg.DatasetPath), func() {}
	default:
		log.Fatal().Str("source", cfg.DatasetSource).Msg("unknown DATASET_SOURCE")
		return nil, nil
	}
}

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	src, closeSrc := source(cfg)
	listings, err := src.Load(ctx)
	cancel()
	closeSrc()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.DatasetSource).Msg("dataset load failed")
	}
	observability.SetListingsLoaded(len(listings))

	d := app.NewDashboard(listings)
	log.Info().Int("listings", d.Listings()).Int("static_charts", len(d.Static())).Msg("dashboard ready")

	// the callback cache is optional
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, pcancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, callback cache disabled")
			_ = rc.Close()
		} else {
			cache = rc
			defer rc.Close()
		}
		pcancel()
	}
	svc := app.NewCallbackService(d.Callbacks(), cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.CORSOrigins)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{D: d, Svc: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("dashboard listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
