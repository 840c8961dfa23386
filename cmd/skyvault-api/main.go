// @title         Skyvault API
// @version       0.1.0
// @description   All-sky camera image archive: availability calendar and downloads

package main

import (
	"context"

	"skyvault/internal/platform/config"
	"skyvault/internal/platform/logger"
	phttp "skyvault/internal/platform/net/http"
	"skyvault/internal/platform/store"
	"skyvault/migrations"

	"skyvault/internal/services/api"
)

func main() {
	config.DotEnv(".env")

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	dbURL := pgCfg.MustString("DBURL")
	if pgCfg.MayBool("MIGRATE", true) {
		if err := store.Migrate(dbURL, migrations.FS, "."); err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
	}

	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "skyvault-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         dbURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", true),
	}); err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
