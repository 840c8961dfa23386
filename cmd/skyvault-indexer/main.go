// Command skyvault-indexer syncs the camera's CSV catalogue into Postgres
package main

import (
	"context"
	"flag"

	"skyvault/internal/platform/config"
	"skyvault/internal/platform/logger"
	"skyvault/internal/platform/store"
	"skyvault/migrations"

	catalogrepo "skyvault/internal/services/catalog/repo"
	catalogsvc "skyvault/internal/services/catalog/service"
)

func main() {
	var catalogPath string
	flag.StringVar(&catalogPath, "catalog", "", "path to the catalogue CSV (default CORE_INDEXER_CATALOG_PATH)")
	flag.Parse()

	config.DotEnv(".env")
	root := config.New()
	idxCfg := root.Prefix("CORE_INDEXER_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	logger.Init(logger.FromEnv())
	l := logger.Named("indexer")

	if catalogPath == "" {
		catalogPath = idxCfg.MustString("CATALOG_PATH")
	}

	dbURL := pgCfg.MustString("DBURL")
	if pgCfg.MayBool("MIGRATE", true) {
		if err := store.Migrate(dbURL, migrations.FS, "."); err != nil {
			l.Panic().Err(err).Msg("migrations failed")
		}
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "skyvault-indexer",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      dbURL,
			MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
			LogSQL:   pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	svc := catalogsvc.New(st.PG, catalogrepo.NewPG(), catalogsvc.Config{
		BatchSize: idxCfg.MayInt("BATCH_SIZE", 500),
	})
	stats, err := svc.SyncFile(ctx, catalogPath)
	if err != nil {
		l.Fatal().Err(err).Str("catalog", catalogPath).Msg("sync failed")
	}
	l.Info().Int("rows", stats.Rows).Int64("upserted", stats.Upserted).Msg("sync complete")
}
