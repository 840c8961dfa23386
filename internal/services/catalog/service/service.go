// Package service drives catalogue syncs into the images table
package service

import (
	"context"
	"os"

	"skyvault/internal/modkit/repokit"
	perr "skyvault/internal/platform/errors"
	"skyvault/internal/platform/logger"
	"skyvault/internal/services/catalog/domain"
	"skyvault/internal/services/catalog/ingest"
	"skyvault/internal/services/catalog/repo"
)

// Config for the catalog service
type Config struct {
	// BatchSize bounds one upsert statement
	BatchSize int
}

// Service syncs CSV catalogues into storage
type Service struct {
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
}

// New creates a new catalog service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("catalog.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Service requires a non nil Storage binder")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Service{binder: binder, db: db, cfg: cfg}
}

// SyncFile reads the catalogue at path and upserts every row, batched
// inside one transaction so a partial sync never lands
func (s *Service) SyncFile(ctx context.Context, path string) (domain.SyncStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.SyncStats{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "open catalogue %s", path)
	}
	defer f.Close()

	records, err := ingest.Parse(f)
	if err != nil {
		return domain.SyncStats{}, err
	}

	stats := domain.SyncStats{Rows: len(records)}
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		storage := repokit.MustBind(s.binder, q)
		for start := 0; start < len(records); start += s.cfg.BatchSize {
			end := min(start+s.cfg.BatchSize, len(records))
			n, err := storage.UpsertImages(ctx, records[start:end])
			if err != nil {
				return err
			}
			stats.Upserted += n
		}
		return nil
	})
	if err != nil {
		return domain.SyncStats{}, err
	}

	logger.Named("catalog").Info().
		Int("rows", stats.Rows).
		Int64("upserted", stats.Upserted).
		Str("path", path).
		Msg("catalogue synced")
	return stats, nil
}
