package store

import (
	"errors"
	"io/fs"

	"skyvault/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate applies all pending migrations from the embedded source
// noop when the schema is already current
func Migrate(url string, src fs.FS, dir string) error {
	d, err := iofs.New(src, dir)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, url)
	if err != nil {
		return err
	}
	defer func() {
		if serr, derr := m.Close(); serr != nil || derr != nil {
			logger.Named("migrate").Warn().AnErr("source", serr).AnErr("db", derr).Msg("migrate close")
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
