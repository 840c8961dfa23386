// Package repo provides the catalog repository over Postgres
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"skyvault/internal/modkit/repokit"
	"skyvault/internal/services/catalog/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the catalog repository
type Storage interface {
	UpsertImages(ctx context.Context, xs []domain.Record) (int64, error)
}

// UpsertImages implements Storage. Directory is the natural key; a re-run
// of the indexer refreshes timestamps and sizes in place
func (s *pg) UpsertImages(ctx context.Context, xs []domain.Record) (int64, error) {
	if len(xs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO images
		(id, directory, night_date, captured_at, captured_at_utc, filesize_bytes) VALUES `)

	args := make([]any, 0, len(xs)*6)
	for i, rec := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5)
		args = append(args,
			uuid.NewString(), rec.Directory, string(rec.NightDate),
			rec.CapturedAt, rec.CapturedAtUTC, rec.FilesizeBytes,
		)
	}
	sb.WriteString(` ON CONFLICT (directory) DO UPDATE SET
		night_date = EXCLUDED.night_date,
		captured_at = EXCLUDED.captured_at,
		captured_at_utc = EXCLUDED.captured_at_utc,
		filesize_bytes = EXCLUDED.filesize_bytes`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
