// Package repo provides the archive catalogue repository over Postgres
package repo

import (
	"context"

	"skyvault/internal/core/datekey"
	"skyvault/internal/modkit/repokit"
	"skyvault/internal/services/archive/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the archive repository
type Storage interface {
	CountsByNight(ctx context.Context) ([]domain.ImageCount, error)
	ImagesForNight(ctx context.Context, night datekey.Key) ([]domain.Image, error)
	ImagesBetween(ctx context.Context, from, to datekey.Key, clearOnly bool, clearMin, clearMax int64) ([]domain.Image, error)
}

// CountsByNight implements Storage. Ascending by night so the bounds in
// the counts list match the calendar's navigation limits
func (s *pg) CountsByNight(ctx context.Context) ([]domain.ImageCount, error) {
	rows, err := s.q.Query(ctx, `
		SELECT night_date, COUNT(*)
		FROM images
		GROUP BY night_date
		ORDER BY night_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ImageCount
	for rows.Next() {
		var c domain.ImageCount
		if err := rows.Scan(&c.ImageDate, &c.ImageCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const imageCols = `id::text, directory, night_date, captured_at, captured_at_utc, filesize_bytes`

// ImagesForNight implements Storage
func (s *pg) ImagesForNight(ctx context.Context, night datekey.Key) ([]domain.Image, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+imageCols+`
		FROM images
		WHERE night_date = $1
		ORDER BY captured_at_utc ASC
	`, string(night))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanImages(rows)
}

// ImagesBetween implements Storage. Nights are inclusive on both ends.
// clearOnly restricts to the configured clear-sky filesize band
func (s *pg) ImagesBetween(
	ctx context.Context,
	from, to datekey.Key,
	clearOnly bool,
	clearMin, clearMax int64,
) ([]domain.Image, error) {
	sql := `
		SELECT ` + imageCols + `
		FROM images
		WHERE night_date >= $1 AND night_date <= $2
	`
	args := []any{string(from), string(to)}
	if clearOnly {
		sql += ` AND filesize_bytes BETWEEN $3 AND $4`
		args = append(args, clearMin, clearMax)
	}
	sql += ` ORDER BY night_date ASC, captured_at_utc ASC`

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanImages(rows)
}

func scanImages(rows repokit.Rows) ([]domain.Image, error) {
	var out []domain.Image
	for rows.Next() {
		var im domain.Image
		if err := rows.Scan(
			&im.ID, &im.Directory, &im.NightDate,
			&im.CapturedAt, &im.CapturedAtUTC, &im.FilesizeBytes,
		); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}
