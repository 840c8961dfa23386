package domain

import (
	"context"
	"io"

	"skyvault/internal/core/datekey"
)

// QueryPort reads the catalogue
type QueryPort interface {
	ImageCounts(ctx context.Context) ([]ImageCount, error)
	Select(ctx context.Context, in SelectionInput) ([]Image, error)
	NightImages(ctx context.Context, night datekey.Key) ([]Image, error)
	EstimateSize(ctx context.Context, in SelectionInput) (SizeEstimate, error)
}

// ArchivePort streams a zip archive of already selected images.
// Selection happens through QueryPort first so callers can reject bad
// input before any bytes hit the wire
type ArchivePort interface {
	StreamZip(ctx context.Context, w io.Writer, images []Image) error
}
