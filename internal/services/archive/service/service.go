// Package service implements image selection and archive assembly
package service

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"skyvault/internal/core/datekey"
	"skyvault/internal/core/sidereal"
	"skyvault/internal/modkit/repokit"
	perr "skyvault/internal/platform/errors"
	"skyvault/internal/platform/logger"
	"skyvault/internal/services/archive/domain"
	"skyvault/internal/services/archive/repo"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02T15:04"
)

// Config for the archive service. Defaults describe the Adelaide
// all-sky camera this archive was built for
type Config struct {
	// ImageRoot is the directory image paths are relative to
	ImageRoot string

	// LongitudeDeg is the observatory longitude, east positive
	LongitudeDeg float64

	// Timezone is the IANA zone the form's reference instant is in
	Timezone string

	// WindowHours is the max sidereal distance from the target, in hours
	WindowHours float64

	// ClearMinBytes and ClearMaxBytes bound the clear-sky filesize band
	ClearMinBytes int64
	ClearMaxBytes int64
}

// Service implements domain.QueryPort and domain.ArchivePort
type Service struct {
	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
	loc    *time.Location
}

// New creates a new archive service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) (*Service, error) {
	if db == nil {
		panic("archive.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("archive.Service requires a non nil Storage binder")
	}
	if cfg.WindowHours <= 0 {
		cfg.WindowHours = 0.5
	}
	if cfg.ClearMinBytes == 0 && cfg.ClearMaxBytes == 0 {
		cfg.ClearMinBytes, cfg.ClearMaxBytes = 10_500_000, 11_000_000
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Australia/Adelaide"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "load timezone %q", cfg.Timezone)
	}
	return &Service{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg, loc: loc}, nil
}

// ImageCounts implements domain.QueryPort
func (s *Service) ImageCounts(ctx context.Context) ([]domain.ImageCount, error) {
	return s.Repo.CountsByNight(ctx)
}

// Select implements domain.QueryPort. One image per night in the range,
// the one whose local sidereal capture time lies closest to the target,
// and only if within the configured window. Nights with no image in the
// window contribute nothing
func (s *Service) Select(ctx context.Context, in domain.SelectionInput) ([]domain.Image, error) {
	from, to, target, err := s.resolve(in)
	if err != nil {
		return nil, err
	}
	images, err := s.Repo.ImagesBetween(ctx, from, to, in.LimitClearImages, s.cfg.ClearMinBytes, s.cfg.ClearMaxBytes)
	if err != nil {
		return nil, err
	}
	return s.pickPerNight(images, target), nil
}

// EstimateSize implements domain.QueryPort. MB means 10^6 bytes here
func (s *Service) EstimateSize(ctx context.Context, in domain.SelectionInput) (domain.SizeEstimate, error) {
	selected, err := s.Select(ctx, in)
	if err != nil {
		return domain.SizeEstimate{}, err
	}
	var total int64
	for _, im := range selected {
		total += im.FilesizeBytes
	}
	return domain.SizeEstimate{TotalSizeMB: float64(total) / 1e6}, nil
}

// NightImages implements domain.QueryPort
func (s *Service) NightImages(ctx context.Context, night datekey.Key) ([]domain.Image, error) {
	if !datekey.Valid(night) {
		return nil, perr.MalformedDateKeyf("date %q", night)
	}
	return s.Repo.ImagesForNight(ctx, night)
}

// resolve turns the form input into night bounds and a target sidereal time
func (s *Service) resolve(in domain.SelectionInput) (from, to datekey.Key, target float64, err error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return "", "", 0, perr.Wrap(err, perr.ErrorCodeValidation, "start_date")
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return "", "", 0, perr.Wrap(err, perr.ErrorCodeValidation, "end_date")
	}
	ref, err := time.ParseInLocation(datetimeLayout, in.SiderealDatetime, s.loc)
	if err != nil {
		return "", "", 0, perr.Wrap(err, perr.ErrorCodeValidation, "sidereal_datetime")
	}
	from = datekey.FromTime(start)
	to = datekey.FromTime(end)
	if datekey.Compare(to, from) < 0 {
		return "", "", 0, perr.Validationf("end_date %s before start_date %s", in.EndDate, in.StartDate)
	}
	target = sidereal.Local(ref, s.cfg.LongitudeDeg)
	return from, to, target, nil
}

// pickPerNight walks images ordered by night and keeps the closest
// in-window image of each night
func (s *Service) pickPerNight(images []domain.Image, target float64) []domain.Image {
	var out []domain.Image
	var (
		night    datekey.Key
		best     domain.Image
		bestDist float64
		have     bool
	)
	flush := func() {
		if have {
			out = append(out, best)
		}
		have = false
	}
	for _, im := range images {
		if im.NightDate != night {
			flush()
			night = im.NightDate
		}
		st := sidereal.Local(im.CapturedAtUTC, s.cfg.LongitudeDeg)
		dist := sidereal.WrapDistance(st, target)
		if dist >= s.cfg.WindowHours {
			continue
		}
		if !have || dist < bestDist {
			best, bestDist, have = im, dist, true
		}
	}
	flush()
	return out
}

// StreamZip implements domain.ArchivePort. Entry names are the file
// basenames, matching what the camera writes per frame. Catalogue rows
// whose file has drifted off disk are logged and skipped so one stale
// row does not abort a multi-night archive
func (s *Service) StreamZip(ctx context.Context, w io.Writer, images []domain.Image) error {
	zw := zip.NewWriter(w)
	for _, im := range images {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(s.cfg.ImageRoot, filepath.FromSlash(im.Directory))
		f, err := os.Open(path)
		if err != nil {
			logger.C(ctx).Warn().Str("image", im.Directory).Err(err).Msg("catalogued image missing, skipped")
			continue
		}
		err = addEntry(zw, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return zw.Close()
}

func addEntry(zw *zip.Writer, f *os.File) error {
	name := filepath.Base(f.Name())
	e, err := zw.Create(name)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "zip entry")
	}
	if _, err := io.Copy(e, f); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "zip %s", name)
	}
	return nil
}
