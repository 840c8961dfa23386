// Package ingest parses the camera's CSV catalogue into records.
// The CSV is produced by the capture pipeline; column names are a contract
package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"skyvault/internal/core/datekey"
	perr "skyvault/internal/platform/errors"
	"skyvault/internal/services/catalog/domain"
)

// Column names in the catalogue header
const (
	colDirectory = "Directory"
	colCaptured  = "Timestamp middle"
	colCapturedU = "Timestamp middle UTC"
	colFilesize  = "Filesize (bytes)"
)

// timeLayouts are tried in order. The pipeline writes seconds, sometimes
// with fractions, the UTC column sometimes with an offset
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// Parse reads the whole catalogue. Rows whose directory has no leading
// 8 digit night date are rejected, not skipped, the catalogue is the
// single source of truth and a bad row means a broken pipeline
func Parse(r io.Reader) ([]domain.Record, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "catalogue header")
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, need := range []string{colDirectory, colCaptured, colCapturedU, colFilesize} {
		if _, ok := col[need]; !ok {
			return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "catalogue missing column %q", need)
		}
	}

	var out []domain.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "catalogue line %d", line)
		}
		rec, err := parseRow(row, col)
		if err != nil {
			// row errors carry their own code and the offending value
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, col map[string]int) (domain.Record, error) {
	dir := strings.TrimSpace(row[col[colDirectory]])
	night := datekey.Key("")
	if len(dir) >= 8 {
		night = datekey.Key(dir[:8])
	}
	if !datekey.Valid(night) {
		return domain.Record{}, perr.MalformedDateKeyf("directory %q has no night date prefix", dir)
	}

	capturedAt, err := parseTime(row[col[colCaptured]])
	if err != nil {
		return domain.Record{}, err
	}
	capturedUTC, err := parseTime(row[col[colCapturedU]])
	if err != nil {
		return domain.Record{}, err
	}
	size, err := strconv.ParseInt(strings.TrimSpace(row[col[colFilesize]]), 10, 64)
	if err != nil {
		return domain.Record{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "filesize %q", row[col[colFilesize]])
	}

	return domain.Record{
		Directory:     dir,
		NightDate:     night,
		CapturedAt:    capturedAt,
		CapturedAtUTC: capturedUTC.UTC(),
		FilesizeBytes: size,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, perr.Newf(perr.ErrorCodeInvalidArgument, "unparseable timestamp %q", s)
}
