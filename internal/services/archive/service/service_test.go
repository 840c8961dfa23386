package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"skyvault/internal/core/datekey"
	"skyvault/internal/modkit/repokit"
	perr "skyvault/internal/platform/errors"
	"skyvault/internal/services/archive/domain"
	"skyvault/internal/services/archive/repo"
)

type fakeStorage struct {
	images []domain.Image
	counts []domain.ImageCount

	gotClearOnly bool
	gotFrom      datekey.Key
	gotTo        datekey.Key
}

func (f *fakeStorage) CountsByNight(context.Context) ([]domain.ImageCount, error) {
	return f.counts, nil
}

func (f *fakeStorage) ImagesForNight(_ context.Context, night datekey.Key) ([]domain.Image, error) {
	var out []domain.Image
	for _, im := range f.images {
		if im.NightDate == night {
			out = append(out, im)
		}
	}
	return out, nil
}

func (f *fakeStorage) ImagesBetween(_ context.Context, from, to datekey.Key, clearOnly bool, _, _ int64) ([]domain.Image, error) {
	f.gotFrom, f.gotTo, f.gotClearOnly = from, to, clearOnly
	var out []domain.Image
	for _, im := range f.images {
		if datekey.Compare(im.NightDate, from) >= 0 && datekey.Compare(im.NightDate, to) <= 0 {
			out = append(out, im)
		}
	}
	return out, nil
}

type nopRunner struct{}

func (nopRunner) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (nopRunner) Query(context.Context, string, ...any) (repokit.Rows, error)     { return nil, nil }
func (nopRunner) QueryRow(context.Context, string, ...any) repokit.Row            { return nil }
func (nopRunner) Tx(context.Context, func(q repokit.Queryer) error) error         { return nil }

func newService(t *testing.T, fs *fakeStorage, cfg Config) *Service {
	t.Helper()
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	binder := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return fs })
	s, err := New(nopRunner{}, binder, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// ref is the form's reference instant; image capture times below are
// offsets from it, so sidereal drift stays small and predictable
var ref = time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

func img(id string, night datekey.Key, at time.Time, size int64) domain.Image {
	return domain.Image{
		ID: id, Directory: string(night) + "/" + id + ".jpg",
		NightDate: night, CapturedAt: at, CapturedAtUTC: at, FilesizeBytes: size,
	}
}

func selInput() domain.SelectionInput {
	return domain.SelectionInput{
		StartDate:        "2024-01-01",
		EndDate:          "2024-01-03",
		SiderealDatetime: "2024-01-01T22:00",
	}
}

func TestSelectOneClosestPerNight(t *testing.T) {
	fs := &fakeStorage{images: []domain.Image{
		// night 1: 10 minutes off and dead on target, dead on wins
		img("a", "20240101", ref.Add(10*time.Minute), 100),
		img("b", "20240101", ref, 100),
		// night 1: six hours off, outside the window
		img("c", "20240101", ref.Add(6*time.Hour), 100),
		// night 2: one solar day plus 20 minutes, still inside the window
		img("d", "20240102", ref.Add(24*time.Hour+20*time.Minute), 100),
		// night 3: over an hour of sidereal distance, excluded entirely
		img("e", "20240103", ref.Add(48*time.Hour+time.Hour), 100),
	}}
	s := newService(t, fs, Config{})

	picked, err := s.Select(context.Background(), selInput())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(picked) != 2 {
		t.Fatalf("picked %d images, want 2", len(picked))
	}
	if picked[0].ID != "b" {
		t.Fatalf("night 1 pick = %s, want b", picked[0].ID)
	}
	if picked[1].ID != "d" {
		t.Fatalf("night 2 pick = %s, want d", picked[1].ID)
	}
	if fs.gotFrom != "20240101" || fs.gotTo != "20240103" {
		t.Fatalf("range %s..%s, want 20240101..20240103", fs.gotFrom, fs.gotTo)
	}
}

func TestSelectPassesClearFilter(t *testing.T) {
	fs := &fakeStorage{}
	s := newService(t, fs, Config{})

	in := selInput()
	in.LimitClearImages = true
	if _, err := s.Select(context.Background(), in); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !fs.gotClearOnly {
		t.Fatal("clear filter not forwarded to storage")
	}
}

func TestSelectRejectsInvertedRange(t *testing.T) {
	s := newService(t, &fakeStorage{}, Config{})
	in := selInput()
	in.StartDate, in.EndDate = in.EndDate, in.StartDate
	_, err := s.Select(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation code", err)
	}
}

func TestEstimateSizeSumsSelection(t *testing.T) {
	fs := &fakeStorage{images: []domain.Image{
		img("a", "20240101", ref, 10_500_000),
		img("b", "20240102", ref.Add(24*time.Hour), 11_000_000),
	}}
	s := newService(t, fs, Config{})

	est, err := s.EstimateSize(context.Background(), selInput())
	if err != nil {
		t.Fatalf("EstimateSize: %v", err)
	}
	if est.TotalSizeMB != 21.5 {
		t.Fatalf("total = %v MB, want 21.5", est.TotalSizeMB)
	}
}

func TestNightZipStream(t *testing.T) {
	root := t.TempDir()
	night := datekey.Key("20240101")
	for _, name := range []string{"one.jpg", "two.jpg"} {
		dir := filepath.Join(root, "20240101")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte("frame "+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fs := &fakeStorage{images: []domain.Image{
		img("one", night, ref, 10),
		img("two", night, ref.Add(time.Minute), 10),
	}}
	s := newService(t, fs, Config{ImageRoot: root})

	images, err := s.NightImages(context.Background(), night)
	if err != nil {
		t.Fatalf("NightImages: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}

	var buf bytes.Buffer
	if err := s.StreamZip(context.Background(), &buf, images); err != nil {
		t.Fatalf("StreamZip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip open: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("zip has %d entries, want 2", len(zr.File))
	}
	if zr.File[0].Name != "one.jpg" || zr.File[1].Name != "two.jpg" {
		t.Fatalf("entry names %q %q", zr.File[0].Name, zr.File[1].Name)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "frame one.jpg" {
		t.Fatalf("entry body %q", body)
	}
}

func TestStreamZipSkipsMissingFiles(t *testing.T) {
	root := t.TempDir()
	night := datekey.Key("20240101")
	dir := filepath.Join(root, "20240101")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "one.jpg"), []byte("frame"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newService(t, &fakeStorage{}, Config{ImageRoot: root})

	// "gone" is catalogued but absent on disk
	var buf bytes.Buffer
	err := s.StreamZip(context.Background(), &buf, []domain.Image{
		img("gone", night, ref, 10),
		img("one", night, ref.Add(time.Minute), 10),
	})
	if err != nil {
		t.Fatalf("StreamZip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip open: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "one.jpg" {
		t.Fatalf("zip entries = %v, want just one.jpg", zr.File)
	}
}

func TestNightImagesMalformedKey(t *testing.T) {
	s := newService(t, &fakeStorage{}, Config{})
	_, err := s.NightImages(context.Background(), datekey.Key("2024-01-01"))
	if !perr.IsCode(err, perr.ErrorCodeMalformedDateKey) {
		t.Fatalf("err = %v, want malformed date key code", err)
	}
}
