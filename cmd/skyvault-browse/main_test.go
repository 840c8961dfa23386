package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveZipRemovesFileOnFailedDownload(t *testing.T) {
	name := filepath.Join(t.TempDir(), "images.zip")

	saveZip(context.Background(), name, func(f *os.File) (int64, error) {
		// partial write then a broken stream
		if _, err := f.Write([]byte("PK")); err != nil {
			t.Fatal(err)
		}
		return 2, errors.New("connection reset")
	})

	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("stat after failed download: %v, want removed", err)
	}
}

func TestSaveZipKeepsFileOnSuccess(t *testing.T) {
	name := filepath.Join(t.TempDir(), "images.zip")

	saveZip(context.Background(), name, func(f *os.File) (int64, error) {
		n, err := f.Write([]byte("zip bytes"))
		return int64(n), err
	})

	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "zip bytes" {
		t.Fatalf("content = %q", got)
	}
}
