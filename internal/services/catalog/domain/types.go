// Package domain defines the types for the catalog service
package domain

import (
	"time"

	"skyvault/internal/core/datekey"
)

// Record is one catalogue row describing a captured frame. Directory is
// the image path relative to the archive root, unique per frame
type Record struct {
	Directory     string
	NightDate     datekey.Key
	CapturedAt    time.Time
	CapturedAtUTC time.Time
	FilesizeBytes int64
}

// SyncStats summarizes one catalogue sync run
type SyncStats struct {
	Rows     int
	Upserted int64
	Skipped  int
}
