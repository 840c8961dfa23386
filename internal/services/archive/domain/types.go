// Package domain defines the types and interfaces for the archive service
package domain

import (
	"time"

	"skyvault/internal/core/datekey"
)

// ImageCount is one night's image count
// field tags match the /get_image_counts wire contract
type ImageCount struct {
	ImageDate  datekey.Key `json:"image_date"`
	ImageCount int         `json:"image_count"`
}

// Image is one catalogued all-sky frame. Directory is the path of the
// image file relative to the archive root; the first 8 characters are
// the night date
type Image struct {
	ID            string // uuid
	Directory     string
	NightDate     datekey.Key
	CapturedAt    time.Time
	CapturedAtUTC time.Time
	FilesizeBytes int64
}

// SelectionInput is the download form. Dates name nights, inclusive on
// both ends; SiderealDatetime is local civil time at the observatory
type SelectionInput struct {
	StartDate        string `form:"start_date" json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          string `form:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	SiderealDatetime string `form:"sidereal_datetime" json:"sidereal_datetime" validate:"required,datetime=2006-01-02T15:04"`
	LimitClearImages bool   `form:"limit_clear_images" json:"limit_clear_images"`
}

// SizeEstimate is the /calculate_size response body
type SizeEstimate struct {
	TotalSizeMB float64 `json:"total_size_mb"`
}
