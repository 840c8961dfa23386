package browse

import (
	"testing"

	"skyvault/internal/core/datekey"
)

func TestEstimateRequestFields(t *testing.T) {
	f := FormState{
		StartDate:        "2024-01-01",
		EndDate:          "2024-02-01",
		ReferenceInstant: "2024-01-15T22:00",
		LimitClearImages: true,
	}
	v := EstimateRequest(f)
	if got := v.Get("start_date"); got != "2024-01-01" {
		t.Fatalf("start_date = %q", got)
	}
	if got := v.Get("end_date"); got != "2024-02-01" {
		t.Fatalf("end_date = %q", got)
	}
	if got := v.Get("sidereal_datetime"); got != "2024-01-15T22:00" {
		t.Fatalf("sidereal_datetime = %q", got)
	}
	if got := v.Get("limit_clear_images"); got != "on" {
		t.Fatalf("limit_clear_images = %q, want on", got)
	}
}

func TestDownloadRequestCheckboxOff(t *testing.T) {
	v := DownloadRequest(FormState{StartDate: "a", EndDate: "b", ReferenceInstant: "c"})
	if got := v.Get("limit_clear_images"); got != "off" {
		t.Fatalf("limit_clear_images = %q, want off", got)
	}
	if len(v) != 4 {
		t.Fatalf("field count = %d, want 4", len(v))
	}
}

func TestDateDownloadRequest(t *testing.T) {
	v := DateDownloadRequest(datekey.Key("20240101"))
	if got := v.Get("date"); got != "20240101" {
		t.Fatalf("date = %q", got)
	}
	if len(v) != 1 {
		t.Fatalf("field count = %d, want 1", len(v))
	}
}
