package datekey

import (
	"testing"
	"time"

	perr "skyvault/internal/platform/errors"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		y, m, d int
	}{
		{2024, 1, 1},
		{2024, 12, 31},
		{1999, 2, 28},
		{2020, 2, 29},
		{2024, 10, 5},
	}
	for _, c := range cases {
		k := Encode(c.y, c.m, c.d)
		if len(k) != 8 {
			t.Fatalf("Encode(%d,%d,%d) = %q, want 8 digits", c.y, c.m, c.d, k)
		}
		y, m, d, err := Decode(k)
		if err != nil {
			t.Fatalf("Decode(%q): %v", k, err)
		}
		if y != c.y || m != c.m || d != c.d {
			t.Fatalf("Decode(%q) = (%d,%d,%d), want (%d,%d,%d)", k, y, m, d, c.y, c.m, c.d)
		}
	}
}

func TestEncodeZeroPads(t *testing.T) {
	if k := Encode(2024, 3, 7); k != "20240307" {
		t.Fatalf("Encode(2024,3,7) = %q, want 20240307", k)
	}
	if k := Encode(980, 11, 20); k != "09801120" {
		t.Fatalf("Encode(980,11,20) = %q, want 09801120", k)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, bad := range []Key{"", "2024", "202401011", "2024010a", "2024-1-1", "abcdefgh"} {
		_, _, _, err := Decode(bad)
		if err == nil {
			t.Fatalf("Decode(%q) succeeded, want malformed error", bad)
		}
		if !perr.IsCode(err, perr.ErrorCodeMalformedDateKey) {
			t.Fatalf("Decode(%q) error code = %v, want MalformedDateKey", bad, perr.CodeOf(err))
		}
	}
}

func TestYearMonth(t *testing.T) {
	if got := Key("20240601").YearMonth(); got != 202406 {
		t.Fatalf("YearMonth = %d, want 202406", got)
	}
	if got := Key("junk").YearMonth(); got != 0 {
		t.Fatalf("YearMonth of malformed key = %d, want 0", got)
	}
	if got := YearMonthOf(2024, 3); got != 202403 {
		t.Fatalf("YearMonthOf(2024,3) = %d, want 202403", got)
	}
}

func TestCompareMatchesChronology(t *testing.T) {
	a, b := Key("20231231"), Key("20240101")
	if Compare(a, b) >= 0 {
		t.Fatalf("Compare(%q,%q) should be negative", a, b)
	}
	if Compare(b, b) != 0 {
		t.Fatalf("Compare equal keys should be 0")
	}
}

func TestFromTime(t *testing.T) {
	tt := time.Date(2024, 7, 9, 23, 59, 0, 0, time.UTC)
	if k := FromTime(tt); k != "20240709" {
		t.Fatalf("FromTime = %q, want 20240709", k)
	}
}
