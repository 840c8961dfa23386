package sidereal

import (
	"math"
	"testing"
	"time"
)

func TestJulianDateKnownValues(t *testing.T) {
	cases := []struct {
		y, m, d int
		utc     float64
		want    float64
	}{
		{2000, 1, 1, 12, 2451545.0},      // the J2000.0 epoch
		{1999, 1, 1, 0, 2451179.5},
		{1987, 1, 27, 0, 2446822.5},      // Meeus, Astronomical Algorithms
		{1988, 6, 19, 12, 2447332.0},
		{1600, 1, 1, 0, 2305447.5},
	}
	for _, c := range cases {
		got := JulianDate(c.y, c.m, c.d, c.utc)
		if math.Abs(got-c.want) > 1e-6 {
			t.Fatalf("JulianDate(%d,%d,%d,%g) = %f, want %f", c.y, c.m, c.d, c.utc, got, c.want)
		}
	}
}

func TestJulianDateGregorianReform(t *testing.T) {
	// 4 October 1582 (Julian) and 15 October 1582 (Gregorian) are adjacent days
	before := JulianDate(1582, 10, 4, 0)
	after := JulianDate(1582, 10, 15, 0)
	if math.Abs(after-before-1) > 1e-9 {
		t.Fatalf("reform gap: %f -> %f, want adjacent days", before, after)
	}
	// the skipped dates collapse onto the 15th
	if got := JulianDate(1582, 10, 10, 0); math.Abs(got-after) > 1e-9 {
		t.Fatalf("JulianDate(1582,10,10) = %f, want %f", got, after)
	}
}

func TestGreenwichKnownValue(t *testing.T) {
	// Meeus example 12.a: GMST at 1987 April 10, 0h UT is 13h 10m 46.3668s
	// the mean-only polynomial agrees to well under a second
	got := Greenwich(time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC))
	want := 13.0 + 10.0/60 + 46.3668/3600
	if math.Abs(got-want) > 1.0/3600 {
		t.Fatalf("GMST = %f, want %f within 1s", got, want)
	}
}

func TestLocalLongitudeShift(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	gmst := Local(at, 0)
	// 15 degrees east is exactly one sidereal-clock hour ahead
	east := Local(at, 15)
	diff := math.Mod(east-gmst+24, 24)
	if math.Abs(diff-1) > 1e-9 {
		t.Fatalf("15 deg east shift = %f hours, want 1", diff)
	}
}

func TestLocalRange(t *testing.T) {
	longs := []float64{-180, -74.5, 0, 138.60298, 179.9}
	at := time.Date(2031, 12, 31, 23, 59, 59, 0, time.UTC)
	for _, lon := range longs {
		st := Local(at, lon)
		if st < 0 || st >= 24 {
			t.Fatalf("Local(%g) = %f out of [0,24)", lon, st)
		}
	}
}

func TestWrapDistance(t *testing.T) {
	cases := []struct{ a, b, want float64 }{
		{1, 23, 2},
		{23, 1, 2},
		{0, 12, 12},
		{5.5, 5.0, 0.5},
		{0.25, 23.75, 0.5},
	}
	for _, c := range cases {
		if got := WrapDistance(c.a, c.b); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("WrapDistance(%g,%g) = %f, want %f", c.a, c.b, got, c.want)
		}
	}
}
