// Package sidereal computes local mean sidereal time, used to pick frames
// where the stars sit in the same part of the sky night after night.
//
// The Julian date and sidereal time formulas follow the classic Meeus
// treatment (as published at nies.ch/doc/astro/sternzeit, CC BY)
package sidereal

import (
	"math"
	"time"
)

// HoursPerDay is the sidereal wrap modulus
const HoursPerDay = 24.0

// siderealRate is the ratio of sidereal to solar time
const siderealRate = 1.00273790935

// JulianDate returns the number of days since 1 January 4713 BC 12:00.
// utcHours is UTC in decimal hours; zero gives the date at 12:00 UTC.
// The Gregorian reform (5-14 October 1582 never happened) is handled
func JulianDate(year, month, day int, utcHours float64) float64 {
	y, m := year, month
	if month <= 2 {
		y--
		m += 12
	}
	d := float64(day)
	h := utcHours / 24

	var b float64
	switch {
	case year < 1582, year == 1582 && month < 10, year == 1582 && month == 10 && day <= 4:
		// Julian calendar
		b = 0
	case year == 1582 && month == 10 && day < 15:
		// skipped days collapse onto the 15th
		d = 15
		b = -10
	default:
		a := math.Floor(float64(y) / 100)
		b = 2 - a + math.Floor(a/4)
	}
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + d + h + b - 1524.5
}

// Local returns the local mean sidereal time in decimal hours at t for the
// given longitude (decimal degrees, east positive). Longitude zero gives
// Greenwich mean sidereal time
func Local(t time.Time, longitudeDeg float64) float64 {
	u := t.UTC()
	utcHours := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600

	jd := JulianDate(u.Year(), int(u.Month()), u.Day(), 0)
	tc := (jd - 2451545.0) / 36525

	// Greenwich sidereal time at 0h UTC (hours)
	st := (24110.54841 + 8640184.812866*tc + 0.093104*tc*tc - 0.0000062*tc*tc*tc) / 3600
	// advance to the given UTC, then shift to the local meridian
	st += siderealRate * utcHours
	st += longitudeDeg / 15
	return wrap(st)
}

// Greenwich returns GMST in decimal hours at t
func Greenwich(t time.Time) float64 { return Local(t, 0) }

// WrapDistance returns the shortest distance between two sidereal clock
// readings, in hours within [0, 12]
func WrapDistance(a, b float64) float64 {
	d := wrap(a - b)
	if e := HoursPerDay - d; e < d {
		return e
	}
	return d
}

func wrap(h float64) float64 {
	h = math.Mod(h, HoursPerDay)
	if h < 0 {
		h += HoursPerDay
	}
	return h
}
