// Package datekey implements the compact YYYYMMDD day identifier used across
// the archive: night folders, availability entries, and download requests.
// Keys order lexicographically, which is also chronological order
package datekey

import (
	"fmt"
	"strings"
	"time"

	perr "skyvault/internal/platform/errors"
)

// Key is an 8 digit YYYYMMDD string, the canonical identity for one night.
// Month and day validity is trusted from the producer; Decode only enforces
// shape (8 ASCII digits)
type Key string

// Encode builds a Key from a calendar date, month is 1 based
func Encode(year, month, day int) Key {
	return Key(fmt.Sprintf("%04d%02d%02d", year, month, day))
}

// FromTime builds a Key from the calendar date of t in its own location
func FromTime(t time.Time) Key {
	return Encode(t.Year(), int(t.Month()), t.Day())
}

// Decode splits a Key into year, 1 based month, and day.
// Fails with a MalformedDateKey error when the key is not 8 ASCII digits
func Decode(k Key) (year, month, day int, err error) {
	s := string(k)
	if len(s) != 8 || strings.IndexFunc(s, notDigit) >= 0 {
		return 0, 0, 0, perr.MalformedDateKeyf("malformed date key %q", s)
	}
	return atoi(s[:4]), atoi(s[4:6]), atoi(s[6:8]), nil
}

// Valid reports whether k has the 8 digit shape
func Valid(k Key) bool {
	_, _, _, err := Decode(k)
	return err == nil
}

// YearMonth returns year*100 + month for month granularity comparison,
// or 0 when the key is malformed
func (k Key) YearMonth() int {
	y, m, _, err := Decode(k)
	if err != nil {
		return 0
	}
	return y*100 + m
}

// YearMonthOf composes the same prefix from a year and a 1 based month
func YearMonthOf(year, month int) int { return year*100 + month }

// Compare orders two keys; lexicographic equals chronological for well formed keys
func Compare(a, b Key) int { return strings.Compare(string(a), string(b)) }

func notDigit(r rune) bool { return r < '0' || r > '9' }

// atoi converts a pre-checked digit string, no error path needed
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
