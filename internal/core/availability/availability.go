// Package availability derives per-night image counts and date bounds from
// the archive's sparse counts list. Nights absent from the list implicitly
// have a count of zero
package availability

import "skyvault/internal/core/datekey"

// Entry is one night that has at least one image
// field tags match the /get_image_counts wire contract
type Entry struct {
	Date  datekey.Key `json:"image_date"`
	Count int         `json:"image_count"`
}

// Index is an immutable lookup from night to image count plus date bounds.
// It is rebuilt wholesale on every fetch, never updated in place
type Index struct {
	counts   map[datekey.Key]int
	min, max datekey.Key
}

// Build folds the entries into an Index. Duplicate dates are not expected
// but tolerated, last write wins. Bounds are a true min/max scan so an
// unsorted source list still yields correct navigation limits
func Build(entries []Entry) Index {
	ix := Index{counts: make(map[datekey.Key]int, len(entries))}
	for _, e := range entries {
		ix.counts[e.Date] = e.Count
		if ix.min == "" || datekey.Compare(e.Date, ix.min) < 0 {
			ix.min = e.Date
		}
		if datekey.Compare(e.Date, ix.max) > 0 {
			ix.max = e.Date
		}
	}
	return ix
}

// Empty reports whether the index holds no nights at all
func (ix Index) Empty() bool { return len(ix.counts) == 0 }

// CountFor returns the image count for a night, 0 when absent
func (ix Index) CountFor(k datekey.Key) int { return ix.counts[k] }

// MinDate returns the earliest night, ok is false for an empty index
func (ix Index) MinDate() (datekey.Key, bool) { return ix.min, !ix.Empty() }

// MaxDate returns the latest night, ok is false for an empty index
func (ix Index) MaxDate() (datekey.Key, bool) { return ix.max, !ix.Empty() }
