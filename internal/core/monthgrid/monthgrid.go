// Package monthgrid lays out one calendar month as Monday-first week rows
// for the availability view
package monthgrid

import (
	"time"

	"skyvault/internal/core/availability"
	"skyvault/internal/core/datekey"
)

// Cell is one day slot in the grid. The zero value is a blank slot used to
// pad the leading and trailing edges of the month
type Cell struct {
	Day       int
	Date      datekey.Key
	Count     int
	Populated bool
}

// Blank reports whether the cell is a padding slot
func (c Cell) Blank() bool { return c.Day == 0 }

// Grid is a full month of 7-wide week rows
type Grid struct {
	Year  int
	Month int // 0 based, matching the navigation cursor
	Weeks [][]Cell
}

// Build lays out the month and tags each day with its image count from ix.
// Every row is exactly 7 wide; rows jointly cover the whole month with no
// gaps or overlaps
func Build(year, month0 int, ix availability.Index) Grid {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	daysInMonth := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()

	// shift so Monday = 0 ... Sunday = 6
	lead := (int(first.Weekday()) + 6) % 7

	cells := make([]Cell, lead, lead+daysInMonth+6)
	for day := 1; day <= daysInMonth; day++ {
		key := datekey.Encode(year, month0+1, day)
		count := ix.CountFor(key)
		cells = append(cells, Cell{
			Day:       day,
			Date:      key,
			Count:     count,
			Populated: count > 0,
		})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	g := Grid{Year: year, Month: month0, Weeks: make([][]Cell, 0, len(cells)/7)}
	for i := 0; i < len(cells); i += 7 {
		g.Weeks = append(g.Weeks, cells[i:i+7])
	}
	return g
}
