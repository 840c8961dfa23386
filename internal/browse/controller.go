// Package browse holds the client-side state machine behind the archive
// calendar: a month cursor with bounds-aware navigation, the download form
// gate, and the outbound request builders
package browse

import (
	"context"
	"sync"
	"time"

	"skyvault/internal/core/availability"
	"skyvault/internal/core/datekey"
	"skyvault/internal/core/monthgrid"
)

// Fetcher loads the per-night availability list from the archive service
type Fetcher interface {
	ImageCounts(ctx context.Context) ([]availability.Entry, error)
}

// State is the controller's fetch lifecycle phase
type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Direction selects a month navigation step
type Direction int

const (
	DirPrev Direction = iota
	DirNext
)

// Cursor is the month the calendar currently shows. Month0 is 0-based
type Cursor struct {
	Year   int
	Month0 int
}

// YearMonth returns the cursor as a comparable year*100+month value,
// matching datekey.Key.YearMonth
func (c Cursor) YearMonth() int { return datekey.YearMonthOf(c.Year, c.Month0+1) }

// View is an immutable snapshot of the controller for rendering
type View struct {
	Cursor      Cursor
	State       State
	Grid        monthgrid.Grid
	PrevEnabled bool
	NextEnabled bool
	Err         error
}

// Controller owns the calendar cursor and availability data. All state
// transitions go through Refresh and Navigate; rendering reads View.
// Safe for concurrent use
type Controller struct {
	mu    sync.Mutex
	fetch Fetcher

	cursor Cursor
	state  State
	gen    uint64

	index availability.Index
	grid  monthgrid.Grid
	prev  bool
	next  bool
	err   error
}

// New returns a controller positioned at now's year and month
func New(f Fetcher, now time.Time) *Controller {
	return &Controller{
		fetch:  f,
		cursor: Cursor{Year: now.Year(), Month0: int(now.Month()) - 1},
	}
}

// Refresh re-fetches the availability list, rebuilds the index and the
// current month's grid, and recomputes the navigation bounds. A refresh
// that is superseded by a later one discards its result on completion.
// On failure the previous grid is retained but navigation is disabled
// until a refresh succeeds
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	entries, err := c.fetch.ImageCounts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// a newer refresh owns the state now
		return nil
	}
	if err != nil {
		c.state = StateError
		c.err = err
		c.prev = false
		c.next = false
		return err
	}
	c.index = availability.Build(entries)
	c.rebuildLocked()
	c.state = StateIdle
	c.err = nil
	return nil
}

// Navigate steps the cursor one month in dir and refreshes. The bounds
// guard is re-checked under the lock, so a step that is disabled at call
// time is a strict no-op
func (c *Controller) Navigate(ctx context.Context, dir Direction) error {
	c.mu.Lock()
	switch dir {
	case DirPrev:
		if !c.prev {
			c.mu.Unlock()
			return nil
		}
		c.cursor.Month0--
		if c.cursor.Month0 < 0 {
			c.cursor.Month0 = 11
			c.cursor.Year--
		}
	case DirNext:
		if !c.next {
			c.mu.Unlock()
			return nil
		}
		c.cursor.Month0++
		if c.cursor.Month0 > 11 {
			c.cursor.Month0 = 0
			c.cursor.Year++
		}
	default:
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// View returns a snapshot for rendering
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Cursor:      c.cursor,
		State:       c.state,
		Grid:        c.grid,
		PrevEnabled: c.prev,
		NextEnabled: c.next,
		Err:         c.err,
	}
}

// rebuildLocked recomputes the grid and bounds for the current cursor.
// Callers hold c.mu
func (c *Controller) rebuildLocked() {
	c.grid = monthgrid.Build(c.cursor.Year, c.cursor.Month0, c.index)
	ym := c.cursor.YearMonth()
	min, okMin := c.index.MinDate()
	max, okMax := c.index.MaxDate()
	c.prev = okMin && min.YearMonth() < ym
	c.next = okMax && max.YearMonth() > ym
}
