// Package pages serves the archive's HTML front end: the availability
// calendar and the download form, rendered server side
package pages

import (
	"embed"
	"fmt"
	"html/template"
	stdhttp "net/http"
	"strconv"
	"time"

	"skyvault/internal/core/availability"
	"skyvault/internal/core/datekey"
	"skyvault/internal/core/monthgrid"
	"skyvault/internal/modkit"
	"skyvault/internal/modkit/httpkit"
	"skyvault/internal/platform/logger"
	"skyvault/internal/services/archive/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Module implements the pages service module
type Module struct {
	deps  modkit.Deps
	query domain.QueryPort
	tmpl  *template.Template
	now   func() time.Time
}

// New constructs the pages module. query supplies the availability counts
func New(deps modkit.Deps, query domain.QueryPort, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{modkit.WithName("pages")}, opts...)...)
	return &Module{
		deps:  deps,
		query: query,
		tmpl:  template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
		now:   time.Now,
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pages" }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.GetRawFunc(r, "/", m.index)
}

// monthView is the root template context
type monthView struct {
	Title     string
	Year      int
	MonthName string
	Weeks     [][]monthgrid.Cell
	Weekdays  []string

	PrevEnabled bool
	NextEnabled bool
	PrevHref    string
	NextHref    string

	FetchFailed bool
}

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (m *Module) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	now := m.now()
	year, month0 := cursorFromQuery(r, now)

	view := monthView{
		Title:     "All-Sky Image Archive",
		Year:      year,
		MonthName: time.Month(month0 + 1).String(),
		Weekdays:  weekdays,
	}

	counts, err := m.query.ImageCounts(r.Context())
	if err != nil {
		// render the page shell anyway, navigation stays disabled
		logger.C(r.Context()).Error().Err(err).Msg("availability fetch failed")
		view.FetchFailed = true
		view.Weeks = monthgrid.Build(year, month0, availability.Build(nil)).Weeks
		m.render(w, r, view)
		return
	}

	entries := make([]availability.Entry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, availability.Entry{Date: c.ImageDate, Count: c.ImageCount})
	}
	ix := availability.Build(entries)
	grid := monthgrid.Build(year, month0, ix)
	view.Weeks = grid.Weeks

	ym := datekey.YearMonthOf(year, month0+1)
	if min, ok := ix.MinDate(); ok && min.YearMonth() < ym {
		view.PrevEnabled = true
		py, pm := step(year, month0, -1)
		view.PrevHref = monthHref(py, pm)
	}
	if max, ok := ix.MaxDate(); ok && max.YearMonth() > ym {
		view.NextEnabled = true
		ny, nm := step(year, month0, +1)
		view.NextHref = monthHref(ny, nm)
	}
	m.render(w, r, view)
}

func (m *Module) render(w stdhttp.ResponseWriter, r *stdhttp.Request, view monthView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := m.tmpl.ExecuteTemplate(w, "index.html.tmpl", view); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("render index")
	}
}

// cursorFromQuery reads ?year and ?month (1 based), clamped to sane
// values, defaulting to the current month
func cursorFromQuery(r *stdhttp.Request, now time.Time) (year, month0 int) {
	year, month0 = now.Year(), int(now.Month())-1
	if v, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && v >= 1 && v <= 9999 {
		year = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && v >= 1 && v <= 12 {
		month0 = v - 1
	}
	return year, month0
}

func step(year, month0, delta int) (int, int) {
	month0 += delta
	switch {
	case month0 < 0:
		return year - 1, 11
	case month0 > 11:
		return year + 1, 0
	}
	return year, month0
}

func monthHref(year, month0 int) string {
	return fmt.Sprintf("/?year=%d&month=%d", year, month0+1)
}
