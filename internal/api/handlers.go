package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
	"github.com/zapponejosh/mmcalendar-api/internal/config"
	"github.com/zapponejosh/mmcalendar-api/internal/database"
	"github.com/zapponejosh/mmcalendar-api/internal/logger"
)

// Limits on path and query values.
const (
	maxJDN       = 1e7
	minYear      = 0
	maxYear      = 9999
	maxBuildDays = 10 * 366

	defaultBuildsLimit = 10
	maxBuildsLimit     = 100
)

// Clock returns the current instant.
type Clock func() time.Time

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	resolver *calendar.DateResolver
	cfg      *config.Config
	logger   *slog.Logger
	now      Clock
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock replaces the wall clock used by the today endpoint.
func WithClock(c Clock) Option {
	return func(h *Handlers) { h.now = c }
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, log *slog.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		db:       db,
		resolver: calendar.NewDateResolver(cfg.Converter(), cfg.TZOffsetHours),
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(ctx context.Context) *slog.Logger {
	if id := logger.RequestID(ctx); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// RangeResponse is the body of the range endpoint.
type RangeResponse struct {
	Start    string          `json:"start"`
	End      string          `json:"end"`
	StartJDN int             `json:"start_jdn"`
	EndJDN   int             `json:"end_jdn"`
	Days     []*calendar.Day `json:"days"`
}

// YearResponse describes one Myanmar year.
type YearResponse struct {
	Year     int    `json:"year"`
	Name     string `json:"year_name"`
	TypeName string `json:"year_type_name"`
	Length   int    `json:"year_length"`
	calendar.YearMetrics
	Era      calendar.EraConstants `json:"era"`
	Thingyan calendar.Thingyan     `json:"thingyan"`
}

// HolidaysResponse lists the public holidays of a Gregorian year.
type HolidaysResponse struct {
	Year           int                   `json:"year"`
	StartJDN       int                   `json:"start_jdn"`
	EndJDN         int                   `json:"end_jdn"`
	WrittenThrough bool                  `json:"written_through"`
	Days           []database.AlmanacDay `json:"days"`
}

// StoredRangeResponse is the body of the stored days endpoint.
type StoredRangeResponse struct {
	Start    string                `json:"start"`
	End      string                `json:"end"`
	StartJDN int                   `json:"start_jdn"`
	EndJDN   int                   `json:"end_jdn"`
	Stored   int                   `json:"stored"`
	Days     []database.AlmanacDay `json:"days"`
}

// BuildResponse reports a precompute run.
type BuildResponse struct {
	StartJDN int `json:"start_jdn"`
	EndJDN   int `json:"end_jdn"`
	Days     int `json:"days"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.log(ctx).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	stats, err := h.db.GetAlmanacStats(ctx)
	if err != nil {
		h.log(ctx).Warn("almanac stats failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":   "healthy",
		"calendar": h.resolver.Converter().Type.String(),
		"almanac":  stats,
	})
}

// GetToday handles GET /api/v1/days/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.resolver.ResolveTime(h.now())
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}
	WriteSuccess(w, day)
}

// GetGregorianDay handles GET /api/v1/days/gregorian/{YYYY-MM-DD}
func (h *Handlers) GetGregorianDay(w http.ResponseWriter, r *http.Request) {
	jdn, err := h.parseCivilDate(chi.URLParam(r, "date"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	WriteSuccess(w, h.resolver.ResolveDay(jdn))
}

// GetJulianDay handles GET /api/v1/days/julian/{jdn}
//
// A whole number is a Julian day number. A fractional value is a Julian
// date in universal time and is shifted to the local day.
func (h *Handlers) GetJulianDay(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "jdn")
	jd, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid Julian day: %s", raw))
		return
	}
	if math.IsNaN(jd) || math.IsInf(jd, 0) || jd < 0 || jd > maxJDN {
		WriteBadRequest(w, fmt.Sprintf("Julian day out of range: %s", raw))
		return
	}

	if jd == math.Trunc(jd) {
		WriteSuccess(w, h.resolver.ResolveDay(int(jd)))
		return
	}

	day, err := h.resolver.Resolve(jd)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}
	WriteSuccess(w, day)
}

// GetBurmeseDay handles GET /api/v1/days/burmese/{year}/{month}/{day}
//
// month is an index (0 = First Waso) or a month name.
func (h *Handlers) GetBurmeseDay(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	month, err := calendar.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid month: %v", err))
		return
	}

	dayStr := chi.URLParam(r, "day")
	md, err := strconv.Atoi(dayStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid day: %s", dayStr))
		return
	}

	day, err := h.resolver.ResolveBurmese(year, month, md)
	if err != nil {
		h.writeResolveError(w, r, err)
		return
	}
	WriteSuccess(w, day)
}

// GetRange handles GET /api/v1/days/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	startJDN, endJDN, ok := h.parseRange(w, startStr, endStr)
	if !ok {
		return
	}

	if endJDN-startJDN+1 > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	days := make([]*calendar.Day, 0, endJDN-startJDN+1)
	for jdn := startJDN; jdn <= endJDN; jdn++ {
		days = append(days, h.resolver.ResolveDay(jdn))
	}

	WriteSuccess(w, RangeResponse{
		Start:    startStr,
		End:      endStr,
		StartJDN: startJDN,
		EndJDN:   endJDN,
		Days:     days,
	})
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	ym := calendar.CalculateYear(year)
	WriteSuccess(w, YearResponse{
		Year:        year,
		Name:        calendar.YearName(year),
		TypeName:    ym.Type.String(),
		Length:      ym.Length(),
		YearMetrics: ym,
		Era:         calendar.EraConstantsFor(year),
		Thingyan:    calendar.ThingyanFor(year),
	})
}

// GetHolidays handles GET /api/v1/holidays/{year}
//
// Holidays are read from the almanac store. Days the store does not have
// yet are computed and written through first.
func (h *Handlers) GetHolidays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, err := parseYear(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %s", chi.URLParam(r, "year")))
		return
	}

	startJDN, err := h.resolver.GregorianDayNumber(year, 1, 1)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	endJDN, err := h.resolver.GregorianDayNumber(year, 12, 31)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	days, built, err := h.db.EnsureHolidays(ctx, h.resolver, startJDN, endJDN)
	if err != nil {
		h.log(ctx).Error("failed to get holidays",
			slog.Int("year", year),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve holidays")
		return
	}

	WriteSuccess(w, HolidaysResponse{
		Year:           year,
		StartJDN:       startJDN,
		EndJDN:         endJDN,
		WrittenThrough: built,
		Days:           days,
	})
}

// BuildAlmanac handles POST /api/v1/almanac/build?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) BuildAlmanac(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startJDN, endJDN, ok := h.parseRange(w, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if !ok {
		return
	}

	if endJDN-startJDN+1 > maxBuildDays {
		WriteBadRequest(w, fmt.Sprintf("Build range cannot exceed %d days", maxBuildDays))
		return
	}

	n, err := h.db.BuildRange(ctx, h.resolver, startJDN, endJDN, database.SourceAPI)
	if err != nil {
		h.log(ctx).Error("almanac build failed",
			slog.Int("start_jdn", startJDN),
			slog.Int("end_jdn", endJDN),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to build almanac")
		return
	}

	WriteCreated(w, BuildResponse{StartJDN: startJDN, EndJDN: endJDN, Days: n})
}

// GetStoredDay handles GET /api/v1/almanac/days/{jdn}
func (h *Handlers) GetStoredDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jdnStr := chi.URLParam(r, "jdn")
	jdn, err := strconv.Atoi(jdnStr)
	if err != nil || jdn < 0 || jdn > maxJDN {
		WriteBadRequest(w, fmt.Sprintf("Invalid Julian day number: %s", jdnStr))
		return
	}

	day, err := h.db.GetDayByJDN(ctx, jdn)
	if database.IsNotFound(err) {
		WriteNotFound(w, fmt.Sprintf("Day %d is not in the almanac store", jdn))
		return
	}
	if err != nil {
		h.log(ctx).Error("failed to get stored day",
			slog.Int("jdn", jdn),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve stored day")
		return
	}

	WriteSuccess(w, day)
}

// GetStoredDays handles GET /api/v1/almanac/days?start=YYYY-MM-DD&end=YYYY-MM-DD
//
// Only days already in the almanac store are returned; nothing is computed.
func (h *Handlers) GetStoredDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	startJDN, endJDN, ok := h.parseRange(w, startStr, endStr)
	if !ok {
		return
	}

	if endJDN-startJDN+1 > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	days, err := h.db.GetDaysInRange(ctx, startJDN, endJDN)
	if err != nil {
		h.log(ctx).Error("failed to get stored days",
			slog.Int("start_jdn", startJDN),
			slog.Int("end_jdn", endJDN),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve stored days")
		return
	}

	WriteSuccess(w, StoredRangeResponse{
		Start:    startStr,
		End:      endStr,
		StartJDN: startJDN,
		EndJDN:   endJDN,
		Stored:   len(days),
		Days:     days,
	})
}

// GetBuilds handles GET /api/v1/almanac/builds?limit=N
func (h *Handlers) GetBuilds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultBuildsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxBuildsLimit {
			WriteBadRequest(w, fmt.Sprintf("limit must be between 1 and %d", maxBuildsLimit))
			return
		}
		limit = n
	}

	builds, err := h.db.GetRecentBuilds(ctx, limit)
	if err != nil {
		h.log(ctx).Error("failed to get build log", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve build log")
		return
	}

	WriteSuccess(w, builds)
}

// parseCivilDate validates a YYYY-MM-DD date in the configured calendar and
// returns its Julian day number.
func (h *Handlers) parseCivilDate(s string) (int, error) {
	if s == "" {
		return 0, errors.New("date parameter is required")
	}
	year, month, day, err := calendar.ParseCivilDate(s)
	if err != nil {
		return 0, fmt.Errorf("invalid date format: %s, use YYYY-MM-DD", s)
	}
	jdn, err := h.resolver.GregorianDayNumber(year, month, day)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %s does not exist in the %s calendar",
			s, h.resolver.Converter().Type)
	}
	return jdn, nil
}

// parseRange parses start and end query values, writing a 400 on failure.
func (h *Handlers) parseRange(w http.ResponseWriter, startStr, endStr string) (int, int, bool) {
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return 0, 0, false
	}

	startJDN, err := h.parseCivilDate(startStr)
	if err != nil {
		WriteBadRequest(w, "start: "+err.Error())
		return 0, 0, false
	}
	endJDN, err := h.parseCivilDate(endStr)
	if err != nil {
		WriteBadRequest(w, "end: "+err.Error())
		return 0, 0, false
	}

	if startJDN > endJDN {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return 0, 0, false
	}
	return startJDN, endJDN, true
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < minYear || year > maxYear {
		return 0, fmt.Errorf("invalid year: %s", s)
	}
	return year, nil
}

// writeResolveError maps resolver errors to responses.
func (h *Handlers) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidBurmeseDate),
		errors.Is(err, calendar.ErrInvalidGregorianDate),
		errors.Is(err, calendar.ErrInvalidJulianDay):
		WriteBadRequest(w, err.Error())
	default:
		h.log(r.Context()).Error("resolve failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve date")
	}
}
