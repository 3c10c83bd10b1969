package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
)

// AlmanacDay is one precomputed day as stored in almanac_days.
type AlmanacDay struct {
	JDN           int       `json:"jdn"`
	GregorianDate string    `json:"gregorian_date"` // YYYY-MM-DD in the configured calendar
	Weekday       int       `json:"weekday"`        // 0=Saturday through 6=Friday
	BurmeseYear   int       `json:"burmese_year"`
	BurmeseMonth  int       `json:"burmese_month"` // 0=First Waso through 14=Late Kason
	MonthName     string    `json:"month_name"`
	BurmeseDay    int       `json:"burmese_day"`
	MoonPhase     int       `json:"moon_phase"`
	FortnightDay  int       `json:"fortnight_day"`
	YearType      int       `json:"year_type"`
	Holidays      []string  `json:"holidays"`
	OtherHolidays []string  `json:"other_holidays"`
	Astro         []string  `json:"astro"`
	Sabbath       string    `json:"sabbath"`
	Yatyaza       bool      `json:"yatyaza"`
	Pyathada      string    `json:"pyathada"`
	CalcError     bool      `json:"calc_error"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromResolved maps a resolved calendar day to its stored form.
func FromResolved(d *calendar.Day) *AlmanacDay {
	return &AlmanacDay{
		JDN:           d.JulianDay,
		GregorianDate: d.GregorianDate,
		Weekday:       d.Weekday,
		BurmeseYear:   d.Burmese.Year,
		BurmeseMonth:  int(d.Burmese.Month),
		MonthName:     d.Burmese.MonthName,
		BurmeseDay:    d.Burmese.Day,
		MoonPhase:     int(d.Burmese.MoonPhase),
		FortnightDay:  d.Burmese.FortnightDay,
		YearType:      int(d.Burmese.YearType),
		Holidays:      d.Holidays,
		OtherHolidays: d.OtherHolidays,
		Astro:         d.Astrology.Days,
		Sabbath:       d.Astrology.Sabbath,
		Yatyaza:       d.Astrology.Yatyaza,
		Pyathada:      d.Astrology.Pyathada,
		CalcError:     d.CalcError,
	}
}

// BuildLogEntry records one precompute run.
type BuildLogEntry struct {
	ID         int64     `json:"id"`
	StartJDN   int       `json:"start_jdn"`
	EndJDN     int       `json:"end_jdn"`
	Days       int       `json:"days"`
	Source     string    `json:"source"` // "api" or "cli"
	DurationMs *int64    `json:"duration_ms"`
	BuiltAt    time.Time `json:"built_at"`
}

// AlmanacStats summarises the contents of the store.
type AlmanacStats struct {
	TotalDays     int        `json:"total_days"`
	EarliestDate  string     `json:"earliest_date"`
	LatestDate    string     `json:"latest_date"`
	CalcErrorDays int        `json:"calc_error_days"`
	LastBuiltAt   *time.Time `json:"last_built_at"`
}

// -----------------------------------------------------------------
// JSON column helpers
// -----------------------------------------------------------------

// MarshalStrings encodes a string list for a TEXT column. A nil list is
// stored as an empty array.
func MarshalStrings(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalStrings decodes a TEXT column written by MarshalStrings.
func UnmarshalStrings(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NullInt64 converts a nullable column to a pointer.
func NullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}
