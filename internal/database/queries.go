package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

func checkRange(startJDN, endJDN int) error {
	if endJDN < startJDN {
		return fmt.Errorf("%d..%d: %w", startJDN, endJDN, ErrInvalidRange)
	}
	return nil
}

const dayColumns = `
	jdn, gregorian_date, weekday,
	burmese_year, burmese_month, month_name, burmese_day,
	moon_phase, fortnight_day, year_type,
	holidays, other_holidays, astro,
	sabbath, yatyaza, pyathada, calc_error,
	created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(rs rowScanner) (*AlmanacDay, error) {
	var day AlmanacDay
	var holidaysJSON, otherJSON, astroJSON string
	var createdAtStr, updatedAtStr sql.NullString

	err := rs.Scan(
		&day.JDN,
		&day.GregorianDate,
		&day.Weekday,
		&day.BurmeseYear,
		&day.BurmeseMonth,
		&day.MonthName,
		&day.BurmeseDay,
		&day.MoonPhase,
		&day.FortnightDay,
		&day.YearType,
		&holidaysJSON,
		&otherJSON,
		&astroJSON,
		&day.Sabbath,
		&day.Yatyaza,
		&day.Pyathada,
		&day.CalcError,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	if day.Holidays, err = UnmarshalStrings(holidaysJSON); err != nil {
		return nil, fmt.Errorf("unmarshal holidays: %w", err)
	}
	if day.OtherHolidays, err = UnmarshalStrings(otherJSON); err != nil {
		return nil, fmt.Errorf("unmarshal other holidays: %w", err)
	}
	if day.Astro, err = UnmarshalStrings(astroJSON); err != nil {
		return nil, fmt.Errorf("unmarshal astro: %w", err)
	}

	if t := parseTimestamp(createdAtStr); t != nil {
		day.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAtStr); t != nil {
		day.UpdatedAt = *t
	}

	return &day, nil
}

// =============================================================================
// Almanac Day Queries
// =============================================================================

// GetDayByJDN retrieves one stored day.
// Returns ErrNotFound if the day has not been built.
func (db *DB) GetDayByJDN(ctx context.Context, jdn int) (*AlmanacDay, error) {
	query := `SELECT ` + dayColumns + ` FROM almanac_days WHERE jdn = ?`

	day, err := scanDay(db.QueryRowContext(ctx, query, jdn))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query day by jdn: %w", err)
	}
	return day, nil
}

// GetDaysInRange retrieves stored days in [startJDN, endJDN], ordered by day.
// Returns an empty slice if nothing has been built in the range.
func (db *DB) GetDaysInRange(ctx context.Context, startJDN, endJDN int) ([]AlmanacDay, error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return nil, err
	}
	query := `SELECT ` + dayColumns + `
		FROM almanac_days
		WHERE jdn >= ? AND jdn <= ?
		ORDER BY jdn ASC`
	return queryDays(ctx, db.DB, query, startJDN, endJDN)
}

// GetHolidaysInRange retrieves the stored days in [startJDN, endJDN] that
// have at least one public holiday.
func (db *DB) GetHolidaysInRange(ctx context.Context, startJDN, endJDN int) ([]AlmanacDay, error) {
	return getHolidaysInRange(ctx, db.DB, startJDN, endJDN)
}

// GetHolidaysInRange is GetHolidaysInRange inside a transaction.
func (tx *Tx) GetHolidaysInRange(ctx context.Context, startJDN, endJDN int) ([]AlmanacDay, error) {
	return getHolidaysInRange(ctx, tx.Tx, startJDN, endJDN)
}

func getHolidaysInRange(ctx context.Context, q querier, startJDN, endJDN int) ([]AlmanacDay, error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return nil, err
	}
	query := `SELECT ` + dayColumns + `
		FROM almanac_days
		WHERE jdn >= ? AND jdn <= ? AND holidays != '[]'
		ORDER BY jdn ASC`
	return queryDays(ctx, q, query, startJDN, endJDN)
}

func queryDays(ctx context.Context, q querier, query string, args ...any) ([]AlmanacDay, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	days := []AlmanacDay{}
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day row: %w", err)
		}
		days = append(days, *day)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day rows: %w", err)
	}

	return days, nil
}

// CountDays returns how many days in [startJDN, endJDN] are stored.
func (db *DB) CountDays(ctx context.Context, startJDN, endJDN int) (int, error) {
	return countDays(ctx, db.DB, startJDN, endJDN)
}

// CountDays is CountDays inside a transaction.
func (tx *Tx) CountDays(ctx context.Context, startJDN, endJDN int) (int, error) {
	return countDays(ctx, tx.Tx, startJDN, endJDN)
}

func countDays(ctx context.Context, q querier, startJDN, endJDN int) (int, error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return 0, err
	}
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM almanac_days WHERE jdn >= ? AND jdn <= ?`,
		startJDN, endJDN,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count days: %w", err)
	}
	return n, nil
}

// UpsertDay inserts or replaces a stored day.
//
// Rows are derived data, so a second build of the same day overwrites the
// first. created_at survives the overwrite.
func (db *DB) UpsertDay(ctx context.Context, day *AlmanacDay) error {
	return upsertDay(ctx, db.DB, day)
}

// UpsertDay is UpsertDay inside a transaction.
func (tx *Tx) UpsertDay(ctx context.Context, day *AlmanacDay) error {
	return upsertDay(ctx, tx.Tx, day)
}

func upsertDay(ctx context.Context, q querier, day *AlmanacDay) error {
	holidaysJSON, err := MarshalStrings(day.Holidays)
	if err != nil {
		return fmt.Errorf("marshal holidays: %w", err)
	}
	otherJSON, err := MarshalStrings(day.OtherHolidays)
	if err != nil {
		return fmt.Errorf("marshal other holidays: %w", err)
	}
	astroJSON, err := MarshalStrings(day.Astro)
	if err != nil {
		return fmt.Errorf("marshal astro: %w", err)
	}

	query := `
		INSERT INTO almanac_days (
			jdn, gregorian_date, weekday,
			burmese_year, burmese_month, month_name, burmese_day,
			moon_phase, fortnight_day, year_type,
			holidays, other_holidays, astro,
			sabbath, yatyaza, pyathada, calc_error, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(jdn) DO UPDATE SET
			gregorian_date = excluded.gregorian_date,
			weekday = excluded.weekday,
			burmese_year = excluded.burmese_year,
			burmese_month = excluded.burmese_month,
			month_name = excluded.month_name,
			burmese_day = excluded.burmese_day,
			moon_phase = excluded.moon_phase,
			fortnight_day = excluded.fortnight_day,
			year_type = excluded.year_type,
			holidays = excluded.holidays,
			other_holidays = excluded.other_holidays,
			astro = excluded.astro,
			sabbath = excluded.sabbath,
			yatyaza = excluded.yatyaza,
			pyathada = excluded.pyathada,
			calc_error = excluded.calc_error,
			updated_at = datetime('now')
	`

	_, err = q.ExecContext(ctx, query,
		day.JDN,
		day.GregorianDate,
		day.Weekday,
		day.BurmeseYear,
		day.BurmeseMonth,
		day.MonthName,
		day.BurmeseDay,
		day.MoonPhase,
		day.FortnightDay,
		day.YearType,
		holidaysJSON,
		otherJSON,
		astroJSON,
		day.Sabbath,
		day.Yatyaza,
		day.Pyathada,
		day.CalcError,
	)
	if err != nil {
		return fmt.Errorf("upsert day %d: %w", day.JDN, err)
	}

	return nil
}

// DeleteRange removes stored days in [startJDN, endJDN] and returns how
// many were removed.
func (db *DB) DeleteRange(ctx context.Context, startJDN, endJDN int) (int64, error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`DELETE FROM almanac_days WHERE jdn >= ? AND jdn <= ?`,
		startJDN, endJDN,
	)
	if err != nil {
		return 0, fmt.Errorf("delete range: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}

// GetAlmanacStats returns statistics about the stored days.
func (db *DB) GetAlmanacStats(ctx context.Context) (*AlmanacStats, error) {
	query := `
		SELECT
			COUNT(*) as total_days,
			COALESCE(MIN(gregorian_date), '') as earliest_date,
			COALESCE(MAX(gregorian_date), '') as latest_date,
			COALESCE(SUM(calc_error), 0) as calc_error_days,
			(SELECT MAX(built_at) FROM build_log) as last_built_at
		FROM almanac_days
	`

	var stats AlmanacStats
	var lastBuiltAtStr sql.NullString

	err := db.QueryRowContext(ctx, query).Scan(
		&stats.TotalDays,
		&stats.EarliestDate,
		&stats.LatestDate,
		&stats.CalcErrorDays,
		&lastBuiltAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("query almanac stats: %w", err)
	}

	stats.LastBuiltAt = parseTimestamp(lastBuiltAtStr)
	return &stats, nil
}

// =============================================================================
// Build Log Queries
// =============================================================================

// LogBuild records a precompute run in the build_log table.
func (db *DB) LogBuild(ctx context.Context, entry *BuildLogEntry) error {
	return logBuild(ctx, db.DB, entry)
}

// LogBuild is LogBuild inside a transaction.
func (tx *Tx) LogBuild(ctx context.Context, entry *BuildLogEntry) error {
	return logBuild(ctx, tx.Tx, entry)
}

func logBuild(ctx context.Context, q querier, entry *BuildLogEntry) error {
	query := `
		INSERT INTO build_log (start_jdn, end_jdn, days, source, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		entry.StartJDN,
		entry.EndJDN,
		entry.Days,
		entry.Source,
		entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("log build: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// GetRecentBuilds retrieves the most recent build log entries.
func (db *DB) GetRecentBuilds(ctx context.Context, limit int) ([]BuildLogEntry, error) {
	query := `
		SELECT id, start_jdn, end_jdn, days, source, duration_ms, built_at
		FROM build_log
		ORDER BY built_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query build log: %w", err)
	}
	defer rows.Close()

	logs := []BuildLogEntry{}
	for rows.Next() {
		var entry BuildLogEntry
		var durationMs sql.NullInt64
		var builtAtStr sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.StartJDN,
			&entry.EndJDN,
			&entry.Days,
			&entry.Source,
			&durationMs,
			&builtAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scan build log row: %w", err)
		}

		entry.DurationMs = NullInt64(durationMs)
		if t := parseTimestamp(builtAtStr); t != nil {
			entry.BuiltAt = *t
		}
		logs = append(logs, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate build log rows: %w", err)
	}

	return logs, nil
}
