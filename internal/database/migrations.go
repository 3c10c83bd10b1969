package database

// migrationsSQL maps schema versions, starting at 1 with no gaps, to the
// statements that bring the store to that version.
var migrationsSQL = map[int]string{
	1: migrationV1AlmanacDays,
	2: migrationV2BuildLog,
}

// migrationV1AlmanacDays creates the day store.
//
// Every row is derived data: it can be rebuilt from the calendar engine at
// any time, so upserts simply overwrite. List columns hold JSON arrays.
const migrationV1AlmanacDays = `
-- Migration 001: almanac days

CREATE TABLE IF NOT EXISTS almanac_days (
    -- Julian day number, the natural key of a day
    jdn INTEGER PRIMARY KEY,

    -- Civil date in the calendar the store was built with
    gregorian_date TEXT NOT NULL UNIQUE,
    weekday INTEGER NOT NULL CHECK (weekday BETWEEN 0 AND 6),

    -- Myanmar date
    burmese_year INTEGER NOT NULL,
    burmese_month INTEGER NOT NULL CHECK (burmese_month BETWEEN 0 AND 14),
    month_name TEXT NOT NULL,
    burmese_day INTEGER NOT NULL CHECK (burmese_day BETWEEN 1 AND 30),
    moon_phase INTEGER NOT NULL CHECK (moon_phase BETWEEN 0 AND 3),
    fortnight_day INTEGER NOT NULL,
    year_type INTEGER NOT NULL CHECK (year_type BETWEEN 0 AND 2),

    -- Holiday and astrology lists, e.g. '["Buddha Day"]'
    holidays TEXT NOT NULL DEFAULT '[]',
    other_holidays TEXT NOT NULL DEFAULT '[]',
    astro TEXT NOT NULL DEFAULT '[]',
    sabbath TEXT NOT NULL DEFAULT '',
    yatyaza INTEGER NOT NULL DEFAULT 0,
    pyathada TEXT NOT NULL DEFAULT '',

    -- Set when the year's full moon day could not be pinned down
    calc_error INTEGER NOT NULL DEFAULT 0,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Lookups by Myanmar year (check command, year endpoints)
CREATE INDEX IF NOT EXISTS idx_almanac_days_burmese_year
    ON almanac_days(burmese_year);

-- Holiday listings only touch days that have one
CREATE INDEX IF NOT EXISTS idx_almanac_days_holidays
    ON almanac_days(jdn)
    WHERE holidays != '[]';
`

// migrationV2BuildLog records precompute runs.
const migrationV2BuildLog = `
-- Migration 002: build log

CREATE TABLE IF NOT EXISTS build_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    start_jdn INTEGER NOT NULL,
    end_jdn INTEGER NOT NULL,
    days INTEGER NOT NULL,
    source TEXT NOT NULL CHECK (source IN ('api', 'cli')),
    duration_ms INTEGER,
    built_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_build_log_built_at
    ON build_log(built_at);
`
