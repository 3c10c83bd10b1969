package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
	"github.com/zapponejosh/mmcalendar-api/internal/worldtime"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// resolved builds the stored form of a day from the calendar engine.
func resolved(t *testing.T, jdn int) *AlmanacDay {
	t.Helper()
	r := calendar.NewDateResolver(worldtime.DefaultConverter(), 6.5)
	return FromResolved(r.ResolveDay(jdn))
}

// Test days: a plain day, Christmas 2020 and Myanmar New Year 1383.
const (
	plainJDN     = 2458764
	christmasJDN = 2459209
	newYearJDN   = 2459322
)

// seedTestData stores the three test days.
func seedTestData(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	for _, jdn := range []int{plainJDN, christmasJDN, newYearJDN} {
		if err := db.UpsertDay(ctx, resolved(t, jdn)); err != nil {
			t.Fatalf("upsert test day %d: %v", jdn, err)
		}
	}
}

// -----------------------------------------------------------------
// DB tests
// -----------------------------------------------------------------

func TestOpen(t *testing.T) {
	db := testDB(t)

	// Verify connection works
	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Migrations should have run (in testDB)
	// Running again should be a no-op
	count, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Migrate() count = %d, want 0 (already applied)", count)
	}
}

// -----------------------------------------------------------------
// AlmanacDay tests
// -----------------------------------------------------------------

func TestFromResolved(t *testing.T) {
	day := resolved(t, newYearJDN)

	if day.GregorianDate != "2021-04-17" {
		t.Errorf("GregorianDate = %q, want 2021-04-17", day.GregorianDate)
	}
	if day.BurmeseYear != 1383 || day.BurmeseMonth != int(calendar.Tagu) || day.BurmeseDay != 6 {
		t.Errorf("Burmese date = %d/%d/%d, want 1383/%d/6",
			day.BurmeseYear, day.BurmeseMonth, day.BurmeseDay, calendar.Tagu)
	}
	if day.MonthName != "Tagu" {
		t.Errorf("MonthName = %q, want Tagu", day.MonthName)
	}
	if len(day.Holidays) != 1 || day.Holidays[0] != "Myanmar New Year's Day" {
		t.Errorf("Holidays = %v, want [Myanmar New Year's Day]", day.Holidays)
	}
	if day.Pyathada != "Pyathada" {
		t.Errorf("Pyathada = %q, want Pyathada", day.Pyathada)
	}
}

func TestUpsertDay_GetDayByJDN(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	day, err := db.GetDayByJDN(ctx, christmasJDN)
	if err != nil {
		t.Fatalf("GetDayByJDN() error = %v", err)
	}

	if day.GregorianDate != "2020-12-25" {
		t.Errorf("GetDayByJDN() gregorian_date = %q, want 2020-12-25", day.GregorianDate)
	}
	if len(day.Holidays) != 1 || day.Holidays[0] != "Christmas Day" {
		t.Errorf("GetDayByJDN() holidays = %v, want [Christmas Day]", day.Holidays)
	}
	if day.OtherHolidays == nil {
		t.Error("GetDayByJDN() other_holidays is nil, want empty slice")
	}
	if day.CreatedAt.IsZero() || day.UpdatedAt.IsZero() {
		t.Error("GetDayByJDN() timestamps not parsed")
	}

	want := resolved(t, christmasJDN)
	if day.Yatyaza != want.Yatyaza || day.Sabbath != want.Sabbath || len(day.Astro) != len(want.Astro) {
		t.Errorf("GetDayByJDN() astrology = %v/%q/%v, want %v/%q/%v",
			day.Yatyaza, day.Sabbath, day.Astro, want.Yatyaza, want.Sabbath, want.Astro)
	}
}

func TestUpsertDay_Overwrites(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	day := resolved(t, plainJDN)
	if err := db.UpsertDay(ctx, day); err != nil {
		t.Fatalf("first UpsertDay() error = %v", err)
	}

	day.Holidays = []string{"Holiday"}
	if err := db.UpsertDay(ctx, day); err != nil {
		t.Fatalf("second UpsertDay() error = %v", err)
	}

	got, err := db.GetDayByJDN(ctx, plainJDN)
	if err != nil {
		t.Fatalf("GetDayByJDN() error = %v", err)
	}
	if len(got.Holidays) != 1 || got.Holidays[0] != "Holiday" {
		t.Errorf("holidays after overwrite = %v, want [Holiday]", got.Holidays)
	}

	n, err := db.CountDays(ctx, plainJDN, plainJDN)
	if err != nil {
		t.Fatalf("CountDays() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountDays() = %d, want 1", n)
	}
}

func TestGetDayByJDN_NotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := db.GetDayByJDN(ctx, 1)
	if !IsNotFound(err) {
		t.Errorf("GetDayByJDN() error = %v, want ErrNotFound", err)
	}
}

func TestGetDaysInRange(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	days, err := db.GetDaysInRange(ctx, plainJDN, christmasJDN)
	if err != nil {
		t.Fatalf("GetDaysInRange() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("GetDaysInRange() returned %d days, want 2", len(days))
	}
	if days[0].JDN != plainJDN || days[1].JDN != christmasJDN {
		t.Errorf("GetDaysInRange() order = %d, %d", days[0].JDN, days[1].JDN)
	}

	// Empty range returns an empty slice, not nil
	days, err = db.GetDaysInRange(ctx, 100, 200)
	if err != nil {
		t.Fatalf("GetDaysInRange() error = %v", err)
	}
	if days == nil || len(days) != 0 {
		t.Errorf("GetDaysInRange() = %v, want empty slice", days)
	}
}

func TestGetHolidaysInRange(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	days, err := db.GetHolidaysInRange(ctx, plainJDN-10, newYearJDN+10)
	if err != nil {
		t.Fatalf("GetHolidaysInRange() error = %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("GetHolidaysInRange() returned %d days, want 2", len(days))
	}
	if days[0].JDN != christmasJDN || days[1].JDN != newYearJDN {
		t.Errorf("GetHolidaysInRange() = %d, %d", days[0].JDN, days[1].JDN)
	}
}

func TestRangeQueries_InvalidRange(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if _, err := db.GetDaysInRange(ctx, 10, 9); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("GetDaysInRange() error = %v, want ErrInvalidRange", err)
	}
	if _, err := db.CountDays(ctx, 10, 9); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("CountDays() error = %v, want ErrInvalidRange", err)
	}
	if _, err := db.DeleteRange(ctx, 10, 9); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("DeleteRange() error = %v, want ErrInvalidRange", err)
	}
}

func TestDeleteRange(t *testing.T) {
	db := testDB(t)
	seedTestData(t, db)
	ctx := context.Background()

	n, err := db.DeleteRange(ctx, plainJDN, christmasJDN)
	if err != nil {
		t.Fatalf("DeleteRange() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteRange() = %d, want 2", n)
	}

	total, err := db.CountDays(ctx, 0, newYearJDN)
	if err != nil {
		t.Fatalf("CountDays() error = %v", err)
	}
	if total != 1 {
		t.Errorf("CountDays() after delete = %d, want 1", total)
	}
}

func TestGetAlmanacStats(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	stats, err := db.GetAlmanacStats(ctx)
	if err != nil {
		t.Fatalf("GetAlmanacStats() on empty store error = %v", err)
	}
	if stats.TotalDays != 0 || stats.LastBuiltAt != nil {
		t.Errorf("empty stats = %+v", stats)
	}

	seedTestData(t, db)
	if err := db.LogBuild(ctx, &BuildLogEntry{StartJDN: plainJDN, EndJDN: newYearJDN, Days: 3, Source: "cli"}); err != nil {
		t.Fatalf("LogBuild() error = %v", err)
	}

	stats, err = db.GetAlmanacStats(ctx)
	if err != nil {
		t.Fatalf("GetAlmanacStats() error = %v", err)
	}
	if stats.TotalDays != 3 {
		t.Errorf("TotalDays = %d, want 3", stats.TotalDays)
	}
	if stats.EarliestDate != "2019-10-07" {
		t.Errorf("EarliestDate = %q, want 2019-10-07", stats.EarliestDate)
	}
	if stats.LatestDate != "2021-04-17" {
		t.Errorf("LatestDate = %q, want 2021-04-17", stats.LatestDate)
	}
	if stats.LastBuiltAt == nil {
		t.Error("LastBuiltAt is nil after LogBuild")
	}
}

// -----------------------------------------------------------------
// Build log tests
// -----------------------------------------------------------------

func TestLogBuild_GetRecentBuilds(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	ms := int64(42)
	first := &BuildLogEntry{StartJDN: 1, EndJDN: 10, Days: 10, Source: "cli"}
	second := &BuildLogEntry{StartJDN: 11, EndJDN: 20, Days: 10, Source: "api", DurationMs: &ms}
	for _, e := range []*BuildLogEntry{first, second} {
		if err := db.LogBuild(ctx, e); err != nil {
			t.Fatalf("LogBuild() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("LogBuild() did not set ID")
		}
	}

	logs, err := db.GetRecentBuilds(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecentBuilds() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("GetRecentBuilds() returned %d entries, want 1", len(logs))
	}
	if logs[0].ID != second.ID || logs[0].Source != "api" {
		t.Errorf("GetRecentBuilds()[0] = %+v, want the api build", logs[0])
	}
	if logs[0].DurationMs == nil || *logs[0].DurationMs != 42 {
		t.Errorf("DurationMs = %v, want 42", logs[0].DurationMs)
	}
}

func TestLogBuild_RejectsUnknownSource(t *testing.T) {
	db := testDB(t)
	err := db.LogBuild(context.Background(), &BuildLogEntry{StartJDN: 1, EndJDN: 1, Days: 1, Source: "cron"})
	if err == nil {
		t.Error("LogBuild() with unknown source succeeded, want constraint error")
	}
}

// -----------------------------------------------------------------
// JSON helper tests
// -----------------------------------------------------------------

func TestMarshalStrings(t *testing.T) {
	s, err := MarshalStrings(nil)
	if err != nil || s != "[]" {
		t.Errorf("MarshalStrings(nil) = %q, %v; want \"[]\"", s, err)
	}

	out, err := UnmarshalStrings(`["Buddha Day","Holiday"]`)
	if err != nil {
		t.Fatalf("UnmarshalStrings() error = %v", err)
	}
	if len(out) != 2 || out[1] != "Holiday" {
		t.Errorf("UnmarshalStrings() = %v", out)
	}

	if _, err := UnmarshalStrings("not json"); err == nil {
		t.Error("UnmarshalStrings() on bad input succeeded")
	}
}

// -----------------------------------------------------------------
// Transaction tests
// -----------------------------------------------------------------

func TestWithTx(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Successful transaction
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.UpsertDay(ctx, resolved(t, christmasJDN)); err != nil {
			return err
		}
		return tx.LogBuild(ctx, &BuildLogEntry{StartJDN: christmasJDN, EndJDN: christmasJDN, Days: 1, Source: "api"})
	})
	if err != nil {
		t.Fatalf("WithTx() success case error = %v", err)
	}

	// Verify day was created
	if _, err := db.GetDayByJDN(ctx, christmasJDN); err != nil {
		t.Errorf("day not created: %v", err)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// Failed transaction should rollback
	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.UpsertDay(ctx, resolved(t, christmasJDN)); err != nil {
			return err
		}
		n, err := tx.CountDays(ctx, christmasJDN, christmasJDN)
		if err != nil {
			return err
		}
		if n != 1 {
			t.Errorf("CountDays() inside tx = %d, want 1", n)
		}
		// Force error to trigger rollback
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Fatalf("WithTx() rollback case error = %v, want ErrNotFound", err)
	}

	// Verify day was NOT created
	_, err = db.GetDayByJDN(ctx, christmasJDN)
	if err != ErrNotFound {
		t.Errorf("day should not exist after rollback, got error: %v", err)
	}
}
