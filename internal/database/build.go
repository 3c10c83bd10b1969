package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
)

// Build sources recorded in build_log.
const (
	SourceAPI = "api"
	SourceCLI = "cli"
)

// BuildRange resolves every day in [startJDN, endJDN], stores it and
// records the run, all in one transaction. It returns the number of days
// written.
func (db *DB) BuildRange(ctx context.Context, r *calendar.DateResolver, startJDN, endJDN int, source string) (int, error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return 0, err
	}

	var n int
	err := db.WithTx(ctx, func(tx *Tx) error {
		var err error
		n, err = tx.buildRange(ctx, r, startJDN, endJDN, source)
		return err
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("almanac range built",
		slog.Int("start_jdn", startJDN),
		slog.Int("end_jdn", endJDN),
		slog.Int("days", n),
		slog.String("source", source),
	)
	return n, nil
}

// EnsureHolidays returns the stored public holidays in [startJDN, endJDN].
// If any day of the range is missing, the whole range is built first in the
// same transaction. built reports whether that happened.
func (db *DB) EnsureHolidays(ctx context.Context, r *calendar.DateResolver, startJDN, endJDN int) (days []AlmanacDay, built bool, err error) {
	if err := checkRange(startJDN, endJDN); err != nil {
		return nil, false, err
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		stored, err := tx.CountDays(ctx, startJDN, endJDN)
		if err != nil {
			return err
		}
		if stored < endJDN-startJDN+1 {
			if _, err := tx.buildRange(ctx, r, startJDN, endJDN, SourceAPI); err != nil {
				return err
			}
			built = true
		}
		days, err = tx.GetHolidaysInRange(ctx, startJDN, endJDN)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if built {
		db.logger.Info("almanac range written through",
			slog.Int("start_jdn", startJDN),
			slog.Int("end_jdn", endJDN),
		)
	}
	return days, built, nil
}

func (tx *Tx) buildRange(ctx context.Context, r *calendar.DateResolver, startJDN, endJDN int, source string) (int, error) {
	start := time.Now()

	n := 0
	for jdn := startJDN; jdn <= endJDN; jdn++ {
		if err := ctx.Err(); err != nil {
			return n, fmt.Errorf("build interrupted at %d: %w", jdn, err)
		}
		if err := tx.UpsertDay(ctx, FromResolved(r.ResolveDay(jdn))); err != nil {
			return n, err
		}
		n++
	}

	ms := time.Since(start).Milliseconds()
	err := tx.LogBuild(ctx, &BuildLogEntry{
		StartJDN:   startJDN,
		EndJDN:     endJDN,
		Days:       n,
		Source:     source,
		DurationMs: &ms,
	})
	if err != nil {
		return n, err
	}
	return n, nil
}
