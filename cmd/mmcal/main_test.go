package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShow(t *testing.T) {
	out, err := execute(t, "show", "2021-04-17")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}

	var day calendar.Day
	if err := json.Unmarshal([]byte(out), &day); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, out)
	}
	if day.JulianDay != 2459322 {
		t.Errorf("jdn = %d, want 2459322", day.JulianDay)
	}
	if day.Burmese.Year != 1383 {
		t.Errorf("burmese year = %d, want 1383", day.Burmese.Year)
	}
}

func TestShow_JulianLeapDay(t *testing.T) {
	out, err := execute(t, "show", "1700-02-29")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}

	var day calendar.Day
	if err := json.Unmarshal([]byte(out), &day); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, out)
	}
	if day.JulianDay != 2342042 || day.GregorianDate != "1700-02-29" {
		t.Errorf("day = %d %q, want 2342042 1700-02-29", day.JulianDay, day.GregorianDate)
	}

	t.Setenv("CALENDAR_TYPE", "gregorian")
	if _, err := execute(t, "show", "1700-02-29"); err == nil {
		t.Error("show of 1700-02-29 in the Gregorian calendar succeeded")
	}
}

func TestShow_InvalidDate(t *testing.T) {
	if _, err := execute(t, "show", "1752-09-05"); err == nil {
		t.Error("show of a skipped date succeeded")
	}
	if _, err := execute(t, "show", "yesterday"); err == nil {
		t.Error("show of a malformed date succeeded")
	}
	if _, err := execute(t, "show"); err == nil {
		t.Error("show without a date succeeded")
	}
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--from", "1380", "--to", "1390")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "checked 11 years (1380..1390)") {
		t.Errorf("check output = %q", out)
	}

	if _, err := execute(t, "check", "--from", "1390", "--to", "1380"); err == nil {
		t.Error("check with reversed range succeeded")
	}
}

func TestBuild(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "almanac.db")

	out, err := execute(t, "build", "--from", "2021", "--db", dbPath)
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	if !strings.Contains(out, "built 365 days for 2021..2021") {
		t.Errorf("build output = %q", out)
	}

	// Leap year
	out, err = execute(t, "build", "--from", "2024", "--to", "2024", "--db", dbPath)
	if err != nil {
		t.Fatalf("build error = %v", err)
	}
	if !strings.Contains(out, "built 366 days") {
		t.Errorf("build output = %q", out)
	}
}

func TestPrune(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "almanac.db")

	if _, err := execute(t, "build", "--from", "2020", "--to", "2021", "--db", dbPath); err != nil {
		t.Fatalf("build error = %v", err)
	}

	out, err := execute(t, "prune", "--from", "2020", "--db", dbPath)
	if err != nil {
		t.Fatalf("prune error = %v", err)
	}
	if !strings.Contains(out, "deleted 366 days for 2020..2020") {
		t.Errorf("prune output = %q", out)
	}

	// 2020 is gone, 2021 remains.
	out, err = execute(t, "prune", "--from", "2020", "--to", "2021", "--db", dbPath)
	if err != nil {
		t.Fatalf("prune error = %v", err)
	}
	if !strings.Contains(out, "deleted 365 days") {
		t.Errorf("prune output = %q", out)
	}

	if _, err := execute(t, "prune", "--db", dbPath); err == nil {
		t.Error("prune without --from succeeded")
	}
}

func TestBuild_RequiresFrom(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "almanac.db")
	if _, err := execute(t, "build", "--db", dbPath); err == nil {
		t.Error("build without --from succeeded")
	}
	if _, err := execute(t, "build", "--from", "2022", "--to", "2021", "--db", dbPath); err == nil {
		t.Error("build with reversed range succeeded")
	}
}
