package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
)

// apiResponse mirrors the server's JSON envelope.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error,omitempty"`
}

// smokeRunner checks a running server against known calendar facts.
type smokeRunner struct {
	baseURL      string
	client       *http.Client
	out          io.Writer
	successCount int
	errorCount   int
	errors       []string
}

func newSmokeCmd() *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Check a running API server against known dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sr := newSmokeRunner(baseURL, cmd.OutOrStdout())
			if failed := sr.Run(); failed > 0 {
				return fmt.Errorf("%d smoke check(s) failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the API")
	return cmd
}

func newSmokeRunner(baseURL string, out io.Writer) *smokeRunner {
	return &smokeRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		out:     out,
	}
}

// Run executes every check and returns the number of failures.
func (sr *smokeRunner) Run() int {
	fmt.Fprintf(sr.out, "Base URL: %s\n", sr.baseURL)

	sr.testHealth()
	sr.testKnownDays()
	sr.testYear()
	sr.testRejections()

	sr.printSummary()
	return sr.errorCount
}

func (sr *smokeRunner) testHealth() {
	sr.printSection("Health Check")

	var health struct {
		Status string `json:"status"`
	}
	if err := sr.getData("/health", &health); err != nil {
		sr.recordError("Health", err.Error())
		return
	}
	if health.Status != "healthy" {
		sr.recordError("Health", fmt.Sprintf("unexpected status: %s", health.Status))
		return
	}
	sr.recordSuccess("Health check passed")
}

func (sr *smokeRunner) testKnownDays() {
	sr.printSection("Known Days")

	testCases := []struct {
		path    string
		jdn     int
		holiday string
	}{
		{"/api/v1/days/gregorian/2020-12-25", 2459209, "Christmas Day"},
		{"/api/v1/days/gregorian/2021-04-17", 2459322, "Myanmar New Year's Day"},
		{"/api/v1/days/julian/2459322", 2459322, "Myanmar New Year's Day"},
		{"/api/v1/days/burmese/1386/kason/15", 2460453, "Buddha Day"},
	}

	for _, tc := range testCases {
		var day calendar.Day
		if err := sr.getData(tc.path, &day); err != nil {
			sr.recordError(tc.path, err.Error())
			continue
		}
		if day.JulianDay != tc.jdn {
			sr.recordError(tc.path, fmt.Sprintf("jdn %d, want %d", day.JulianDay, tc.jdn))
			continue
		}
		if !slices.Contains(day.Holidays, tc.holiday) {
			sr.recordError(tc.path, fmt.Sprintf("holidays %v, want %q", day.Holidays, tc.holiday))
			continue
		}
		sr.recordSuccess(fmt.Sprintf("%s: %d %s %d, %s",
			tc.path, day.Burmese.Day, day.Burmese.MonthName, day.Burmese.Year, tc.holiday))
	}
}

func (sr *smokeRunner) testYear() {
	sr.printSection("Year Metrics")

	var year struct {
		Type   calendar.YearType `json:"year_type"`
		Length int               `json:"year_length"`
	}
	if err := sr.getData("/api/v1/years/1385", &year); err != nil {
		sr.recordError("Year 1385", err.Error())
		return
	}
	if year.Type != calendar.BigWatat || year.Length != 385 {
		sr.recordError("Year 1385", fmt.Sprintf("type %v length %d, want big watat 385", year.Type, year.Length))
		return
	}
	sr.recordSuccess("Year 1385 is a big watat year of 385 days")
}

func (sr *smokeRunner) testRejections() {
	sr.printSection("Edge Cases")

	for _, path := range []string{
		"/api/v1/days/gregorian/1752-09-05",
		"/api/v1/days/gregorian/2025/12/25",
		"/api/v1/days/burmese/1384/0/1",
		"/api/v1/days/range?start=2025-01-01",
	} {
		resp, err := sr.client.Get(sr.baseURL + path)
		if err != nil {
			sr.recordError(path, err.Error())
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
			sr.recordSuccess(fmt.Sprintf("%s rejected (%d)", path, resp.StatusCode))
		} else {
			sr.recordError(path, fmt.Sprintf("HTTP %d, want rejection", resp.StatusCode))
		}
	}
}

// getData fetches path and decodes the envelope's data into target.
func (sr *smokeRunner) getData(path string, target any) error {
	resp, err := sr.client.Get(sr.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (sr *smokeRunner) printSection(name string) {
	fmt.Fprintf(sr.out, "\n--- %s ---\n", name)
}

func (sr *smokeRunner) recordSuccess(msg string) {
	sr.successCount++
	fmt.Fprintf(sr.out, "  ✓ %s\n", msg)
}

func (sr *smokeRunner) recordError(context, msg string) {
	sr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	sr.errors = append(sr.errors, errStr)
	fmt.Fprintf(sr.out, "  ✗ %s\n", errStr)
}

func (sr *smokeRunner) printSummary() {
	fmt.Fprintf(sr.out, "\nPassed: %d\nFailed: %d\n", sr.successCount, sr.errorCount)
	for _, err := range sr.errors {
		fmt.Fprintf(sr.out, "  • %s\n", err)
	}
}
