package calendar

import "log/slog"

// YearType classifies a Myanmar year by its intercalation.
type YearType int

const (
	// Common years have 12 months and 354 days.
	Common YearType = iota
	// LittleWatat years add a 30-day month and have 384 days.
	LittleWatat
	// BigWatat years also add a day to Nayon and have 385 days.
	BigWatat
)

func (t YearType) String() string {
	switch t {
	case Common:
		return "common"
	case LittleWatat:
		return "little watat"
	case BigWatat:
		return "big watat"
	default:
		return "unknown"
	}
}

// maxWatatLookback bounds the search for the previous watat year.
const maxWatatLookback = 3

// YearMetrics describes one Myanmar year.
type YearMetrics struct {
	Type YearType `json:"year_type"`
	// EpochDay is the Julian day number of 1st Tagu, the day the month
	// arithmetic counts from. It may precede the new year day.
	EpochDay int `json:"epoch_day"`
	// FullMoonDay is the Julian day number of the full moon of (2nd) Waso.
	FullMoonDay int `json:"full_moon_day"`
	// CalcError is set when the distance between two consecutive watat
	// years is neither 30 nor 31 days off a 354-day multiple.
	CalcError bool `json:"calc_error"`
	// CapReached is set when no watat year was found within the lookback.
	CapReached bool `json:"cap_reached"`
}

// Length returns the number of days in the year.
func (y YearMetrics) Length() int {
	return YearLength(y.Type)
}

// CalculateYear finds the type, epoch and Waso full moon of Myanmar year my.
func CalculateYear(my int) YearMetrics {
	cur := CheckWatat(my)

	var prev WatatResult
	yd := 0
	for {
		yd++
		prev = CheckWatat(my - yd)
		if prev.Intercalary || yd >= maxWatatLookback {
			break
		}
	}

	m := YearMetrics{
		EpochDay:   prev.FullMoonDay + 354*yd - epochToWaso,
		CapReached: !prev.Intercalary,
	}
	if cur.Intercalary {
		nd := (cur.FullMoonDay - prev.FullMoonDay) % 354
		m.Type = YearType(nd/31 + 1)
		m.FullMoonDay = cur.FullMoonDay
		m.CalcError = nd != 30 && nd != 31
	} else {
		m.Type = Common
		m.FullMoonDay = prev.FullMoonDay + 354*yd
	}

	if m.CapReached {
		slog.Default().Warn("no watat year found within lookback",
			"component", "calendar",
			"year", my,
			"lookback", maxWatatLookback,
		)
	}
	if m.CalcError {
		slog.Default().Warn("watat distance out of range",
			"component", "calendar",
			"year", my,
			"year_type", m.Type.String(),
		)
	}
	return m
}
