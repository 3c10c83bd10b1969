// Package worldtime converts between Julian dates and civil calendar dates.
//
// Three calendar types are supported: the proleptic Gregorian calendar, the
// proleptic Julian calendar, and the British calendar, which is Julian before
// the Gregorian switch day and Gregorian from that day on.
//
// A Julian date is a day count whose integer part changes at noon, so
// midnight of a civil day carries a fractional part of .5.
package worldtime

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/carlosjhr64/jd"
)

// CalendarType selects the civil calendar used for conversions.
type CalendarType int

const (
	// British uses the Julian calendar before GregorianStart and the
	// Gregorian calendar from GregorianStart on.
	British CalendarType = iota
	Gregorian
	Julian
)

// DefaultGregorianStart is the Julian day number of 1752-09-14, the first
// Gregorian day in the British calendar.
const DefaultGregorianStart = 2361222

// UnixEpoch is the Julian date of 1970-01-01 00:00:00 UTC.
const UnixEpoch = 2440587.5

const secondsPerDay = 86400.0

// String returns the lowercase name of the calendar type.
func (c CalendarType) String() string {
	switch c {
	case British:
		return "british"
	case Gregorian:
		return "gregorian"
	case Julian:
		return "julian"
	default:
		return fmt.Sprintf("CalendarType(%d)", int(c))
	}
}

// ParseCalendarType parses "british", "gregorian" or "julian", as well as the
// numeric forms 0, 1 and 2.
func ParseCalendarType(s string) (CalendarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "british", "0":
		return British, nil
	case "gregorian", "1":
		return Gregorian, nil
	case "julian", "2":
		return Julian, nil
	}
	return British, fmt.Errorf("unknown calendar type %q", s)
}

// DateTime is a civil date and time of day.
type DateTime struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

// Date returns a DateTime at noon, the time of day at which a Julian date
// is integral.
func Date(year, month, day int) DateTime {
	return DateTime{Year: year, Month: month, Day: day, Hour: 12}
}

// Converter converts between Julian dates and civil dates for one calendar
// type. The zero value is the British calendar with a zero switch day and is
// rarely what callers want; use DefaultConverter.
type Converter struct {
	Type           CalendarType
	GregorianStart int
}

// DefaultConverter returns the British calendar switching on 1752-09-14.
func DefaultConverter() Converter {
	return Converter{Type: British, GregorianStart: DefaultGregorianStart}
}

// ToJulian converts a civil date and time to a Julian date.
//
// In the British calendar a date is first read as Gregorian; if that lands
// before the switch day it is re-read as Julian, and Julian dates that fall
// into the dropped days are clamped to the switch day.
func (c Converter) ToJulian(dt DateTime) float64 {
	return float64(c.DayNumber(dt.Year, dt.Month, dt.Day)) + DayFraction(dt.Hour, dt.Minute, dt.Second)
}

// DayNumber returns the Julian day number of a civil date.
func (c Converter) DayNumber(year, month, day int) int {
	switch c.Type {
	case Gregorian:
		return gregorianDayNumber(year, month, day)
	case Julian:
		return julianDayNumber(year, month, day)
	}
	j := gregorianDayNumber(year, month, day)
	if j < c.GregorianStart {
		j = julianDayNumber(year, month, day)
		if j > c.GregorianStart {
			j = c.GregorianStart
		}
	}
	return j
}

// FromJulian converts a Julian date to a civil date and time.
func (c Converter) FromJulian(jdate float64) DateTime {
	j := math.Floor(jdate + 0.5)
	jf := jdate + 0.5 - j

	var dt DateTime
	if c.Type == Julian || (c.Type == British && jdate < float64(c.GregorianStart)) {
		b := j + 1524
		cc := math.Floor((b - 122.1) / 365.25)
		f := math.Floor(365.25 * cc)
		e := math.Floor((b - f) / 30.6001)
		m := e - 1
		if e > 13 {
			m = e - 13
		}
		y := cc - 4716
		if m < 3 {
			y = cc - 4715
		}
		dt.Year = int(y)
		dt.Month = int(m)
		dt.Day = int(b - f - math.Floor(30.6001*e))
	} else {
		dt.Year, dt.Month, dt.Day = jd.J2YMD(int(j))
	}

	jf *= 24
	h := math.Floor(jf)
	jf = (jf - h) * 60
	n := math.Floor(jf)
	dt.Hour = int(h)
	dt.Minute = int(n)
	dt.Second = (jf - n) * 60
	return dt
}

// MonthLength returns the number of days in a civil month. The British
// calendar's September 1752 has 19 days.
func (c Converter) MonthLength(year, month int) int {
	y2, m2 := year, month+1
	if m2 > 12 {
		y2++
		m2 %= 12
	}
	return c.DayNumber(y2, m2, 1) - c.DayNumber(year, month, 1)
}

// DayFraction converts a time of day to the fractional part of a Julian
// date, which is zero at noon.
func DayFraction(hour, minute int, second float64) float64 {
	return float64(hour-12)/24 + float64(minute)/1440 + second/secondsPerDay
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	switch {
	case year%4 != 0:
		return false
	case year%100 != 0:
		return true
	default:
		return year%400 == 0
	}
}

// Weekday returns the weekday of a Julian date, 0 = Saturday through
// 6 = Friday.
func Weekday(jdate float64) int {
	return floorMod(int(math.Floor(jdate+0.5))+2, 7)
}

// UnixToJulian converts seconds since the Unix epoch to a Julian date.
func UnixToJulian(ut float64) float64 {
	return UnixEpoch + ut/secondsPerDay
}

// JulianToUnix converts a Julian date to seconds since the Unix epoch. Half a
// second is added so that truncating the result rounds to the nearest second.
func JulianToUnix(jdate float64) float64 {
	return (jdate-UnixEpoch)*secondsPerDay + 0.5
}

// FromTime returns the Julian date of an instant.
func FromTime(t time.Time) float64 {
	return UnixToJulian(float64(t.UnixNano()) / 1e9)
}

// gregorianDayNumber is valid for years after -4800.
func gregorianDayNumber(year, month, day int) int {
	return jd.YMD2J(year, month, day)
}

func julianDayNumber(year, month, day int) int {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4) - 32083
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
