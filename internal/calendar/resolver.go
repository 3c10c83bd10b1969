package calendar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/zapponejosh/mmcalendar-api/internal/worldtime"
)

var (
	// ErrInvalidJulianDay is returned for NaN or infinite Julian dates.
	ErrInvalidJulianDay = errors.New("invalid julian day")
	// ErrInvalidBurmeseDate is returned for a month or day that does not
	// exist in the given Myanmar year.
	ErrInvalidBurmeseDate = errors.New("invalid burmese date")
	// ErrInvalidGregorianDate is returned for a civil date that does not
	// exist in the configured calendar.
	ErrInvalidGregorianDate = errors.New("invalid gregorian date")
	// ErrInvalidDateFormat is returned for a date string not in YYYY-MM-DD
	// layout.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Day is everything known about one day: its civil and Myanmar dates,
// astrological classes and holidays.
type Day struct {
	JulianDay     int                `json:"jdn"`
	Weekday       int                `json:"weekday"`
	WeekdayName   string             `json:"weekday_name"`
	GregorianDate string             `json:"gregorian_date"`
	Civil         worldtime.DateTime `json:"civil"`
	Burmese       BurmeseDate        `json:"burmese"`
	Era           EraConstants       `json:"era"`
	Astrology     Astrology          `json:"astrology"`
	Holidays      []string           `json:"holidays"`
	OtherHolidays []string           `json:"other_holidays"`
	CalcError     bool               `json:"calc_error"`
}

// BurmeseDate is the display form of a Myanmar date.
type BurmeseDate struct {
	Year          int       `json:"year"`
	Month         Month     `json:"month"`
	MonthName     string    `json:"month_name"`
	Day           int       `json:"day"`
	FortnightDay  int       `json:"fortnight_day"`
	MoonPhase     MoonPhase `json:"moon_phase"`
	MoonPhaseName string    `json:"moon_phase_name"`
	MonthLength   int       `json:"month_length"`
	YearType      YearType  `json:"year_type"`
	YearLength    int       `json:"year_length"`
	SasanaYear    int       `json:"sasana_year"`
	YearName      string    `json:"year_name"`
}

// Astrology holds the astrological attributes of a day.
type Astrology struct {
	Sabbath  string   `json:"sabbath"`
	Yatyaza  bool     `json:"yatyaza"`
	Pyathada string   `json:"pyathada"`
	Nagahle  string   `json:"nagahle"`
	Mahabote string   `json:"mahabote"`
	Nakhat   string   `json:"nakhat"`
	Days     []string `json:"days"`
}

// DateResolver resolves dates in any supported form to Day records.
type DateResolver struct {
	conv worldtime.Converter
	// tzOffset is in days.
	tzOffset float64
}

// NewDateResolver creates a resolver that renders civil dates with conv and
// reads instants in the time zone tzOffsetHours east of UTC.
func NewDateResolver(conv worldtime.Converter, tzOffsetHours float64) *DateResolver {
	return &DateResolver{conv: conv, tzOffset: tzOffsetHours / 24}
}

// Converter returns the civil calendar converter in use.
func (dr *DateResolver) Converter() worldtime.Converter {
	return dr.conv
}

// Resolve resolves a Julian date given in universal time. The local date is
// found by applying the resolver's time zone offset.
func (dr *DateResolver) Resolve(jd float64) (*Day, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return nil, fmt.Errorf("resolve %v: %w", jd, ErrInvalidJulianDay)
	}
	return dr.ResolveDay(roundHalfUp(jd + dr.tzOffset)), nil
}

// ResolveTime resolves the local day of an instant.
func (dr *DateResolver) ResolveTime(t time.Time) (*Day, error) {
	return dr.Resolve(worldtime.FromTime(t))
}

// ResolveGregorian resolves a civil date in the resolver's calendar.
func (dr *DateResolver) ResolveGregorian(year, month, day int) (*Day, error) {
	jdn, err := dr.GregorianDayNumber(year, month, day)
	if err != nil {
		return nil, err
	}
	return dr.ResolveDay(jdn), nil
}

// GregorianDayNumber validates a civil date and returns its Julian day
// number. Dates skipped by the calendar switch are rejected.
func (dr *DateResolver) GregorianDayNumber(year, month, day int) (int, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrInvalidGregorianDate)
	}
	jdn := dr.conv.DayNumber(year, month, day)
	back := dr.conv.FromJulian(float64(jdn))
	if back.Year != year || back.Month != month || back.Day != day {
		return 0, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrInvalidGregorianDate)
	}
	return jdn, nil
}

// ResolveBurmese resolves a Myanmar date. First Waso is only accepted in a
// watat year.
func (dr *DateResolver) ResolveBurmese(year int, month Month, day int) (*Day, error) {
	if !month.Valid() {
		return nil, fmt.Errorf("month %d: %w", int(month), ErrInvalidBurmeseDate)
	}
	ym := CalculateYear(year)
	if month == FirstWaso && ym.Type == Common {
		return nil, fmt.Errorf("first waso in common year %d: %w", year, ErrInvalidBurmeseDate)
	}
	if day < 1 || day > MonthLength(month, ym.Type) {
		return nil, fmt.Errorf("day %d of %s %d: %w", day, month.Name(ym.Type), year, ErrInvalidBurmeseDate)
	}
	return dr.ResolveDay(ToJulian(year, month, day)), nil
}

// ResolveDay builds the Day record of a Julian day number.
func (dr *DateResolver) ResolveDay(jdn int) *Day {
	j := float64(jdn)
	d := FromJulian(j)
	ym := CalculateYear(d.Year)
	wd := weekdayOf(jdn)
	civil := dr.conv.FromJulian(j)
	phase := d.MoonPhase()

	return &Day{
		JulianDay:     jdn,
		Weekday:       wd,
		WeekdayName:   DayName(wd),
		GregorianDate: fmt.Sprintf("%04d-%02d-%02d", civil.Year, civil.Month, civil.Day),
		Civil:         civil,
		Burmese: BurmeseDate{
			Year:          d.Year,
			Month:         d.Month,
			MonthName:     d.Month.Name(d.YearType),
			Day:           d.Day,
			FortnightDay:  d.FortnightDay(),
			MoonPhase:     phase,
			MoonPhaseName: phase.String(),
			MonthLength:   d.MonthLength(),
			YearType:      d.YearType,
			YearLength:    YearLength(d.YearType),
			SasanaYear:    SasanaYear(d.Year, d.Month, d.Day),
			YearName:      YearName(d.Year),
		},
		Era: EraConstantsFor(d.Year),
		Astrology: Astrology{
			Sabbath:  Sabbath(d.Day, d.Month, d.YearType).String(),
			Yatyaza:  Yatyaza(d.Month, wd),
			Pyathada: PyathadaOf(d.Month, wd).String(),
			Nagahle:  NagahleName(Nagahle(d.Month)),
			Mahabote: MahaboteName(Mahabote(d.Year, wd)),
			Nakhat:   NakhatName(Nakhat(d.Year)),
			Days:     astroDays(d, wd),
		},
		Holidays:      Holidays(j),
		OtherHolidays: OtherHolidays(j),
		CalcError:     ym.CalcError,
	}
}

// ParseCivilDate splits a YYYY-MM-DD string into its fields. Only the layout
// is checked; whether the date exists depends on the calendar and is left to
// GregorianDayNumber (1700-02-29 exists in the Julian calendar).
func ParseCivilDate(s string) (year, month, day int, err error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return 0, 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, 0, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
		}
	}
	year, _ = strconv.Atoi(s[0:4])
	month, _ = strconv.Atoi(s[5:7])
	day, _ = strconv.Atoi(s[8:10])
	return year, month, day, nil
}
