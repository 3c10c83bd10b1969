package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/mmcalendar-api/internal/worldtime"
)

func testResolver() *DateResolver {
	return NewDateResolver(worldtime.DefaultConverter(), 6.5)
}

func TestResolveDay(t *testing.T) {
	day := testResolver().ResolveDay(2459322)

	assert.Equal(t, 2459322, day.JulianDay)
	assert.Equal(t, "2021-04-17", day.GregorianDate)
	assert.Equal(t, 0, day.Weekday)
	assert.Equal(t, "Saturday", day.WeekdayName)

	b := day.Burmese
	assert.Equal(t, 1383, b.Year)
	assert.Equal(t, Tagu, b.Month)
	assert.Equal(t, "Tagu", b.MonthName)
	assert.Equal(t, 6, b.Day)
	assert.Equal(t, 6, b.FortnightDay)
	assert.Equal(t, Waxing, b.MoonPhase)
	assert.Equal(t, "Waxing", b.MoonPhaseName)
	assert.Equal(t, 29, b.MonthLength)
	assert.Equal(t, Common, b.YearType)
	assert.Equal(t, 354, b.YearLength)
	assert.Equal(t, 2564, b.SasanaYear)
	assert.Equal(t, "Chitra", b.YearName)

	assert.Equal(t, EraIndependence, day.Era.ID)

	a := day.Astrology
	assert.Equal(t, "", a.Sabbath)
	assert.False(t, a.Yatyaza)
	assert.Equal(t, "Pyathada", a.Pyathada)
	assert.Equal(t, "West", a.Nagahle)
	assert.Equal(t, "Marana", a.Mahabote)
	assert.Equal(t, "Ogre", a.Nakhat)
	assert.Equal(t, []string{"Thamanyo", "Warameittunge", "Yatyotema"}, a.Days)

	assert.Equal(t, []string{"Myanmar New Year's Day"}, day.Holidays)
	assert.Empty(t, day.OtherHolidays)
	assert.False(t, day.CalcError)
}

func TestResolveSecondWaso(t *testing.T) {
	day := testResolver().ResolveDay(2456141)
	assert.Equal(t, "Second Waso", day.Burmese.MonthName)
	assert.Equal(t, "Sabbath Eve", day.Astrology.Sabbath)
	assert.Equal(t, "Afternoon Pyathada", day.Astrology.Pyathada)
	assert.True(t, day.Astrology.Yatyaza)
}

func TestResolveAppliesTimeZone(t *testing.T) {
	r := testResolver()

	// 2021-06-11 00:00 UTC is 06:30 local, still the 11th.
	day, err := r.Resolve(2459376.5)
	require.NoError(t, err)
	assert.Equal(t, "2021-06-11", day.GregorianDate)

	// 2021-06-11 18:00 UTC is past local midnight.
	day, err = r.Resolve(2459377.25)
	require.NoError(t, err)
	assert.Equal(t, "2021-06-12", day.GregorianDate)

	utc := NewDateResolver(worldtime.DefaultConverter(), 0)
	day, err = utc.Resolve(2459377.25)
	require.NoError(t, err)
	assert.Equal(t, "2021-06-11", day.GregorianDate)
}

func TestResolveRejectsNonFinite(t *testing.T) {
	r := testResolver()
	for _, jd := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := r.Resolve(jd)
		assert.ErrorIs(t, err, ErrInvalidJulianDay)
	}
}

func TestResolveTime(t *testing.T) {
	ts := time.Date(2020, time.December, 24, 20, 0, 0, 0, time.UTC)
	day, err := testResolver().ResolveTime(ts)
	require.NoError(t, err)
	assert.Equal(t, "2020-12-25", day.GregorianDate)
	assert.Equal(t, []string{"Christmas Day"}, day.Holidays)
}

func TestResolveGregorian(t *testing.T) {
	r := testResolver()

	day, err := r.ResolveGregorian(2022, 10, 31)
	require.NoError(t, err)
	assert.Equal(t, 2459884, day.JulianDay)
	assert.Equal(t, []string{"Halloween"}, day.OtherHolidays)

	day, err = r.ResolveGregorian(1600, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 2305518, day.JulianDay)

	for _, d := range [][3]int{{2021, 2, 29}, {2021, 13, 1}, {2021, 4, 0}, {1752, 9, 5}} {
		_, err := r.ResolveGregorian(d[0], d[1], d[2])
		assert.ErrorIs(t, err, ErrInvalidGregorianDate, "%v", d)
	}
}

func TestResolveBurmese(t *testing.T) {
	r := testResolver()

	day, err := r.ResolveBurmese(1386, Kason, 15)
	require.NoError(t, err)
	assert.Equal(t, 2460453, day.JulianDay)
	assert.Equal(t, []string{"Buddha Day"}, day.Holidays)

	day, err = r.ResolveBurmese(1385, FirstWaso, 16)
	require.NoError(t, err)
	assert.Equal(t, 2460129, day.JulianDay)
	assert.Equal(t, "First Waso", day.Burmese.MonthName)

	tests := []struct {
		year  int
		month Month
		day   int
	}{
		{1384, FirstWaso, 1},
		{1386, Tagu, 30},
		{1386, Kason, 0},
		{1385, Month(15), 1},
		{1386, Nayon, 30},
	}
	for _, tt := range tests {
		_, err := r.ResolveBurmese(tt.year, tt.month, tt.day)
		assert.ErrorIs(t, err, ErrInvalidBurmeseDate, "%+v", tt)
	}

	// Nayon has 30 days in a big watat year.
	_, err = r.ResolveBurmese(1385, Nayon, 30)
	assert.NoError(t, err)
}

func TestParseCivilDate(t *testing.T) {
	y, m, d, err := ParseCivilDate("2024-04-17")
	require.NoError(t, err)
	assert.Equal(t, [3]int{2024, 4, 17}, [3]int{y, m, d})

	// Layout only: existence is checked by the converter.
	y, m, d, err = ParseCivilDate("1700-02-29")
	require.NoError(t, err)
	assert.Equal(t, [3]int{1700, 2, 29}, [3]int{y, m, d})

	for _, s := range []string{"17/04/2024", "2024-4-17", "2024-04-17T00:00", "+024-04-17", "2024-0a-17", ""} {
		_, _, _, err := ParseCivilDate(s)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, s)
	}
}

func TestResolveJulianLeapDay(t *testing.T) {
	// Feb 29 1700 is a Julian leap day, before the British switch.
	y, m, d, err := ParseCivilDate("1700-02-29")
	require.NoError(t, err)

	day, err := testResolver().ResolveGregorian(y, m, d)
	require.NoError(t, err)
	assert.Equal(t, 2342042, day.JulianDay)
	assert.Equal(t, "1700-02-29", day.GregorianDate)
	assert.Equal(t, Date{1061, Tabaung, 23, Common}, FromJulian(float64(day.JulianDay)))

	julian := NewDateResolver(worldtime.Converter{Type: worldtime.Julian, GregorianStart: worldtime.DefaultGregorianStart}, 6.5)
	day, err = julian.ResolveGregorian(y, m, d)
	require.NoError(t, err)
	assert.Equal(t, 2342042, day.JulianDay)

	gregorian := NewDateResolver(worldtime.Converter{Type: worldtime.Gregorian, GregorianStart: worldtime.DefaultGregorianStart}, 6.5)
	_, err = gregorian.ResolveGregorian(y, m, d)
	assert.ErrorIs(t, err, ErrInvalidGregorianDate)
}

func TestResolveHolidaysUseBritishDates(t *testing.T) {
	julian := NewDateResolver(worldtime.Converter{Type: worldtime.Julian, GregorianStart: worldtime.DefaultGregorianStart}, 6.5)

	// Julian 1800-12-25 is British 1801-01-06.
	day, err := julian.ResolveGregorian(1800, 12, 25)
	require.NoError(t, err)
	assert.Equal(t, 2378867, day.JulianDay)
	assert.Equal(t, "1800-12-25", day.GregorianDate)
	assert.Empty(t, day.Holidays)

	// British 1800-12-25 shows as Julian 1800-12-13.
	day = julian.ResolveDay(2378855)
	assert.Equal(t, "1800-12-13", day.GregorianDate)
	assert.Equal(t, []string{"Christmas Day"}, day.Holidays)
	assert.Equal(t, Holidays(2378855), day.Holidays)
}
