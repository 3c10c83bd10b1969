package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHolidays(t *testing.T) {
	tests := []struct {
		name string
		jdn  float64
		want []string
	}{
		{"christmas 2020", 2459209, []string{"Christmas Day"}},
		{"substitute 2019", 2458768, []string{"Holiday"}},
		{"substitute march 2021", 2459300, []string{"Holiday"}},
		{"substitute december 2021", 2459573, []string{"Holiday"}},
		{"martyrs day with lent", 2457589, []string{"Martyrs' Day", "Start of Buddhist Lent"}},
		{"resistance day with tabaung", 2459301, []string{"Resistance Day", "Tabaung Pwe"}},
		{"plain day", 2458764, []string{}},
		{"rounded to nearest day", 2459208.7, []string{"Christmas Day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Holidays(tt.jdn))
		})
	}
}

func TestThingyanFor(t *testing.T) {
	tests := []struct {
		year     int
		atatTime float64
		akyaTime float64
		atat     int
		akya     int
	}{
		{1369, 2454207.2882461483, 2454205.1183271664, 2454207, 2454205},
		{1375, 2456398.840785037, 2456396.670866055, 2456399, 2456397},
		{1384, 2459686.1695933705, 2459683.9996743887, 2459686, 2459684},
	}

	for _, tt := range tests {
		th := ThingyanFor(tt.year)
		assert.InDelta(t, tt.atatTime, th.AtatTime, 1e-6, "atat time %d", tt.year)
		assert.InDelta(t, tt.akyaTime, th.AkyaTime, 1e-6, "akya time %d", tt.year)
		assert.Equal(t, tt.atat, th.AtatDay, "atat day %d", tt.year)
		assert.Equal(t, tt.akya, th.AkyaDay, "akya day %d", tt.year)
		assert.Equal(t, tt.atat+1, th.NewYearDay)
	}

	// The transit is shorter before independence.
	old := ThingyanFor(1300)
	assert.InDelta(t, akyaToAtatOld, old.AtatTime-old.AkyaTime, 1e-6)
}

func TestThingyanHolidayWindows(t *testing.T) {
	// 1375 falls in the 1369 - 1378 window: akya - 2 and atat + 2 onwards.
	th := ThingyanFor(1375)
	assert.Equal(t, []string{"Holiday"}, Holidays(float64(th.AkyaDay-2)))
	assert.Equal(t, []string{"Holiday"}, Holidays(float64(th.AtatDay+2)))
	assert.Equal(t, []string{"Thingyan Akyo"}, Holidays(float64(th.AkyaDay-1)))

	// 1384 extends backwards from akya.
	th = ThingyanFor(1384)
	for j := th.AkyaDay - 5; j <= th.AkyaDay-2; j++ {
		assert.Contains(t, Holidays(float64(j)), "Holiday", "jdn %d", j)
	}

	// Before 1100 only the new year day is marked.
	th = ThingyanFor(1099)
	assert.Equal(t, []string{"Myanmar New Year's Day"}, Holidays(float64(th.NewYearDay)))
	assert.Empty(t, Holidays(float64(th.AtatDay)))
}

func TestOtherHolidays(t *testing.T) {
	assert.Equal(t, []string{"Halloween"}, OtherHolidays(2459884))
	assert.Equal(t, []string{"New Year's Day"}, OtherHolidays(2451545))
	assert.Equal(t, []string{"Easter"}, OtherHolidays(2415125))
	assert.Equal(t, []string{"Good Friday"}, OtherHolidays(float64(GoodFridayDay(2024))))
	assert.Empty(t, OtherHolidays(2459209))
}

func TestEaster(t *testing.T) {
	tests := []struct {
		year  int
		month int
		day   int
		jdn   int
	}{
		{1900, 4, 15, 2415125},
		{2021, 4, 4, 2459309},
		{2024, 3, 31, 2460401},
		{2026, 4, 5, 2461136},
	}

	for _, tt := range tests {
		m, d := easterMonthDay(tt.year)
		assert.Equal(t, [2]int{tt.month, tt.day}, [2]int{m, d}, "easter %d", tt.year)
		assert.Equal(t, tt.jdn, EasterDay(tt.year), "easter %d", tt.year)
		assert.Equal(t, tt.jdn-2, GoodFridayDay(tt.year))
	}
}
