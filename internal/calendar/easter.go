package calendar

import "github.com/zapponejosh/mmcalendar-api/internal/worldtime"

// easterMonthDay returns the month and day of Easter Sunday using the
// computus algorithm for the Gregorian calendar.
//
// The algorithm is based on the method described by J.M. Oudin (1940).
func easterMonthDay(year int) (month, day int) {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month = (h + l - 7*m + 114) / 31
	day = ((h + l - 7*m + 114) % 31) + 1
	return month, day
}

// EasterDay returns the Julian day number of Easter Sunday in a Gregorian
// year.
func EasterDay(year int) int {
	month, day := easterMonthDay(year)
	return worldtime.Converter{Type: worldtime.Gregorian}.DayNumber(year, month, day)
}

// GoodFridayDay returns the Julian day number of Good Friday, two days
// before Easter.
func GoodFridayDay(year int) int {
	return EasterDay(year) - 2
}
