package calendar

import (
	"github.com/zapponejosh/mmcalendar-api/internal/worldtime"
)

const (
	// thingyanStartYear is the first year with Thingyan holidays.
	thingyanStartYear = 1100
	// Length of the Thingyan transit in days, before and from 1312.
	akyaToAtatOld = 2.1675
	akyaToAtat    = 2.169918982
)

// Thingyan holds the moments of the Thingyan transit that precedes Myanmar
// year Year.
type Thingyan struct {
	Year int `json:"year"`
	// AkyaTime and AtatTime are Julian dates.
	AkyaTime float64 `json:"akya_time"`
	AtatTime float64 `json:"atat_time"`
	AkyaDay  int     `json:"akya_day"`
	AtatDay  int     `json:"atat_day"`
	// NewYearDay is the day after atat.
	NewYearDay int `json:"new_year_day"`
}

// ThingyanFor returns the Thingyan moments for the start of Myanmar year my.
func ThingyanFor(my int) Thingyan {
	return thingyan(my, my)
}

// thingyan computes the transit for year ny. The transit length depends on
// the era of eraYear, which for late Tagu and Kason days is the year before.
func thingyan(ny, eraYear int) Thingyan {
	ja := float64(solarYear*float64(ny)) + Epoch
	jk := ja - akyaToAtatOld
	if eraYear >= 1312 {
		jk = ja - akyaToAtat
	}
	atn := roundHalfUp(ja)
	return Thingyan{
		Year:       ny,
		AkyaTime:   jk,
		AtatTime:   ja,
		AkyaDay:    roundHalfUp(jk),
		AtatDay:    atn,
		NewYearDay: atn + 1,
	}
}

// substituteHolidays are the extra public holidays of 2019 to 2021, by
// Julian day number. Sorted.
var substituteHolidays = []int{
	// 2019
	2458768, 2458772, 2458785, 2458800,
	// 2020
	2458855, 2458918, 2458950, 2459051, 2459062, 2459152, 2459156, 2459167,
	2459181, 2459184,
	// 2021
	2459300, 2459303, 2459323, 2459324, 2459335, 2459548, 2459573,
}

// dayInfo gathers what the holiday rules look at for one day.
type dayInfo struct {
	jdn   int
	date  Date
	phase MoonPhase
	civil worldtime.DateTime
}

func newDayInfo(jdn float64) dayInfo {
	j := roundHalfUp(jdn)
	d := FromJulian(float64(j))
	return dayInfo{
		jdn:   j,
		date:  d,
		phase: d.MoonPhase(),
		civil: worldtime.DefaultConverter().FromJulian(float64(j)),
	}
}

func (di dayInfo) fullMoonOf(m Month) bool {
	return di.date.Month == m && di.phase == FullMoon
}

// Holidays returns the Myanmar public holidays on Julian date jdn.
//
// Civil dates are always read in the British calendar with the default
// switch day, whatever converter a DateResolver is configured with. Before
// the switch, a Day resolved in the Gregorian or Julian calendar can show a
// GregorianDate that differs from the date its holidays were matched on.
func Holidays(jdn float64) []string {
	di := newDayInfo(jdn)
	hs := []string{}
	hs = thingyanHolidays(di, hs)
	hs = civilHolidays(di, hs)
	hs = lunarHolidays(di, hs)
	if gy := di.civil.Year; gy > 2018 && gy < 2022 && searchYears(di.jdn, substituteHolidays) >= 0 {
		hs = append(hs, "Holiday")
	}
	return hs
}

func thingyanHolidays(di dayInfo, hs []string) []string {
	my := di.date.Year
	ny := my + int(di.date.Month)/13
	t := thingyan(ny, my)
	jdn, akn, atn := di.jdn, t.AkyaDay, t.AtatDay

	if jdn == t.NewYearDay {
		hs = append(hs, "Myanmar New Year's Day")
	}
	if ny < thingyanStartYear {
		return hs
	}
	switch {
	case jdn == atn:
		hs = append(hs, "Thingyan Atat")
	case jdn > akn && jdn < atn:
		hs = append(hs, "Thingyan Akyat")
	case jdn == akn:
		hs = append(hs, "Thingyan Akya")
	case jdn == akn-1:
		hs = append(hs, "Thingyan Akyo")
	case ny >= 1369 && ny < 1379 && (jdn == akn-2 || (jdn >= atn+2 && jdn <= akn+7)):
		hs = append(hs, "Holiday")
	case ny >= 1384 && ny <= 1385 && jdn >= akn-5 && jdn <= akn-2:
		hs = append(hs, "Holiday")
	case ny >= 1386 && jdn >= atn+2 && jdn <= akn+7:
		hs = append(hs, "Holiday")
	}
	return hs
}

func civilHolidays(di dayInfo, hs []string) []string {
	gy, gm, gd := di.civil.Year, di.civil.Month, di.civil.Day
	switch {
	case gy >= 2018 && gy <= 2021 && gm == 1 && gd == 1:
		hs = append(hs, "New Year's Day")
	case gy >= 1948 && gm == 1 && gd == 4:
		hs = append(hs, "Independence Day")
	case gy >= 1947 && gm == 2 && gd == 12:
		hs = append(hs, "Union Day")
	case gy >= 1958 && gm == 3 && gd == 2:
		hs = append(hs, "Peasants' Day")
	case gy >= 1945 && gm == 3 && gd == 27:
		hs = append(hs, "Resistance Day")
	case gy >= 1923 && gm == 5 && gd == 1:
		hs = append(hs, "Labour Day")
	case gy >= 1947 && gm == 7 && gd == 19:
		hs = append(hs, "Martyrs' Day")
	case gy >= 1752 && gm == 12 && gd == 25:
		hs = append(hs, "Christmas Day")
	case gy == 2017 && gm == 12 && gd == 30:
		hs = append(hs, "Holiday")
	case gy >= 2017 && gy <= 2021 && gm == 12 && gd == 31:
		hs = append(hs, "Holiday")
	}
	return hs
}

func lunarHolidays(di dayInfo, hs []string) []string {
	my, mm, md := di.date.Year, di.date.Month, di.date.Day
	switch {
	case di.fullMoonOf(Kason):
		hs = append(hs, "Buddha Day")
	case di.fullMoonOf(Waso):
		hs = append(hs, "Start of Buddhist Lent")
	case di.fullMoonOf(Thadingyut):
		hs = append(hs, "End of Buddhist Lent")
	case my >= 1379 && mm == Thadingyut && (md == 14 || md == 16):
		hs = append(hs, "Holiday")
	case di.fullMoonOf(Tazaungmon):
		hs = append(hs, "Tazaungdaing")
	case my >= 1379 && mm == Tazaungmon && md == 14:
		hs = append(hs, "Holiday")
	case my >= 1282 && mm == Tazaungmon && md == 25:
		hs = append(hs, "National Day")
	case mm == Pyatho && md == 1:
		hs = append(hs, "Karen New Year's Day")
	case di.fullMoonOf(Tabaung):
		hs = append(hs, "Tabaung Pwe")
	}
	return hs
}

// OtherHolidays returns observances on Julian date jdn that are not public
// holidays. Civil dates are read as in Holidays.
func OtherHolidays(jdn float64) []string {
	di := newDayInfo(jdn)
	gy, gm, gd := di.civil.Year, di.civil.Month, di.civil.Day
	hs := []string{}

	switch {
	case gy <= 2017 && gm == 1 && gd == 1:
		hs = append(hs, "New Year's Day")
	case gy >= 1915 && gm == 2 && gd == 13:
		hs = append(hs, "G. Aung San BD")
	case gy >= 1969 && gm == 2 && gd == 14:
		hs = append(hs, "Valentines Day")
	case gy >= 1970 && gm == 4 && gd == 22:
		hs = append(hs, "Earth Day")
	case gy >= 1392 && gm == 4 && gd == 1:
		hs = append(hs, "April Fools' Day")
	case gy >= 1948 && gm == 5 && gd == 8:
		hs = append(hs, "Red Cross Day")
	case gy >= 1994 && gm == 10 && gd == 5:
		hs = append(hs, "World Teachers' Day")
	case gy >= 1947 && gm == 10 && gd == 24:
		hs = append(hs, "United Nations Day")
	case gy >= 1753 && gm == 10 && gd == 31:
		hs = append(hs, "Halloween")
	}

	if gy >= 1876 {
		switch di.jdn {
		case EasterDay(gy):
			hs = append(hs, "Easter")
		case GoodFridayDay(gy):
			hs = append(hs, "Good Friday")
		}
	}

	my, mm, md := di.date.Year, di.date.Month, di.date.Day
	switch {
	case my >= 1309 && mm == Tabodwe && md == 16:
		hs = append(hs, "'Mon' National Day")
	case mm == Nadaw && md == 1:
		hs = append(hs, "Shan New Year's Day")
		if my >= 1306 {
			hs = append(hs, "Authors' Day")
		}
	case di.fullMoonOf(Nayon):
		hs = append(hs, "Mahathamaya Day")
	case di.fullMoonOf(Tawthalin):
		hs = append(hs, "Garudhamma Day")
	case my >= 1356 && di.fullMoonOf(Pyatho):
		hs = append(hs, "Mothers' Day")
	case my >= 1370 && di.fullMoonOf(Tabaung):
		hs = append(hs, "Fathers' Day")
	case di.fullMoonOf(Wagaung):
		hs = append(hs, "Metta Day")
	case mm == Wagaung && md == 10:
		hs = append(hs, "Taungpyone Pwe")
	case mm == Wagaung && md == 23:
		hs = append(hs, "Yadanagu Pwe")
	}
	return hs
}
