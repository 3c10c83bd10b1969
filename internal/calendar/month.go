package calendar

// Month is a Myanmar month index. Tagu through Tabaung are 1 to 12; the
// intercalary First Waso is 0, and the days of Tagu and Kason that fall
// after Thingyan, at the end of the year, are 13 and 14.
type Month int

const (
	FirstWaso Month = iota
	Tagu
	Kason
	Nayon
	Waso
	Wagaung
	Tawthalin
	Thadingyut
	Tazaungmon
	Nadaw
	Pyatho
	Tabodwe
	Tabaung
	LateTagu
	LateKason
)

var monthNames = [...]string{
	"First Waso",
	"Tagu",
	"Kason",
	"Nayon",
	"Waso",
	"Wagaung",
	"Tawthalin",
	"Thadingyut",
	"Tazaungmon",
	"Nadaw",
	"Pyatho",
	"Tabodwe",
	"Tabaung",
	"Late Tagu",
	"Late Kason",
}

// String returns the plain month name.
func (m Month) String() string {
	if m < FirstWaso || m > LateKason {
		return "unknown"
	}
	return monthNames[m]
}

// Name returns the month name as it is written in a year of type t, where
// Waso of a watat year is called Second Waso.
func (m Month) Name(t YearType) string {
	if m == Waso && t != Common {
		return "Second Waso"
	}
	return m.String()
}

// Valid reports whether m is a month index.
func (m Month) Valid() bool {
	return m >= FirstWaso && m <= LateKason
}

// MoonPhase is the phase of the moon on a Myanmar day.
type MoonPhase int

const (
	Waxing MoonPhase = iota
	FullMoon
	Waning
	NewMoon
)

var moonPhaseNames = [...]string{"Waxing", "Full Moon", "Waning", "New Moon"}

func (p MoonPhase) String() string {
	if p < Waxing || p > NewMoon {
		return "unknown"
	}
	return moonPhaseNames[p]
}

var yearNames = [...]string{
	"Hpusha", "Magha", "Phalguni", "Chitra",
	"Visakha", "Jyeshtha", "Ashadha", "Sravana",
	"Bhadrapaha", "Asvini", "Krittika", "Mrigasiras",
}

// MonthLength returns the number of days in month m of a year of type t.
// Odd months have 29 days and even months 30, except that Nayon gains a day
// in a big watat year.
func MonthLength(m Month, t YearType) int {
	n := 30 - int(m)%2
	if m == Nayon {
		n += int(t) / 2
	}
	return n
}

// YearLength returns the number of days in a year of type t.
func YearLength(t YearType) int {
	c := 0
	if t == Common {
		c = 1
	}
	return 354 + (1-c)*30 + int(t)/2
}

// FortnightDay returns the day of the fortnight, 1 to 15, for day of month
// md.
func FortnightDay(md int) int {
	return md - 15*(md/16)
}

// CalculateMoonPhase returns the moon phase of day md of month m.
func CalculateMoonPhase(md int, m Month, t YearType) MoonPhase {
	mml := MonthLength(m, t)
	return MoonPhase((md+1)/16 + md/16 + md/mml)
}

// DayOfMonth is the inverse of FortnightDay and CalculateMoonPhase: it
// returns the day of month m given the fortnight day and moon phase. Full
// and new moon days ignore fd.
func DayOfMonth(fd int, p MoonPhase, m Month, t YearType) int {
	mml := MonthLength(m, t)
	m1 := int(p) % 2
	m2 := int(p) / 2
	return m1*(15+m2*(mml-15)) + (1-m1)*(fd+15*m2)
}

// SasanaYear returns the Buddhist era year of a Myanmar date. It changes on
// the full moon of Kason.
func SasanaYear(my int, m Month, md int) int {
	if m == Tagu || (m == Kason && md < 16) {
		return my + 1181
	}
	return my + 1182
}

// YearName returns the name of Myanmar year my in the 12-year cycle.
func YearName(my int) string {
	return yearNames[floorMod(my, 12)]
}
