package calendar

import "math"

// Astronomical constants of the Myanmar calendar, in days.
const (
	// SolarYear is the length of a sidereal solar year.
	SolarYear = 1577917828.0 / 4320000.0
	// LunarMonth is the length of a synodic month.
	LunarMonth = 1577917828.0 / 53433336.0
	// Epoch is the Julian date of the beginning of Myanmar year 0.
	Epoch = 1954168.050623
)

// Typed copies of the constants, so that derived values are computed in
// float64 steps rather than folded exactly at compile time.
var (
	solarYear  float64 = SolarYear
	lunarMonth float64 = LunarMonth
)

// WatatResult is the intercalation status of a single Myanmar year, before
// it is refined against the previous watat year.
type WatatResult struct {
	// FullMoonDay is the Julian day number of the full moon of 2nd Waso in
	// a watat year, or of Waso in a common year.
	FullMoonDay int `json:"full_moon_day"`
	// Intercalary reports whether the year has an intercalary month.
	Intercalary bool `json:"intercalary"`
}

// CheckWatat determines whether Myanmar year my is a watat year and finds
// the full moon day of its (second) Waso.
func CheckWatat(my int) WatatResult {
	c := EraConstantsFor(my)

	// threshold to adjust excess days
	ta := (solarYear/12 - lunarMonth) * float64(12-c.ExcessMonths)
	// excess days
	ed := math.Mod(solarYear*float64(my+3739), lunarMonth)
	if ed < ta {
		ed += lunarMonth
	}
	fm := roundHalfUp(float64(solarYear*float64(my)) + Epoch - ed + float64(4.5*lunarMonth) + c.WatatOffset)

	var watat bool
	if c.ID >= EraColonial {
		tw := lunarMonth - float64((solarYear/12-lunarMonth)*float64(c.ExcessMonths))
		watat = ed >= tw
	} else {
		// Metonic cycle: 7 watat years in every 19.
		watat = floorMod(my*7+2, 19) >= 12
	}
	if c.WatatException {
		watat = !watat
	}
	return WatatResult{FullMoonDay: fm, Intercalary: watat}
}

// roundHalfUp rounds half up, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
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
