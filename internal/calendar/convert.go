package calendar

import "math"

// Month arithmetic constants. A month averages monthFactor days and the
// first month boundary falls monthShift days after the epoch.
const (
	monthFactor = 29.544
	monthShift  = 29.26
	// (dd+nayonOffset)/nayonSpan is 1 from the day after Nayon on.
	nayonOffset = 423
	nayonSpan   = 512
	// 1st Tagu falls this many days before the Waso full moon.
	epochToWaso = 102
)

// Date is a day of the Myanmar calendar.
type Date struct {
	Year     int      `json:"year"`
	Month    Month    `json:"month"`
	Day      int      `json:"day"`
	YearType YearType `json:"year_type"`
}

// MonthLength returns the number of days in the date's month.
func (d Date) MonthLength() int {
	return MonthLength(d.Month, d.YearType)
}

// MoonPhase returns the moon phase of the date.
func (d Date) MoonPhase() MoonPhase {
	return CalculateMoonPhase(d.Day, d.Month, d.YearType)
}

// FortnightDay returns the day of the fortnight of the date.
func (d Date) FortnightDay() int {
	return FortnightDay(d.Day)
}

// monthStart returns the day count at which month index mm begins. The
// product is rounded before the subtraction so it cannot be fused.
func monthStart(mm int) int {
	return int(math.Floor(float64(monthFactor*float64(mm)) - monthShift))
}

// YearOf returns the Myanmar year that contains Julian date jdn.
func YearOf(jdn float64) int {
	j := float64(roundHalfUp(jdn))
	return int(math.Floor((j - 0.5 - Epoch) / SolarYear))
}

// FromJulian converts a Julian date to a Myanmar date. The date is rounded
// to the nearest day number first.
func FromJulian(jdn float64) Date {
	j := roundHalfUp(jdn)
	my := YearOf(jdn)
	ym := CalculateYear(my)

	dd := j - ym.EpochDay + 1
	b := int(ym.Type) / 2
	c := 0
	if ym.Type == Common {
		c = 1
	}
	myl := 354 + (1-c)*30 + b
	// days past the end of the year belong to Late Tagu and Late Kason
	mmt := floorDiv(dd-1, myl)
	dd -= mmt * myl

	// past Nayon, remove the big watat day and insert the skipped month
	// of a common year
	a := floorDiv(dd+nayonOffset, nayonSpan)
	mm := int(math.Floor((float64(dd-b*a+c*a*30) + monthShift) / monthFactor))
	e := floorDiv(mm+12, 16)
	f := floorDiv(mm+11, 16)
	md := dd - monthStart(mm) - b*e + c*f*30
	mm += f*3 - e*4 + 12*mmt

	return Date{Year: my, Month: Month(mm), Day: md, YearType: ym.Type}
}

// ToJulian converts a Myanmar date to a Julian day number. Months 13 and 14
// count past the end of the year.
func ToJulian(year int, month Month, day int) int {
	ym := CalculateYear(year)

	mm := int(month)
	mmt := floorDiv(mm, 13)
	mm = floorMod(mm, 13) + mmt
	b := int(ym.Type) / 2
	c := 1 - (int(ym.Type)+1)/2
	mm += 4 - floorDiv(mm+15, 16)*4 + floorDiv(mm+12, 16)

	dd := day + monthStart(mm) -
		c*floorDiv(mm+11, 16)*30 + b*floorDiv(mm+12, 16)
	myl := 354 + (1-c)*30 + b
	dd += mmt * myl
	return dd + ym.EpochDay - 1
}
