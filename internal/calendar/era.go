// Package calendar implements the Myanmar (Burmese) lunisolar calendar.
//
// Dates are converted to and from Julian day numbers, and every Myanmar
// date can be classified by its moon phase, astrological day classes and
// public holidays. All functions are pure: the only state is a set of
// read-only era and exception tables.
package calendar

// EraID identifies the calculation era a Myanmar year belongs to. Its value
// matches the historical numbering, so the three sub-eras of the first era
// are 1.1, 1.2 and 1.3.
type EraID float64

const (
	// EraMakaranta1 covers ME 797 and before.
	EraMakaranta1 EraID = 1.1
	// EraMakaranta2 covers ME 798 - 1099.
	EraMakaranta2 EraID = 1.2
	// EraThandeikta covers ME 1100 - 1216, the last years of the kings.
	EraThandeikta EraID = 1.3
	// EraColonial covers ME 1217 - 1311, under British rule.
	EraColonial EraID = 2
	// EraIndependence covers ME 1312 and after.
	EraIndependence EraID = 3
)

// String returns the era name.
func (e EraID) String() string {
	switch e {
	case EraMakaranta1:
		return "Makaranta 1"
	case EraMakaranta2:
		return "Makaranta 2"
	case EraThandeikta:
		return "Thandeikta"
	case EraColonial:
		return "British colony"
	case EraIndependence:
		return "Independence"
	default:
		return "unknown"
	}
}

// EraConstants are the calculation constants for one Myanmar year.
type EraConstants struct {
	ID EraID `json:"era_id"`
	// WatatOffset shifts the computed full moon day of 2nd Waso. It includes
	// the per-year full moon correction when one applies.
	WatatOffset float64 `json:"watat_offset"`
	// ExcessMonths is the number of months used to find excess days.
	ExcessMonths int `json:"excess_months"`
	// WatatException inverts the computed watat status.
	WatatException bool `json:"watat_exception"`
}

type fullMoonOffset struct {
	year  int
	delta float64
}

type era struct {
	id           EraID
	firstYear    int
	watatOffset  float64
	excessMonths int
	// Both tables must stay sorted by year.
	fullMoonOffsets []fullMoonOffset
	watatYears      []int
}

// eras is ordered from the newest era down. The last entry has no lower
// bound.
var eras = []era{
	{
		id:              EraIndependence,
		firstYear:       1312,
		watatOffset:     -0.5,
		excessMonths:    8,
		fullMoonOffsets: []fullMoonOffset{{1377, 1}},
		watatYears:      []int{1344, 1345},
	},
	{
		id:           EraColonial,
		firstYear:    1217,
		watatOffset:  -1,
		excessMonths: 4,
		fullMoonOffsets: []fullMoonOffset{
			{1234, 1}, {1261, -1},
		},
		watatYears: []int{1263, 1264},
	},
	{
		id:           EraThandeikta,
		firstYear:    1100,
		watatOffset:  -0.85,
		excessMonths: -1,
		fullMoonOffsets: []fullMoonOffset{
			{1120, 1}, {1126, -1}, {1150, 1}, {1172, -1}, {1207, 1},
		},
		watatYears: []int{1201, 1202},
	},
	{
		id:           EraMakaranta2,
		firstYear:    798,
		watatOffset:  -1.1,
		excessMonths: -1,
		fullMoonOffsets: []fullMoonOffset{
			{813, -1}, {849, -1}, {851, -1}, {854, -1}, {927, -1},
			{933, -1}, {936, -1}, {938, -1}, {949, -1}, {952, -1},
			{963, -1}, {968, -1}, {1039, -1},
		},
	},
	{
		id:           EraMakaranta1,
		watatOffset:  -1.1,
		excessMonths: -1,
		fullMoonOffsets: []fullMoonOffset{
			{205, 1}, {246, 1}, {471, 1}, {572, -1}, {651, 1},
			{653, 2}, {656, 1}, {672, 1}, {729, 1}, {767, -1},
		},
	},
}

// EraConstantsFor returns the calculation constants for Myanmar year my.
func EraConstantsFor(my int) EraConstants {
	e := eraFor(my)
	c := EraConstants{
		ID:           e.id,
		WatatOffset:  e.watatOffset,
		ExcessMonths: e.excessMonths,
	}
	if i := searchOffsets(my, e.fullMoonOffsets); i >= 0 {
		c.WatatOffset += e.fullMoonOffsets[i].delta
	}
	if searchYears(my, e.watatYears) >= 0 {
		c.WatatException = true
	}
	return c
}

func eraFor(my int) *era {
	for i := range eras[:len(eras)-1] {
		if my >= eras[i].firstYear {
			return &eras[i]
		}
	}
	return &eras[len(eras)-1]
}

// searchOffsets returns the index of year in a sorted table, or -1.
func searchOffsets(year int, table []fullMoonOffset) int {
	lo, hi := 0, len(table)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case table[mid].year > year:
			hi = mid - 1
		case table[mid].year < year:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

// searchYears returns the index of year in a sorted slice, or -1.
func searchYears(year int, years []int) int {
	lo, hi := 0, len(years)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case years[mid] > year:
			hi = mid - 1
		case years[mid] < year:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
