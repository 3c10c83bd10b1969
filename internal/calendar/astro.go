package calendar

// Astrological day classes. Weekdays are numbered 0 = Saturday through
// 6 = Friday, and First Waso is read as Waso.

// SabbathKind marks a Buddhist sabbath or the day before it.
type SabbathKind int

const (
	NoSabbath SabbathKind = iota
	SabbathDay
	SabbathEve
)

func (s SabbathKind) String() string {
	switch s {
	case SabbathDay:
		return "Sabbath"
	case SabbathEve:
		return "Sabbath Eve"
	default:
		return ""
	}
}

// PyathadaKind marks an inauspicious pyathada day.
type PyathadaKind int

const (
	NoPyathada PyathadaKind = iota
	Pyathada
	AfternoonPyathada
)

func (p PyathadaKind) String() string {
	switch p {
	case Pyathada:
		return "Pyathada"
	case AfternoonPyathada:
		return "Afternoon Pyathada"
	default:
		return ""
	}
}

var (
	nagahleNames  = [...]string{"West", "North", "East", "South"}
	mahaboteNames = [...]string{"Binga", "Atun", "Yaza", "Adipati", "Marana", "Thike", "Puti"}
	nakhatNames   = [...]string{"Ogre", "Elf", "Human"}
)

// NagahleName returns the direction the dragon's head faces.
func NagahleName(d int) string { return nagahleNames[d] }

// MahaboteName returns the name of a mahabote house.
func MahaboteName(h int) string { return mahaboteNames[h] }

// NakhatName returns the name of a nakhat class.
func NakhatName(n int) string { return nakhatNames[n] }

// weekdayOf returns the weekday of a Julian day number.
func weekdayOf(jdn int) int {
	return floorMod(jdn+2, 7)
}

// normalizeMonth folds Late Tagu and Late Kason onto Tagu and Kason and
// First Waso onto Waso.
func normalizeMonth(m Month) int {
	mm := int(m)
	mmt := mm / 13
	mm = mm%13 + mmt
	if mm <= 0 {
		mm = 4
	}
	return mm
}

// Sabbath reports whether day md of month m is a sabbath or sabbath eve.
func Sabbath(md int, m Month, t YearType) SabbathKind {
	mml := MonthLength(m, t)
	s := NoSabbath
	if md == 8 || md == 15 || md == 23 || md == mml {
		s = SabbathDay
	}
	if md == 7 || md == 14 || md == 22 || md == mml-1 {
		s = SabbathEve
	}
	return s
}

// Yatyaza reports whether weekday wd is yatyaza in month m.
func Yatyaza(m Month, wd int) bool {
	m1 := int(m) % 4
	wd1 := m1/2 + 4
	wd2 := (1 - m1/2 + m1%2) * (1 + 2*(m1%2))
	return wd == wd1 || wd == wd2
}

var pyathadaDays = [7]int{1, 3, 3, 0, 2, 1, 2}

// PyathadaOf reports whether weekday wd is pyathada in month m.
func PyathadaOf(m Month, wd int) PyathadaKind {
	m1 := int(m) % 4
	p := NoPyathada
	if m1 == 0 && wd == 4 {
		p = AfternoonPyathada
	}
	if m1 == pyathadaDays[wd] {
		p = Pyathada
	}
	return p
}

// Nagahle returns the direction of the dragon's head in month m:
// 0 west, 1 north, 2 east, 3 south.
func Nagahle(m Month) int {
	mm := int(m)
	if mm <= 0 {
		mm = 4
	}
	return (mm % 12) / 3
}

// Mahabote returns the mahabote house, 0 to 6, of weekday wd in year my.
func Mahabote(my, wd int) int {
	return floorMod(my-wd, 7)
}

// Nakhat returns the nakhat class of year my: 0 ogre, 1 elf, 2 human.
func Nakhat(my int) int {
	return floorMod(my, 3)
}

// Thamanyo reports whether weekday wd is thamanyo in month m.
func Thamanyo(m Month, wd int) bool {
	mm := normalizeMonth(m)
	m1 := mm - 1 - mm/9
	wd1 := (m1*2 - m1/8) % 7
	wd2 := (wd + 7 - wd1) % 7
	return wd2 <= 1
}

var amyeittasoteDays = [7]int{5, 8, 3, 7, 2, 4, 1}

// Amyeittasote reports whether day md falling on weekday wd is amyeittasote.
func Amyeittasote(md, wd int) bool {
	return FortnightDay(md) == amyeittasoteDays[wd]
}

var warameittugyiDays = [7]int{7, 1, 4, 8, 9, 6, 3}

// Warameittugyi reports whether day md falling on weekday wd is
// warameittugyi.
func Warameittugyi(md, wd int) bool {
	return FortnightDay(md) == warameittugyiDays[wd]
}

// Warameittunge reports whether day md falling on weekday wd is
// warameittunge.
func Warameittunge(md, wd int) bool {
	return 12-FortnightDay(md) == (wd+6)%7
}

var yatpoteDays = [7]int{8, 1, 4, 6, 9, 8, 7}

// Yatpote reports whether day md falling on weekday wd is yatpote.
func Yatpote(md, wd int) bool {
	return FortnightDay(md) == yatpoteDays[wd]
}

var (
	thamaphyuDays     = [7]int{1, 2, 6, 6, 5, 6, 7}
	thamaphyuDaysAlso = [7]int{0, 1, 0, 0, 0, 3, 3}
)

// Thamaphyu reports whether day md falling on weekday wd is thamaphyu.
func Thamaphyu(md, wd int) bool {
	mf := FortnightDay(md)
	return mf == thamaphyuDays[wd] || mf == thamaphyuDaysAlso[wd] || (mf == 4 && wd == 5)
}

var (
	nagaporDays     = [7]int{26, 21, 2, 10, 18, 2, 21}
	nagaporDaysAlso = [7]int{17, 19, 1, 0, 9, 0, 0}
)

// Nagapor reports whether day md falling on weekday wd is nagapor. Unlike
// the other classes it depends on the day of month, not the fortnight day.
func Nagapor(md, wd int) bool {
	switch {
	case md == nagaporDays[wd], md == nagaporDaysAlso[wd]:
		return true
	case md == 2 && wd == 1:
		return true
	case (md == 12 || md == 4 || md == 18) && wd == 2:
		return true
	}
	return false
}

// Yatyotema reports whether day md of month m is yatyotema.
func Yatyotema(m Month, md int) bool {
	mm := normalizeMonth(m)
	m1 := mm
	if mm%2 == 0 {
		m1 = (mm + 9) % 12
	}
	m1 = (m1+4)%12 + 1
	return FortnightDay(md) == m1
}

// Mahayatkyan reports whether day md of month m is mahayatkyan.
func Mahayatkyan(m Month, md int) bool {
	mm := int(m)
	if mm <= 0 {
		mm = 4
	}
	m1 := ((mm%12)/2+4)%6 + 1
	return FortnightDay(md) == m1
}

var shanyatDays = [12]int{8, 8, 2, 2, 9, 3, 3, 5, 1, 4, 7, 4}

// Shanyat reports whether day md of month m is shanyat.
func Shanyat(m Month, md int) bool {
	mm := normalizeMonth(m)
	return FortnightDay(md) == shanyatDays[mm-1]
}

// AstrologicalDays returns the names of the day classes that apply to
// Julian date jdn, in a fixed order.
func AstrologicalDays(jdn float64) []string {
	j := roundHalfUp(jdn)
	d := FromJulian(jdn)
	return astroDays(d, weekdayOf(j))
}

func astroDays(d Date, wd int) []string {
	checks := []struct {
		name string
		ok   bool
	}{
		{"Thamanyo", Thamanyo(d.Month, wd)},
		{"Amyeittasote", Amyeittasote(d.Day, wd)},
		{"Warameittugyi", Warameittugyi(d.Day, wd)},
		{"Warameittunge", Warameittunge(d.Day, wd)},
		{"Yatpote", Yatpote(d.Day, wd)},
		{"Thamaphyu", Thamaphyu(d.Day, wd)},
		{"Nagapor", Nagapor(d.Day, wd)},
		{"Yatyotema", Yatyotema(d.Month, d.Day)},
		{"Mahayatkyan", Mahayatkyan(d.Month, d.Day)},
		{"Shanyat", Shanyat(d.Month, d.Day)},
	}
	days := []string{}
	for _, c := range checks {
		if c.ok {
			days = append(days, c.name)
		}
	}
	return days
}
