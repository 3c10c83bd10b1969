package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

var weekdayNames = [...]string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DayName returns the name of a weekday numbered from 0 = Saturday.
func DayName(wd int) string {
	return weekdayNames[floorMod(wd, 7)]
}

// ParseMonth parses a month given either as its index (0-14) or by name.
// Names are matched case-insensitively, and "Second Waso" is read as Waso.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := Month(n)
		if !m.Valid() {
			return 0, fmt.Errorf("month index out of range: %d", n)
		}
		return m, nil
	}

	monthMap := map[string]Month{
		"first waso":  FirstWaso,
		"tagu":        Tagu,
		"kason":       Kason,
		"nayon":       Nayon,
		"waso":        Waso,
		"second waso": Waso,
		"wagaung":     Wagaung,
		"tawthalin":   Tawthalin,
		"thadingyut":  Thadingyut,
		"tazaungmon":  Tazaungmon,
		"nadaw":       Nadaw,
		"pyatho":      Pyatho,
		"tabodwe":     Tabodwe,
		"tabaung":     Tabaung,
		"late tagu":   LateTagu,
		"late kason":  LateKason,
	}

	name := strings.ToLower(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), " "))
	m, ok := monthMap[name]
	if !ok {
		return 0, fmt.Errorf("unknown month: %s", s)
	}
	return m, nil
}
