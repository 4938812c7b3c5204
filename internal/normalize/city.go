package normalize

import "strings"

// cityEntry pairs a canonical display name with every transliteration and
// script variant the legacy data is known to carry.
type cityEntry struct {
	Canonical string
	Variants  []string
}

// cityTable is ordered: fallback scans and counting use the first
// canonical city whose name appears, in this order.
var cityTable = []cityEntry{
	{"Нячанг", []string{"нячанг", "nha trang", "nhatrang"}},
	{"Хошимин", []string{"хошимин", "сайгон", "saigon", "ho chi minh", "hochiminh", "hcm"}},
	{"Ханой", []string{"ханой", "hanoi", "ha noi"}},
	{"Фукуок", []string{"фукуок", "phu quoc", "phuquoc"}},
	{"Фантьет", []string{"фантьет", "phan thiet", "phanthiet"}},
	{"Муйне", []string{"муйне", "mui ne", "muine"}},
	{"Дананг", []string{"дананг", "da nang", "danang"}},
	{"Камрань", []string{"камрань", "cam ranh", "camranh"}},
	{"Далат", []string{"далат", "da lat", "dalat"}},
	{"Хойан", []string{"хойан", "hoi an", "hoian"}},
}

// CanonicalCities returns the canonical city names in table order.
func CanonicalCities() []string {
	out := make([]string, len(cityTable))
	for i, e := range cityTable {
		out[i] = e.Canonical
	}
	return out
}

// CanonicalCity maps an exact variant (any script, any case) onto its
// canonical name. Unknown values return "".
func CanonicalCity(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	for _, e := range cityTable {
		for _, variant := range e.Variants {
			if v == variant {
				return e.Canonical
			}
		}
	}
	return ""
}

// ResolveCity canonicalizes a listing's city. The raw value is tried as
// an exact table hit first; otherwise title, description and the raw
// value are scanned for each city's variants in table order and the
// first hit wins. Idempotent: a canonical name resolves to itself.
func ResolveCity(raw, title, description string) string {
	if c := CanonicalCity(raw); c != "" {
		return c
	}
	haystack := strings.ToLower(title + " " + description + " " + raw)
	for _, e := range cityTable {
		for _, variant := range e.Variants {
			if strings.Contains(haystack, variant) {
				return e.Canonical
			}
		}
	}
	return ""
}

// CityTargets returns the lowercase match set for a city filter value:
// all known variants for a recognized city, or just the value itself.
// Kept for compatibility with older un-normalized data.
func CityTargets(filter string) []string {
	v := strings.ToLower(strings.TrimSpace(filter))
	if v == "" {
		return nil
	}
	for _, e := range cityTable {
		for _, variant := range e.Variants {
			if v == variant {
				targets := make([]string, 0, len(e.Variants)+1)
				targets = append(targets, e.Variants...)
				targets = append(targets, strings.ToLower(e.Canonical))
				return targets
			}
		}
	}
	return []string{v}
}
