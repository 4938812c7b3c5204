package models

// Country selects which catalog files a request operates on.
type Country string

const (
	CountryVietnam   Country = "vietnam"
	CountryThailand  Country = "thailand"
	CountryIndia     Country = "india"
	CountryIndonesia Country = "indonesia"
)

// Countries is the fixed set of supported countries.
var Countries = []Country{CountryVietnam, CountryThailand, CountryIndia, CountryIndonesia}

// ParseCountry maps a raw request value onto the fixed country set.
// An empty value falls back to vietnam, matching the historical default.
func ParseCountry(raw string) (Country, error) {
	if raw == "" {
		return CountryVietnam, nil
	}
	for _, c := range Countries {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ErrUnknownCountry
}
