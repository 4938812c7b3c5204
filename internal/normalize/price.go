package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"goldantelope/internal/models"
)

var (
	millionPattern  = regexp.MustCompile(`(\d+[,.]?\d*)\s*(?:миллион|млн|mln)`)
	labeledPattern  = regexp.MustCompile(`цена[:\s]*(\d[\d\s]*)`)
	currencyPattern = regexp.MustCompile(`(\d[\d\s]{2,})\s*(?:vnd|донг|₫)`)

	millionToken = regexp.MustCompile(`миллион|млн|mln`)
	nonNumeric   = regexp.MustCompile(`[^\d.]`)
)

// ListingPrice extracts a comparable integer price from a listing.
// Preference order: explicit positive numeric field, legacy free-text
// price field, description scan. 0 means "no price" and must be excluded
// by any positive price-range filter.
func ListingPrice(l models.Listing) int {
	if amount := l.PriceAmount(); amount > 0 {
		return int(amount)
	}
	if v := priceFromField(l.PriceText()); v > 0 {
		return v
	}
	return priceFromText(l.Description)
}

// priceFromField parses a price persisted as free text, e.g. "7,5 млн".
func priceFromField(raw string) int {
	if raw == "" {
		return 0
	}
	s := strings.ToLower(raw)
	multiplier := 1.0
	if millionToken.MatchString(s) {
		multiplier = 1_000_000
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = nonNumeric.ReplaceAllString(s, "")
	if parts := strings.SplitN(s, ".", 3); len(parts) > 2 {
		// keep the first dot only: "1.500.000" -> "1.500000"
		s = parts[0] + "." + strings.Join(parts[1:], "")
	}
	if s == "" || s == "." {
		return 0
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || val <= 0 {
		return 0
	}
	return int(val * multiplier)
}

// priceFromText scans free text for price patterns in priority order.
// The first pattern that matches wins; later patterns are never tried.
func priceFromText(text string) int {
	desc := strings.ToLower(text)

	if m := millionPattern.FindStringSubmatch(desc); m != nil {
		return parseMatched(m[1], 1_000_000)
	}
	if m := labeledPattern.FindStringSubmatch(desc); m != nil {
		return parseMatched(m[1], 1)
	}
	if m := currencyPattern.FindStringSubmatch(desc); m != nil {
		return parseMatched(m[1], 1)
	}
	return 0
}

func parseMatched(group string, multiplier float64) int {
	group = strings.ReplaceAll(group, " ", "")
	group = strings.ReplaceAll(group, ",", ".")
	val, err := strconv.ParseFloat(group, 64)
	if err != nil || val <= 0 {
		return 0
	}
	return int(val * multiplier)
}
