package normalize

import (
	"regexp"
	"strings"
)

// Transport deal types and kids sub-types derived by keyword heuristics
// when an explicit tag field is absent.
const (
	DealSale = "sale"
	DealRent = "rent"

	KidsEvents  = "events"
	KidsNannies = "nannies"
	KidsSchools = "schools"
)

type tagEntry struct {
	Tag      string
	Keywords []string
}

// Priority order is fixed: the first set with a hit wins.
var dealTags = []tagEntry{
	{DealSale, []string{"продаж", "куплю", "продам", "цена", "$", "₫", "доллар"}},
	{DealRent, []string{"аренд", "сдам", "сдаю", "наём", "прокат", "почасово"}},
}

var kidsTags = []tagEntry{
	{KidsEvents, []string{"мероприят", "праздник", "игр", "развлечен", "день рожден", "аниматор", "event", "party", "утренник"}},
	{KidsNannies, []string{"нян", "репетитор", "кружок", "секци", "занят", "урок", "babysitter", "tutor", "обучен"}},
	{KidsSchools, []string{"садик", "школ", "лицей", "гимназ", "образован", "детский сад", "kindergarten", "school", "дошкольн"}},
}

func matchTag(table []tagEntry, explicit, title, description string) string {
	if explicit != "" {
		return explicit
	}
	text := strings.ToLower(title + " " + description)
	for _, entry := range table {
		for _, kw := range entry.Keywords {
			if strings.Contains(text, kw) {
				return entry.Tag
			}
		}
	}
	return ""
}

// DealType tags a transport listing as sale or rent. An explicit tag is
// used verbatim; no keyword hit leaves the listing untagged.
func DealType(explicit, title, description string) string {
	return matchTag(dealTags, explicit, title, description)
}

// KidsType tags a kids listing as events, nannies or schools.
func KidsType(explicit, title, description string) string {
	return matchTag(kidsTags, explicit, title, description)
}

var digitRun = regexp.MustCompile(`\d+`)

// MinAge extracts all integers from a free-text age field and returns the
// smallest, so "5-7 лет" satisfies a max-age filter of 6. ok is false
// when the text carries no number at all.
func MinAge(ageText string) (min int, ok bool) {
	for _, m := range digitRun.FindAllString(ageText, -1) {
		n := 0
		for _, r := range m {
			n = n*10 + int(r-'0')
		}
		if !ok || n < min {
			min, ok = n, true
		}
	}
	return min, ok
}
