package models

// Category is one of the twelve fixed catalog sections.
type Category string

const (
	CategoryRestaurants   Category = "restaurants"
	CategoryTours         Category = "tours"
	CategoryTransport     Category = "transport"
	CategoryRealEstate    Category = "real_estate"
	CategoryMoneyExchange Category = "money_exchange"
	CategoryEntertainment Category = "entertainment"
	CategoryMarketplace   Category = "marketplace"
	CategoryVisas         Category = "visas"
	CategoryNews          Category = "news"
	CategoryMedicine      Category = "medicine"
	CategoryKids          Category = "kids"
	CategoryChat          Category = "chat"
)

// CategoryKeys is the canonical key set in fixed order. Every country
// catalog has exactly these keys, even when empty.
var CategoryKeys = []Category{
	CategoryRestaurants,
	CategoryTours,
	CategoryTransport,
	CategoryRealEstate,
	CategoryMoneyExchange,
	CategoryEntertainment,
	CategoryMarketplace,
	CategoryVisas,
	CategoryNews,
	CategoryMedicine,
	CategoryKids,
	CategoryChat,
}

// requestCategoryAliases maps historical request-path spellings onto
// canonical categories. The admin page aliases exist because the old
// frontend reused the listings endpoint for its service tabs.
var requestCategoryAliases = map[string]Category{
	"exchange":       CategoryMoneyExchange,
	"money_exchange": CategoryMoneyExchange,
	"bikes":          CategoryTransport,
	"realestate":     CategoryRealEstate,
	"admin":          CategoryRestaurants,
	"settings":       CategoryRestaurants,
	"stats":          CategoryRestaurants,
}

// legacyCategoryAliases buckets items of legacy flat-list catalog files.
var legacyCategoryAliases = map[string]Category{
	"bikes":          CategoryTransport,
	"real_estate":    CategoryRealEstate,
	"exchange":       CategoryMoneyExchange,
	"money_exchange": CategoryMoneyExchange,
	"food":           CategoryRestaurants,
}

// ParseCategory resolves a request value (including aliases) to a
// canonical category.
func ParseCategory(raw string) (Category, error) {
	if alias, ok := requestCategoryAliases[raw]; ok {
		return alias, nil
	}
	for _, c := range CategoryKeys {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// LegacyCategory buckets a category tag found on a legacy flat-list item.
// Unknown tags land in chat so no item is ever dropped on migration.
func LegacyCategory(raw string) Category {
	if alias, ok := legacyCategoryAliases[raw]; ok {
		return alias
	}
	for _, c := range CategoryKeys {
		if string(c) == raw {
			return c
		}
	}
	return CategoryChat
}
