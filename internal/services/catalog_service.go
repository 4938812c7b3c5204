package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"goldantelope/internal/models"
	"goldantelope/internal/normalize"
	"goldantelope/internal/repositories"
)

// PhotoResolver resolves a stored photo handle into a fetchable URL.
// Resolution happens on the read path only; resolved URLs are never
// written back because they expire.
type PhotoResolver interface {
	PhotoURL(ctx context.Context, fileID string) (string, error)
}

// CatalogService is the read and admin surface over the per-country
// catalogs.
type CatalogService struct {
	CatalogRepo  *repositories.CatalogRepository
	ChannelsRepo *repositories.ChannelsRepository
	Relay        PhotoResolver
	ErrorLog     *log.Logger
}

// statusOnline is the advertised per-country online figure on the
// status endpoint, independent of live presence tracking.
var statusOnline = map[models.Country]int{
	models.CountryVietnam:   342,
	models.CountryThailand:  198,
	models.CountryIndia:     156,
	models.CountryIndonesia: 124,
}

// loadTolerant loads a catalog for the read path: a corrupt file is
// logged and served as the empty default instead of failing the
// request.
func (s *CatalogService) loadTolerant(country models.Country) models.Catalog {
	catalog, err := s.CatalogRepo.Load(country)
	if err != nil {
		s.ErrorLog.Printf("catalog load %s: %v", country, err)
	}
	return catalog
}

// loadStrict loads a catalog for a mutating path: a corrupt file is an
// error, because saving the empty default over it would destroy data.
func (s *CatalogService) loadStrict(country models.Country) (models.Catalog, error) {
	catalog, err := s.CatalogRepo.Load(country)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Listings returns the listings of one category after filtering,
// sorting, and photo URL refresh.
func (s *CatalogService) Listings(ctx context.Context, country models.Country, category models.Category, filter models.ListingFilter) ([]models.Listing, error) {
	catalog := s.loadTolerant(country)
	items := filterListings(category, catalog[category], filter)
	sortListings(items, filter.Sort)
	s.refreshPhotoURLs(ctx, items)
	return items, nil
}

// CityCounts returns per-canonical-city listing counts for a category.
// Only visible listings count, and only cities from the canonical table
// appear as keys.
func (s *CatalogService) CityCounts(country models.Country, category models.Category) (map[string]int, error) {
	catalog := s.loadTolerant(country)

	counts := make(map[string]int)
	for _, name := range normalize.CanonicalCities() {
		counts[name] = 0
	}
	for _, item := range catalog[category] {
		if item.Hidden {
			continue
		}
		city := normalize.ResolveCity(item.City, item.Title, item.Description)
		if _, ok := counts[city]; ok {
			counts[city]++
		}
	}
	return counts, nil
}

// Status reports catalog totals for a country.
func (s *CatalogService) Status(country models.Country) (models.StatusReport, error) {
	catalog := s.loadTolerant(country)

	report := models.StatusReport{
		ParserStatus: "running",
		Categories:   make(map[models.Category]int, len(models.CategoryKeys)),
		LastUpdate:   time.Now().Format(time.RFC3339),
		Country:      country,
		OnlineCount:  statusOnline[country],
	}
	for _, key := range models.CategoryKeys {
		n := len(catalog[key])
		report.Categories[key] = n
		report.TotalItems += n
	}
	report.TotalListings = report.TotalItems

	if s.ChannelsRepo != nil {
		if channels, err := s.ChannelsRepo.Load(country); err == nil {
			for _, list := range channels {
				report.ChannelsActive += len(list)
			}
		}
	}
	return report, nil
}

// AddListing appends a listing directly to the public catalog,
// bypassing moderation. Admin only.
func (s *CatalogService) AddListing(country models.Country, category models.Category, listing models.Listing) (models.Listing, error) {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return models.Listing{}, err
	}

	now := time.Now()
	if listing.ID == "" {
		listing.ID = string(country) + "_" + string(category) + "_" + strconv.FormatInt(now.Unix(), 10)
	}
	listing.Category = category
	if listing.AddedAt == "" {
		listing.AddedAt = now.Format(time.RFC3339)
	}
	if listing.Date == "" {
		listing.Date = now.Format("2006-01-02")
	}

	catalog[category] = append(catalog[category], listing)
	if err := s.CatalogRepo.Save(country, catalog); err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

// DeleteListing removes a listing by id.
func (s *CatalogService) DeleteListing(country models.Country, category models.Category, id string) error {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return err
	}

	items := catalog[category]
	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return models.ErrListingNotFound
	}
	catalog[category] = kept
	return s.CatalogRepo.Save(country, catalog)
}

// MoveListing relocates a listing between categories. The listing keeps
// its id and photo handle; it lands at the head of the target category.
func (s *CatalogService) MoveListing(country models.Country, from, to models.Category, id string) error {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return err
	}

	items := catalog[from]
	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ErrListingNotFound
	}

	moved := items[idx]
	catalog[from] = append(items[:idx], items[idx+1:]...)
	moved.Category = to
	catalog[to] = append([]models.Listing{moved}, catalog[to]...)
	return s.CatalogRepo.Save(country, catalog)
}

// ToggleVisibility flips the hidden flag of a listing and returns the
// new value.
func (s *CatalogService) ToggleVisibility(country models.Country, category models.Category, id string) (bool, error) {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return false, err
	}

	items := catalog[category]
	for i := range items {
		if items[i].ID == id {
			items[i].Hidden = !items[i].Hidden
			if err := s.CatalogRepo.Save(country, catalog); err != nil {
				return false, err
			}
			return items[i].Hidden, nil
		}
	}
	return false, models.ErrListingNotFound
}

// BulkHide sets the hidden flag on every listing whose contact name
// matches. An empty category applies across the whole catalog. Returns
// the number of listings changed.
func (s *CatalogService) BulkHide(country models.Country, category models.Category, contactName string, hide bool) (int, error) {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return 0, err
	}

	target := strings.ToLower(strings.TrimSpace(contactName))
	if target == "" {
		return 0, models.ErrValidation
	}

	keys := models.CategoryKeys
	if category != "" {
		keys = []models.Category{category}
	}

	changed := 0
	for _, key := range keys {
		items := catalog[key]
		for i := range items {
			if strings.ToLower(strings.TrimSpace(items[i].ContactName)) != target {
				continue
			}
			if items[i].Hidden != hide {
				items[i].Hidden = hide
				changed++
			}
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.CatalogRepo.Save(country, catalog)
}

// EditListing applies the whitelisted field updates to a listing.
func (s *CatalogService) EditListing(country models.Country, category models.Category, id string, update models.ListingUpdate) (models.Listing, error) {
	catalog, err := s.loadStrict(country)
	if err != nil {
		return models.Listing{}, err
	}

	items := catalog[category]
	for i := range items {
		if items[i].ID != id {
			continue
		}
		applyUpdate(&items[i], update)
		if err := s.CatalogRepo.Save(country, catalog); err != nil {
			return models.Listing{}, err
		}
		return items[i], nil
	}
	return models.Listing{}, models.ErrListingNotFound
}

// GetListing returns a single listing by id, with its photo URL
// refreshed.
func (s *CatalogService) GetListing(ctx context.Context, country models.Country, category models.Category, id string) (models.Listing, error) {
	catalog := s.loadTolerant(country)
	for _, item := range catalog[category] {
		if item.ID == id {
			found := []models.Listing{item}
			s.refreshPhotoURLs(ctx, found)
			return found[0], nil
		}
	}
	return models.Listing{}, models.ErrListingNotFound
}

func applyUpdate(l *models.Listing, u models.ListingUpdate) {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Price != nil {
		l.Price = &models.PriceValue{Raw: *u.Price}
	}
	if u.Rooms != nil {
		l.Rooms = models.FlexString(*u.Rooms)
	}
	if u.Area != nil {
		if area, err := strconv.ParseFloat(*u.Area, 64); err == nil {
			l.Area = &area
		}
	}
	if u.Date != nil {
		l.Date = *u.Date
	}
	if u.City != nil {
		l.City = *u.City
	}
	if u.Location != nil {
		l.Location = *u.Location
	}
	if u.ContactName != nil {
		l.ContactName = *u.ContactName
	}
	if u.Whatsapp != nil {
		l.Whatsapp = *u.Whatsapp
	}
	if u.Telegram != nil {
		l.Telegram = *u.Telegram
	}
	if u.ListingType != nil {
		l.ListingType = *u.ListingType
	}
	if u.GoogleMaps != nil {
		l.GoogleMaps = *u.GoogleMaps
	}
	if u.GoogleRating != nil {
		l.GoogleRating = models.FlexString(*u.GoogleRating)
	}
	if u.Kitchen != nil {
		l.Kitchen = *u.Kitchen
	}
	if u.RestaurantType != nil {
		l.RestaurantType = *u.RestaurantType
	}
	if u.PriceCategory != nil {
		l.PriceCategory = *u.PriceCategory
	}
	if u.Hidden != nil {
		l.Hidden = *u.Hidden
	}
}

// refreshPhotoURLs swaps stored photo handles for fresh fetchable URLs
// on the returned copies. Failures leave the stale URL in place.
func (s *CatalogService) refreshPhotoURLs(ctx context.Context, items []models.Listing) {
	if s.Relay == nil {
		return
	}
	for i := range items {
		if items[i].TelegramFileID == "" {
			continue
		}
		url, err := s.Relay.PhotoURL(ctx, items[i].TelegramFileID)
		if err != nil {
			if !errors.Is(err, models.ErrRelayUnavailable) {
				s.ErrorLog.Printf("photo refresh %s: %v", items[i].ID, err)
			}
			continue
		}
		items[i].ImageURL = url
	}
}

// filterListings applies the per-category filter pipeline. The input
// slice is never mutated.
func filterListings(category models.Category, items []models.Listing, filter models.ListingFilter) []models.Listing {
	out := make([]models.Listing, 0, len(items))
	for _, item := range items {
		if item.Hidden && !filter.ShowHidden {
			continue
		}
		out = append(out, item)
	}

	switch category {
	case models.CategoryRestaurants, models.CategoryTours, models.CategoryEntertainment:
		out = filterByCityExact(out, filter.City)
	case models.CategoryKids:
		out = filterKids(out, filter)
	case models.CategoryTransport:
		out = filterTransport(out, filter)
	case models.CategoryRealEstate:
		out = filterRealEstate(out, filter)
	}
	return out
}

// filterByCityExact keeps listings whose city or location field matches
// any known spelling of the requested canonical city.
func filterByCityExact(items []models.Listing, city string) []models.Listing {
	if city == "" {
		return items
	}
	targets := normalize.CityTargets(city)

	out := items[:0]
	for _, item := range items {
		itemCity := strings.ToLower(strings.TrimSpace(item.City))
		itemLoc := strings.ToLower(strings.TrimSpace(item.Location))
		for _, t := range targets {
			if itemCity == t || itemLoc == t {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func filterKids(items []models.Listing, filter models.ListingFilter) []models.Listing {
	if kt := filter.KidsType; kt != "" {
		byField := make([]models.Listing, 0, len(items))
		for _, item := range items {
			if item.KidsType == kt {
				byField = append(byField, item)
			}
		}
		if len(byField) > 0 {
			items = byField
		} else {
			// no tagged entries; fall back to the keyword heuristic
			byTag := make([]models.Listing, 0, len(items))
			for _, item := range items {
				if normalize.KidsType("", item.Title, item.Description) == kt {
					byTag = append(byTag, item)
				}
			}
			items = byTag
		}
	}

	if filter.City != "" {
		targets := normalize.CityTargets(filter.City)
		out := items[:0]
		for _, item := range items {
			if containsAnyTarget(item.City, targets) {
				out = append(out, item)
			}
		}
		items = out
	}

	if filter.MaxAge != "" {
		if max, err := strconv.Atoi(filter.MaxAge); err == nil {
			out := items[:0]
			for _, item := range items {
				min, ok := normalize.MinAge(string(item.Age))
				if !ok || min <= max {
					out = append(out, item)
				}
			}
			items = out
		}
	}
	return items
}

func filterTransport(items []models.Listing, filter models.ListingFilter) []models.Listing {
	if filter.City != "" {
		targets := normalize.CityTargets(filter.City)
		out := items[:0]
		for _, item := range items {
			if containsAnyTarget(item.City, targets) ||
				containsAnyTarget(item.Location, targets) ||
				containsAnyTarget(item.Description, targets) {
				out = append(out, item)
			}
		}
		items = out
	}

	if t := filter.TransportType; t == normalize.DealSale || t == normalize.DealRent {
		out := items[:0]
		for _, item := range items {
			explicit := ""
			if item.ListingType == normalize.DealSale || item.ListingType == normalize.DealRent {
				explicit = item.ListingType
			}
			if normalize.DealType(explicit, item.Title, item.Description) == t {
				out = append(out, item)
			}
		}
		items = out
	}

	if m := strings.ToLower(strings.TrimSpace(filter.Model)); m != "" {
		out := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Model), m) {
				out = append(out, item)
			}
		}
		items = out
	}

	if y := strings.TrimSpace(filter.Year); y != "" {
		out := items[:0]
		for _, item := range items {
			if string(item.Year) == y {
				out = append(out, item)
			}
		}
		items = out
	}

	if filter.PriceMin != "" && filter.PriceMax != "" {
		min, errMin := strconv.Atoi(filter.PriceMin)
		max, errMax := strconv.Atoi(filter.PriceMax)
		if errMin == nil && errMax == nil {
			out := items[:0]
			for _, item := range items {
				price := normalize.ListingPrice(item)
				if price > 0 && price >= min && price <= max {
					out = append(out, item)
				}
			}
			items = out
		}
	}
	return items
}

func filterRealEstate(items []models.Listing, filter models.ListingFilter) []models.Listing {
	if city := strings.ToLower(strings.TrimSpace(filter.RealEstateCity)); city != "" {
		out := items[:0]
		for _, item := range items {
			itemCity := strings.ToLower(strings.TrimSpace(item.City))
			if itemCity == "" {
				itemCity = "nhatrang"
			}
			if itemCity == city {
				out = append(out, item)
			}
		}
		items = out
	}

	if t := strings.TrimSpace(filter.ListingType); t != "" {
		out := items[:0]
		for _, item := range items {
			if strings.Contains(item.ListingType, t) {
				out = append(out, item)
			}
		}
		items = out
	}

	if filter.PriceMax != "" {
		if max, err := strconv.Atoi(filter.PriceMax); err == nil {
			out := items[:0]
			for _, item := range items {
				price := normalize.ListingPrice(item)
				if price > 0 && price <= max {
					out = append(out, item)
				}
			}
			items = out
		}
	}
	return items
}

func containsAnyTarget(field string, targets []string) bool {
	value := strings.ToLower(field)
	for _, t := range targets {
		if strings.Contains(value, t) {
			return true
		}
	}
	return false
}

// sortListings orders listings newest first by default, or by extracted
// price when requested. Price sorts push zero-price listings last
// regardless of direction.
func sortListings(items []models.Listing, order string) {
	switch order {
	case "price_asc":
		sort.SliceStable(items, func(i, j int) bool {
			return priceSortKey(items[i]) < priceSortKey(items[j])
		})
	case "price_desc":
		sort.SliceStable(items, func(i, j int) bool {
			pi, pj := normalize.ListingPrice(items[i]), normalize.ListingPrice(items[j])
			if pi == 0 || pj == 0 {
				return pj == 0 && pi != 0
			}
			return pi > pj
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortKey() > items[j].SortKey()
		})
	}
}

func priceSortKey(l models.Listing) int {
	price := normalize.ListingPrice(l)
	if price == 0 {
		// unknown price sorts last
		return int(^uint(0) >> 1)
	}
	return price
}
