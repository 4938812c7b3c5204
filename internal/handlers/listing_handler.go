package handlers

import (
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

type ListingHandler struct {
	Catalog *services.CatalogService
}

func listingFilter(r *http.Request) models.ListingFilter {
	q := r.URL.Query()
	return models.ListingFilter{
		ShowHidden:     q.Get("show_hidden") == "true",
		City:           q.Get("city"),
		KidsType:       q.Get("kids_type"),
		MaxAge:         q.Get("max_age"),
		TransportType:  q.Get("type"),
		Model:          q.Get("model"),
		Year:           q.Get("year"),
		PriceMin:       q.Get("price_min"),
		PriceMax:       q.Get("price_max"),
		RealEstateCity: q.Get("realestate_city"),
		ListingType:    q.Get("listing_type"),
		Sort:           q.Get("sort"),
	}
}

func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}
	category, err := categoryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	items, err := h.Catalog.Listings(r.Context(), country, category, listingFilter(r))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ListingHandler) GetCityCounts(w http.ResponseWriter, r *http.Request) {
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}
	category, err := categoryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	counts, err := h.Catalog.CityCounts(country, category)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *ListingHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	report, err := h.Catalog.Status(country)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
