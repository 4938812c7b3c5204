package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

type AdminHandler struct {
	Catalog    *services.CatalogService
	Moderation *services.ModerationService
	AdminKey   string
}

// authorized checks the admin password carried in the request body or
// query. Comparison is constant time; an unconfigured key locks the
// admin surface entirely.
func (h *AdminHandler) authorized(password string) bool {
	if h.AdminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.AdminKey)) == 1
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, password string) bool {
	if !h.authorized(password) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

func (h *AdminHandler) Auth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r.URL.Query().Get("password")) {
		return
	}
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	pending, err := h.Moderation.Pending(country)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pending": pending,
		"count":   len(pending),
	})
}

func (h *AdminHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Country  string `json:"country"`
		ID       string `json:"id"`
		Action   string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}

	switch req.Action {
	case "approve":
		listing, err := h.Moderation.Approve(r.Context(), country, req.ID)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"listing": listing,
		})
	case "reject":
		if err := h.Moderation.Reject(r.Context(), country, req.ID); err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

type adminListingRequest struct {
	Password string `json:"password"`
	Country  string `json:"country"`
	Category string `json:"category"`
	ID       string `json:"id"`
}

func (r adminListingRequest) resolve() (models.Country, models.Category, error) {
	country, err := models.ParseCountry(r.Country)
	if err != nil {
		return "", "", err
	}
	category, err := models.ParseCategory(r.Category)
	if err != nil {
		return "", "", err
	}
	return country, category, nil
}

func (h *AdminHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	var req adminListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, category, err := req.resolve()
	if err != nil {
		serviceError(w, err)
		return
	}

	if err := h.Catalog.DeleteListing(country, category, req.ID); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) MoveListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password     string `json:"password"`
		Country      string `json:"country"`
		FromCategory string `json:"from_category"`
		ToCategory   string `json:"to_category"`
		ID           string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}
	from, err := models.ParseCategory(req.FromCategory)
	if err != nil {
		serviceError(w, err)
		return
	}
	to, err := models.ParseCategory(req.ToCategory)
	if err != nil {
		serviceError(w, err)
		return
	}

	if err := h.Catalog.MoveListing(country, from, to, req.ID); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	var req adminListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, category, err := req.resolve()
	if err != nil {
		serviceError(w, err)
		return
	}

	hidden, err := h.Catalog.ToggleVisibility(country, category, req.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"hidden":  hidden,
	})
}

func (h *AdminHandler) BulkHide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password    string `json:"password"`
		Country     string `json:"country"`
		Category    string `json:"category"`
		ContactName string `json:"contact_name"`
		Hide        bool   `json:"hide"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}
	var category models.Category
	if req.Category != "" {
		category, err = models.ParseCategory(req.Category)
		if err != nil {
			serviceError(w, err)
			return
		}
	}

	changed, err := h.Catalog.BulkHide(country, category, req.ContactName, req.Hide)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"changed": changed,
	})
}

func (h *AdminHandler) EditListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		adminListingRequest
		Updates models.ListingUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, category, err := req.resolve()
	if err != nil {
		serviceError(w, err)
		return
	}

	listing, err := h.Catalog.EditListing(country, category, req.ID, req.Updates)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"listing": listing,
	})
}

func (h *AdminHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r.URL.Query().Get("password")) {
		return
	}
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}
	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		serviceError(w, err)
		return
	}

	listing, err := h.Catalog.GetListing(r.Context(), country, category, r.URL.Query().Get("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *AdminHandler) AddListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string         `json:"password"`
		Country  string         `json:"country"`
		Category string         `json:"category"`
		Listing  models.Listing `json:"listing"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		serviceError(w, err)
		return
	}

	listing, err := h.Catalog.AddListing(country, category, req.Listing)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"listing": listing,
	})
}
