package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

type BannerHandler struct {
	Banners *services.BannerService
	Admin   *AdminHandler
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	banners, err := h.Banners.Country(country)
	if err != nil {
		serviceError(w, err)
		return
	}
	if banners == nil {
		banners = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"banners": banners})
}

func (h *BannerHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	if !h.Admin.requireAdmin(w, r.FormValue("password")) {
		return
	}
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		writeError(w, http.StatusBadRequest, "banner file required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid banner upload")
		return
	}

	url, err := h.Banners.Upload(country, header.Filename, data)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Country  string `json:"country"`
		URL      string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.Admin.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}

	if err := h.Banners.Delete(country, req.URL); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *BannerHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string   `json:"password"`
		Country  string   `json:"country"`
		Banners  []string `json:"banners"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if !h.Admin.requireAdmin(w, req.Password) {
		return
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return
	}

	if err := h.Banners.Reorder(country, req.Banners); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
