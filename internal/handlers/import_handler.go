package handlers

import (
	"encoding/json"
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

type ImportHandler struct {
	Import *services.ImportService
	Admin  *AdminHandler
}

func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string                  `json:"password"`
		Country  string                  `json:"country"`
		Category string                  `json:"category"`
		Channel  string                  `json:"channel"`
		Messages []models.ChannelMessage `json:"messages"`
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
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		serviceError(w, err)
		return
	}
	if req.Channel == "" {
		writeError(w, http.StatusBadRequest, "channel required")
		return
	}

	result, err := h.Import.Import(r.Context(), country, category, req.Channel, req.Messages)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
