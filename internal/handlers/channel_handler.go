package handlers

import (
	"encoding/json"
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

type ChannelHandler struct {
	Channels *services.ChannelService
	Admin    *AdminHandler
}

func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.Admin.requireAdmin(w, r.URL.Query().Get("password")) {
		return
	}
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}

	channels, err := h.Channels.List(country)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"channels": channels})
}

type channelRequest struct {
	Password string `json:"password"`
	Country  string `json:"country"`
	Category string `json:"category"`
	Channel  string `json:"channel"`
}

func (h *ChannelHandler) decode(w http.ResponseWriter, r *http.Request) (channelRequest, models.Country, models.Category, bool) {
	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return req, "", "", false
	}
	if !h.Admin.requireAdmin(w, req.Password) {
		return req, "", "", false
	}
	country, err := models.ParseCountry(req.Country)
	if err != nil {
		serviceError(w, err)
		return req, "", "", false
	}
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		serviceError(w, err)
		return req, "", "", false
	}
	return req, country, category, true
}

func (h *ChannelHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, country, category, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.Channels.Add(country, category, req.Channel); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ChannelHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, country, category, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.Channels.Remove(country, category, req.Channel); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
