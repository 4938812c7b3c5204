package handlers

import (
	"net"
	"net/http"

	"goldantelope/internal/services"
)

type PresenceHandler struct {
	Service *services.PresenceService
}

// visitorKey identifies a visitor for presence tracking: an explicit
// uid when the frontend sends one, the remote address otherwise.
func visitorKey(r *http.Request) string {
	if uid := r.URL.Query().Get("uid"); uid != "" {
		return uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *PresenceHandler) Ping(w http.ResponseWriter, r *http.Request) {
	online := h.Service.Ping(visitorKey(r))
	writeJSON(w, http.StatusOK, map[string]int{"online": online})
}

func (h *PresenceHandler) Online(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"online": h.Service.Count()})
}
