package handlers

import (
	"encoding/json"
	"net/http"

	"goldantelope/internal/services"
)

type VerificationHandler struct {
	Verification *services.VerificationService
}

func (h *VerificationHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := h.Verification.RequestCode(r.Context(), req.Username); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Код отправлен в Telegram",
	})
}

func (h *VerificationHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	token, err := h.Verification.VerifyCode(req.Username, req.Code)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}
