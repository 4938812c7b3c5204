package handlers

import (
	"net/http"

	"goldantelope/internal/services"
)

type CaptchaHandler struct {
	Service *services.CaptchaService
}

func (h *CaptchaHandler) GetCaptcha(w http.ResponseWriter, r *http.Request) {
	question, token := h.Service.Issue()
	writeJSON(w, http.StatusOK, map[string]string{
		"question": question,
		"token":    token,
	})
}
