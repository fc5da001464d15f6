package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/wallpaper"
)

type errorResponse struct {
	Error    string `json:"error"`
	KeyReset bool   `json:"keyReset,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, wallpaper.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, wallpaper.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, wallpaper.ErrNoAPIKey), wallpaper.IsInvalidKeyError(err):
		return http.StatusUnauthorized
	case errors.Is(err, wallpaper.ErrImageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// writeError answers with the localized message for err. keyReset tells
// the page to show the key panel again.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, keyReset bool) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{
		Error:    wallpaper.UserMessage(err, h.locale(r)),
		KeyReset: keyReset,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) locale(r *http.Request) wallpaper.Locale {
	if l, ok := wallpaper.LookupLocale(r.URL.Query().Get("lang")); ok {
		return l
	}
	if l, ok := wallpaper.LookupLocale(r.Header.Get("Accept-Language")); ok {
		return l
	}
	return h.opts.DefaultLocale
}
