package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/wallpaper"
)

type keyRequest struct {
	Key string `json:"key"`
}

type keyValidationResponse struct {
	Valid  bool          `json:"valid"`
	Source apikey.Source `json:"source"`
}

func (h *Handler) keyStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.services.Keys.Status(r.Context())
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) saveKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := h.services.Keys.Save(r.Context(), req.Key); err != nil {
		h.writeError(w, r, err, wallpaper.IsInvalidKeyError(err))
		return
	}
	h.services.Studio.KeyAccepted()
	h.keyStatus(w, r)
}

func (h *Handler) validateKey(w http.ResponseWriter, r *http.Request) {
	source, err := h.services.Keys.Validate(r.Context())
	if err != nil {
		h.writeError(w, r, err, wallpaper.IsInvalidKeyError(err))
		return
	}
	h.services.Studio.KeyAccepted()
	writeJSON(w, http.StatusOK, keyValidationResponse{Valid: true, Source: source})
}

func (h *Handler) clearKey(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Keys.Clear(r.Context()); err != nil {
		h.writeError(w, r, err, false)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
