package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/wallpaper"
)

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type imagesResponse struct {
	Images []wallpaper.Image `json:"images"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

type exportResponse struct {
	URI string `json:"uri"`
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.Studio.Snapshot(h.locale(r)))
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	// a closed browser tab does not abort a generation that already started
	ctx := context.WithoutCancel(r.Context())
	if h.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.RequestTimeout)
		defer cancel()
	}

	images, err := h.services.Studio.Generate(ctx, req.Prompt)
	if err != nil {
		h.writeError(w, r, err, wallpaper.IsInvalidKeyError(err))
		return
	}
	writeJSON(w, http.StatusOK, imagesResponse{Images: images})
}

func (h *Handler) setPrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	h.services.Studio.SetPrompt(req.Prompt)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, imagesResponse{Images: h.services.Studio.Images()})
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.services.Studio.Image(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *Handler) selectImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.services.Studio.Select(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *Handler) closeViewer(w http.ResponseWriter, r *http.Request) {
	h.services.Studio.CloseViewer()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	d, err := h.services.Studio.Download(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	w.Header().Set("Content-Type", d.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(d.Data); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing download")
	}
}

func (h *Handler) remix(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.services.Studio.Remix(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{Prompt: prompt})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	if h.services.Exporter == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "cloud export is not configured"})
		return
	}
	id := chi.URLParam(r, "id")
	d, err := h.services.Studio.Download(id)
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	uri, err := h.services.Exporter.Export(r.Context(), id+"_"+d.FileName, d.MIMEType, d.Data)
	if err != nil {
		h.writeError(w, r, err, false)
		return
	}
	logger.FromRequest(r).Info().Str("uri", uri).Msg("wallpaper exported")
	writeJSON(w, http.StatusOK, exportResponse{URI: uri})
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.opts.Version))
}
