// Package handler serves the wallpaper page and its JSON API.
package handler

import (
	"context"
	"time"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/studio"
	"gogemini-wallpapers/internal/wallpaper"
)

// Exporter uploads a finished wallpaper somewhere durable.
type Exporter interface {
	Export(ctx context.Context, name, mimeType string, data []byte) (string, error)
}

type Services struct {
	Studio *studio.Studio
	Keys   *apikey.Resolver
	// Exporter is nil when cloud export is not configured.
	Exporter Exporter
}

type Options struct {
	Version        string
	DefaultLocale  wallpaper.Locale
	RequestTimeout time.Duration
}

type Handler struct {
	services Services
	opts     Options
	logger   *logger.Logger
}

func NewHandler(services Services, opts Options, log *logger.Logger) *Handler {
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = wallpaper.LocaleKO
	}
	log.Info().Msg("http handler created")
	return &Handler{services: services, opts: opts, logger: log}
}
