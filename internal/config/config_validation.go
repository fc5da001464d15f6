package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	allowedAspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}
	allowedMIMETypes    = []string{"image/jpeg", "image/png"}
)

func (cfg *StructuredConfig) validate() error {
	g := cfg.Gemini
	if g.NumberOfImages < 0 || g.NumberOfImages > 4 {
		return fmt.Errorf("%w: number of images must be between 1 and 4, got %d", ErrInvalidConfig, g.NumberOfImages)
	}
	if g.AspectRatio != "" && !slices.Contains(allowedAspectRatios, g.AspectRatio) {
		return fmt.Errorf("%w: unsupported aspect ratio %q", ErrInvalidConfig, g.AspectRatio)
	}
	if g.OutputMIMEType != "" && !slices.Contains(allowedMIMETypes, g.OutputMIMEType) {
		return fmt.Errorf("%w: unsupported output mime type %q", ErrInvalidConfig, g.OutputMIMEType)
	}
	if g.VertexAI && g.Project == "" {
		return fmt.Errorf("%w: vertex ai needs GEMINI_PROJECT", ErrInvalidConfig)
	}
	switch strings.ToLower(cfg.App.Locale) {
	case "ko", "en":
	default:
		return fmt.Errorf("%w: unsupported locale %q", ErrInvalidConfig, cfg.App.Locale)
	}
	if cfg.Export.Bucket != "" && cfg.Export.CredentialsFile == "" {
		return fmt.Errorf("%w: export bucket set without credentials file", ErrInvalidConfig)
	}
	return nil
}
