// Package oneshot runs a single generation from the command line and
// writes the wallpapers to disk.
package oneshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/picturegen"
	"gogemini-wallpapers/internal/studio"
	"gogemini-wallpapers/internal/wallpaper"
)

type Meta struct {
	Model     string        `json:"model"`
	LatencyMs int64         `json:"latency_ms"`
	KeySource apikey.Source `json:"key_source"`
}

// Summary is printed as JSON once the files are written.
type Summary struct {
	Prompt string   `json:"prompt"`
	Files  []string `json:"files"`
	Meta   Meta     `json:"meta"`
}

// Run generates wallpapers for prompt with the settings in template and
// saves them under outDir as ai_wallpaper_<slug>_<n><ext>, n counting from 1.
func Run(ctx context.Context, gen picturegen.Generator, keys studio.KeyResolver, template wallpaper.Request, prompt, outDir string) (Summary, error) {
	log := logger.FromContext(ctx)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Summary{}, wallpaper.ErrEmptyPrompt
	}

	req := template.WithDefaults()
	req.Prompt = prompt
	batch, err := studio.Produce(ctx, gen, keys, req)
	if err != nil {
		if batch.KeyReset {
			log.Warn().Msg("stored api key was rejected and has been removed")
		}
		return Summary{}, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output dir: %w", err)
	}

	summary := Summary{
		Prompt: prompt,
		Meta:   Meta{Model: batch.Model, LatencyMs: batch.Latency.Milliseconds(), KeySource: batch.KeySource},
	}
	for i, blob := range batch.Blobs {
		path := filepath.Join(outDir, FileName(prompt, blob.MIMEType, i+1))
		if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
			return summary, fmt.Errorf("write %s: %w", path, err)
		}
		summary.Files = append(summary.Files, path)
	}

	log.Info().Int("files", len(summary.Files)).Str("dir", outDir).Msg("wallpapers saved")
	return summary, nil
}

// FileName numbers the browser download name so a batch does not collide.
func FileName(prompt, mimeType string, n int) string {
	name := wallpaper.DownloadFileName(prompt, mimeType)
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}
