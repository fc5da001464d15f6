// Package studio holds the state behind the wallpaper page: the prompt,
// the current grid of images, the loading flag and the open viewer.
// Only one generation may be in flight at a time.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/picturegen"
	"gogemini-wallpapers/internal/wallpaper"
)

// KeyResolver is the part of apikey.Resolver the studio needs.
type KeyResolver interface {
	Resolve(ctx context.Context) (string, apikey.Source, error)
	Invalidate(ctx context.Context, cause error) (bool, error)
}

type Snapshot struct {
	Prompt   string            `json:"prompt"`
	Images   []wallpaper.Image `json:"images"`
	Loading  bool              `json:"loading"`
	Error    string            `json:"error,omitempty"`
	KeyReset bool              `json:"keyReset,omitempty"`
	Selected *wallpaper.Image  `json:"selected,omitempty"`
}

type Studio struct {
	generator picturegen.Generator
	keys      KeyResolver
	template  wallpaper.Request
	now       func() time.Time
	logger    *logger.Logger

	mu       sync.RWMutex
	prompt   string
	images   []wallpaper.Image
	loading  bool
	lastErr  error
	keyReset bool
	selected string
}

// New starts with the default prompt and an empty grid. template supplies
// model, count, format and aspect ratio for every generation.
func New(generator picturegen.Generator, keys KeyResolver, template wallpaper.Request, log *logger.Logger) *Studio {
	return &Studio{
		generator: generator,
		keys:      keys,
		template:  template.WithDefaults(),
		now:       time.Now,
		logger:    log,
		prompt:    wallpaper.DefaultPrompt,
	}
}

// Generate replaces the grid with a fresh batch for prompt. The previous
// images and error are dropped before the call is made.
func (s *Studio) Generate(ctx context.Context, prompt string) ([]wallpaper.Image, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, wallpaper.ErrEmptyPrompt
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, wallpaper.ErrBusy
	}
	s.loading = true
	s.prompt = prompt
	s.images = nil
	s.lastErr = nil
	s.keyReset = false
	s.selected = ""
	s.mu.Unlock()

	req := s.template
	req.Prompt = prompt
	batch, err := Produce(logger.WithFallback(ctx, s.logger), s.generator, s.keys, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.keyReset = batch.KeyReset
		return nil, err
	}
	s.images = wallpaper.NewImages(prompt, batch.Blobs, s.now())
	return append([]wallpaper.Image(nil), s.images...), nil
}

// KeyAccepted drops the key reset flag and any key related error once a
// working key is in place.
func (s *Studio) KeyAccepted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyReset = false
	if errors.Is(s.lastErr, wallpaper.ErrNoAPIKey) || wallpaper.IsInvalidKeyError(s.lastErr) {
		s.lastErr = nil
	}
}

func (s *Studio) Images() []wallpaper.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wallpaper.Image(nil), s.images...)
}

func (s *Studio) Image(id string) (wallpaper.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(id)
}

func (s *Studio) find(id string) (wallpaper.Image, error) {
	for _, img := range s.images {
		if img.ID == id {
			return img, nil
		}
	}
	return wallpaper.Image{}, wallpaper.ErrImageNotFound
}

// Select opens the full screen viewer on id.
func (s *Studio) Select(id string) (wallpaper.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, err := s.find(id)
	if err != nil {
		return wallpaper.Image{}, err
	}
	s.selected = id
	return img, nil
}

func (s *Studio) CloseViewer() {
	s.mu.Lock()
	s.selected = ""
	s.mu.Unlock()
}

// Remix copies the prompt of image id back into the prompt box and closes
// the viewer. The grid is left as is until the next Generate.
func (s *Studio) Remix(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, err := s.find(id)
	if err != nil {
		return "", err
	}
	s.prompt = img.Prompt
	s.selected = ""
	return img.Prompt, nil
}

// SetPrompt records what is typed into the prompt box.
func (s *Studio) SetPrompt(prompt string) {
	s.mu.Lock()
	s.prompt = prompt
	s.mu.Unlock()
}

// Download is the decoded image plus the file name it should be saved as.
type Download struct {
	Data     []byte
	MIMEType string
	FileName string
}

func (s *Studio) Download(id string) (Download, error) {
	img, err := s.Image(id)
	if err != nil {
		return Download{}, err
	}
	mime, data, err := wallpaper.DecodeDataURL(img.URL)
	if err != nil {
		return Download{}, err
	}
	return Download{Data: data, MIMEType: mime, FileName: wallpaper.DownloadFileName(img.Prompt, mime)}, nil
}

// Snapshot renders the state for the page with errors already localized.
func (s *Studio) Snapshot(locale wallpaper.Locale) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Prompt:   s.prompt,
		Images:   append([]wallpaper.Image{}, s.images...),
		Loading:  s.loading,
		Error:    wallpaper.UserMessage(s.lastErr, locale),
		KeyReset: s.keyReset,
	}
	if s.selected != "" {
		if img, err := s.find(s.selected); err == nil {
			snap.Selected = &img
		}
	}
	return snap
}
