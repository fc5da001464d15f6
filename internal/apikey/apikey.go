// Package apikey decides which Gemini API key a request uses: a key the
// user entered and saved locally wins over one injected by the host
// environment. Keys that the API rejects are forgotten so the user is
// asked again.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gogemini-wallpapers/internal/keystore"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/wallpaper"
)

const storeKey = "gemini_api_key"

type Source string

const (
	SourceNone   Source = ""
	SourceStored Source = "stored"
	SourceHost   Source = "host"
)

// Prober checks a key against the upstream API.
type Prober interface {
	TestKey(ctx context.Context, apiKey string) error
}

// Status describes the key state without exposing the key itself.
type Status struct {
	HasStoredKey bool   `json:"hasStoredKey"`
	HasHostKey   bool   `json:"hasHostKey"`
	Source       Source `json:"source"`
	Masked       string `json:"masked,omitempty"`
}

type Resolver struct {
	store   keystore.Store
	hostKey string
	prober  Prober
	logger  *logger.Logger
}

// NewResolver takes the host key already read from the environment. store
// may be nil when no local storage is configured.
func NewResolver(store keystore.Store, hostKey string, prober Prober, log *logger.Logger) *Resolver {
	return &Resolver{
		store:   store,
		hostKey: strings.TrimSpace(hostKey),
		prober:  prober,
		logger:  log,
	}
}

// Resolve returns the key to use and where it came from.
func (r *Resolver) Resolve(ctx context.Context) (string, Source, error) {
	stored, err := r.stored(ctx)
	if err != nil {
		return "", SourceNone, err
	}
	if stored != "" {
		return stored, SourceStored, nil
	}
	if r.hostKey != "" {
		return r.hostKey, SourceHost, nil
	}
	return "", SourceNone, wallpaper.ErrNoAPIKey
}

func (r *Resolver) stored(ctx context.Context) (string, error) {
	if r.store == nil {
		return "", nil
	}
	key, err := r.store.Get(ctx, storeKey)
	if errors.Is(err, keystore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read stored api key: %w", err)
	}
	return strings.TrimSpace(key), nil
}

// Save probes key and persists it only when the API accepts it. A rejected
// key also clears whatever key was stored before.
func (r *Resolver) Save(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return wallpaper.ErrNoAPIKey
	}
	if r.store == nil {
		return errors.New("local key storage is not configured")
	}

	if err := r.prober.TestKey(ctx, key); err != nil {
		r.logger.Warn().Err(err).Msg("manually entered api key failed validation")
		if wallpaper.IsInvalidKeyError(err) {
			if clearErr := r.Clear(ctx); clearErr != nil {
				return errors.Join(err, clearErr)
			}
		}
		return err
	}

	if err := r.store.Set(ctx, storeKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	r.logger.Info().Str("key", Mask(key)).Msg("api key saved")
	return nil
}

// Validate probes the currently resolved key.
func (r *Resolver) Validate(ctx context.Context) (Source, error) {
	key, source, err := r.Resolve(ctx)
	if err != nil {
		return source, err
	}
	if err := r.prober.TestKey(ctx, key); err != nil {
		if _, clearErr := r.Invalidate(ctx, err); clearErr != nil {
			return source, errors.Join(err, clearErr)
		}
		return source, err
	}
	return source, nil
}

// Invalidate forgets the stored key when cause says the key was rejected.
// It reports whether cause was a key error.
func (r *Resolver) Invalidate(ctx context.Context, cause error) (bool, error) {
	if !wallpaper.IsInvalidKeyError(cause) {
		return false, nil
	}
	r.logger.Warn().Err(cause).Msg("api key rejected, resetting key state")
	return true, r.Clear(ctx)
}

func (r *Resolver) Clear(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Delete(ctx, storeKey); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}

func (r *Resolver) Status(ctx context.Context) (Status, error) {
	stored, err := r.stored(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{HasStoredKey: stored != "", HasHostKey: r.hostKey != ""}
	switch {
	case st.HasStoredKey:
		st.Source, st.Masked = SourceStored, Mask(stored)
	case st.HasHostKey:
		st.Source, st.Masked = SourceHost, Mask(r.hostKey)
	}
	return st, nil
}

// Mask keeps the last four characters.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
