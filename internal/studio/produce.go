package studio

import (
	"context"
	"time"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/picturegen"
	"gogemini-wallpapers/internal/wallpaper"
)

// Batch is the outcome of one generator call.
type Batch struct {
	Blobs     []wallpaper.Blob
	Model     string
	KeySource apikey.Source
	Latency   time.Duration
	// KeyReset is set when the API rejected the key and the stored one was dropped.
	KeyReset bool
}

// Produce resolves a key, runs req through gen and forgets a key the API
// rejected. An empty result is reported as wallpaper.ErrNoImages. Both the
// page and the command line generate through here.
func Produce(ctx context.Context, gen picturegen.Generator, keys KeyResolver, req wallpaper.Request) (Batch, error) {
	log := logger.FromContext(ctx)
	batch := Batch{Model: req.Model}

	key, source, err := keys.Resolve(ctx)
	if err != nil {
		return batch, err
	}
	batch.KeySource = source

	started := time.Now()
	blobs, err := gen.GenerateWallpapers(ctx, key, req)
	batch.Latency = time.Since(started)
	if err != nil {
		log.Error().Err(err).Str("key_source", string(source)).Msg("error generating images")
		reset, clearErr := keys.Invalidate(ctx, err)
		if clearErr != nil {
			log.Error().Err(clearErr).Msg("error clearing rejected api key")
		}
		batch.KeyReset = reset
		return batch, err
	}
	if len(blobs) == 0 {
		return batch, wallpaper.ErrNoImages
	}
	batch.Blobs = blobs

	log.Info().
		Int("images", len(blobs)).
		Str("model", req.Model).
		Dur("latency", batch.Latency).
		Msg("wallpapers generated")
	return batch, nil
}
