package oneshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/mock"
	"gogemini-wallpapers/internal/wallpaper"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "ai_wallpaper_rainy_city_1.jpg", FileName("Rainy City", "image/jpeg", 1))
	assert.Equal(t, "ai_wallpaper_dunes_3.png", FileName("dunes", "image/png", 3))
}

func TestRun_WritesFiles(t *testing.T) {
	gen := mock.NewMockGenerator(gomock.NewController(t))
	keys := apikey.NewResolver(nil, "host-key", gen, logger.Nop())
	dir := filepath.Join(t.TempDir(), "out")

	gen.EXPECT().
		GenerateWallpapers(gomock.Any(), "host-key", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req wallpaper.Request) ([]wallpaper.Blob, error) {
			assert.Equal(t, "aurora", req.Prompt)
			assert.Equal(t, 2, req.NumberOfImages)
			return []wallpaper.Blob{
				{Data: []byte("one"), MIMEType: "image/jpeg"},
				{Data: []byte("two"), MIMEType: "image/jpeg"},
			}, nil
		})

	summary, err := Run(context.Background(), gen, keys, wallpaper.Request{NumberOfImages: 2}, " aurora ", dir)
	require.NoError(t, err)
	require.Len(t, summary.Files, 2)
	assert.Equal(t, apikey.SourceHost, summary.Meta.KeySource)
	assert.Equal(t, wallpaper.DefaultModel, summary.Meta.Model)

	data, err := os.ReadFile(filepath.Join(dir, "ai_wallpaper_aurora_2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestRun_Errors(t *testing.T) {
	gen := mock.NewMockGenerator(gomock.NewController(t))

	_, err := Run(context.Background(), gen, apikey.NewResolver(nil, "k", gen, logger.Nop()), wallpaper.Request{}, "", t.TempDir())
	assert.ErrorIs(t, err, wallpaper.ErrEmptyPrompt)

	_, err = Run(context.Background(), gen, apikey.NewResolver(nil, "", gen, logger.Nop()), wallpaper.Request{}, "x", t.TempDir())
	assert.ErrorIs(t, err, wallpaper.ErrNoAPIKey)

	gen.EXPECT().GenerateWallpapers(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err = Run(context.Background(), gen, apikey.NewResolver(nil, "k", gen, logger.Nop()), wallpaper.Request{}, "x", t.TempDir())
	assert.ErrorIs(t, err, wallpaper.ErrNoImages)

	boom := errors.New("boom")
	gen.EXPECT().GenerateWallpapers(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)
	_, err = Run(context.Background(), gen, apikey.NewResolver(nil, "k", gen, logger.Nop()), wallpaper.Request{}, "x", t.TempDir())
	assert.ErrorIs(t, err, boom)
}
