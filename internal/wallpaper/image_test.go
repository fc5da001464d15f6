package wallpaper

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImages(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	blobs := []Blob{
		{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"},
		{Data: []byte{0x89, 'P'}},
	}

	images := NewImages("rainy city", blobs, now)

	require.Len(t, images, 2)
	assert.Equal(t, "1700000000123-0", images[0].ID)
	assert.Equal(t, "1700000000123-1", images[1].ID)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", images[0].URL)
	assert.True(t, strings.HasPrefix(images[1].URL, "data:image/jpeg;base64,"))
	for _, img := range images {
		assert.Equal(t, "rainy city", img.Prompt)
	}
}

func TestNewImages_Empty(t *testing.T) {
	assert.Empty(t, NewImages("x", nil, time.Now()))
}

func TestDecodeDataURL(t *testing.T) {
	mime, data, err := DecodeDataURL(DataURL("image/png", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte("hello"), data)

	tests := []struct {
		name string
		url  string
	}{
		{name: "no prefix", url: "https://example.com/a.jpg"},
		{name: "no comma", url: "data:image/png;base64"},
		{name: "not base64", url: "data:text/plain,hello"},
		{name: "bad payload", url: "data:image/png;base64,@@@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeDataURL(tt.url)
			assert.Error(t, err)
		})
	}
}

func TestDownloadFileName(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		mime   string
		want   string
	}{
		{name: "simple", prompt: "Starry Night", mime: "image/jpeg", want: "ai_wallpaper_starry_night.jpg"},
		{name: "truncated", prompt: "a forest under a starry night sky with fireflies", mime: "image/jpeg", want: "ai_wallpaper_a_forest_under_a_starry_night_.jpg"},
		{name: "non latin", prompt: "비오는 밤", mime: "image/jpeg", want: "ai_wallpaper_" + "_____" + ".jpg"},
		{name: "emoji counts twice", prompt: "🌙 night", mime: "image/jpeg", want: "ai_wallpaper___night.jpg"},
		{name: "emoji cut at limit", prompt: strings.Repeat("a", 29) + "🌙x", mime: "image/jpeg", want: "ai_wallpaper_" + strings.Repeat("a", 29) + "_.jpg"},
		{name: "png", prompt: "cat", mime: "image/png", want: "ai_wallpaper_cat.png"},
		{name: "empty", prompt: "", mime: "", want: "ai_wallpaper_.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownloadFileName(tt.prompt, tt.mime))
		})
	}
}

func TestDecoratePrompt(t *testing.T) {
	assert.Equal(t,
		"neon city, phone wallpaper, vertical, high detail, cinematic lighting",
		DecoratePrompt("  neon city "),
	)
}

func TestRequestWithDefaults(t *testing.T) {
	r := Request{Prompt: "p"}.WithDefaults()
	assert.Equal(t, NewRequest("p"), r)

	custom := Request{Prompt: "p", Model: "m", NumberOfImages: 2, OutputMIMEType: "image/png", AspectRatio: "1:1"}
	assert.Equal(t, custom, custom.WithDefaults())
}
