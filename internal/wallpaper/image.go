package wallpaper

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
)

const dataURLPrefix = "data:"

// Image is a single generated wallpaper as shown in the grid.
type Image struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// Blob is raw image output returned by a generator.
type Blob struct {
	Data     []byte
	MIMEType string
}

// NewImages turns generator output into grid entries. IDs share the
// generation timestamp and differ by position.
func NewImages(prompt string, blobs []Blob, now time.Time) []Image {
	images := make([]Image, 0, len(blobs))
	stamp := now.UnixMilli()
	for i, b := range blobs {
		mime := b.MIMEType
		if mime == "" {
			mime = DefaultOutputMIMEType
		}
		images = append(images, Image{
			ID:     fmt.Sprintf("%d-%d", stamp, i),
			URL:    DataURL(mime, b.Data),
			Prompt: prompt,
		})
	}
	return images
}

func DataURL(mime string, data []byte) string {
	return dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its mime type and payload.
func DecodeDataURL(url string) (string, []byte, error) {
	if !strings.HasPrefix(url, dataURLPrefix) {
		return "", nil, errors.New("not a data url")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(url, dataURLPrefix), ",")
	if !ok {
		return "", nil, errors.New("malformed data url")
	}
	mime, enc, _ := strings.Cut(header, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("unsupported data url encoding %q", enc)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return mime, data, nil
}

// DownloadFileName derives the saved file name from the prompt:
// non-alphanumerics become underscores, lower-cased, capped at 30 chars.
func DownloadFileName(prompt, mime string) string {
	return "ai_wallpaper_" + slug(prompt) + extension(mime)
}

func extension(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// slug counts UTF-16 code units, so characters outside the BMP (emoji)
// become two underscores.
func slug(prompt string) string {
	const maxLen = 30
	var b strings.Builder
	for _, r := range prompt {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteString(strings.Repeat("_", max(utf16.RuneLen(r), 1)))
		}
		if b.Len() >= maxLen {
			break
		}
	}
	out := b.String()
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
