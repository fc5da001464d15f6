package wallpaper

import (
	"errors"
	"net/http"
	"strings"

	genai "google.golang.org/genai"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is required")
	ErrBusy          = errors.New("generation already in progress")
	ErrNoAPIKey      = errors.New("API key not found. Please provide a key manually or set API_KEY")
	ErrInvalidAPIKey = errors.New("API key is invalid")
	ErrImageNotFound = errors.New("image not found")
	ErrNoImages      = errors.New("no images returned from model")
)

var invalidKeyMarkers = []string{
	"api key not valid",
	"api_key_invalid",
	"requested entity was not found",
	"permission_denied",
}

// IsInvalidKeyError reports whether err means the credential itself was
// rejected, as opposed to a transient or prompt related failure.
func IsInvalidKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidAPIKey) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, m := range invalidKeyMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
