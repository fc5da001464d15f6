package wallpaper

import "strings"

const (
	DefaultModel          = "imagen-4.0-generate-001"
	DefaultNumberOfImages = 4
	DefaultOutputMIMEType = "image/jpeg"
	DefaultAspectRatio    = "9:16"

	// DefaultPrompt is what the prompt box holds on first load.
	DefaultPrompt = "비오는 서정적인 도시 풍경"

	promptSuffix = ", phone wallpaper, vertical, high detail, cinematic lighting"
)

// Request carries the parameters of one generation call.
type Request struct {
	Prompt         string
	Model          string
	NumberOfImages int
	OutputMIMEType string
	AspectRatio    string
}

// NewRequest builds a request with wallpaper defaults. The prompt is kept
// as typed; DecoratePrompt is applied by the generator.
func NewRequest(prompt string) Request {
	return Request{
		Prompt:         prompt,
		Model:          DefaultModel,
		NumberOfImages: DefaultNumberOfImages,
		OutputMIMEType: DefaultOutputMIMEType,
		AspectRatio:    DefaultAspectRatio,
	}
}

// WithDefaults fills zero fields.
func (r Request) WithDefaults() Request {
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.NumberOfImages <= 0 {
		r.NumberOfImages = DefaultNumberOfImages
	}
	if r.OutputMIMEType == "" {
		r.OutputMIMEType = DefaultOutputMIMEType
	}
	if r.AspectRatio == "" {
		r.AspectRatio = DefaultAspectRatio
	}
	return r
}

// DecoratePrompt steers the model towards vertical phone wallpapers.
func DecoratePrompt(prompt string) string {
	return strings.TrimSpace(prompt) + promptSuffix
}
