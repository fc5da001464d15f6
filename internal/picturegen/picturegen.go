package picturegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"gogemini-wallpapers/internal/wallpaper"
)

//go:generate mockgen -source=picturegen.go -destination=../mock/generator_mock.go -package=mock

const DefaultProbeModel = "gemini-2.5-flash"

// Generator produces wallpapers and checks keys against the upstream API.
type Generator interface {
	GenerateWallpapers(ctx context.Context, apiKey string, req wallpaper.Request) ([]wallpaper.Blob, error)
	TestKey(ctx context.Context, apiKey string) error
}

// Options selects the backend. With VertexAI set the API key is ignored
// and application default credentials are used for Project/Location.
type Options struct {
	VertexAI   bool
	Project    string
	Location   string
	ProbeModel string
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
}

type genaiGenerator struct {
	opts Options
}

func New(opts Options) Generator {
	if opts.ProbeModel == "" {
		opts.ProbeModel = DefaultProbeModel
	}
	return &genaiGenerator{opts: opts}
}

func (g *genaiGenerator) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if g.opts.VertexAI {
		cfg = &genai.ClientConfig{
			Project:  g.opts.Project,
			Location: g.opts.Location,
			Backend:  genai.BackendVertexAI,
		}
	} else if apiKey == "" {
		return nil, wallpaper.ErrNoAPIKey
	}
	if g.opts.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = g.opts.BaseURL
	}
	return genai.NewClient(ctx, cfg)
}

// TestKey makes the cheapest text call available to confirm the key works.
func (g *genaiGenerator) TestKey(ctx context.Context, apiKey string) error {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return err
	}
	if _, err := client.Models.GenerateContent(ctx, g.opts.ProbeModel, genai.Text("hello"), nil); err != nil {
		return fmt.Errorf("api key test failed: %w", err)
	}
	return nil
}

func (g *genaiGenerator) GenerateWallpapers(ctx context.Context, apiKey string, req wallpaper.Request) ([]wallpaper.Blob, error) {
	req = req.WithDefaults()
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, wallpaper.ErrEmptyPrompt
	}

	client, err := g.client(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if IsFlashImageModel(req.Model) {
		return flashImages(ctx, client, req)
	}
	return imagenImages(ctx, client, req)
}

func imagenImages(ctx context.Context, client *genai.Client, req wallpaper.Request) ([]wallpaper.Blob, error) {
	res, err := client.Models.GenerateImages(ctx, req.Model, wallpaper.DecoratePrompt(req.Prompt), &genai.GenerateImagesConfig{
		NumberOfImages: int32(req.NumberOfImages),
		OutputMIMEType: req.OutputMIMEType,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}
	if res == nil {
		return nil, nil
	}

	blobs := make([]wallpaper.Blob, 0, len(res.GeneratedImages))
	for _, gi := range res.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mime := gi.Image.MIMEType
		if mime == "" {
			mime = req.OutputMIMEType
		}
		blobs = append(blobs, wallpaper.Blob{Data: gi.Image.ImageBytes, MIMEType: mime})
	}
	return blobs, nil
}

// flashImages asks a Gemini image model once per requested image, since
// it returns at most one picture per call.
func flashImages(ctx context.Context, client *genai.Client, req wallpaper.Request) ([]wallpaper.Blob, error) {
	prompt := wallpaper.DecoratePrompt(req.Prompt) + ", aspect ratio " + req.AspectRatio
	blobs := make([]wallpaper.Blob, 0, req.NumberOfImages)
	for range req.NumberOfImages {
		res, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(prompt), nil)
		if err != nil {
			return nil, fmt.Errorf("generate content: %w", err)
		}
		blob, err := firstInlineImage(res)
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}
	return blobs, nil
}

func firstInlineImage(res *genai.GenerateContentResponse) (wallpaper.Blob, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0] == nil || res.Candidates[0].Content == nil {
		return wallpaper.Blob{}, errors.New("no candidates returned from model")
	}

	for _, part := range res.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return wallpaper.Blob{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
		}
	}

	return wallpaper.Blob{}, errors.New("no image data returned from model")
}

// IsFlashImageModel reports whether model is a Gemini image model served
// through generateContent rather than the Imagen predict endpoint.
func IsFlashImageModel(model string) bool {
	return strings.HasPrefix(model, "gemini-") && strings.Contains(model, "image")
}
