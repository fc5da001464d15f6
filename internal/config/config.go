// Package config loads the wallpaper service configuration from
// environment variables, command line flags and an optional JSON file.
package config

import (
	"os"
	"strings"
	"time"
)

// StructuredConfig is the merged configuration. Sources are applied in
// order env, JSON file, flags; a later non-zero value wins.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_" json:"app"`
	Server  Server  `envPrefix:"SERVER_" json:"server"`
	Gemini  Gemini  `envPrefix:"GEMINI_" json:"gemini"`
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`
	Export  Export  `envPrefix:"EXPORT_" json:"export"`

	// HostAPIKey is the key injected by the hosting environment. It is only
	// read from the environment, never from files or flags.
	HostAPIKey string `env:"API_KEY" json:"-"`

	// JSONFilePath points at an optional JSON config file.
	JSONFilePath string `env:"CONFIG" json:"-"`

	// CLI holds one-shot generation settings; only flags set these.
	CLI CLI `json:"-"`
}

type App struct {
	LogLevel string `env:"LOG_LEVEL" json:"log_level"`
	Locale   string `env:"LOCALE" json:"locale"`
	Version  string `env:"VERSION" json:"version"`
}

type Server struct {
	HTTPAddress     string   `env:"ADDRESS" json:"http_address"`
	RequestTimeout  Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
	ShutdownTimeout Duration `env:"SHUTDOWN_TIMEOUT" json:"shutdown_timeout"`
}

type Gemini struct {
	Model          string `env:"MODEL" json:"model"`
	ProbeModel     string `env:"PROBE_MODEL" json:"probe_model"`
	NumberOfImages int    `env:"NUMBER_OF_IMAGES" json:"number_of_images"`
	AspectRatio    string `env:"ASPECT_RATIO" json:"aspect_ratio"`
	OutputMIMEType string `env:"OUTPUT_MIME_TYPE" json:"output_mime_type"`
	VertexAI       bool   `env:"USE_VERTEXAI" json:"vertex_ai"`
	Project        string `env:"PROJECT" json:"project"`
	Location       string `env:"LOCATION" json:"location"`
}

type Storage struct {
	// KeyStoreDSN is the SQLite file holding the manually entered API key.
	KeyStoreDSN string `env:"KEYSTORE_DSN" json:"keystore_dsn"`
}

// Export configures the optional upload of wallpapers to Cloud Storage.
type Export struct {
	Bucket          string `env:"BUCKET" json:"bucket"`
	Prefix          string `env:"PREFIX" json:"prefix"`
	CredentialsFile string `env:"CREDENTIALS_FILE" json:"credentials_file"`
}

type CLI struct {
	Prompt string
	OutDir string
}

const (
	defaultHTTPAddress     = "localhost:8080"
	defaultRequestTimeout  = 2 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultKeyStoreDSN     = "wallpaper.db"
	defaultLogLevel        = "info"
	defaultLocale          = "ko"
	defaultVersion         = "dev"
	defaultVertexLocation  = "us-central1"
	defaultCLIOutDir       = "wallpapers"
)

// GetStructuredConfig loads and validates the configuration for the
// process arguments args (without the program name).
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON(args).
		withFlags(args).
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = Duration(defaultRequestTimeout)
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(defaultShutdownTimeout)
	}
	if cfg.Storage.KeyStoreDSN == "" {
		cfg.Storage.KeyStoreDSN = defaultKeyStoreDSN
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = defaultLogLevel
	}
	if cfg.App.Locale == "" {
		cfg.App.Locale = defaultLocale
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.Gemini.VertexAI && cfg.Gemini.Location == "" {
		cfg.Gemini.Location = defaultVertexLocation
	}
	if cfg.CLI.Prompt != "" && cfg.CLI.OutDir == "" {
		cfg.CLI.OutDir = defaultCLIOutDir
	}
	if cfg.HostAPIKey == "" {
		cfg.HostAPIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
