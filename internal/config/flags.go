package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"time"
)

// NetAddress is a host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags reads the command line. Flags:
//
//	-a            http address host:port
//	-c, -config   json config file
//	-d            key store sqlite file
//	-model        image model
//	-n            number of images
//	-aspect       aspect ratio
//	-log-level    zerolog level
//	-lang         default locale (ko|en)
//	-request-timeout, -shutdown-timeout
//	-export-bucket, -export-credentials
//	-prompt, -out one-shot generation instead of serving
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("wallpaper", flag.ContinueOnError)

	var (
		address           NetAddress
		jsonConfigPath    string
		keyStoreDSN       string
		model             string
		numberOfImages    int
		aspectRatio       string
		logLevel          string
		locale            string
		requestTimeout    time.Duration
		shutdownTimeout   time.Duration
		exportBucket      string
		exportCredentials string
		prompt            string
		outDir            string
	)

	fs.Var(&address, "a", "HTTP address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&keyStoreDSN, "d", "", "Key store SQLite file")
	fs.StringVar(&model, "model", "", "Image model")
	fs.IntVar(&numberOfImages, "n", 0, "Number of images per generation")
	fs.StringVar(&aspectRatio, "aspect", "", "Aspect ratio, e.g. 9:16")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&locale, "lang", "", "Default message language (ko|en)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 2m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&exportBucket, "export-bucket", "", "Cloud Storage bucket for exports")
	fs.StringVar(&exportCredentials, "export-credentials", "", "Service account JSON for exports")
	fs.StringVar(&prompt, "prompt", "", "Generate once for this prompt and exit")
	fs.StringVar(&outDir, "out", "", "Output directory for -prompt")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
			Locale:   locale,
		},
		Server: Server{
			HTTPAddress:     address.String(),
			RequestTimeout:  Duration(requestTimeout),
			ShutdownTimeout: Duration(shutdownTimeout),
		},
		Gemini: Gemini{
			Model:          model,
			NumberOfImages: numberOfImages,
			AspectRatio:    aspectRatio,
		},
		Storage: Storage{KeyStoreDSN: keyStoreDSN},
		Export: Export{
			Bucket:          exportBucket,
			CredentialsFile: exportCredentials,
		},
		JSONFilePath: jsonConfigPath,
		CLI:          CLI{Prompt: prompt, OutDir: outDir},
	}, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts host:port where host is "localhost", empty or an IP.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
