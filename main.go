package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gogemini-wallpapers/internal/apikey"
	"gogemini-wallpapers/internal/cloudexport"
	"gogemini-wallpapers/internal/config"
	"gogemini-wallpapers/internal/handler"
	"gogemini-wallpapers/internal/keystore"
	"gogemini-wallpapers/internal/logger"
	"gogemini-wallpapers/internal/oneshot"
	"gogemini-wallpapers/internal/picturegen"
	"gogemini-wallpapers/internal/server"
	"gogemini-wallpapers/internal/studio"
	"gogemini-wallpapers/internal/wallpaper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	role := "server"
	if cfg.CLI.Prompt != "" {
		role = "cli"
	}
	log := logger.NewLogger(role, cfg.App.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(cfg *config.StructuredConfig, log *logger.Logger) error {
	ctx := log.WithContext(context.Background())

	store, err := keystore.Open(ctx, cfg.Storage.KeyStoreDSN, log)
	if err != nil {
		return err
	}
	defer store.Close()

	gen := picturegen.New(picturegen.Options{
		VertexAI:   cfg.Gemini.VertexAI,
		Project:    cfg.Gemini.Project,
		Location:   cfg.Gemini.Location,
		ProbeModel: cfg.Gemini.ProbeModel,
	})
	keys := apikey.NewResolver(store, cfg.HostAPIKey, gen, log)
	template := wallpaper.Request{
		Model:          cfg.Gemini.Model,
		NumberOfImages: cfg.Gemini.NumberOfImages,
		OutputMIMEType: cfg.Gemini.OutputMIMEType,
		AspectRatio:    cfg.Gemini.AspectRatio,
	}

	if cfg.CLI.Prompt != "" {
		summary, err := oneshot.Run(ctx, gen, keys, template, cfg.CLI.Prompt, cfg.CLI.OutDir)
		if err != nil {
			return fmt.Errorf("%s: %w", wallpaper.UserMessage(err, wallpaper.ParseLocale(cfg.App.Locale)), err)
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	services := handler.Services{
		Studio: studio.New(gen, keys, template, log),
		Keys:   keys,
	}
	if cfg.Export.Bucket != "" {
		exporter, err := cloudexport.NewFromFile(ctx, cfg.Export.CredentialsFile, cfg.Export.Bucket, cfg.Export.Prefix)
		if err != nil {
			return err
		}
		services.Exporter = exporter
		log.Info().Str("bucket", cfg.Export.Bucket).Msg("cloud export enabled")
	}

	h := handler.NewHandler(services, handler.Options{
		Version:        cfg.App.Version,
		DefaultLocale:  wallpaper.ParseLocale(cfg.App.Locale),
		RequestTimeout: cfg.Server.RequestTimeout.Std(),
	}, log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		return err
	}
	return srv.RunServer()
}
