package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/api"
	"github.com/inkwell-ai/inkwell/pkg/auth"
	"github.com/inkwell-ai/inkwell/pkg/cache"
	"github.com/inkwell-ai/inkwell/pkg/config"
	"github.com/inkwell-ai/inkwell/pkg/logging"
	"github.com/inkwell-ai/inkwell/pkg/model"
	"github.com/inkwell-ai/inkwell/pkg/orchestrator"
	"github.com/inkwell-ai/inkwell/pkg/storage"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s (%s, built %s)\n", version, commit, buildDate)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("open logs: %w", err)
	}
	defer logger.Close()
	logger.SetMinLevel(logging.Level(cfg.Logging.Level))

	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	// Mirror storage events into the structured log
	store.AddObserver(storage.ObserverFunc(func(event storage.Event) {
		logger.Debug(logging.CategoryStorage, string(event.Type), "", map[string]any{
			"owner_id":  event.OwnerID,
			"entity_id": event.EntityID,
		})
	}))

	completer := model.NewClientWithOptions(
		cfg.Provider.APIKey,
		cfg.Provider.BaseURL,
		cfg.Provider.Model,
		logger,
		model.ClientOptions{
			NetworkLogsEnabled: cfg.Provider.NetworkLogs,
			NetworkLogDir:      cfg.Logging.Dir,
		},
	)

	responseCache, err := cache.NewStore(cfg.Cache.DefaultTTL, logger)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	orch := orchestrator.New(completer, responseCache, store, cfg, logger)

	secret := cfg.Server.SessionSecret
	if secret == "" {
		// Sessions won't survive a restart without a configured secret
		secret, err = auth.GenerateNonce()
		if err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn(logging.CategoryGateway, "ephemeral_secret", "no session_secret configured, using a random one", nil)
	}
	tokens := auth.NewTokenManager(secret, 24*time.Hour)

	server := api.NewServer(api.ServerConfig{
		Config:       cfg,
		Store:        store,
		Orchestrator: orch,
		Tokens:       tokens,
		Logger:       logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info(logging.CategoryGateway, "shutdown", "signal received", map[string]any{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
