// Package app wires configuration, storage, clients, and services into the
// shared application core used by the server binary.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bruno248/ooh-terminal/internal/clients/gemini"
	"github.com/bruno248/ooh-terminal/internal/common"
	"github.com/bruno248/ooh-terminal/internal/interfaces"
	"github.com/bruno248/ooh-terminal/internal/services/history"
	"github.com/bruno248/ooh-terminal/internal/services/sync"
	"github.com/bruno248/ooh-terminal/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Storage        interfaces.StorageManager
	GeminiClient   interfaces.GenAIClient
	SyncService    interfaces.SyncService
	HistoryService interfaces.HistoryService
	StartupTime    time.Time

	schedulerStop func()
}

// NewApp initializes the application core. configPath may be empty, in which
// case OOH_CONFIG and then ooh.toml next to the binary are tried.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("OOH_CONFIG")
	}
	if configPath == "" {
		if exe, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(exe), "ooh.toml")
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
			}
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Gemini.APIKey == "" {
		logger.Warn().Msg("Gemini API key not configured - refreshes will fail until GEMINI_API_KEY is set")
	}
	geminiClient, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		gemini.WithLogger(logger),
	)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	syncService := sync.NewService(geminiClient, storageManager, logger)
	if err := syncService.Bootstrap(ctx); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to bootstrap snapshot: %w", err)
	}

	historyService := history.NewService(geminiClient, storageManager.History(), logger)

	startupTime := time.Now()
	if err := storageManager.KeyValue().Set(ctx, "last_startup", startupTime.UTC().Format(time.RFC3339)); err != nil {
		logger.Warn().Err(err).Msg("Failed to record startup marker")
	}

	a := &App{
		Config:         config,
		Logger:         logger,
		Storage:        storageManager,
		GeminiClient:   geminiClient,
		SyncService:    syncService,
		HistoryService: historyService,
		StartupTime:    startupTime,
	}

	if config.Refresh.Enabled {
		if err := a.startScheduler(); err != nil {
			storageManager.Close()
			return nil, fmt.Errorf("failed to start refresh scheduler: %w", err)
		}
	}

	return a, nil
}

// Close tears down background work and storage.
func (a *App) Close() {
	if a.schedulerStop != nil {
		a.schedulerStop()
	}
	if err := a.Storage.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Storage close failed")
	}
}
