package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/backend"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/config"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/logger"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/services"
)

// App wires configuration, logging, the backend client, and the upload
// session together for the CLI.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend *backend.Client
	Session *services.UploadSession
}

// NewApp loads configuration and builds the full dependency graph.
// observer, when non-nil, receives every stage transition.
func NewApp(observer func(ingest.Snapshot)) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	client := backend.NewClient(cfg.BackendURL, cfg.SecretKey, cfg.HTTPTimeout, log)
	session := services.NewUploadSession(client, log, observer)

	return &App{
		Config:  cfg,
		Logger:  log,
		Backend: client,
		Session: session,
	}, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
