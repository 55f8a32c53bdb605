// Package app wires configuration, parser, sources, and services into the
// components the entrypoints run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"bizdoc/internal/classifier"
	"bizdoc/internal/config"
	"bizdoc/internal/handler"
	"bizdoc/internal/parser"
	"bizdoc/internal/port"
	"bizdoc/internal/router"
	"bizdoc/internal/service"
	"bizdoc/internal/source"
	s3storage "bizdoc/internal/storage/s3"
)

// ShutdownTimeout bounds graceful server shutdown.
const ShutdownTimeout = 10 * time.Second

// App holds the wired components of one process.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Parser    *parser.Parser
	Source    *source.Resolver
	Storage   port.ObjectStorage
	Documents service.DocumentService
}

// New loads configuration from configPath (empty for env and defaults only)
// and wires the application. Logs go to logOut.
func New(ctx context.Context, configPath string, logOut io.Writer) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewFromConfig(ctx, cfg, logOut)
}

// NewFromConfig wires the application from an already loaded configuration.
func NewFromConfig(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := config.NewLogger(cfg.Log, logOut)
	slog.SetDefault(logger)

	rubric, err := classifier.LoadRubric(cfg.Parser.RubricFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	p := parser.New(parser.Config{
		Rubric:        rubric,
		CompanyAnchor: cfg.Parser.CompanyAnchor,
		ProjectAnchor: cfg.Parser.ProjectAnchor,
		Logger:        logger,
	})
	maxBytes := cfg.Parser.MaxFileBytes()
	src := source.NewResolver(storage, maxBytes)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Parser:    p,
		Source:    src,
		Storage:   storage,
		Documents: service.NewDocumentService(p, src, storage, maxBytes, logger),
	}, nil
}

// BatchRunner builds a batch runner from the batch configuration. outputDir
// may be empty to skip writing per-document JSON.
func (a *App) BatchRunner(outputDir string) *service.BatchRunner {
	return service.NewBatchRunner(a.Documents, a.Source, service.BatchConfig{
		Concurrency: a.Config.Batch.Concurrency,
		Timeout:     a.Config.Batch.Timeout(),
		Extensions:  a.Config.Batch.Extensions,
		Recursive:   a.Config.Batch.Recursive,
		OutputDir:   outputDir,
	}, a.Logger)
}

// HTTPServer builds the HTTP server for the API.
func (a *App) HTTPServer(version string) *http.Server {
	r := router.Setup(
		handler.NewDocumentHandler(a.Documents, a.Config.Server.MaxBodyBytes()),
		handler.NewHealthHandler(version),
		a.Config.Server.CORSOrigins,
		a.Logger,
	)
	return &http.Server{
		Addr:         a.Config.Server.Port,
		Handler:      r,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}
}

// Serve runs the HTTP API until ctx is done, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context, version string) error {
	srv := a.HTTPServer(version)
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
