package main

import (
	"context"
	"fmt"
	"listing-service/internal"
	"listing-service/internal/adapters/catalog_api_client"
	"listing-service/internal/configs"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"os"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// session - то, что нужно любой команде: конфиг, логгер в контексте и клиент каталога.
type session struct {
	cfg          *configs.AppConfig
	ctx          context.Context
	logger       port.LoggerPort
	client       *catalog_api_client.Client
	fluentClient *fluent.Fluent
}

func newSession(cmd *cobra.Command) (*session, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	apiURL, _ := cmd.Flags().GetString("api-url")

	if apiURL != "" {
		os.Setenv("CATALOG_API_URL", apiURL)
	}
	// CLI по умолчанию хранит избранное в файле, а не в памяти процесса
	if _, ok := os.LookupEnv("FAVORITES_STORE"); !ok {
		os.Setenv("FAVORITES_STORE", "file")
	}
	if _, ok := os.LookupEnv("STDOUT_LOG_LEVEL"); !ok {
		os.Setenv("STDOUT_LOG_LEVEL", "warn")
	}

	cfg, err := configs.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}

	baseLogger, fluentClient, err := internal.NewLogger(cfg, false)
	if err != nil {
		return nil, err
	}

	traceID := uuid.New().String()
	logger := baseLogger.WithFields(port.Fields{
		"component": "cli",
		"command":   cmd.Name(),
		"trace_id":  traceID,
	})

	ctx := contextkeys.ContextWithTraceID(cmd.Context(), traceID)
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	client := internal.NewCatalogClient(cfg, nil)

	return &session{
		cfg:          cfg,
		ctx:          ctx,
		logger:       logger,
		client:       client,
		fluentClient: fluentClient,
	}, nil
}

func (r *session) Close() {
	if r.fluentClient != nil {
		if err := r.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
