package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"waxscope/internal/config"
	"waxscope/internal/ingest"
	"waxscope/internal/model"
	"waxscope/internal/server"
	"waxscope/internal/source"
	"waxscope/internal/storage"
	"waxscope/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "waxscope",
		Short:        "WAX DEX market-data ingestor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one ingestion and exit",
		RunE:  runOnce,
	}
	registerIngestFlags(runCmd)
	root.AddCommand(runCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP ingestion trigger",
		RunE:  runServe,
	}
	registerIngestFlags(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func registerIngestFlags(cmd *cobra.Command) {
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("pools-url", config.DefaultPoolsURL, "Waxonedge pools endpoint")
	cmd.Flags().String("alcor-pools-url", config.DefaultAlcorPoolsURL, "Alcor pools endpoint")
	cmd.Flags().String("markets-url", config.DefaultMarketsURL, "Waxonedge markets endpoint")
	cmd.Flags().Int("alcor-default-precision", 8, "assumed precision for Alcor tokens")
	cmd.Flags().Duration("http-timeout", 15*time.Second, "upstream request timeout")
	cmd.Flags().String("out", "", "write upserts to a JSONL file instead of Postgres")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func runOnce(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := ingestOnce(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("ingestion complete",
		zap.String("run_id", summary.RunID),
		zap.Int("tokens", summary.TokensUpserted),
		zap.Any("pools_per_source", summary.PoolsPerSource),
		zap.Int("markets", summary.MarketsUpserted),
		zap.Any("source_errors", summary.SourceErrors),
		zap.Any("store_errors", summary.StoreErrors),
	)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serve start",
		zap.String("listen", cfg.Listen),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.String("pools_url", cfg.PoolsURL),
		zap.String("alcor_pools_url", cfg.AlcorPoolsURL),
		zap.String("markets_url", cfg.MarketsURL),
	)

	trigger := func(ctx context.Context) (model.RunSummary, error) {
		return ingestOnce(ctx, cfg, logger)
	}

	srv := server.New(cfg.Listen, trigger, logger)
	return srv.ListenAndServe(ctx)
}

// ingestOnce wires one run: pre-flight store setup, feeds, runner. Store
// credentials are validated here, before any fetch starts; a missing DSN is
// the only fatal outcome.
func ingestOnce(ctx context.Context, cfg config.Config, logger *zap.Logger) (model.RunSummary, error) {
	var store storage.Upserter
	if cfg.Out != "" {
		store = storage.NewJSONLSink(cfg.Out)
	} else {
		if cfg.PGDSN == "" {
			return model.RunSummary{}, fmt.Errorf("pg dsn is required")
		}
		pg, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return model.RunSummary{}, fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		store = pg
	}

	feeds := source.NewClient(source.Config{
		PoolsURL:       cfg.PoolsURL,
		AlcorPoolsURL:  cfg.AlcorPoolsURL,
		MarketsURL:     cfg.MarketsURL,
		AlcorPrecision: cfg.AlcorPrecision,
		Timeout:        cfg.HTTPTimeout,
	}, nil)

	runner := ingest.NewRunner(feeds, store, logger)
	return runner.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
