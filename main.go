package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/yumyai/mbdash/logger"
	"github.com/yumyai/mbdash/pkg/config"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/handler"
	"github.com/yumyai/mbdash/pkg/middle"
	"go.uber.org/zap"
)

const VERSION = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		static   string
		store    string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "mbdash",
		Short:        "Microbiome abundance table dashboard",
		Version:      VERSION,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dotenvErr := config.LoadDotenv()

			cfg := config.FromEnv()
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("static") {
				cfg.StaticDir = static
			}
			if cmd.Flags().Changed("store") {
				cfg.Store = store
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			level, _ := cfg.Level()
			if err := logger.InitLogger(level); err != nil {
				return err
			}
			defer logger.Sync() // Make sure that the buffered is flushed.

			if dotenvErr != nil {
				logger.Warn("No .env found, using local environment")
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (MBDASH_ADDR)")
	cmd.Flags().StringVar(&static, "static", "", "static file directory (MBDASH_STATIC)")
	cmd.Flags().StringVar(&store, "store", "", "upload store: memory or sqlite (MBDASH_STORE)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (MBDASH_LOG_LEVEL)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	store, err := db.NewStore(ctx, cfg.Store, cfg.SQLiteDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	tables, err := handler.NewTableCache(cfg.TableCache)
	if err != nil {
		return err
	}

	app := &handler.AppContext{
		Store:          store,
		Tables:         tables,
		Sessions:       handler.NewSessionManager(),
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}

	logger.Info("Start:", zap.String("Version", VERSION))
	logger.Info("Upload store", zap.String("backend", cfg.Store))

	mux := NewRouter(app, cfg.StaticDir)
	h := middle.Chain(mux,
		middle.RequestIDMiddleware(logger.L()),
		middle.LoggingMiddleware(logger.L()),
	)

	logger.Info("Server starting", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, h); err != nil {
		logger.Error("Error starting server:", zap.Error(err))
		return err
	}
	return nil
}
