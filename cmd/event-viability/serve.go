package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/event-viability/internal/server"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serverConfigLocation string
	serveAddress         string
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := server.LoadConfig(serverConfigLocation)
		if err != nil {
			return err
		}
		if serveAddress != "" {
			cfg.Address = serveAddress
		}

		l, err := initializeLogger(cfg.Logging, logLevel)
		if err != nil {
			return eris.Wrap(err, "failed to initialize logger")
		}
		logger = l

		srv := &http.Server{
			Addr:              cfg.Address,
			Handler:           server.NewHandler(logger, cfg, version),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server", zap.String("op", "main.serve"))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown failed", zap.String("op", "main.serve"), zap.Error(err))
			}
		}()

		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("max_upload_bytes", cfg.UploadSizeBytes()),
			zap.Float64("requests_per_second", cfg.RequestsPerSecond),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigLocation, "server-config", "server.yaml", "path to the server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from server config)")
	rootCmd.AddCommand(serveCmd)
}
