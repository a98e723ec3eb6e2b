package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fingervision/ridgemark/internal/enhance"
	"github.com/fingervision/ridgemark/internal/pipeline"
	"github.com/fingervision/ridgemark/internal/server"
	"github.com/spf13/cobra"
)

const shutdownGracePeriod = 10 * time.Second

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the ridge analysis API",
	Long: `Start an HTTP server exposing the fingerprint analysis as a REST API.

Endpoints:
  POST /analyze  - analyze an uploaded fingerprint image
  GET  /health   - health check
  GET  /metrics  - Prometheus metrics

Examples:
  ridgemark serve
  ridgemark serve --port 8080
  ridgemark serve --host 0.0.0.0 --port 3000`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		scfg := server.DefaultConfig()
		scfg.Host = cfg.Server.Host
		scfg.Port = cfg.Server.Port
		scfg.CORSOrigin = cfg.Server.CORSOrigin
		scfg.MaxUploadMB = int64(cfg.Server.MaxUploadMB)
		scfg.TimeoutSec = cfg.Server.TimeoutSec
		scfg.Pipeline = pipeline.Config{
			BlockSize: cfg.Pipeline.BlockSize,
			Enhance: enhance.BasicConfig{
				TargetMean:     cfg.Pipeline.Enhance.TargetMean,
				TargetVariance: cfg.Pipeline.Enhance.TargetVariance,
				BlockSize:      cfg.Pipeline.Enhance.BlockSize,
				VarianceFloor:  cfg.Pipeline.Enhance.VarianceFloor,
			},
		}

		if cmd.Flags().Changed("host") {
			scfg.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			scfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("cors-origin") {
			scfg.CORSOrigin, _ = cmd.Flags().GetString("cors-origin")
		}
		if cmd.Flags().Changed("max-upload-size") {
			mb, _ := cmd.Flags().GetInt("max-upload-size")
			scfg.MaxUploadMB = int64(mb)
		}
		if cmd.Flags().Changed("timeout") {
			scfg.TimeoutSec, _ = cmd.Flags().GetInt("timeout")
		}

		srv, err := server.New(scfg)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("starting server", "host", scfg.Host, "port", scfg.Port)
			errCh <- srv.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().Int("max-upload-size", 20, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
}
