// ABOUTME: Serve command running the REST API with MCP mounted at /mcp.
// ABOUTME: Starts the filesystem watcher and handles graceful shutdown.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/mariposa/internal/mcp"
	"github.com/harper/mariposa/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serve the REST API and the streamable-HTTP MCP endpoint on one port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(noteStore, assetStore, logger)
		srv.MountMCP(mcp.NewServer(noteStore).HTTPHandler())

		httpServer := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Pick up out-of-band edits to the notes tree.
		go func() {
			if err := noteStore.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("watcher stopped", "error", err)
			}
		}()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", "port", cfg.Port, "data_dir", cfg.DataDir, "environment", cfg.Environment)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
