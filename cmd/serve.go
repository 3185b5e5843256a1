package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/dashboard"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the map dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initApp(cfg, true)
		if err != nil {
			return err
		}

		// Fail at startup rather than on the first page load.
		names, err := env.Workbook.SheetNames(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: load workbook")
		}

		handler := dashboard.NewHandler(env.Dashboard, dashboard.HandlerOptions{
			CORSOrigins: cfg.Server.CORSOrigins,
			Metrics:     env.Metrics,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("workbook", env.Workbook.Source().String()),
			zap.Int("sheets", len(names)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
