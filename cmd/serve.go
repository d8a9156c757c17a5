package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khalifa1337/newsboard/internal/auth"
	httpx "github.com/khalifa1337/newsboard/internal/http"
	"github.com/khalifa1337/newsboard/internal/metrics"
	"github.com/khalifa1337/newsboard/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()

		var store storage.Store
		if cfg.Storage.UseMemory {
			logger.Info("using in-memory storage")
			store = storage.NewMemoryStore()
		} else {
			logger.Info("using postgres storage")
			store, err = storage.NewPostgresStore(cfg.Storage.DatabaseURL, logger)
			if err != nil {
				return err
			}
		}
		defer store.Close()

		if cfg.Metrics.Enabled {
			metrics.Init()
		}

		authSvc := auth.NewService(store, logger, cfg.Session.Lifetime)
		server := httpx.NewServer(store, authSvc, cfg, logger)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: server.Handler(),
		}

		// shut down cleanly on SIGINT/SIGTERM
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			logger.Info("shutting down", zap.String("signal", s.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()

		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
