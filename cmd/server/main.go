package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend/memory"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/cache"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/config"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/httpapi"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/logger"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/store"
	auditmemory "github.com/MiguelTdea/28Julio-Delicrem-master/internal/store/memory"
	pgstore "github.com/MiguelTdea/28Julio-Delicrem-master/internal/store/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "tablero",
		Short:         "Delicrem admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "log level (overrides LOG_LEVEL)")
	root.PersistentFlags().String("backend-url", "", "business API base URL; empty uses the in-memory backend (overrides BACKEND_URL)")
	_ = v.BindPFlag("LOG_LEVEL", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("BACKEND_URL", root.PersistentFlags().Lookup("backend-url"))

	root.AddCommand(newServeCmd(v), newReportCmd(v))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromViper(v)
			log := logger.New(os.Stdout, cfg.Server.Mode, cfg.LogLevel)
			return runServer(log.WithContext(cmd.Context()), cfg, log)
		},
	}
	cmd.Flags().String("port", "", "listen port (overrides PORT)")
	_ = v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	return cmd
}

// components is everything the commands share, plus what must be closed on
// the way out.
type components struct {
	service *service.Service
	closers []func() error
}

func (c *components) Close(log zerolog.Logger) {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("close error")
		}
	}
}

func buildComponents(ctx context.Context, cfg config.Config, log zerolog.Logger) (*components, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	comps := &components{}

	var client backend.Client
	if cfg.Backend.BaseURL != "" {
		client = backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.TokenSecret)
		log.Info().Str("url", cfg.Backend.BaseURL).Msg("backend: http")
	} else {
		client = memory.NewSeeded()
		log.Info().Msg("backend: in-memory")
	}

	var audit store.AuditRepository
	if cfg.Database.URL != "" {
		pg, err := pgstore.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("postgres unavailable and DATABASE_URL is set: %w", err)
		}
		audit = pg
		comps.closers = append(comps.closers, pg.Close)
		log.Info().Msg("audit: postgres")
	} else {
		audit = auditmemory.New()
		log.Info().Msg("audit: in-memory")
	}

	reports := cache.ReportCache(cache.NewMemoryReportCache(cfg.Cache.ReportTTL))
	if cfg.Cache.Enabled() {
		redisCache, err := cache.NewRedisReportCache(cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("redis misconfigured, using in-memory reports")
		} else if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory reports")
			_ = redisCache.Close()
		} else {
			reports = redisCache
			comps.closers = append(comps.closers, redisCache.Close)
			log.Info().Msg("reports: redis")
		}
	} else {
		log.Info().Msg("reports: in-memory")
	}

	comps.service = service.New(client, audit, reports)
	return comps, nil
}

func runServer(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	comps, err := buildComponents(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer comps.Close(log)

	api := httpapi.New(comps.service, cfg.Server.AllowedOrigin, log)
	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Address()).Msg("dashboard listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-sig:
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}

	log.Info().Msg("server stopped")
	return nil
}
