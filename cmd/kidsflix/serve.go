package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/yakychan/KidsFlix/api"
	"github.com/yakychan/KidsFlix/config"
	"github.com/yakychan/KidsFlix/handlers"
	"github.com/yakychan/KidsFlix/internal/cache"
	"github.com/yakychan/KidsFlix/internal/logging"
	"github.com/yakychan/KidsFlix/services/addon"
	"github.com/yakychan/KidsFlix/services/cinemeta"
	"github.com/yakychan/KidsFlix/services/kids"
	"github.com/yakychan/KidsFlix/services/omdb"
	"github.com/yakychan/KidsFlix/services/poster"
	"github.com/yakychan/KidsFlix/services/tmdb"
)

func newServeCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the addon HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v, *configFile)
		},
	}
}

func runServe(ctx context.Context, v *viper.Viper, configFile string) error {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logCloser, err := logging.Setup(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log := slog.Default().With("component", "server")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cache.New(cache.Options{
		HighWater:     cfg.Cache.HighWater,
		SweepInterval: cfg.Cache.SweepInterval,
	})
	defer store.Close()

	httpc := &http.Client{Transport: http.DefaultTransport}
	tc := tmdb.NewClient(tmdb.Options{
		BaseURL:    cfg.TMDB.BaseURL,
		HTTPClient: httpc,
		Cache:      store,
		TTL:        cfg.TMDB.TTL,
		Timeout:    cfg.TMDB.Timeout,
	})
	oc := omdb.NewClient(omdb.Options{
		BaseURL:    cfg.OMDb.BaseURL,
		HTTPClient: httpc,
		Cache:      store,
		TTL:        cfg.OMDb.TTL,
		Timeout:    cfg.OMDb.Timeout,
	})
	cm := cinemeta.NewClient(cinemeta.Options{
		BaseURL:    cfg.Cinemeta.BaseURL,
		HTTPClient: httpc,
		Cache:      store,
		TTL:        cfg.Cinemeta.TTL,
		Timeout:    cfg.Cinemeta.Timeout,
	})

	engine := addon.NewEngine(addon.Options{
		Cache:            store,
		TMDB:             tc,
		OMDb:             oc,
		Cinemeta:         cm,
		Policy:           kids.Policy{StrictNeutral: cfg.Filter.StrictNeutral},
		CertificationTTL: cfg.Cache.CertificationTTL,
		CatalogTTL:       cfg.Cache.CatalogTTL,
	})
	renderer := poster.NewRenderer(poster.Options{
		HTTPClient:   httpc,
		Timeout:      cfg.Poster.Timeout,
		AllowedHosts: cfg.Poster.AllowedHosts,
	})

	var limiter *api.IPRateLimiter
	if cfg.Poster.RatePerMinute > 0 {
		limiter = api.NewIPRateLimiter(rate.Every(time.Minute/time.Duration(cfg.Poster.RatePerMinute)), cfg.Poster.Burst)
		defer limiter.Close()
	}

	router := handlers.NewRouter(handlers.RouterOptions{
		Engine:        engine,
		TMDB:          tc,
		OMDb:          oc,
		Renderer:      renderer,
		PosterLimiter: limiter,
		PublicBaseURL: cfg.Server.PublicBaseURL,
		Started:       time.Now(),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server.listening",
			"addr", srv.Addr,
			"version", handlers.Version,
			"public_base_url", cfg.Server.PublicBaseURL,
			"strict_neutral", cfg.Filter.StrictNeutral,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server.shutting_down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server.stopped")
	return nil
}
