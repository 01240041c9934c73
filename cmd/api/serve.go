package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-contact-relay/internal/delivery/http/middleware"
	v1 "go-contact-relay/internal/delivery/http/v1"
	"go-contact-relay/internal/usecase"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/logger"
	"go-contact-relay/pkg/metrics"
	"go-contact-relay/pkg/redis"
	"go-contact-relay/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Log.Info("Starting contact relay", "port", cfg.Port, "mode", cfg.Mode)
	gin.SetMode(cfg.Mode)

	// 1. Setup Redis (optional, rate limit counters)
	var redisPing func(context.Context) error
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		} else {
			redisPing = redis.HealthCheck
			defer redis.Close()
		}
	}

	// 2. Setup Email Service
	sender, err := newSender()
	if err != nil {
		return err
	}
	if v, ok := sender.(email.Verifier); ok && cfg.VerifyEmailOnStart && sender.IsConfigured() {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SendTimeout)
		if err := v.Verify(ctx); err != nil {
			logger.Log.Error("Email transport verification failed", "provider", sender.Provider(), "error", err)
		} else {
			logger.Log.Info("Email transport verified", "provider", sender.Provider())
		}
		cancel()
	}

	// 3. Setup Metrics
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 4. Setup UseCases
	opts, err := usecase.ContactOptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Logger = logger.Log
	contactUC := usecase.NewContactUsecase(sender, validation.New(), opts)
	healthUC := usecase.NewHealthUsecase(sender, cfg.Mode, middleware.RateLimitStore(redisPing))

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Redis:     redis.Client,
		Config:    cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
