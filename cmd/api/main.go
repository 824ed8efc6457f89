package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camel-tools-api/camel-api/config"
	"github.com/camel-tools-api/camel-api/internal/analysis/repository"
	"github.com/camel-tools-api/camel-api/internal/analysis/service"
	httpapi "github.com/camel-tools-api/camel-api/internal/api/http"
	"github.com/camel-tools-api/camel-api/internal/bootstrap"
	"github.com/camel-tools-api/camel-api/internal/logging"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	tk, lexicon, err := bootstrap.LoadToolkit(ctx, cfg.Models.MorphologyDB)
	if err != nil {
		logger.Fatal("failed to load models", zap.Error(err))
	}
	logger.Info("models loaded",
		zap.String("morphology_db", cfg.Models.MorphologyDB),
		zap.Int("lexicon_size", lexicon.Size()),
		zap.String("lexicon_fingerprint", lexicon.Fingerprint()),
	)

	var (
		cache  repository.ResultCache = repository.NoopCache{}
		pinger httpapi.Pinger
	)
	if cfg.Cache.Enabled() {
		client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer client.Close()
			namespace := bootstrap.CacheNamespace(cfg.App.Version, lexicon)
			redisCache := repository.NewRedisResultCache(client, namespace, cfg.Cache.TTL)
			cache, pinger = redisCache, redisCache
			logger.Info("result cache enabled",
				zap.String("addr", cfg.Cache.RedisAddr),
				zap.String("namespace", namespace),
				zap.Duration("ttl", cfg.Cache.TTL),
			)
		}
	}

	metrics := service.NewMetrics()
	analysisService, err := service.NewAnalysisService(tk, cache, metrics, logger, service.Options{
		Timeout:          cfg.Limits.RequestTimeout,
		MaxTextRunes:     cfg.Limits.MaxTextRunes,
		BatchMaxItems:    cfg.Limits.BatchMaxItems,
		BatchConcurrency: cfg.Limits.BatchConcurrency,
	})
	if err != nil {
		logger.Fatal("failed to create analysis service", zap.Error(err))
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		LexiconSize:    lexicon.Size(),
		Cache:          pinger,
		Analysis:       analysisService,
		Metrics:        metrics.Handler(),
		Log:            logger,
		APIKey:         cfg.Security.APIKey,
		CORSOrigins:    cfg.Security.CORSOrigins,
		RateLimitRPS:   cfg.Limits.RateLimitRPS,
		RateLimitBurst: cfg.Limits.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
