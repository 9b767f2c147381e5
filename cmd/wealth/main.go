package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"wealth/internal/amqp"
	"wealth/internal/auth"
	"wealth/internal/cache"
	"wealth/internal/cli"
	"wealth/internal/config"
	apphttp "wealth/internal/http"
	"wealth/internal/log"
	"wealth/internal/market"
	"wealth/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	upstream := &http.Client{Timeout: 8 * time.Second}

	var verifier auth.Verifier
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		verifier = auth.NewJWTVerifier(cfg.SupabaseJWTSecret)
	default:
		verifier = auth.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey, upstream)
	}

	yahoo := market.NewYahooClient(cfg.YahooBaseURL, upstream)
	metals := market.NewMetalsGateway(yahoo, quoteCache(logger, cfg))

	// Left nil unless AMQP is configured; a typed nil would not compare equal.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldComponent, log.ComponentAMQP, log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("Transaction events enabled", "exchange", cfg.AMQPExchange)
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:         ":" + cfg.Port,
		FrontendURL:  cfg.FrontendURL,
		RateLimitRPM: cfg.RateLimitRPM,
		Location:     cfg.Location(),
	}, apphttp.Deps{
		Store:     repo,
		Verifier:  verifier,
		Market:    yahoo,
		Metals:    metals,
		Publisher: publisher,
		Logger:    logger,
	})

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting wealth server", "port", cfg.Port, "auth_mode", cfg.AuthMode, "timezone", cfg.Timezone)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}

// quoteCache prefers Redis when REDIS_URL is set so that several API
// instances share metal prices, and falls back to process memory.
func quoteCache(logger *log.Logger, cfg *config.Config) cache.Cache[market.MetalPrice] {
	if cfg.RedisURL == "" {
		return cache.NewTTLCache[market.MetalPrice](cfg.QuoteCacheTTL, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory quote cache", log.FieldComponent, log.ComponentCache, log.FieldError, err)
		return cache.NewTTLCache[market.MetalPrice](cfg.QuoteCacheTTL, nil)
	}
	return cache.NewRedisCache[market.MetalPrice](client, "wealth:quotes:", cfg.QuoteCacheTTL, logger.Logger)
}
