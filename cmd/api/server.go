package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5w1tchy/pinguard/internal/api/handlers/pins"
	mw "github.com/5w1tchy/pinguard/internal/api/middlewares"
	"github.com/5w1tchy/pinguard/internal/api/router"
	"github.com/5w1tchy/pinguard/internal/config"
	"github.com/5w1tchy/pinguard/internal/maintenance"
	"github.com/5w1tchy/pinguard/internal/metrics/outcomes"
	jwtutil "github.com/5w1tchy/pinguard/internal/security/jwt"
	"github.com/5w1tchy/pinguard/internal/validate"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := validate.Config(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Printf("[Config] warning: %s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := newRedis(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// PINs are never stored; Redis only carries rate-limit state and
	// aggregate outcome counters.
	var (
		stats    redis.Cmdable
		queue    *outcomes.Queue
		limiters []func(http.Handler) http.Handler
	)
	if rdb != nil {
		// Fail fast if Redis isn't reachable
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Println("[Redis] connected")

		stats = rdb
		queue = outcomes.Start(rdb, outcomes.DefaultKey, cfg.OutcomeBuffer, cfg.OutcomeWorkers)
		maintenance.StartOutcomesRollover(ctx, rdb, outcomes.DefaultKey, cfg.OutcomeKeepDays, cfg.OutcomeRolloverAt, cfg.OutcomeRolloverTZ)

		tb := mw.NewRedisTokenBucket(rdb, cfg.RateLimitPerSec, cfg.RateLimitBurst, mw.PerIPKey("rl:tb"))
		sw := mw.NewRedisSlidingWindow(rdb, cfg.RateLimitWindowMax, cfg.RateLimitWindow, mw.PerIPKey("rl:sw"))
		limiters = append(limiters, tb.Middleware, sw.Middleware)
	}

	api := router.Router(router.Deps{
		Pins:         pins.NewHandler(stats, queue, cfg.BatchMaxItems, cfg.BatchWorkers),
		Auth:         jwtutil.ConfigFrom(cfg),
		AuthRequired: cfg.AuthRequired,
	})

	chain := []func(http.Handler) http.Handler{
		mw.RequestID,
		mw.Recovery,
		mw.CORS(cfg.AllowedOrigins),
		mw.ResponseTime,
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.HPP(mw.DefaultHPPOptions()),
	}
	chain = append(chain, limiters...)
	chain = append(chain, mw.Compression, mw.SecurityHeaders(cfg.StrictSecurity))

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mw.Chain(api, chain...),
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("[Server] listening on", cfg.Addr)
		var err error
		if cfg.UseTLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("Error starting server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] shutdown: %v", err)
	}
	queue.Shutdown()
	if rdb != nil {
		_ = rdb.Close()
	}
}

// newRedis builds a client from either UPSTASH_REDIS_URL or the split
// REDIS_* fields. It returns nil, nil when Redis is not configured.
func newRedis(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisURL != "" {
		// Path A: full URL (e.g. rediss://default:<token>@host:port)
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	// Path B: split fields
	opt := &redis.Options{
		Addr:         cfg.RedisAddr,
		Username:     cfg.RedisUser,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if cfg.RedisTLS {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
