package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lowc1012/ratelimitcore"
	"github.com/lowc1012/ratelimitcore/httpmw"
	"github.com/lowc1012/ratelimitcore/internal/config"
	"github.com/lowc1012/ratelimitcore/internal/log"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

func helloHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Hello, World!"))
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	addr := flag.String("addr", "localhost:8080", "address to listen on")
	flag.Parse()

	cfg := &config.Root{Observability: config.Observability{MetricsPath: "/metrics"}}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	limiter := ratelimitcore.New(redisClient,
		ratelimitcore.WithConfig(ratelimit.TokenBucket, cfg.StrategyConfig(ratelimit.TokenBucket)),
		ratelimitcore.WithConfig(ratelimit.LeakyBucket, cfg.StrategyConfig(ratelimit.LeakyBucket)),
		ratelimitcore.WithConfig(ratelimit.FixedWindow, cfg.StrategyConfig(ratelimit.FixedWindow)),
		ratelimitcore.WithConfig(ratelimit.SlidingWindowLog, cfg.StrategyConfig(ratelimit.SlidingWindowLog)),
		ratelimitcore.WithConfig(ratelimit.SlidingWindowCounter, cfg.StrategyConfig(ratelimit.SlidingWindowCounter)),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/hello", helloHandler)
	mux.Handle(cfg.Observability.MetricsPath, promhttp.Handler())

	wrapped := httpmw.NewHandler(mux, httpmw.Config{
		Extractor: httpmw.NewHTTPHeaderExtractor("X-Forwarded-For"),
		Limiter:   limiter,
		Algorithm: ratelimit.TokenBucket,
	})

	log.Logger().Info("starting rate limiter demo server", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, wrapped); err != nil {
		log.Logger().Fatal("server exited", zap.Error(err))
	}
}
