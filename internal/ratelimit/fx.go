package ratelimit

import (
	"github.com/chowstack/chowstack/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("ratelimit",
	fx.Provide(NewClient),
	fx.Provide(NewFromConfig),
)

func NewClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, order rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

func NewFromConfig(client *redis.Client, cfg config.Config) *Limiter {
	return NewLimiter(client, cfg.OrderRate, cfg.OrderBurst)
}
