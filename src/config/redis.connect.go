package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when no redis is configured or reachable; the
// genre cache then stays in-process only.
func ConnectRedis(ctx context.Context, cfg Redis, logger *zap.Logger) *redis.Client {
	var rdb *redis.Client
	switch {
	case cfg.Mode == "sentinel" && len(cfg.Sentinels) > 0:
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    cfg.Sentinels,
			Password:         cfg.Password,
			SentinelPassword: cfg.Password,
			DB:               0,
		})
	case cfg.Host != "":
		rdb = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       0,
		})
	default:
		logger.Info("redis not configured, genre cache is in-process only")
		return nil
	}

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Warn("failed to connect to redis", zap.String("mode", cfg.Mode), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	logger.Info("redis connected", zap.String("mode", cfg.Mode), zap.String("pong", pong))
	return rdb
}
