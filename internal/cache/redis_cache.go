package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/config"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

const reportKeyPrefix = "tablero:informe:"

type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(cfg config.CacheConfig) (*RedisReportCache, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	ttl := cfg.ReportTTL
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	return &RedisReportCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("redis address not configured")
	}
	return &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func (c *RedisReportCache) Get(ctx context.Context, session string) (*domain.SalesReport, bool, error) {
	val, err := c.client.Get(ctx, reportKeyPrefix+session).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var report domain.SalesReport
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, session string, report *domain.SalesReport) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKeyPrefix+session, payload, c.ttl).Err()
}

func (c *RedisReportCache) Delete(ctx context.Context, session string) error {
	return c.client.Del(ctx, reportKeyPrefix+session).Err()
}
