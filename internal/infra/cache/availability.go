package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/Salon-BookingService/internal/config"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
)

const cacheName = "availability"

var (
	// ErrCacheUnavailable возвращается при ошибках соединения с Redis
	ErrCacheUnavailable = errors.New("availability.cache: redis unavailable")

	// ErrEncode возвращается при ошибке сериализации значения
	ErrEncode = errors.New("availability.cache: failed to encode value")
)

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// AvailabilityCache кеш ответов расчёта доступных слотов с коротким TTL
//
// Кеш обслуживает только чтение слотов (advisory данные);
// координатор бронирования НИКОГДА не читает из кеша - ревалидация
// на коммите всегда идёт в хранилище
type AvailabilityCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewAvailabilityCache создает кеш доступности
// metrics может быть nil - счётчики hit/miss тогда не собираются
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *AvailabilityCache {
	return &AvailabilityCache{
		client:  client,
		ttl:     ttl,
		metrics: m,
	}
}

func slotsKey(salonID, serviceID int64, date string) string {
	return fmt.Sprintf("slots:%d:%d:%s", salonID, serviceID, date)
}

// Get читает закешированный ответ в dest
// Возвращает (false, nil) при промахе
func (c *AvailabilityCache) Get(ctx context.Context, salonID, serviceID int64, date string, dest interface{}) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	val, err := c.client.Get(ctx, slotsKey(salonID, serviceID, date)).Result()
	if err == redis.Nil {
		c.metrics.ObserveCacheMiss(cacheName)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// Битое значение равносильно промаху
		c.metrics.ObserveCacheMiss(cacheName)
		return false, nil
	}

	c.metrics.ObserveCacheHit(cacheName)
	return true, nil
}

// Set кладет ответ в кеш с TTL
func (c *AvailabilityCache) Set(ctx context.Context, salonID, serviceID int64, date string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, slotsKey(salonID, serviceID, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Invalidate сбрасывает кеш слотов салона на дату (все услуги)
// Вызывается при создании и отмене бронирований
func (c *AvailabilityCache) Invalidate(ctx context.Context, salonID int64, date string) error {
	if c == nil || c.client == nil {
		return nil
	}

	pattern := fmt.Sprintf("slots:%d:*:%s", salonID, date)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("%w: keys: %v", ErrCacheUnavailable, err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
	}

	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
