// Package redis 提供 Redis 缓存实现
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"finance-assistant-api/pkg/metrics"
)

var cacheTracer = otel.Tracer("redis.cache")

// Cache 缓存服务
type Cache struct {
	client *Client
	group  singleflight.Group
}

// NewCache 创建缓存服务
func NewCache(client *Client) *Cache {
	return &Cache{
		client: client,
	}
}

// Get 获取缓存值
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.Get",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.Bool("cache.hit", false))
			metrics.CacheMissesTotal.WithLabelValues("redis").Inc()
			return nil, err
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
	return val, nil
}

// Set 设置缓存值
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.ttl_ms", ttl.Milliseconds()),
		))
	defer span.End()

	bytes, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.client.rdb.Set(ctx, key, bytes, ttl).Err()
}

// GetOrLoad Read-Through 缓存模式
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoad",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	// 尝试从缓存获取
	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
		return val, nil
	}

	if err != redis.Nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))
	metrics.CacheMissesTotal.WithLabelValues("redis").Inc()

	// 缓存未命中，加载数据
	data, err := loader()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 序列化并缓存
	bytes, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := c.client.rdb.Set(ctx, key, bytes, ttl).Err(); err != nil {
		// 缓存写入失败不影响返回结果
		span.RecordError(err)
	}

	return bytes, nil
}

// GetOrLoadSafe 使用 singleflight 防止缓存击穿。
// 第二个返回值标记结果是否来自缓存，供上层回写 source 归属。
func (c *Cache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, bool, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoadSafe",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	// 尝试从缓存获取
	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
		return val, true, nil
	}

	if err != redis.Nil {
		span.RecordError(err)
		return nil, false, err
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))
	metrics.CacheMissesTotal.WithLabelValues("redis").Inc()

	// 使用 singleflight 合并并发请求
	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// 再次检查缓存（可能已被其他请求填充）
		val, err := c.client.rdb.Get(ctx, key).Bytes()
		if err == nil {
			return val, nil
		}

		data, err := loader()
		if err != nil {
			return nil, err
		}

		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := c.client.rdb.Set(ctx, key, bytes, ttl).Err(); err != nil {
			// 缓存写入失败不影响返回结果
		}

		return bytes, nil
	})

	span.SetAttributes(attribute.Bool("cache.shared", shared))

	if err != nil {
		span.RecordError(err)
		return nil, false, err
	}

	return result.([]byte), false, nil
}

// Delete 删除缓存
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	ctx, span := cacheTracer.Start(ctx, "cache.Delete",
		trace.WithAttributes(attribute.Int("cache.key_count", len(keys))))
	defer span.End()

	return c.client.rdb.Del(ctx, keys...).Err()
}

// InvalidatePattern 按模式使缓存失效
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) error {
	ctx, span := cacheTracer.Start(ctx, "cache.InvalidatePattern",
		trace.WithAttributes(attribute.String("cache.pattern", pattern)))
	defer span.End()

	iter := c.client.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return err
	}

	if len(keys) > 0 {
		span.SetAttributes(attribute.Int("cache.invalidated_count", len(keys)))
		return c.client.rdb.Del(ctx, keys...).Err()
	}

	return nil
}

// InvalidateSymbol 使某个标的的行情缓存失效
func (c *Cache) InvalidateSymbol(ctx context.Context, symbol string) error {
	pattern := fmt.Sprintf("market:*:%s", symbol)
	return c.InvalidatePattern(ctx, pattern)
}

// InvalidateNews 使新闻缓存失效
func (c *Cache) InvalidateNews(ctx context.Context) error {
	return c.InvalidatePattern(ctx, "news:*")
}

// BuildQuoteKey 构建行情缓存键
func BuildQuoteKey(symbol string) string {
	return fmt.Sprintf("market:quote:%s", symbol)
}

// BuildOverviewKey 构建公司概况缓存键
func BuildOverviewKey(symbol string) string {
	return fmt.Sprintf("market:overview:%s", symbol)
}

// BuildEarningsKey 构建财报缓存键
func BuildEarningsKey(symbol string) string {
	return fmt.Sprintf("market:earnings:%s", symbol)
}

// BuildNewsKey 构建新闻缓存键
func BuildNewsKey(symbol string, limit int) string {
	if symbol == "" {
		return fmt.Sprintf("news:latest:%d", limit)
	}
	return fmt.Sprintf("news:symbol:%s:%d", symbol, limit)
}

// BuildFilingsKey 构建申报文件缓存键。
// limit 参与键名，避免小 limit 请求污染大 limit 请求的缓存。
func BuildFilingsKey(symbol string, limit int) string {
	return fmt.Sprintf("filings:%s:%d", symbol, limit)
}

// BuildSectorKey 构建板块表现缓存键
func BuildSectorKey() string {
	return "market:sectors"
}

// BuildSummaryKey 构建大盘摘要缓存键
func BuildSummaryKey() string {
	return "market:summary"
}
