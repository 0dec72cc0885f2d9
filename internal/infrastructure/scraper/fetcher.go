// Package scraper 提供财经资讯抓取实现
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/temoto/robotstxt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
	"finance-assistant-api/pkg/metrics"
	"finance-assistant-api/pkg/utils"
)

var tracer = otel.Tracer("scraper")

// Fetcher 带限制的页面抓取器。
// 轮换 User-Agent、尊重 robots.txt、带页面级本地缓存与指数退避重试。
type Fetcher struct {
	httpClient    *http.Client
	userAgents    []string
	respectRobots bool
	retryLimit    int
	backoff       utils.Backoff

	// pageCache 缓存页面正文，robotsCache 按 host 缓存 robots.txt 解析结果
	pageCache   *gocache.Cache
	robotsCache *gocache.Cache

	// uaIndex 被多个请求 goroutine 并发递增，只做原子访问
	uaIndex atomic.Int64
}

// NewFetcher 创建抓取器
func NewFetcher(cfg *config.ScraperConfig) *Fetcher {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pageTTL := cfg.PageCacheTTL
	if pageTTL <= 0 {
		pageTTL = 10 * time.Minute
	}

	userAgents := cfg.UserAgents
	if len(userAgents) == 0 {
		userAgents = []string{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"}
	}

	return &Fetcher{
		httpClient:    &http.Client{Timeout: timeout},
		userAgents:    userAgents,
		respectRobots: cfg.RespectRobots,
		retryLimit:    cfg.RetryLimit,
		backoff: utils.Backoff{
			Initial:    cfg.RetryBackoff.Initial,
			Max:        cfg.RetryBackoff.Max,
			Multiplier: cfg.RetryBackoff.Multiplier,
			Jitter:     true,
		},
		pageCache:   gocache.New(pageTTL, 2*pageTTL),
		robotsCache: gocache.New(1*time.Hour, 2*time.Hour),
	}
}

// nextUserAgent 轮换 User-Agent
func (f *Fetcher) nextUserAgent() string {
	idx := f.uaIndex.Add(1) - 1
	return f.userAgents[int(idx)%len(f.userAgents)]
}

// allowed 检查 robots.txt 是否允许抓取
func (f *Fetcher) allowed(ctx context.Context, pageURL string) bool {
	if !f.respectRobots {
		return true
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}

	var group *robotstxt.Group
	if cached, ok := f.robotsCache.Get(u.Host); ok {
		group = cached.(*robotstxt.Group)
	} else {
		group = f.fetchRobotsGroup(ctx, u)
		f.robotsCache.Set(u.Host, group, gocache.DefaultExpiration)
	}

	if group == nil {
		// robots.txt 不可达时放行
		return true
	}
	return group.Test(u.Path)
}

func (f *Fetcher) fetchRobotsGroup(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", f.nextUserAgent())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return robots.FindGroup("*")
}

// Fetch 抓取页面并返回正文字节。
// 命中本地缓存直接返回，被 robots.txt 拒绝时返回 CodeScrapeBlocked。
func (f *Fetcher) Fetch(ctx context.Context, source, pageURL string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "scraper.Fetch",
		trace.WithAttributes(
			attribute.String("scrape.source", source),
			attribute.String("scrape.url", pageURL),
		))
	defer span.End()

	if cached, ok := f.pageCache.Get(pageURL); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.CacheHitsTotal.WithLabelValues("page").Inc()
		return cached.([]byte), nil
	}
	metrics.CacheMissesTotal.WithLabelValues("page").Inc()

	if !f.allowed(ctx, pageURL) {
		metrics.ScrapeAttemptsTotal.WithLabelValues(source, "blocked").Inc()
		return nil, apperrors.New(apperrors.CodeScrapeBlocked, "blocked by robots.txt").WithDetail(pageURL)
	}

	retries := f.retryLimit
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			metrics.ScrapeRetriesTotal.WithLabelValues(source).Inc()
			if err := utils.SleepContext(ctx, f.backoff.Next(attempt-1)); err != nil {
				return nil, err
			}
		}

		body, err := f.doFetch(ctx, source, pageURL)
		if err == nil {
			f.pageCache.Set(pageURL, body, gocache.DefaultExpiration)
			return body, nil
		}
		lastErr = err

		logger.Warn(ctx, "scrape attempt failed",
			"source", source, "url", pageURL, "attempt", attempt, "error", err)
	}

	span.RecordError(lastErr)
	return nil, lastErr
}

func (f *Fetcher) doFetch(ctx context.Context, source, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		metrics.ScrapeAttemptsTotal.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.ScrapeAttemptsTotal.WithLabelValues(source, "throttled").Inc()
		return nil, apperrors.New(apperrors.CodeDataSourceThrottle, "source throttled the request").WithDetail(pageURL)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ScrapeAttemptsTotal.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		metrics.ScrapeAttemptsTotal.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	metrics.ScrapeAttemptsTotal.WithLabelValues(source, "success").Inc()
	return body, nil
}
