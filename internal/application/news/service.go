// Package news 财经资讯应用服务
package news

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
	"finance-assistant-api/internal/infrastructure/messaging"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
	"finance-assistant-api/internal/infrastructure/scraper"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
)

var tracer = otel.Tracer("application.news")

const (
	defaultLimit    = 5
	maxLimit        = 20
	defaultCacheTTL = 5 * time.Minute
)

// Service 资讯服务：缓存 → 抓取 → 归档，抓不到时回退内置数据。
type Service struct {
	scraper   *scraper.NewsScraper
	sentiment *scraper.SentimentAnalyzer
	repo      repository.NewsRepository
	cache     *redis.Cache
	producer  *messaging.Producer
	ttl       time.Duration
}

// NewService 创建资讯服务
func NewService(
	newsScraper *scraper.NewsScraper,
	sentiment *scraper.SentimentAnalyzer,
	repo repository.NewsRepository,
	cache *redis.Cache,
	producer *messaging.Producer,
	cfg *config.Config,
) *Service {
	ttl := defaultCacheTTL
	if cfg != nil && cfg.Cache.TTL > 0 {
		ttl = cfg.Cache.TTL
	}
	return &Service{
		scraper:   newsScraper,
		sentiment: sentiment,
		repo:      repo,
		cache:     cache,
		producer:  producer,
		ttl:       ttl,
	}
}

// Latest 获取最新资讯。query 可以是主题（"asia tech"）或标的代码。
func (s *Service) Latest(ctx context.Context, query, symbol string, limit int) ([]*entity.NewsArticle, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	query = strings.TrimSpace(query)
	symbol = strings.TrimSpace(symbol)

	ctx, span := tracer.Start(ctx, "news.Latest",
		trace.WithAttributes(
			attribute.String("news.query", query),
			attribute.String("symbol", symbol),
			attribute.Int("news.limit", limit),
		))
	defer span.End()

	effective := query
	if effective == "" {
		effective = symbol
	}
	if effective == "" {
		effective = "financial markets"
	}

	key := redis.BuildNewsKey(symbol, limit)
	if query != "" {
		key = key + ":" + strings.ReplaceAll(strings.ToLower(query), " ", "-")
	}

	var articles []*entity.NewsArticle
	hit, err := s.loadCached(ctx, key, &articles, func() (interface{}, error) {
		fetched := s.fetchAndArchive(ctx, effective, symbol, limit)
		return fetched, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeNewsUnavailable, "failed to load news")
	}
	if hit {
		markCachedOrigin(articles)
	}

	if symbol != "" {
		articles = filterBySymbol(articles, symbol, limit)
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// fetchAndArchive 抓取资讯并归档；抓取结果永不为空（内置回退数据兜底）。
func (s *Service) fetchAndArchive(ctx context.Context, query, symbol string, limit int) []*entity.NewsArticle {
	articles := s.scraper.FetchNews(ctx, query, limit)

	for _, a := range articles {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if symbol != "" && !a.MentionsSymbol(symbol) {
			a.Symbols = append(a.Symbols, symbol)
		}
	}

	if s.repo != nil {
		if err := s.repo.CreateBatch(ctx, articles); err != nil {
			logger.Warn(ctx, "failed to archive news articles", "error", err, "count", len(articles))
		}
	}

	if s.producer != nil {
		for _, a := range articles {
			sym := ""
			if len(a.Symbols) > 0 {
				sym = a.Symbols[0]
			}
			_, err := s.producer.PublishKnowledgeIndex(ctx, &messaging.KnowledgeIndexMessage{
				DocID:  a.ID,
				Topic:  "news",
				Symbol: sym,
				Text:   a.Title + "\n" + a.Summary,
			})
			if err != nil {
				logger.Warn(ctx, "failed to publish knowledge index job", "error", err, "doc_id", a.ID)
				break
			}
		}
	}
	return articles
}

// Refresh 强制刷新资讯（由后台任务调用），并失效相关缓存。
func (s *Service) Refresh(ctx context.Context, query, symbol string, limit int) ([]*entity.NewsArticle, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	effective := strings.TrimSpace(query)
	if effective == "" {
		effective = strings.TrimSpace(symbol)
	}
	if effective == "" {
		effective = "financial markets"
	}

	ctx, span := tracer.Start(ctx, "news.Refresh",
		trace.WithAttributes(attribute.String("news.query", effective)))
	defer span.End()

	articles := s.fetchAndArchive(ctx, effective, symbol, limit)

	if s.cache != nil {
		if err := s.cache.InvalidateNews(ctx); err != nil {
			logger.Warn(ctx, "failed to invalidate news cache", "error", err)
		}
	}
	return articles, nil
}

// Archive 按条件查询归档资讯
func (s *Service) Archive(ctx context.Context, filter *repository.NewsFilter, page, pageSize int) (*repository.PagedResult[*entity.NewsArticle], error) {
	if s.repo == nil {
		return nil, apperrors.New(apperrors.CodeNewsUnavailable, "news archive not configured")
	}
	return s.repo.List(ctx, filter, repository.NewPagination(page, pageSize))
}

// Sentiment 基于最新资讯的情绪分析
func (s *Service) Sentiment(ctx context.Context, query string) (*entity.SentimentReport, error) {
	articles, err := s.Latest(ctx, query, "", defaultLimit)
	if err != nil {
		return nil, err
	}
	return s.sentiment.Analyze(ctx, query, articles), nil
}

// PruneArchive 清理过期归档
func (s *Service) PruneArchive(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.DeleteOlderThan(ctx, time.Now().Add(-maxAge))
}

func (s *Service) loadCached(ctx context.Context, key string, dst interface{}, loader func() (interface{}, error)) (bool, error) {
	if s.cache == nil {
		v, err := loader()
		if err != nil {
			return false, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return false, err
		}
		return false, json.Unmarshal(data, dst)
	}

	data, hit, err := s.cache.GetOrLoadSafe(ctx, key, s.ttl, loader)
	if err != nil {
		return false, err
	}
	return hit, json.Unmarshal(data, dst)
}

// markCachedOrigin 标记缓存命中结果的来源归属
func markCachedOrigin(articles []*entity.NewsArticle) {
	for _, a := range articles {
		if a != nil {
			a.Origin = entity.SourceCache
		}
	}
}

func filterBySymbol(articles []*entity.NewsArticle, symbol string, limit int) []*entity.NewsArticle {
	out := make([]*entity.NewsArticle, 0, limit)
	for _, a := range articles {
		if a.MentionsSymbol(symbol) {
			out = append(out, a)
		}
	}
	// 过滤后为空时保留原始结果，避免无内容可答
	if len(out) == 0 {
		return articles
	}
	return out
}
