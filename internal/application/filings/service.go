// Package filings 监管申报文件应用服务
package filings

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
	"finance-assistant-api/internal/infrastructure/scraper"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
)

var tracer = otel.Tracer("application.filings")

const (
	defaultLimit    = 3
	defaultCacheTTL = 30 * time.Minute
)

// Service 申报文件服务：缓存 → EDGAR 抓取 → 回退数据，并归档到数据库。
type Service struct {
	scraper *scraper.FilingsScraper
	repo    repository.FilingRepository
	cache   *redis.Cache
	ttl     time.Duration
}

// NewService 创建申报文件服务
func NewService(filingsScraper *scraper.FilingsScraper, repo repository.FilingRepository, cache *redis.Cache, cfg *config.Config) *Service {
	ttl := defaultCacheTTL
	if cfg != nil && cfg.Cache.TTL > 0 {
		// 申报文件更新频率远低于行情
		ttl = cfg.Cache.TTL * 30
	}
	return &Service{
		scraper: filingsScraper,
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
	}
}

// GetFilings 获取某标的的申报文件
func (s *Service) GetFilings(ctx context.Context, symbol, filingType string, limit int) ([]*entity.Filing, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "symbol is required")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	ctx, span := tracer.Start(ctx, "filings.GetFilings",
		trace.WithAttributes(
			attribute.String("symbol", symbol),
			attribute.String("filings.type", filingType),
		))
	defer span.End()

	key := redis.BuildFilingsKey(symbol, limit)
	if filingType != "" {
		key = key + ":" + strings.ToLower(filingType)
	}

	var filings []*entity.Filing
	hit, err := s.loadCached(ctx, key, &filings, func() (interface{}, error) {
		fetched := s.scraper.FetchFilings(ctx, symbol, filingType, limit)
		s.archive(ctx, fetched)
		return fetched, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeFilingsUnavailable, "failed to load filings").WithDetail(symbol)
	}
	if hit {
		markCachedOrigin(filings)
	}

	if len(filings) > limit {
		filings = filings[:limit]
	}
	return filings, nil
}

// History 从归档库查询历史申报文件
func (s *Service) History(ctx context.Context, symbol string, limit int) ([]*entity.Filing, error) {
	if s.repo == nil {
		return nil, apperrors.New(apperrors.CodeFilingsUnavailable, "filings archive not configured")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "symbol is required")
	}
	return s.repo.ListBySymbol(ctx, symbol, limit)
}

func (s *Service) archive(ctx context.Context, filings []*entity.Filing) {
	if s.repo == nil {
		return
	}
	for _, f := range filings {
		if err := s.repo.Upsert(ctx, f); err != nil {
			logger.Warn(ctx, "failed to archive filing", "error", err, "symbol", f.Symbol, "url", f.URL)
		}
	}
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
func markCachedOrigin(filings []*entity.Filing) {
	for _, f := range filings {
		if f != nil {
			f.Origin = entity.SourceCache
		}
	}
}
