// Package market 行情数据应用服务
package market

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/service"
	"finance-assistant-api/internal/infrastructure/marketdata"
	"finance-assistant-api/internal/infrastructure/persistence/redis"
	apperrors "finance-assistant-api/pkg/errors"
)

var tracer = otel.Tracer("application.market")

const defaultCacheTTL = 60 * time.Second

// Service 行情数据服务：统一走数据源链 + Redis 缓存。
type Service struct {
	chain    *marketdata.Chain
	cache    *redis.Cache
	resolver *service.SymbolResolver
	ttl      time.Duration
}

// NewService 创建行情服务
func NewService(chain *marketdata.Chain, cache *redis.Cache, resolver *service.SymbolResolver, cfg *config.Config) *Service {
	ttl := defaultCacheTTL
	if cfg != nil && cfg.Cache.TTL > 0 {
		ttl = cfg.Cache.TTL
	}
	return &Service{
		chain:    chain,
		cache:    cache,
		resolver: resolver,
		ttl:      ttl,
	}
}

// ResolveSymbol 将公司名称或代码规范化为标的代码
func (s *Service) ResolveSymbol(input string) (string, error) {
	symbol := s.resolver.Resolve(input)
	if symbol == "" {
		return "", apperrors.New(apperrors.CodeSymbolUnknown, "unknown symbol").WithDetail(input)
	}
	return symbol, nil
}

// GetQuote 获取实时报价（缓存优先）
func (s *Service) GetQuote(ctx context.Context, symbolInput string) (*entity.Quote, error) {
	symbol, err := s.ResolveSymbol(symbolInput)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "market.GetQuote",
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	var quote entity.Quote
	hit, err := s.loadCached(ctx, redis.BuildQuoteKey(symbol), &quote, func() (interface{}, error) {
		return s.chain.Quote(ctx, symbol)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if hit {
		quote.Source = entity.SourceCache
	}
	return &quote, nil
}

// GetQuotes 批量获取报价，单个标的失败不影响其余
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []*entity.Quote {
	quotes := make([]*entity.Quote, 0, len(symbols))
	for _, sym := range symbols {
		q, err := s.GetQuote(ctx, sym)
		if err != nil {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes
}

// GetOverview 获取公司概况
func (s *Service) GetOverview(ctx context.Context, symbolInput string) (*entity.CompanyOverview, error) {
	symbol, err := s.ResolveSymbol(symbolInput)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "market.GetOverview",
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	var overview entity.CompanyOverview
	// 概况变化缓慢，缓存周期放大
	_, err = s.loadCachedTTL(ctx, redis.BuildOverviewKey(symbol), s.ttl*10, &overview, func() (interface{}, error) {
		return s.chain.Overview(ctx, symbol)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &overview, nil
}

// GetEarnings 获取公司季度财报
func (s *Service) GetEarnings(ctx context.Context, symbolInput string) (*entity.Earnings, error) {
	symbol, err := s.ResolveSymbol(symbolInput)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "market.GetEarnings",
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	var earnings entity.Earnings
	_, err = s.loadCachedTTL(ctx, redis.BuildEarningsKey(symbol), s.ttl*10, &earnings, func() (interface{}, error) {
		return s.chain.QuarterlyEarnings(ctx, symbol)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &earnings, nil
}

// GetSectorPerformance 获取行业涨跌幅
func (s *Service) GetSectorPerformance(ctx context.Context) ([]entity.SectorPerformance, error) {
	ctx, span := tracer.Start(ctx, "market.GetSectorPerformance")
	defer span.End()

	var sectors []entity.SectorPerformance
	_, err := s.loadCached(ctx, redis.BuildSectorKey(), &sectors, func() (interface{}, error) {
		return s.chain.SectorPerformance(ctx)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return sectors, nil
}

// GetMarketSummary 获取市场概况（主要指数 + 行业）
func (s *Service) GetMarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	ctx, span := tracer.Start(ctx, "market.GetMarketSummary")
	defer span.End()

	var summary entity.MarketSummary
	hit, err := s.loadCached(ctx, redis.BuildSummaryKey(), &summary, func() (interface{}, error) {
		return s.chain.MarketSummary(ctx)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if hit {
		summary.Source = entity.SourceCache
	}
	return &summary, nil
}

// GetEarningsCalendar 获取财报日历
func (s *Service) GetEarningsCalendar(ctx context.Context) ([]entity.EarningsEvent, error) {
	ctx, span := tracer.Start(ctx, "market.GetEarningsCalendar")
	defer span.End()

	events, err := s.chain.EarningsCalendar(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return events, nil
}

// GetEarningsSurprises 获取财报超预期记录
func (s *Service) GetEarningsSurprises(ctx context.Context) ([]entity.EarningsSurprise, error) {
	ctx, span := tracer.Start(ctx, "market.GetEarningsSurprises")
	defer span.End()

	surprises, err := s.chain.EarningsSurprises(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return surprises, nil
}

// ExtractSymbols 从查询文本中提取标的代码
func (s *Service) ExtractSymbols(query string) []string {
	return s.resolver.ExtractSymbols(query)
}

func (s *Service) loadCached(ctx context.Context, key string, dst interface{}, loader func() (interface{}, error)) (bool, error) {
	return s.loadCachedTTL(ctx, key, s.ttl, dst, loader)
}

// loadCachedTTL 缓存未配置时直接回源。返回值标记是否命中缓存。
func (s *Service) loadCachedTTL(ctx context.Context, key string, ttl time.Duration, dst interface{}, loader func() (interface{}, error)) (bool, error) {
	if s.cache == nil {
		v, err := loader()
		if err != nil {
			return false, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return false, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to marshal market data")
		}
		return false, json.Unmarshal(data, dst)
	}

	data, hit, err := s.cache.GetOrLoadSafe(ctx, key, ttl, loader)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode cached market data").WithDetail(key)
	}
	return hit, nil
}
