package marketdata

import (
	"context"
	"errors"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/pkg/logger"
	"finance-assistant-api/pkg/metrics"
)

// Chain 数据源降级链。
// 依次尝试实时数据源，全部失败时落到模拟数据源，保证任何操作都有结果返回。
type Chain struct {
	useFallback bool
	live        []Provider
	simulated   *SimulatedProvider
}

// NewChain 创建数据源降级链。
// cfg.UseFallbackData 为 true 时跳过实时数据源，直接使用模拟数据。
func NewChain(cfg *config.MarketDataConfig, live []Provider, simulated *SimulatedProvider) *Chain {
	return &Chain{
		useFallback: cfg.UseFallbackData,
		live:        live,
		simulated:   simulated,
	}
}

var _ Provider = (*Chain)(nil)

// Name 数据源标识
func (c *Chain) Name() string {
	return "chain"
}

// resolve 依次尝试各实时数据源，失败时调用 fallback
func resolve[T any](ctx context.Context, c *Chain, operation string,
	call func(Provider) (T, error), fallback func() (T, error)) (T, error) {

	if !c.useFallback {
		for _, p := range c.live {
			if av, ok := p.(*AlphaVantageProvider); ok && !av.Enabled() {
				continue
			}

			result, err := call(p)
			if err == nil {
				return result, nil
			}
			if errors.Is(err, ErrUnsupported) {
				continue
			}

			logger.Warn(ctx, "live data source failed, falling back",
				"source", p.Name(), "operation", operation, "error", err)
			metrics.DataSourceFallbackTotal.WithLabelValues(p.Name(), operation).Inc()
		}
	}

	return fallback()
}

// Quote 获取报价，实时源不可用时返回模拟报价
func (c *Chain) Quote(ctx context.Context, symbol string) (*entity.Quote, error) {
	return resolve(ctx, c, "quote",
		func(p Provider) (*entity.Quote, error) { return p.Quote(ctx, symbol) },
		func() (*entity.Quote, error) { return c.simulated.Quote(ctx, symbol) },
	)
}

// Overview 获取公司概况
func (c *Chain) Overview(ctx context.Context, symbol string) (*entity.CompanyOverview, error) {
	return resolve(ctx, c, "overview",
		func(p Provider) (*entity.CompanyOverview, error) { return p.Overview(ctx, symbol) },
		func() (*entity.CompanyOverview, error) { return c.simulated.Overview(ctx, symbol) },
	)
}

// QuarterlyEarnings 获取季度财报
func (c *Chain) QuarterlyEarnings(ctx context.Context, symbol string) (*entity.Earnings, error) {
	return resolve(ctx, c, "earnings",
		func(p Provider) (*entity.Earnings, error) { return p.QuarterlyEarnings(ctx, symbol) },
		func() (*entity.Earnings, error) { return c.simulated.QuarterlyEarnings(ctx, symbol) },
	)
}

// SectorPerformance 获取行业板块涨跌幅
func (c *Chain) SectorPerformance(ctx context.Context) ([]entity.SectorPerformance, error) {
	return resolve(ctx, c, "sectors",
		func(p Provider) ([]entity.SectorPerformance, error) { return p.SectorPerformance(ctx) },
		func() ([]entity.SectorPerformance, error) { return c.simulated.SectorPerformance(ctx) },
	)
}

// MarketSummary 获取大盘摘要
func (c *Chain) MarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	return resolve(ctx, c, "summary",
		func(p Provider) (*entity.MarketSummary, error) { return p.MarketSummary(ctx) },
		func() (*entity.MarketSummary, error) { return c.simulated.MarketSummary(ctx) },
	)
}

// EarningsCalendar 获取财报日历
func (c *Chain) EarningsCalendar(ctx context.Context) ([]entity.EarningsEvent, error) {
	return resolve(ctx, c, "calendar",
		func(p Provider) ([]entity.EarningsEvent, error) { return p.EarningsCalendar(ctx) },
		func() ([]entity.EarningsEvent, error) { return c.simulated.EarningsCalendar(ctx) },
	)
}

// EarningsSurprises 获取财报超预期记录
func (c *Chain) EarningsSurprises(ctx context.Context) ([]entity.EarningsSurprise, error) {
	return resolve(ctx, c, "surprises",
		func(p Provider) ([]entity.EarningsSurprise, error) { return p.EarningsSurprises(ctx) },
		func() ([]entity.EarningsSurprise, error) { return c.simulated.EarningsSurprises(ctx) },
	)
}
