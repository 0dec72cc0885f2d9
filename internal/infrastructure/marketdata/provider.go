// Package marketdata 提供行情数据源接入层实现
package marketdata

import (
	"context"
	"errors"

	"finance-assistant-api/internal/domain/entity"
)

// ErrUnsupported 数据源不支持该操作
var ErrUnsupported = errors.New("operation not supported by this provider")

// Provider 行情数据源
type Provider interface {
	// Name 数据源标识（用于日志与指标）
	Name() string
	// Quote 获取实时报价
	Quote(ctx context.Context, symbol string) (*entity.Quote, error)
	// Overview 获取公司概况
	Overview(ctx context.Context, symbol string) (*entity.CompanyOverview, error)
	// QuarterlyEarnings 获取季度财报
	QuarterlyEarnings(ctx context.Context, symbol string) (*entity.Earnings, error)
	// SectorPerformance 获取行业板块涨跌幅
	SectorPerformance(ctx context.Context) ([]entity.SectorPerformance, error)
	// MarketSummary 获取大盘指数与板块摘要
	MarketSummary(ctx context.Context) (*entity.MarketSummary, error)
	// EarningsCalendar 获取未来财报日历
	EarningsCalendar(ctx context.Context) ([]entity.EarningsEvent, error)
	// EarningsSurprises 获取近期财报超预期记录
	EarningsSurprises(ctx context.Context) ([]entity.EarningsSurprise, error)
}
