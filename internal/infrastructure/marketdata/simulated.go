package marketdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/service"
)

// SimulatedProvider 确定性模拟数据源。
// 同一标的代码在任意环境下返回相同的报价，便于离线开发与测试。
type SimulatedProvider struct{}

// NewSimulatedProvider 创建模拟数据源
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

var _ Provider = (*SimulatedProvider)(nil)

// Name 数据源标识
func (p *SimulatedProvider) Name() string {
	return "simulated"
}

// charSum 标的代码字符值之和
func charSum(symbol string) int {
	sum := 0
	for _, c := range symbol {
		sum += int(c)
	}
	return sum
}

// weightedSum 按位置加权的字符值之和，用于派生涨跌幅
func weightedSum(symbol string) int {
	sum := 0
	for i, c := range symbol {
		sum += int(c) * (i + 1)
	}
	return sum
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote 生成确定性报价。
// 基准价取字符和模 1000，涨跌取加权字符和模 100 再映射到 [-5.0, 4.9]。
func (p *SimulatedProvider) Quote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is empty")
	}

	if service.IsIndex(symbol) {
		iq := p.indexQuote(symbol)
		return &entity.Quote{
			Symbol:        iq.Symbol,
			Price:         iq.Price,
			Change:        iq.Change,
			ChangePercent: iq.ChangePercent,
			Volume:        int64(weightedSum(symbol)*7919)%1_000_000_000 + 10_000_000,
			Currency:      "USD",
			Source:        entity.SourceSimulated,
			Timestamp:     time.Now().UTC(),
		}, nil
	}

	base := float64(charSum(symbol) % 1000)
	if base == 0 {
		base = 100
	}
	change := float64(weightedSum(symbol)%100-50) / 10

	changePercent := 0.0
	if base != 0 {
		changePercent = change / base * 100
	}

	return &entity.Quote{
		Symbol:        symbol,
		Price:         round2(base + change),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
		Volume:        int64(weightedSum(symbol)*7919)%10_000_000 + 100_000,
		Currency:      "USD",
		Source:        entity.SourceSimulated,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// indexQuote 指数报价在基准价附近做确定性偏移
func (p *SimulatedProvider) indexQuote(symbol string) entity.IndexQuote {
	base, ok := indexBases[symbol]
	if !ok {
		base = indexBase{Base: 10000, PriceSpread: 300, ChangeSpread: 100}
	}

	priceOffset := float64(charSum(symbol)%int(2*base.PriceSpread)) - base.PriceSpread
	change := float64(weightedSum(symbol)%int(2*base.ChangeSpread)) - base.ChangeSpread
	price := base.Base + priceOffset

	changePercent := 0.0
	if price != 0 {
		changePercent = change / price * 100
	}

	return entity.IndexQuote{
		Symbol:        symbol,
		Name:          service.IndexName(symbol),
		Price:         round2(price),
		Change:        round2(change),
		ChangePercent: round2(changePercent),
	}
}

// Overview 返回内置公司概况，未知标的返回通用概况
func (p *SimulatedProvider) Overview(ctx context.Context, symbol string) (*entity.CompanyOverview, error) {
	if ov, ok := companyOverviews[symbol]; ok {
		result := ov
		return &result, nil
	}

	return &entity.CompanyOverview{
		Symbol:      symbol,
		Name:        fmt.Sprintf("%s Inc.", symbol),
		Description: fmt.Sprintf("Company with ticker symbol %s.", symbol),
		Exchange:    "NYSE",
		Currency:    "USD",
		Country:     "USA",
		Sector:      "Unknown",
		Industry:    "Unknown",
		Employees:   10000,
	}, nil
}

// QuarterlyEarnings 生成近四个季度的确定性财报。
// 预期 EPS 由字符和派生，实际值在 ±20% 内按季度确定性偏移。
func (p *SimulatedProvider) QuarterlyEarnings(ctx context.Context, symbol string) (*entity.Earnings, error) {
	expected := float64(charSum(symbol)%100) / 10
	if expected == 0 {
		expected = 1.0
	}

	now := time.Now().UTC()
	quarterly := make([]entity.EarningsReport, 0, 4)
	for i := 0; i < 4; i++ {
		factor := float64((weightedSum(symbol)+i*17)%41-20) / 100
		actual := expected * (1 + factor)
		surprise := actual - expected
		surprisePercent := surprise / expected * 100

		quarterly = append(quarterly, entity.EarningsReport{
			Date:            now.AddDate(0, 0, -i*90).Format("2006-01-02"),
			Quarter:         fmt.Sprintf("Q%d", (4-i)%4+1),
			ExpectedEPS:     round2(expected),
			ActualEPS:       round2(actual),
			Surprise:        round2(surprise),
			SurprisePercent: round2(surprisePercent),
		})
	}

	return &entity.Earnings{
		Symbol:    symbol,
		Quarterly: quarterly,
	}, nil
}

// SectorPerformance 生成各行业确定性涨跌幅，落在行业各自的区间内
func (p *SimulatedProvider) SectorPerformance(ctx context.Context) ([]entity.SectorPerformance, error) {
	sectors := make([]entity.SectorPerformance, 0, len(sectorRanges))
	for _, sr := range sectorRanges {
		span := int((sr.High - sr.Low) * 10)
		if span <= 0 {
			span = 1
		}
		change := sr.Low + float64(charSum(sr.Sector)%(span+1))/10
		sectors = append(sectors, entity.SectorPerformance{
			Sector:        sr.Sector,
			ChangePercent: round2(change),
		})
	}
	return sectors, nil
}

// MarketSummary 汇总主要指数与行业表现
func (p *SimulatedProvider) MarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	indices := make([]entity.IndexQuote, 0, len(indexBases))
	for _, symbol := range []string{"^DJI", "^GSPC", "^IXIC", "^N225", "^HSI"} {
		indices = append(indices, p.indexQuote(symbol))
	}

	sectors, err := p.SectorPerformance(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.MarketSummary{
		Timestamp: time.Now().UTC(),
		Indices:   indices,
		Sectors:   sectors,
		Source:    entity.SourceSimulated,
	}, nil
}

// EarningsCalendar 返回内置财报日历
func (p *SimulatedProvider) EarningsCalendar(ctx context.Context) ([]entity.EarningsEvent, error) {
	events := make([]entity.EarningsEvent, len(earningsCalendar))
	copy(events, earningsCalendar)
	return events, nil
}

// EarningsSurprises 返回内置财报超预期记录
func (p *SimulatedProvider) EarningsSurprises(ctx context.Context) ([]entity.EarningsSurprise, error) {
	surprises := make([]entity.EarningsSurprise, len(earningsSurprises))
	copy(surprises, earningsSurprises)
	return surprises, nil
}
