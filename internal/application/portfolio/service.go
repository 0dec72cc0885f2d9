// Package portfolio 投资组合应用服务
package portfolio

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
	apperrors "finance-assistant-api/pkg/errors"
)

var tracer = otel.Tracer("application.portfolio")

// Service 投资组合服务：持仓查询与区域/行业敞口计算。
type Service struct {
	repo repository.HoldingRepository
}

// NewService 创建投资组合服务
func NewService(repo repository.HoldingRepository) *Service {
	return &Service{repo: repo}
}

// GetExposure 计算投资组合敞口。region/sector 非空时对持仓过滤，
// FilteredPercentage 表示过滤后持仓占总市值的比例。
func (s *Service) GetExposure(ctx context.Context, region, sector string) (*entity.PortfolioExposure, error) {
	region = strings.TrimSpace(region)
	sector = strings.TrimSpace(sector)

	ctx, span := tracer.Start(ctx, "portfolio.GetExposure",
		trace.WithAttributes(
			attribute.String("portfolio.region", region),
			attribute.String("portfolio.sector", sector),
		))
	defer span.End()

	all, err := s.repo.List(ctx, nil)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list holdings")
	}

	totalValue := 0.0
	for _, h := range all {
		totalValue += h.Value
	}

	filtered := make([]*entity.Holding, 0, len(all))
	filteredValue := 0.0
	for _, h := range all {
		if region != "" && !strings.EqualFold(h.Region, region) {
			continue
		}
		if sector != "" && !strings.EqualFold(h.Sector, sector) {
			continue
		}
		filtered = append(filtered, h)
		filteredValue += h.Value
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Value > filtered[j].Value
	})

	holdings := make([]entity.Holding, 0, len(filtered))
	for _, h := range filtered {
		cp := *h
		if totalValue > 0 {
			cp.Weight = round2(cp.Value / totalValue * 100)
		}
		holdings = append(holdings, cp)
	}

	exposure := &entity.PortfolioExposure{
		Holdings:         holdings,
		TotalValue:       round2(totalValue),
		FilteredValue:    round2(filteredValue),
		RegionAllocation: allocate(filtered, filteredValue, func(h *entity.Holding) string { return h.Region }),
		SectorAllocation: allocate(filtered, filteredValue, func(h *entity.Holding) string { return h.Sector }),
		Timestamp:        time.Now().UTC(),
	}
	if totalValue > 0 {
		exposure.FilteredPercentage = round2(filteredValue / totalValue * 100)
	}
	return exposure, nil
}

// TopHoldings 按市值取前 n 个持仓
func (s *Service) TopHoldings(ctx context.Context, n int) ([]entity.Holding, error) {
	if n <= 0 {
		n = 5
	}
	exposure, err := s.GetExposure(ctx, "", "")
	if err != nil {
		return nil, err
	}
	if len(exposure.Holdings) > n {
		return exposure.Holdings[:n], nil
	}
	return exposure.Holdings, nil
}

// ListHoldings 列出全部持仓
func (s *Service) ListHoldings(ctx context.Context) ([]*entity.Holding, error) {
	holdings, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list holdings")
	}
	return holdings, nil
}

// UpsertHolding 写入或更新持仓
func (s *Service) UpsertHolding(ctx context.Context, holding *entity.Holding) error {
	if holding == nil || strings.TrimSpace(holding.Symbol) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "holding symbol is required")
	}
	holding.Symbol = strings.ToUpper(strings.TrimSpace(holding.Symbol))
	if err := s.repo.Upsert(ctx, holding); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to upsert holding").WithDetail(holding.Symbol)
	}
	return nil
}

// allocate 按 key 聚合市值并折算为百分比（总和约为 100）。
func allocate(holdings []*entity.Holding, total float64, key func(*entity.Holding) string) []entity.Allocation {
	if total <= 0 || len(holdings) == 0 {
		return nil
	}

	sums := make(map[string]float64)
	for _, h := range holdings {
		k := key(h)
		if k == "" {
			k = "Unknown"
		}
		sums[k] += h.Value
	}

	out := make([]entity.Allocation, 0, len(sums))
	for k, v := range sums {
		out = append(out, entity.Allocation{
			Key:     k,
			Value:   round2(v),
			Percent: round2(v / total * 100),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
