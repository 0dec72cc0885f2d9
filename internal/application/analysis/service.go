// Package analysis 财报与市场数据分析服务
package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/application/market"
	"finance-assistant-api/internal/domain/entity"
)

var tracer = otel.Tracer("application.analysis")

const dateLayout = "2006-01-02"

// SectorStats 单一行业的财报统计
type SectorStats struct {
	Sector          string  `json:"sector"`
	Count           int     `json:"count"`
	Positive        int     `json:"positive"`
	Negative        int     `json:"negative"`
	BeatRate        float64 `json:"beat_rate"`
	AverageSurprise float64 `json:"average_surprise"`
}

// EarningsAnalysis 财报超预期分析结果
type EarningsAnalysis struct {
	Total           int                       `json:"total_surprises"`
	Positive        int                       `json:"positive_surprises"`
	Negative        int                       `json:"negative_surprises"`
	BeatRate        float64                   `json:"beat_rate"`
	AverageSurprise float64                   `json:"average_surprise"`
	TopBeats        []entity.EarningsSurprise `json:"top_beats"`
	TopMisses       []entity.EarningsSurprise `json:"top_misses"`
	SectorStats     []SectorStats             `json:"sector_stats"`
	KeyInsights     []string                  `json:"key_insights"`
	FocusSector     string                    `json:"focus_sector,omitempty"`
	Surprises       []entity.EarningsSurprise `json:"surprises"`
}

// Service 分析服务：基于行情服务输出计算财报统计。
type Service struct {
	market *market.Service
}

// NewService 创建分析服务
func NewService(marketSvc *market.Service) *Service {
	return &Service{market: marketSvc}
}

// EarningsSurprises 分析财报超预期记录。
// days > 0 时仅统计最近 N 天；sector 非空时仅统计该行业。
func (s *Service) EarningsSurprises(ctx context.Context, days int, sector string) (*EarningsAnalysis, error) {
	sector = strings.TrimSpace(sector)

	ctx, span := tracer.Start(ctx, "analysis.EarningsSurprises",
		trace.WithAttributes(
			attribute.Int("analysis.days", days),
			attribute.String("analysis.sector", sector),
		))
	defer span.End()

	surprises, err := s.market.GetEarningsSurprises(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	filtered := filterSurprises(surprises, days, sector)
	result := Analyze(filtered)
	result.FocusSector = sector
	return result, nil
}

// UpcomingEarnings 返回未来 N 天内的财报日历条目
func (s *Service) UpcomingEarnings(ctx context.Context, days int) ([]entity.EarningsEvent, error) {
	if days <= 0 {
		days = 14
	}

	ctx, span := tracer.Start(ctx, "analysis.UpcomingEarnings",
		trace.WithAttributes(attribute.Int("analysis.days", days)))
	defer span.End()

	events, err := s.market.GetEarningsCalendar(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	cutoff := now.AddDate(0, 0, days)

	out := make([]entity.EarningsEvent, 0, len(events))
	for _, e := range events {
		d, err := time.Parse(dateLayout, e.ReportDate)
		if err != nil {
			continue
		}
		if !d.Before(now) && !d.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportDate < out[j].ReportDate
	})
	return out, nil
}

// Analyze 对给定的超预期记录计算统计指标
func Analyze(surprises []entity.EarningsSurprise) *EarningsAnalysis {
	result := &EarningsAnalysis{
		Surprises: surprises,
	}
	result.Total = len(surprises)
	if result.Total == 0 {
		return result
	}

	sumSurprise := 0.0
	bySector := make(map[string]*SectorStats)
	for _, sp := range surprises {
		sumSurprise += sp.SurprisePercent
		if sp.SurprisePercent > 0 {
			result.Positive++
		} else {
			result.Negative++
		}

		sec := sp.Sector
		if sec == "" {
			sec = "Unknown"
		}
		stats, ok := bySector[sec]
		if !ok {
			stats = &SectorStats{Sector: sec}
			bySector[sec] = stats
		}
		stats.Count++
		if sp.SurprisePercent > 0 {
			stats.Positive++
		} else {
			stats.Negative++
		}
		stats.AverageSurprise += sp.SurprisePercent
	}

	result.BeatRate = round2(float64(result.Positive) / float64(result.Total) * 100)
	result.AverageSurprise = round2(sumSurprise / float64(result.Total))

	for _, stats := range bySector {
		stats.AverageSurprise = round2(stats.AverageSurprise / float64(stats.Count))
		stats.BeatRate = round2(float64(stats.Positive) / float64(stats.Count) * 100)
		result.SectorStats = append(result.SectorStats, *stats)
	}
	sort.Slice(result.SectorStats, func(i, j int) bool {
		return result.SectorStats[i].Sector < result.SectorStats[j].Sector
	})

	result.TopBeats = topN(surprises, 5, func(a, b entity.EarningsSurprise) bool {
		return a.SurprisePercent > b.SurprisePercent
	}, func(sp entity.EarningsSurprise) bool { return sp.SurprisePercent > 0 })

	result.TopMisses = topN(surprises, 5, func(a, b entity.EarningsSurprise) bool {
		return a.SurprisePercent < b.SurprisePercent
	}, func(sp entity.EarningsSurprise) bool { return sp.SurprisePercent < 0 })

	result.KeyInsights = buildInsights(result)
	return result
}

func filterSurprises(surprises []entity.EarningsSurprise, days int, sector string) []entity.EarningsSurprise {
	out := make([]entity.EarningsSurprise, 0, len(surprises))
	var cutoff time.Time
	if days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -days)
	}

	for _, sp := range surprises {
		if sector != "" && !strings.EqualFold(sp.Sector, sector) {
			continue
		}
		if days > 0 {
			d, err := time.Parse(dateLayout, sp.Date)
			if err == nil && d.Before(cutoff) {
				continue
			}
		}
		out = append(out, sp)
	}
	return out
}

func topN(surprises []entity.EarningsSurprise, n int, less func(a, b entity.EarningsSurprise) bool, keep func(entity.EarningsSurprise) bool) []entity.EarningsSurprise {
	selected := make([]entity.EarningsSurprise, 0, len(surprises))
	for _, sp := range surprises {
		if keep(sp) {
			selected = append(selected, sp)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return less(selected[i], selected[j])
	})
	if len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

func buildInsights(a *EarningsAnalysis) []string {
	insights := make([]string, 0, 3)
	if a.Total > 0 {
		insights = append(insights, fmt.Sprintf("%.1f%% of companies beat earnings expectations.", a.BeatRate))
	}
	if len(a.TopBeats) > 0 {
		b := a.TopBeats[0]
		insights = append(insights, fmt.Sprintf("%s had the largest positive surprise at %.2f%%.", displayName(b), b.SurprisePercent))
	}
	if len(a.TopMisses) > 0 {
		m := a.TopMisses[0]
		insights = append(insights, fmt.Sprintf("%s had the largest negative surprise at %.2f%%.", displayName(m), m.SurprisePercent))
	}
	return insights
}

func displayName(sp entity.EarningsSurprise) string {
	if sp.Name != "" {
		return sp.Name
	}
	return sp.Symbol
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
