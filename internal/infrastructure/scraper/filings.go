package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/pkg/logger"
)

// FilingsScraper 公司申报文件抓取器。
// 优先查询 SEC 全文检索接口，失败或无 API Key 时使用内置回退数据。
type FilingsScraper struct {
	fetcher *Fetcher
	apiKey  string
}

// NewFilingsScraper 创建申报文件抓取器
func NewFilingsScraper(fetcher *Fetcher, cfg *config.MarketDataConfig) *FilingsScraper {
	return &FilingsScraper{
		fetcher: fetcher,
		apiKey:  cfg.SECAPIKey,
	}
}

// FetchFilings 获取公司申报文件，filingType 非空时按类型过滤
func (s *FilingsScraper) FetchFilings(ctx context.Context, symbol, filingType string, limit int) []*entity.Filing {
	ctx, span := tracer.Start(ctx, "scraper.FetchFilings",
		trace.WithAttributes(
			attribute.String("scrape.symbol", symbol),
			attribute.String("scrape.filing_type", filingType),
		))
	defer span.End()

	if limit <= 0 {
		limit = 3
	}

	var filings []*entity.Filing
	if s.apiKey != "" {
		filings = s.fetchFromEDGAR(ctx, symbol)
	}

	if len(filings) == 0 {
		span.SetAttributes(attribute.Bool("scrape.fallback", true))
		filings = FallbackFilings(symbol)
	}

	if filingType != "" {
		filtered := filings[:0]
		for _, f := range filings {
			if strings.Contains(strings.ToUpper(f.Type), strings.ToUpper(filingType)) {
				filtered = append(filtered, f)
			}
		}
		filings = filtered
	}

	if len(filings) > limit {
		filings = filings[:limit]
	}

	span.SetAttributes(attribute.Int("scrape.filing_count", len(filings)))
	return filings
}

// fetchFromEDGAR 查询 SEC EDGAR 全文检索
func (s *FilingsScraper) fetchFromEDGAR(ctx context.Context, symbol string) []*entity.Filing {
	searchURL := fmt.Sprintf("https://efts.sec.gov/LATEST/search-index?q=%s&forms=10-K,10-Q,8-K", symbol)

	body, err := s.fetcher.Fetch(ctx, "sec_edgar", searchURL)
	if err != nil {
		logger.Warn(ctx, "sec edgar fetch failed", "symbol", symbol, "error", err)
		return nil
	}

	var payload struct {
		Hits struct {
			Hits []struct {
				Source struct {
					DisplayNames []string `json:"display_names"`
					FileType     string   `json:"file_type"`
					FileDate     string   `json:"file_date"`
					AccessionNo  string   `json:"accession_no"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn(ctx, "sec edgar response parse failed", "symbol", symbol, "error", err)
		return nil
	}

	now := time.Now().UTC()
	var filings []*entity.Filing
	for _, hit := range payload.Hits.Hits {
		src := hit.Source

		name := symbol
		if len(src.DisplayNames) > 0 {
			name = src.DisplayNames[0]
		}

		filedAt, err := time.Parse("2006-01-02", src.FileDate)
		if err != nil {
			filedAt = now
		}

		accession := strings.ReplaceAll(src.AccessionNo, "-", "")
		filings = append(filings, &entity.Filing{
			Symbol:    symbol,
			Title:     fmt.Sprintf("%s Form %s", name, src.FileType),
			URL:       fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s", accession),
			Type:      src.FileType,
			FiledAt:   filedAt,
			FetchedAt: now,
			Origin:    entity.SourceLive,
		})
	}
	return filings
}
