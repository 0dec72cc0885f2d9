package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
	"finance-assistant-api/pkg/metrics"
	"finance-assistant-api/pkg/utils"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// AlphaVantageProvider Alpha Vantage 实时行情数据源
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryLimit int
	backoff    utils.Backoff
}

// NewAlphaVantageProvider 创建 Alpha Vantage 数据源。
// 免费额度为 5 req/min，通过令牌桶限制对上游的请求速率。
func NewAlphaVantageProvider(cfg *config.MarketDataConfig) *AlphaVantageProvider {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 5.0 / 60
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &AlphaVantageProvider{
		apiKey:     cfg.AlphaVantageAPIKey,
		baseURL:    alphaVantageBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		retryLimit: cfg.RetryLimit,
		backoff: utils.Backoff{
			Initial:    cfg.RetryBackoff.Initial,
			Max:        cfg.RetryBackoff.Max,
			Multiplier: cfg.RetryBackoff.Multiplier,
			Jitter:     true,
		},
	}
}

var _ Provider = (*AlphaVantageProvider)(nil)

// Name 数据源标识
func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

// Enabled API Key 未配置时数据源不可用
func (p *AlphaVantageProvider) Enabled() bool {
	return p.apiKey != ""
}

// fetch 带限速与重试的上游请求，返回原始 JSON
func (p *AlphaVantageProvider) fetch(ctx context.Context, operation string, params url.Values) ([]byte, error) {
	if !p.Enabled() {
		return nil, apperrors.New(apperrors.CodeProviderError, "alpha vantage api key not configured")
	}

	params.Set("apikey", p.apiKey)
	reqURL := p.baseURL + "?" + params.Encode()

	retries := p.retryLimit
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "retry").Inc()
			if err := utils.SleepContext(ctx, p.backoff.Next(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := p.doRequest(ctx, operation, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		logger.Warn(ctx, "alpha vantage request failed",
			"operation", operation, "attempt", attempt, "error", err)
	}

	return nil, lastErr
}

func (p *AlphaVantageProvider) doRequest(ctx context.Context, operation, reqURL string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.DataSourceRequestDuration.WithLabelValues(p.Name(), operation).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "alpha vantage request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "error").Inc()
		return nil, apperrors.New(apperrors.CodeDataSourceError,
			fmt.Sprintf("alpha vantage returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "error").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// 额度耗尽时上游返回 200 + Note 字段
	var apiErr struct {
		Note         string `json:"Note"`
		Information  string `json:"Information"`
		ErrorMessage string `json:"Error Message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Note != "" || apiErr.Information != "" {
			metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "throttled").Inc()
			return nil, apperrors.New(apperrors.CodeDataSourceThrottle, "alpha vantage rate limit reached")
		}
		if apiErr.ErrorMessage != "" {
			metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "error").Inc()
			return nil, apperrors.New(apperrors.CodeDataSourceError, apiErr.ErrorMessage)
		}
	}

	metrics.DataSourceRequestsTotal.WithLabelValues(p.Name(), operation, "success").Inc()
	return body, nil
}

// Quote 获取实时报价（GLOBAL_QUOTE）
func (p *AlphaVantageProvider) Quote(ctx context.Context, symbol string) (*entity.Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)

	body, err := p.fetch(ctx, "quote", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "failed to parse quote response")
	}
	if len(payload.GlobalQuote) == 0 {
		return nil, apperrors.New(apperrors.CodeQuoteUnavailable, "quote unavailable").WithDetail(symbol)
	}

	price := parseFloat(payload.GlobalQuote["05. price"])
	change := parseFloat(payload.GlobalQuote["09. change"])
	changePercent := parsePercent(payload.GlobalQuote["10. change percent"])
	volume, _ := strconv.ParseInt(payload.GlobalQuote["06. volume"], 10, 64)

	return &entity.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		Currency:      "USD",
		Source:        entity.SourceLive,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Overview 获取公司概况（OVERVIEW）
func (p *AlphaVantageProvider) Overview(ctx context.Context, symbol string) (*entity.CompanyOverview, error) {
	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)

	body, err := p.fetch(ctx, "overview", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Symbol            string `json:"Symbol"`
		Name              string `json:"Name"`
		Description       string `json:"Description"`
		Exchange          string `json:"Exchange"`
		Currency          string `json:"Currency"`
		Country           string `json:"Country"`
		Sector            string `json:"Sector"`
		Industry          string `json:"Industry"`
		FullTimeEmployees string `json:"FullTimeEmployees"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "failed to parse overview response")
	}
	if payload.Symbol == "" {
		return nil, apperrors.New(apperrors.CodeDataSourceError, "empty overview response").WithDetail(symbol)
	}

	employees, _ := strconv.Atoi(payload.FullTimeEmployees)

	return &entity.CompanyOverview{
		Symbol:      payload.Symbol,
		Name:        payload.Name,
		Description: payload.Description,
		Exchange:    payload.Exchange,
		Currency:    payload.Currency,
		Country:     payload.Country,
		Sector:      payload.Sector,
		Industry:    payload.Industry,
		Employees:   employees,
	}, nil
}

// QuarterlyEarnings 获取季度财报（EARNINGS）
func (p *AlphaVantageProvider) QuarterlyEarnings(ctx context.Context, symbol string) (*entity.Earnings, error) {
	params := url.Values{}
	params.Set("function", "EARNINGS")
	params.Set("symbol", symbol)

	body, err := p.fetch(ctx, "earnings", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Symbol            string `json:"symbol"`
		QuarterlyEarnings []struct {
			FiscalDateEnding   string `json:"fiscalDateEnding"`
			ReportedEPS        string `json:"reportedEPS"`
			EstimatedEPS       string `json:"estimatedEPS"`
			Surprise           string `json:"surprise"`
			SurprisePercentage string `json:"surprisePercentage"`
		} `json:"quarterlyEarnings"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "failed to parse earnings response")
	}
	if payload.Symbol == "" {
		return nil, apperrors.New(apperrors.CodeDataSourceError, "empty earnings response").WithDetail(symbol)
	}

	// 只保留最近四个季度
	reports := payload.QuarterlyEarnings
	if len(reports) > 4 {
		reports = reports[:4]
	}

	quarterly := make([]entity.EarningsReport, 0, len(reports))
	for i, r := range reports {
		quarterly = append(quarterly, entity.EarningsReport{
			Date:            r.FiscalDateEnding,
			Quarter:         fmt.Sprintf("Q%d", (4-i)%4+1),
			ExpectedEPS:     parseFloat(r.EstimatedEPS),
			ActualEPS:       parseFloat(r.ReportedEPS),
			Surprise:        parseFloat(r.Surprise),
			SurprisePercent: parseFloat(r.SurprisePercentage),
		})
	}

	return &entity.Earnings{
		Symbol:    payload.Symbol,
		Quarterly: quarterly,
	}, nil
}

// SectorPerformance 获取行业板块实时涨跌幅（SECTOR）
func (p *AlphaVantageProvider) SectorPerformance(ctx context.Context) ([]entity.SectorPerformance, error) {
	params := url.Values{}
	params.Set("function", "SECTOR")

	body, err := p.fetch(ctx, "sectors", params)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "failed to parse sector response")
	}

	raw, ok := payload["Rank A: Real-Time Performance"]
	if !ok {
		return nil, apperrors.New(apperrors.CodeDataSourceError, "sector performance missing in response")
	}

	var performance map[string]string
	if err := json.Unmarshal(raw, &performance); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDataSourceError, "failed to parse sector performance")
	}

	sectors := make([]entity.SectorPerformance, 0, len(performance))
	for sector, pct := range performance {
		sectors = append(sectors, entity.SectorPerformance{
			Sector:        sector,
			ChangePercent: parsePercent(pct),
		})
	}
	return sectors, nil
}

// MarketSummary Alpha Vantage 无大盘摘要接口
func (p *AlphaVantageProvider) MarketSummary(ctx context.Context) (*entity.MarketSummary, error) {
	return nil, ErrUnsupported
}

// EarningsCalendar 财报日历需要付费接口，这里不支持
func (p *AlphaVantageProvider) EarningsCalendar(ctx context.Context) ([]entity.EarningsEvent, error) {
	return nil, ErrUnsupported
}

// EarningsSurprises 超预期榜单由本地数据承担
func (p *AlphaVantageProvider) EarningsSurprises(ctx context.Context) ([]entity.EarningsSurprise, error) {
	return nil, ErrUnsupported
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parsePercent(s string) float64 {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}
