package scraper

import (
	"fmt"
	"strings"
	"time"

	"finance-assistant-api/internal/domain/entity"
)

// fallbackArticle 回退新闻条目，AgeHours 表示相对当前时间的小时差
type fallbackArticle struct {
	Title    string
	URL      string
	Source   string
	AgeHours int
	Summary  string
	Symbols  []string
}

// fallbackNews 所有抓取源均失败时使用的回退新闻
var fallbackNews = []fallbackArticle{
	{
		Title:    "Fed signals cautious approach to future rate cuts",
		URL:      "https://example.com/news/1",
		Source:   "Financial Times",
		AgeHours: 3,
		Summary:  "Federal Reserve officials indicated a measured approach to interest rate reductions.",
	},
	{
		Title:    "TSMC reports better-than-expected quarterly earnings",
		URL:      "https://example.com/news/2",
		Source:   "Reuters",
		AgeHours: 5,
		Summary:  "Taiwan Semiconductor Manufacturing Co beat analyst estimates by 4%, citing strong demand for AI chips.",
		Symbols:  []string{"TSM"},
	},
	{
		Title:    "Samsung misses profit expectations amid smartphone competition",
		URL:      "https://example.com/news/3",
		Source:   "Bloomberg",
		AgeHours: 7,
		Summary:  "Samsung Electronics reported earnings 2% below consensus estimates due to increased competition.",
		Symbols:  []string{"005930.KS"},
	},
	{
		Title:    "Asian markets close higher on tech rally",
		URL:      "https://example.com/news/4",
		Source:   "CNBC",
		AgeHours: 10,
		Summary:  "Asian stock markets ended the session in positive territory, led by gains in technology stocks.",
	},
	{
		Title:    "China announces new regulations for tech sector",
		URL:      "https://example.com/news/5",
		Source:   "Wall Street Journal",
		AgeHours: 12,
		Summary:  "Chinese regulators unveiled new guidelines aimed at the technology industry, focusing on data security.",
		Symbols:  []string{"9988.HK"},
	},
}

// FallbackNews 返回回退新闻，query 非空时按标题/摘要过滤
func FallbackNews(query string, limit int) []*entity.NewsArticle {
	now := time.Now().UTC()
	q := strings.ToLower(strings.TrimSpace(query))

	var articles []*entity.NewsArticle
	for _, fa := range fallbackNews {
		if q != "" &&
			!strings.Contains(strings.ToLower(fa.Title), q) &&
			!strings.Contains(strings.ToLower(fa.Summary), q) &&
			!containsFold(fa.Symbols, q) {
			continue
		}
		articles = append(articles, &entity.NewsArticle{
			Title:       fa.Title,
			URL:         fa.URL,
			Source:      fa.Source,
			Summary:     fa.Summary,
			Symbols:     fa.Symbols,
			PublishedAt: now.Add(-time.Duration(fa.AgeHours) * time.Hour),
			FetchedAt:   now,
			Origin:      entity.SourceFallback,
		})
		if limit > 0 && len(articles) >= limit {
			break
		}
	}

	// 过滤后为空时返回全量回退新闻，保证永不返回空结果
	if len(articles) == 0 {
		return FallbackNews("", limit)
	}
	return articles
}

func containsFold(items []string, q string) bool {
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// fallbackFiling 回退申报文件条目，AgeDays 表示相对当前时间的天数差
type fallbackFiling struct {
	Title   string
	URL     string
	Type    string
	AgeDays int
}

// fallbackFilings 内置的公司申报文件
var fallbackFilings = map[string][]fallbackFiling{
	"AAPL": {
		{Title: "Apple Inc. Form 10-Q", URL: "https://example.com/filings/aapl-10q", Type: "10-Q", AgeDays: 30},
	},
	"MSFT": {
		{Title: "Microsoft Corporation Form 8-K", URL: "https://example.com/filings/msft-8k", Type: "8-K", AgeDays: 15},
	},
	"GOOGL": {
		{Title: "Alphabet Inc. Form 10-K", URL: "https://example.com/filings/googl-10k", Type: "10-K", AgeDays: 60},
	},
	"TSM": {
		{Title: "Taiwan Semiconductor Manufacturing Co. Ltd. Form 6-K", URL: "https://example.com/filings/tsm-6k", Type: "6-K", AgeDays: 10},
	},
	"9988.HK": {
		{Title: "Alibaba Group Holding Ltd. Annual Report", URL: "https://example.com/filings/baba-annual", Type: "Annual Report", AgeDays: 45},
	},
}

// FallbackFilings 返回回退申报文件。
// 未内置的标的生成通用的 10-Q 与 8-K 条目，天数差由标的代码确定性派生。
func FallbackFilings(symbol string) []*entity.Filing {
	now := time.Now().UTC()

	entries, ok := fallbackFilings[symbol]
	if !ok {
		sum := 0
		for _, c := range symbol {
			sum += int(c)
		}
		entries = []fallbackFiling{
			{
				Title:   fmt.Sprintf("%s Form 10-Q", symbol),
				URL:     fmt.Sprintf("https://example.com/filings/%s-10q", strings.ToLower(symbol)),
				Type:    "10-Q",
				AgeDays: sum%51 + 10,
			},
			{
				Title:   fmt.Sprintf("%s Form 8-K", symbol),
				URL:     fmt.Sprintf("https://example.com/filings/%s-8k", strings.ToLower(symbol)),
				Type:    "8-K",
				AgeDays: sum%26 + 5,
			},
		}
	}

	filings := make([]*entity.Filing, 0, len(entries))
	for _, e := range entries {
		filings = append(filings, &entity.Filing{
			Symbol:    symbol,
			Title:     e.Title,
			URL:       e.URL,
			Type:      e.Type,
			FiledAt:   now.AddDate(0, 0, -e.AgeDays),
			FetchedAt: now,
			Origin:    entity.SourceFallback,
		})
	}
	return filings
}
