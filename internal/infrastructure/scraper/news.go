package scraper

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/pkg/logger"
)

// newsSource 新闻源定义
type newsSource struct {
	Name      string
	SearchURL func(query string) string
}

// newsSources 按优先级排列的抓取源
var newsSources = map[string]newsSource{
	"cnbc": {
		Name: "CNBC",
		SearchURL: func(q string) string {
			return "https://www.cnbc.com/search/?query=" + url.QueryEscape(q)
		},
	},
	"marketwatch": {
		Name: "MarketWatch",
		SearchURL: func(q string) string {
			return "https://www.marketwatch.com/search?q=" + url.QueryEscape(q)
		},
	},
	"yahoo": {
		Name: "Yahoo Finance",
		SearchURL: func(q string) string {
			return "https://finance.yahoo.com/quote/" + url.PathEscape(q) + "/news"
		},
	},
	"reuters": {
		Name: "Reuters",
		SearchURL: func(q string) string {
			return "https://www.reuters.com/site-search/?query=" + url.QueryEscape(q)
		},
	},
	"investing": {
		Name: "Investing.com",
		SearchURL: func(q string) string {
			return "https://www.investing.com/search/?q=" + url.QueryEscape(q)
		},
	},
}

// defaultSourceOrder 配置缺失时的抓取顺序
var defaultSourceOrder = []string{"cnbc", "marketwatch", "yahoo", "reuters", "investing"}

// NewsScraper 多源财经新闻抓取器。
// 按优先级逐源尝试，全部失败时落到内置回退新闻，保证永不返回空结果。
type NewsScraper struct {
	fetcher *Fetcher
	sources []string
}

// NewNewsScraper 创建新闻抓取器
func NewNewsScraper(fetcher *Fetcher, cfg *config.ScraperConfig) *NewsScraper {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = defaultSourceOrder
	}
	return &NewsScraper{
		fetcher: fetcher,
		sources: sources,
	}
}

// FetchNews 按查询词抓取财经新闻。
// 每个源取其搜索页正文作为一条资讯，凑满 limit 即停止。
func (s *NewsScraper) FetchNews(ctx context.Context, query string, limit int) []*entity.NewsArticle {
	ctx, span := tracer.Start(ctx, "scraper.FetchNews",
		trace.WithAttributes(
			attribute.String("scrape.query", query),
			attribute.Int("scrape.limit", limit),
		))
	defer span.End()

	if limit <= 0 {
		limit = 5
	}

	var articles []*entity.NewsArticle
	for _, key := range s.sources {
		src, ok := newsSources[strings.ToLower(key)]
		if !ok {
			logger.Warn(ctx, "unknown news source in config", "source", key)
			continue
		}

		article := s.fetchFromSource(ctx, src, query)
		if article == nil {
			continue
		}

		articles = append(articles, article)
		logger.Info(ctx, "got article from source", "source", src.Name, "title", article.Title)

		if len(articles) >= limit {
			break
		}
	}

	if len(articles) == 0 {
		logger.Warn(ctx, "all news sources failed, using fallback data", "query", query)
		span.SetAttributes(attribute.Bool("scrape.fallback", true))
		return FallbackNews(query, limit)
	}

	span.SetAttributes(attribute.Int("scrape.article_count", len(articles)))
	return articles
}

// fetchFromSource 抓取单个源的搜索页并抽取正文
func (s *NewsScraper) fetchFromSource(ctx context.Context, src newsSource, query string) *entity.NewsArticle {
	pageURL := src.SearchURL(query)

	body, err := s.fetcher.Fetch(ctx, src.Name, pageURL)
	if err != nil {
		logger.Warn(ctx, "news source fetch failed", "source", src.Name, "error", err)
		return nil
	}

	parsedURL, _ := url.Parse(pageURL)
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL: parsedURL,
	})
	if err != nil || result == nil || result.ContentText == "" {
		logger.Warn(ctx, "content extraction failed", "source", src.Name, "error", err)
		return nil
	}

	title := result.Metadata.Title
	if title == "" {
		title = query + " coverage from " + src.Name
	}

	publishedAt := result.Metadata.Date
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	return &entity.NewsArticle{
		Title:       title,
		URL:         pageURL,
		Source:      src.Name,
		Summary:     summarize(result.ContentText, 300),
		Content:     result.ContentText,
		PublishedAt: publishedAt,
		FetchedAt:   time.Now().UTC(),
		Origin:      entity.SourceLive,
	}
}

// summarize 截取正文前 n 个字符作为摘要，按词边界截断。
// 按 rune 截取，避免把多字节字符从中间切开。
func summarize(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	cut := string(runes[:n])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
