// Package orchestrator 查询编排：意图路由 + 并发取数 + 组稿
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/application/filings"
	"finance-assistant-api/internal/application/language"
	"finance-assistant-api/internal/application/market"
	"finance-assistant-api/internal/application/news"
	"finance-assistant-api/internal/application/portfolio"
	"finance-assistant-api/internal/application/retrieval"
	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/workflow/chain"
	wfmodel "finance-assistant-api/internal/workflow/model"
	apperrors "finance-assistant-api/pkg/errors"
	"finance-assistant-api/pkg/logger"
	"finance-assistant-api/pkg/metrics"
)

var tracer = otel.Tracer("application.orchestrator")

const surpriseWindowDays = 30

// 市场简报全链路失败时的兜底文案
const cannedBrief = "Today's market shows mixed performance across sectors. Major indices are showing modest movement, with technology stocks leading gains while energy stocks face some pressure. Asian markets closed with slight gains, and European markets are trending cautiously positive."

// Answer 查询处理结果
type Answer struct {
	Answer     string   `json:"answer"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	// Generated 为 true 表示回答由 LLM 生成
	Generated bool `json:"generated"`
}

// Service 编排服务
type Service struct {
	market    *market.Service
	news      *news.Service
	filings   *filings.Service
	portfolio *portfolio.Service
	analysis  *analysis.Service
	engine    *retrieval.Engine
	language  *language.Service
	brief     *chain.MarketBriefChain

	defaultProvider string
}

// NewService 创建编排服务。engine/brief 允许为 nil（向量检索或 LLM 未配置时降级）。
func NewService(
	marketSvc *market.Service,
	newsSvc *news.Service,
	filingsSvc *filings.Service,
	portfolioSvc *portfolio.Service,
	analysisSvc *analysis.Service,
	engine *retrieval.Engine,
	languageSvc *language.Service,
	briefChain *chain.MarketBriefChain,
	cfg *config.Config,
) *Service {
	provider := ""
	if cfg != nil {
		provider = cfg.LLM.DefaultProvider
	}
	return &Service{
		market:          marketSvc,
		news:            newsSvc,
		filings:         filingsSvc,
		portfolio:       portfolioSvc,
		analysis:        analysisSvc,
		engine:          engine,
		language:        languageSvc,
		brief:           briefChain,
		defaultProvider: provider,
	}
}

// ProcessText 处理文本查询
func (s *Service) ProcessText(ctx context.Context, query, sessionID string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.New(apperrors.CodeQueryEmpty, "query is required")
	}
	if sessionID != "" {
		ctx = logger.WithContext(ctx, logger.SessionIDKey, sessionID)
	}

	intent, confidence := DetectIntent(query)

	ctx, span := tracer.Start(ctx, "orchestrator.ProcessText",
		trace.WithAttributes(
			attribute.String("query.intent", string(intent)),
			attribute.Int("query.len", len(query)),
		))
	defer span.End()

	start := time.Now()
	answer, err := s.process(ctx, intent, confidence, query)
	metrics.QueryDuration.WithLabelValues(string(intent)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.QueryTotal.WithLabelValues(string(intent), "error").Inc()
		span.RecordError(err)
		return nil, err
	}
	metrics.QueryTotal.WithLabelValues(string(intent), "success").Inc()
	logger.Info(ctx, "query processed",
		"intent", intent, "confidence", answer.Confidence, "generated", answer.Generated)
	return answer, nil
}

func (s *Service) process(ctx context.Context, intent Intent, confidence float64, query string) (*Answer, error) {
	if intent == IntentBrief {
		return s.marketBrief(ctx, confidence, query)
	}

	in := &language.ComposeInput{
		Query:  query,
		Intent: string(intent),
	}
	sources := newSourceSet()

	g, gctx := errgroup.WithContext(ctx)

	// 知识库召回对所有意图生效；失败只降级不报错
	g.Go(func() error {
		in.Context = s.retrieveContext(gctx, query, sources)
		return nil
	})

	switch intent {
	case IntentQuote:
		g.Go(func() error {
			symbols := s.market.ExtractSymbols(query)
			in.Quotes = s.market.GetQuotes(gctx, symbols)
			for _, q := range in.Quotes {
				sources.add("market-data:" + string(q.Source))
			}
			for _, sym := range symbols {
				if !strings.HasPrefix(sym, "^") {
					overview, err := s.market.GetOverview(gctx, sym)
					if err == nil {
						in.Overview = overview
					}
					break
				}
			}
			return nil
		})

	case IntentMarket:
		g.Go(func() error {
			summary, err := s.market.GetMarketSummary(gctx)
			if err != nil {
				return err
			}
			in.Summary = summary
			sources.add("market-data:" + string(summary.Source))
			return nil
		})
		g.Go(func() error {
			report, err := s.news.Sentiment(gctx, query)
			if err == nil {
				in.Sentiment = report
				sources.add("news-scraper")
			}
			return nil
		})

	case IntentPortfolio:
		g.Go(func() error {
			exposure, err := s.portfolio.GetExposure(gctx, ParseRegion(query), ParseSector(query))
			if err != nil {
				return err
			}
			in.Exposure = exposure
			sources.add("portfolio-db")
			return nil
		})

	case IntentEarnings:
		g.Go(func() error {
			result, err := s.analysis.EarningsSurprises(gctx, surpriseWindowDays, ParseSector(query))
			if err != nil {
				return err
			}
			in.Earnings = result
			sources.add("market-data")
			return nil
		})

	case IntentNews:
		g.Go(func() error {
			symbol := firstStockSymbol(s.market.ExtractSymbols(query))
			articles, err := s.news.Latest(gctx, query, symbol, 5)
			if err != nil {
				return err
			}
			in.News = articles
			for _, a := range articles {
				sources.add("news:" + a.Source)
			}
			return nil
		})
		g.Go(func() error {
			report, err := s.news.Sentiment(gctx, query)
			if err == nil {
				in.Sentiment = report
			}
			return nil
		})

	case IntentFilings:
		g.Go(func() error {
			symbol := firstStockSymbol(s.market.ExtractSymbols(query))
			if symbol == "" {
				return apperrors.New(apperrors.CodeSymbolUnknown, "could not resolve a symbol from the query")
			}
			result, err := s.filings.GetFilings(gctx, symbol, "", 3)
			if err != nil {
				return err
			}
			in.Filings = result
			sources.add("edgar")
			return nil
		})

	default:
		g.Go(func() error {
			summary, err := s.market.GetMarketSummary(gctx)
			if err == nil {
				in.Summary = summary
				sources.add("market-data:" + string(summary.Source))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := s.language.Compose(ctx, in)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeComposeFailed, "failed to compose answer")
	}

	return &Answer{
		Answer:     result.Answer,
		Intent:     string(intent),
		Confidence: confidence,
		Sources:    sources.list(),
		Generated:  result.Generated,
	}, nil
}

// marketBrief 市场简报：并发取数 → Eino 简报链 → 模板 → 兜底文案。
func (s *Service) marketBrief(ctx context.Context, confidence float64, query string) (*Answer, error) {
	ctx, span := tracer.Start(ctx, "orchestrator.marketBrief")
	defer span.End()

	sources := newSourceSet()
	in := &language.ComposeInput{Query: query, Intent: string(IntentBrief)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exposure, err := s.portfolio.GetExposure(gctx, ParseRegion(query), ParseSector(query))
		if err == nil {
			in.Exposure = exposure
			sources.add("portfolio-db")
		}
		return nil
	})
	g.Go(func() error {
		result, err := s.analysis.EarningsSurprises(gctx, surpriseWindowDays, ParseSector(query))
		if err == nil {
			in.Earnings = result
			sources.add("market-data")
		}
		return nil
	})
	g.Go(func() error {
		summary, err := s.market.GetMarketSummary(gctx)
		if err == nil {
			in.Summary = summary
			sources.add("market-data:" + string(summary.Source))
		}
		return nil
	})
	g.Go(func() error {
		articles, err := s.news.Latest(gctx, query, "", 5)
		if err == nil {
			in.News = articles
			sources.add("news-scraper")
		}
		return nil
	})
	g.Go(func() error {
		in.Context = s.retrieveContext(gctx, query, sources)
		return nil
	})
	_ = g.Wait()

	if s.brief != nil {
		outMsg, err := s.brief.Invoke(ctx, &wfmodel.MarketBriefInput{
			Provider:         s.defaultProvider,
			Query:            query,
			PortfolioBlock:   briefPortfolioBlock(in.Exposure),
			EarningsBlock:    briefEarningsBlock(in.Earnings),
			MarketBlock:      briefMarketBlock(in.Summary),
			NewsBlock:        briefNewsBlock(in.News),
			RetrievedContext: in.Context,
		})
		if err == nil && outMsg != nil && strings.TrimSpace(outMsg.Content) != "" {
			return &Answer{
				Answer:     strings.TrimSpace(outMsg.Content),
				Intent:     string(IntentBrief),
				Confidence: confidence,
				Sources:    sources.list(),
				Generated:  true,
			}, nil
		}
		logger.Warn(ctx, "market brief chain failed, falling back to template", "error", err)
	}

	answer := language.ComposeTemplate(in)
	if strings.TrimSpace(answer) == "" {
		answer = cannedBrief
	}
	return &Answer{
		Answer:     answer,
		Intent:     string(IntentBrief),
		Confidence: confidence * 0.8,
		Sources:    sources.list(),
	}, nil
}

// retrieveContext 召回知识库上下文；向量能力不可用时静默降级。
func (s *Service) retrieveContext(ctx context.Context, query string, sources *sourceSet) string {
	if s.engine == nil || !s.engine.Enabled() {
		return ""
	}
	out, err := s.engine.Search(ctx, retrieval.SearchInput{Query: query, TopK: 5})
	if err != nil {
		logger.Warn(ctx, "knowledge retrieval failed", "error", err)
		return ""
	}
	if out.DisabledReason != "" {
		logger.Debug(ctx, "knowledge retrieval disabled", "reason", out.DisabledReason)
		return ""
	}
	if len(out.Documents) > 0 {
		sources.add("knowledge-base")
	}
	return retrieval.BuildPromptContext(out.Documents, 5, 400)
}

func briefPortfolioBlock(e *entity.PortfolioExposure) string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "total value $%.2f", e.TotalValue)
	if e.FilteredPercentage > 0 && e.FilteredPercentage < 100 {
		fmt.Fprintf(&sb, ", focus allocation %.1f%% of total", e.FilteredPercentage)
	}
	sb.WriteString("\n")
	for i, h := range e.Holdings {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "%s %.1f%%\n", h.Symbol, h.Weight)
	}
	return strings.TrimSpace(sb.String())
}

func briefEarningsBlock(a *analysis.EarningsAnalysis) string {
	if a == nil || a.Total == 0 {
		return ""
	}
	return strings.Join(a.KeyInsights, "\n")
}

func briefMarketBlock(summary *entity.MarketSummary) string {
	if summary == nil {
		return ""
	}
	var sb strings.Builder
	for _, idx := range summary.Indices {
		fmt.Fprintf(&sb, "%s %+.2f%%\n", idx.Name, idx.ChangePercent)
	}
	return strings.TrimSpace(sb.String())
}

func briefNewsBlock(articles []*entity.NewsArticle) string {
	var sb strings.Builder
	for i, a := range articles {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "- %s (%s)\n", a.Title, a.Source)
	}
	return strings.TrimSpace(sb.String())
}

func firstStockSymbol(symbols []string) string {
	for _, s := range symbols {
		if !strings.HasPrefix(s, "^") {
			return s
		}
	}
	return ""
}

// sourceSet 去重的来源集合，保持插入顺序；并发取数阶段会被多个 goroutine 写入。
type sourceSet struct {
	mu    sync.Mutex
	seen  map[string]bool
	items []string
}

func newSourceSet() *sourceSet {
	return &sourceSet{seen: make(map[string]bool)}
}

func (s *sourceSet) add(src string) {
	if src == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[src] {
		return
	}
	s.seen[src] = true
	s.items = append(s.items, src)
}

func (s *sourceSet) list() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}
