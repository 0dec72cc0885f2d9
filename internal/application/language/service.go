// Package language 自然语言生成服务
package language

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	llmctx "finance-assistant-api/internal/domain/service"
	"finance-assistant-api/internal/infrastructure/llm"
	"finance-assistant-api/pkg/logger"
)

var tracer = otel.Tracer("application.language")

const systemPrompt = `You are a concise financial assistant. Answer using only the data blocks provided.
State numbers exactly as given, do not invent figures, and keep the answer under 120 words.`

// ComposeInput 组稿输入：意图 + 供模型引用的数据块。
type ComposeInput struct {
	Query  string
	Intent string

	// Context 来自知识库召回的提示词上下文，可为空
	Context string

	Quotes    []*entity.Quote
	Overview  *entity.CompanyOverview
	Summary   *entity.MarketSummary
	Exposure  *entity.PortfolioExposure
	Earnings  *analysis.EarningsAnalysis
	News      []*entity.NewsArticle
	Sentiment *entity.SentimentReport
	Filings   []*entity.Filing
}

// ComposeResult 组稿结果
type ComposeResult struct {
	Answer string
	// Generated 为 true 表示由 LLM 生成，false 表示使用了确定性模板
	Generated bool
	Provider  string
}

// Service 语言服务：LLM 优先，未配置或失败时退回确定性模板。
type Service struct {
	factory   *llm.EinoFactory
	providers []string
}

// NewService 创建语言服务。factory 为 nil 时只使用模板。
func NewService(factory *llm.EinoFactory, cfg *config.Config) *Service {
	var providers []string
	if cfg != nil {
		if cfg.LLM.DefaultProvider != "" {
			providers = append(providers, cfg.LLM.DefaultProvider)
		}
		for _, p := range cfg.LLM.FallbackChain {
			if p != "" && p != cfg.LLM.DefaultProvider {
				providers = append(providers, p)
			}
		}
	}
	return &Service{
		factory:   factory,
		providers: providers,
	}
}

// Compose 生成回答
func (s *Service) Compose(ctx context.Context, in *ComposeInput) (*ComposeResult, error) {
	ctx, span := tracer.Start(ctx, "language.Compose",
		trace.WithAttributes(attribute.String("query.intent", in.Intent)))
	defer span.End()

	providers := s.providers
	if preferred := llmctx.PreferredProviderFromContext(ctx); preferred != "" {
		ordered := []string{preferred}
		for _, p := range s.providers {
			if p != preferred {
				ordered = append(ordered, p)
			}
		}
		providers = ordered
	}

	if s.factory != nil && len(providers) > 0 {
		messages := []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(buildPrompt(in)),
		}

		for _, provider := range providers {
			chatModel, err := s.factory.Get(ctx, provider)
			if err != nil {
				logger.Warn(ctx, "llm provider unavailable", "provider", provider, "error", err)
				continue
			}

			callCtx := llmctx.WithWorkflowProvider(ctx, "compose", provider)
			outMsg, err := chatModel.Generate(callCtx, messages)
			if err != nil || outMsg == nil || strings.TrimSpace(outMsg.Content) == "" {
				logger.Warn(ctx, "llm generation failed, trying next provider", "provider", provider, "error", err)
				continue
			}

			span.SetAttributes(attribute.String("llm.provider", provider))
			return &ComposeResult{
				Answer:    strings.TrimSpace(outMsg.Content),
				Generated: true,
				Provider:  provider,
			}, nil
		}
	}

	// 全部提供商不可用时退回模板，不让问答失败
	answer := ComposeTemplate(in)
	return &ComposeResult{Answer: answer, Generated: false}, nil
}

// buildPrompt 将数据块拼接为模型输入
func buildPrompt(in *ComposeInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %s\n", strings.TrimSpace(in.Query))

	if in.Context != "" {
		sb.WriteString("\n")
		sb.WriteString(in.Context)
		sb.WriteString("\n")
	}
	if len(in.Quotes) > 0 {
		sb.WriteString("\n[Quotes]\n")
		for _, q := range in.Quotes {
			fmt.Fprintf(&sb, "%s: %.2f (%+.2f, %+.2f%%)\n", q.Symbol, q.Price, q.Change, q.ChangePercent)
		}
	}
	if in.Overview != nil {
		fmt.Fprintf(&sb, "\n[Company] %s (%s), sector %s, %s\n",
			in.Overview.Name, in.Overview.Symbol, in.Overview.Sector, in.Overview.Exchange)
	}
	if in.Summary != nil {
		sb.WriteString("\n[Market]\n")
		for _, idx := range in.Summary.Indices {
			fmt.Fprintf(&sb, "%s: %.2f (%+.2f%%)\n", idx.Name, idx.Price, idx.ChangePercent)
		}
	}
	if in.Exposure != nil {
		fmt.Fprintf(&sb, "\n[Portfolio] total value $%.2f, filtered %.1f%%\n",
			in.Exposure.TotalValue, in.Exposure.FilteredPercentage)
		for _, a := range in.Exposure.SectorAllocation {
			fmt.Fprintf(&sb, "sector %s: %.1f%%\n", a.Key, a.Percent)
		}
	}
	if in.Earnings != nil {
		fmt.Fprintf(&sb, "\n[Earnings] %d surprises, beat rate %.1f%%, avg surprise %.2f%%\n",
			in.Earnings.Total, in.Earnings.BeatRate, in.Earnings.AverageSurprise)
		for _, insight := range in.Earnings.KeyInsights {
			sb.WriteString(insight)
			sb.WriteString("\n")
		}
	}
	if len(in.News) > 0 {
		sb.WriteString("\n[News]\n")
		for _, a := range in.News {
			fmt.Fprintf(&sb, "- %s (%s)\n", a.Title, a.Source)
		}
	}
	if in.Sentiment != nil {
		fmt.Fprintf(&sb, "\n[Sentiment] %s (score %.2f)\n", in.Sentiment.Sentiment, in.Sentiment.Score)
	}
	if len(in.Filings) > 0 {
		sb.WriteString("\n[Filings]\n")
		for _, f := range in.Filings {
			fmt.Fprintf(&sb, "- %s %s (%s)\n", f.Symbol, f.Type, f.FiledAt.Format("2006-01-02"))
		}
	}
	return sb.String()
}
