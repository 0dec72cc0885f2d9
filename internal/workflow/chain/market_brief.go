package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "finance-assistant-api/internal/domain/service"
	wfmodel "finance-assistant-api/internal/workflow/model"
	workflowport "finance-assistant-api/internal/workflow/port"
	workflowprompt "finance-assistant-api/internal/workflow/prompt"
)

// MarketBriefChain 市场简报生成链：prompt 模板 → ChatModel。
type MarketBriefChain struct {
	factory workflowport.ChatModelFactory
}

func NewMarketBriefChain(factory workflowport.ChatModelFactory) *MarketBriefChain {
	return &MarketBriefChain{factory: factory}
}

func (c *MarketBriefChain) Invoke(ctx context.Context, in *wfmodel.MarketBriefInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	ctx = llmctx.WithWorkflowProvider(ctx, "market_brief", strings.TrimSpace(in.Provider))
	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	msgs, err := formatBriefMessages(ctx, in)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildBriefModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

var briefPromptRegistry = workflowprompt.NewRegistry()

func formatBriefMessages(ctx context.Context, in *wfmodel.MarketBriefInput) ([]*schema.Message, error) {
	tpl, err := briefPromptRegistry.ChatTemplate(workflowprompt.PromptMarketBriefV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"query":             strings.TrimSpace(in.Query),
		"portfolio_block":   orEmptyNote(in.PortfolioBlock),
		"earnings_block":    orEmptyNote(in.EarningsBlock),
		"market_block":      orEmptyNote(in.MarketBlock),
		"news_block":        orEmptyNote(in.NewsBlock),
		"retrieved_context": orEmptyNote(in.RetrievedContext),
	}
	return tpl.Format(ctx, vars)
}

func buildBriefModelOptions(in *wfmodel.MarketBriefInput) []model.Option {
	opts := make([]model.Option, 0, 3)
	if in == nil {
		return opts
	}
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}
	return opts
}

func orEmptyNote(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(no data)"
	}
	return s
}
