package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"finance-assistant-api/internal/domain/entity"
)

func TestAnalyzeBullish(t *testing.T) {
	a := NewSentimentAnalyzer()
	articles := []*entity.NewsArticle{
		{Title: "Stocks rally to record highs on strong earnings"},
		{Title: "Tech shares surge as chip demand rises"},
	}

	report := a.Analyze(context.Background(), "markets", articles)

	assert.Equal(t, "bullish", report.Sentiment)
	assert.GreaterOrEqual(t, report.Score, 0.6)
	assert.NotEmpty(t, report.KeyFactors)
	assert.Equal(t, "markets", report.Query)
}

func TestAnalyzeBearish(t *testing.T) {
	a := NewSentimentAnalyzer()
	articles := []*entity.NewsArticle{
		{Title: "Markets fall as earnings miss estimates"},
		{Title: "Oil prices drop on weak demand, recession fear grows"},
	}

	report := a.Analyze(context.Background(), "markets", articles)

	assert.Equal(t, "bearish", report.Sentiment)
	assert.GreaterOrEqual(t, report.Score, 0.6)
}

func TestAnalyzeNeutral(t *testing.T) {
	a := NewSentimentAnalyzer()
	articles := []*entity.NewsArticle{
		{Title: "Shares rise in Asia"},
		{Title: "European stocks decline"},
	}

	report := a.Analyze(context.Background(), "markets", articles)

	assert.Equal(t, "neutral", report.Sentiment)
	assert.InDelta(t, 0.5, report.Score, 1e-9)
}

func TestAnalyzeNoSignal(t *testing.T) {
	a := NewSentimentAnalyzer()

	report := a.Analyze(context.Background(), "markets", nil)

	assert.Equal(t, "bullish", report.Sentiment)
	assert.InDelta(t, 0.72, report.Score, 1e-9)
	assert.Len(t, report.KeyFactors, 4)
}

func TestAnalyzeUsesSummaryText(t *testing.T) {
	a := NewSentimentAnalyzer()
	articles := []*entity.NewsArticle{
		{Title: "Quarterly results", Summary: "Revenue beat expectations with record margins"},
	}

	report := a.Analyze(context.Background(), "earnings", articles)

	assert.Equal(t, "bullish", report.Sentiment)
	assert.Contains(t, report.KeyFactors, "Quarterly results")
}

func TestAnalyzeKeyFactorsCapped(t *testing.T) {
	a := NewSentimentAnalyzer()
	articles := []*entity.NewsArticle{
		{Title: "rally one"},
		{Title: "rally two"},
		{Title: "rally three"},
		{Title: "rally four"},
		{Title: "rally five"},
		{Title: "rally six"},
	}

	report := a.Analyze(context.Background(), "markets", articles)

	assert.LessOrEqual(t, len(report.KeyFactors), 4)
}
