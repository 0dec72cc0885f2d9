package language

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/domain/entity"
)

func TestComposeTemplateQuote(t *testing.T) {
	in := &ComposeInput{
		Intent: "quote",
		Quotes: []*entity.Quote{
			{Symbol: "AAPL", Price: 231.5, Change: 2.3, ChangePercent: 1.0},
		},
		Overview: &entity.CompanyOverview{Name: "Apple Inc.", Sector: "Technology", Exchange: "NASDAQ"},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "AAPL is trading at 231.50, up 1.00% today.")
	assert.Contains(t, answer, "Apple Inc. operates in the Technology sector and is listed on NASDAQ.")
}

func TestComposeTemplateQuoteDown(t *testing.T) {
	in := &ComposeInput{
		Intent: "quote",
		Quotes: []*entity.Quote{
			{Symbol: "TSLA", Price: 200, Change: -4, ChangePercent: -1.96},
		},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "down 1.96% today")
}

func TestComposeTemplateQuoteEmpty(t *testing.T) {
	answer := ComposeTemplate(&ComposeInput{Intent: "quote"})
	assert.Equal(t, "I could not find a quote for that symbol.", answer)
}

func TestComposeTemplatePortfolio(t *testing.T) {
	in := &ComposeInput{
		Intent: "portfolio",
		Exposure: &entity.PortfolioExposure{
			TotalValue:         100000,
			FilteredValue:      30000,
			FilteredPercentage: 30,
			SectorAllocation: []entity.Allocation{
				{Key: "Technology", Percent: 70},
				{Key: "Energy", Percent: 30},
			},
			Holdings: []entity.Holding{
				{Symbol: "TSM", Name: "Taiwan Semiconductor", Weight: 30},
			},
		},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "This allocation is 30.0% of your total portfolio value ($100,000.00).")
	assert.Contains(t, answer, "Top sectors: Technology (70.0%), Energy (30.0%).")
	assert.Contains(t, answer, "Taiwan Semiconductor (30.0%)")
}

func TestComposeTemplatePortfolioNoData(t *testing.T) {
	answer := ComposeTemplate(&ComposeInput{Intent: "portfolio"})
	assert.Equal(t, "I don't have portfolio data available right now.", answer)
}

func TestComposeTemplateEarnings(t *testing.T) {
	in := &ComposeInput{
		Intent: "earnings",
		Earnings: &analysis.EarningsAnalysis{
			Total:       3,
			BeatRate:    66.7,
			FocusSector: "Technology",
			TopBeats:    []entity.EarningsSurprise{{Symbol: "AAPL", Name: "Apple Inc.", SurprisePercent: 5.2}},
			TopMisses:   []entity.EarningsSurprise{{Symbol: "XOM", SurprisePercent: -2.4}},
		},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "In the Technology sector, 66.7% of companies beat earnings expectations.")
	assert.Contains(t, answer, "Apple Inc., which beat estimates by 5.2%")
	assert.Contains(t, answer, "XOM, which missed estimates by 2.4%")
}

func TestComposeTemplateMarket(t *testing.T) {
	in := &ComposeInput{
		Intent:    "market",
		Sentiment: &entity.SentimentReport{Sentiment: "positive"},
		Summary: &entity.MarketSummary{
			Indices: []entity.IndexQuote{
				{Name: "S&P 500", ChangePercent: 0.8},
				{Name: "Dow Jones", ChangePercent: -0.3},
			},
			Sectors: []entity.SectorPerformance{
				{Sector: "Technology", ChangePercent: 1.5},
				{Sector: "Energy", ChangePercent: -0.9},
			},
		},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "Overall market sentiment today is positive.")
	assert.Contains(t, answer, "S&P 500 is up 0.80% today.")
	assert.Contains(t, answer, "Dow Jones is down 0.30% today.")
	assert.Contains(t, answer, "The best performing sector is Technology (1.50%).")
	assert.Contains(t, answer, "The worst performing sector is Energy (-0.90%).")
}

func TestComposeTemplateNews(t *testing.T) {
	in := &ComposeInput{
		Intent: "news",
		News: []*entity.NewsArticle{
			{Title: "Markets rally on earnings", Source: "Reuters"},
			{Title: "Fed holds rates steady", Source: "Bloomberg"},
		},
		Sentiment: &entity.SentimentReport{Sentiment: "neutral", Score: 0.05},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "1. Markets rally on earnings (Reuters)")
	assert.Contains(t, answer, "2. Fed holds rates steady (Bloomberg)")
	assert.Contains(t, answer, "Overall sentiment is neutral (score 0.05).")
}

func TestComposeTemplateFilings(t *testing.T) {
	filedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	in := &ComposeInput{
		Intent: "filings",
		Filings: []*entity.Filing{
			{Symbol: "AAPL", Title: "10-K Annual Report", FiledAt: filedAt},
		},
	}

	answer := ComposeTemplate(in)
	assert.Contains(t, answer, "Recent filings for AAPL:")
	assert.Contains(t, answer, "1. 10-K Annual Report filed on 2026-08-01")
}

func TestComposeTemplateGenericWithContext(t *testing.T) {
	in := &ComposeInput{Intent: "generic", Context: "ETF stands for exchange-traded fund."}

	answer := ComposeTemplate(in)
	assert.Equal(t, "Here is what I found:\nETF stands for exchange-traded fund.", answer)
}

func TestComposeTemplateGenericFallback(t *testing.T) {
	answer := ComposeTemplate(&ComposeInput{Intent: "generic"})
	assert.Contains(t, answer, "Could you rephrase your question?")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-98765.4, "-98,765.40"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}
