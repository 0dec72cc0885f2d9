package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"give me a market brief", IntentBrief},
		{"what is our risk exposure in asia tech stocks", IntentPortfolio},
		{"any earnings surprises today", IntentEarnings},
		{"latest 10-K filing for apple", IntentFilings},
		{"show me the latest headlines", IntentNews},
		{"what is the stock price of tesla", IntentQuote},
		{"how are the indices doing", IntentMarket},
		{"tell me something interesting", IntentGeneric},
	}

	for _, tt := range tests {
		intent, conf := DetectIntent(tt.query)
		assert.Equal(t, tt.want, intent, "query: %s", tt.query)
		assert.Greater(t, conf, 0.0)
		assert.LessOrEqual(t, conf, 0.95)
	}
}

func TestDetectIntentPriority(t *testing.T) {
	// brief 的优先级高于泛化的 market
	intent, _ := DetectIntent("morning market brief please")
	assert.Equal(t, IntentBrief, intent)

	// portfolio 优先于 earnings
	intent, _ = DetectIntent("portfolio exposure to companies with earnings beats")
	assert.Equal(t, IntentPortfolio, intent)
}

func TestDetectIntentConfidenceScalesWithHits(t *testing.T) {
	_, single := DetectIntent("show portfolio")
	_, multi := DetectIntent("portfolio exposure allocation holdings")

	assert.Greater(t, multi, single)
	assert.LessOrEqual(t, multi, 0.95)
}

func TestDetectIntentGenericConfidence(t *testing.T) {
	intent, conf := DetectIntent("hello there")
	assert.Equal(t, IntentGeneric, intent)
	assert.InDelta(t, 0.4, conf, 1e-9)
}

func TestParseRegion(t *testing.T) {
	assert.Equal(t, "Asia", ParseRegion("risk exposure in Asia tech"))
	assert.Equal(t, "Asia", ParseRegion("asian markets"))
	assert.Equal(t, "North America", ParseRegion("american holdings"))
	assert.Equal(t, "Europe", ParseRegion("european banks"))
	assert.Empty(t, ParseRegion("overall exposure"))
}

func TestParseSector(t *testing.T) {
	assert.Equal(t, "Technology", ParseSector("asia tech stocks"))
	assert.Equal(t, "Consumer Cyclical", ParseSector("consumer names"))
	assert.Equal(t, "Energy", ParseSector("energy exposure"))
	assert.Equal(t, "Financial Services", ParseSector("bank holdings"))
	assert.Equal(t, "Healthcare", ParseSector("healthcare allocation"))
	assert.Empty(t, ParseSector("everything"))
}
