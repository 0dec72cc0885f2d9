package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMarketKeys(t *testing.T) {
	assert.Equal(t, "market:quote:AAPL", BuildQuoteKey("AAPL"))
	assert.Equal(t, "market:overview:AAPL", BuildOverviewKey("AAPL"))
	assert.Equal(t, "market:earnings:AAPL", BuildEarningsKey("AAPL"))
	assert.Equal(t, "market:sectors", BuildSectorKey())
	assert.Equal(t, "market:summary", BuildSummaryKey())
}

func TestBuildNewsKey(t *testing.T) {
	assert.Equal(t, "news:latest:5", BuildNewsKey("", 5))
	assert.Equal(t, "news:symbol:AAPL:10", BuildNewsKey("AAPL", 10))
}

func TestBuildFilingsKeyIncludesLimit(t *testing.T) {
	// limit 不同必须产生不同键，小 limit 结果不能污染大 limit 请求
	assert.Equal(t, "filings:AAPL:1", BuildFilingsKey("AAPL", 1))
	assert.Equal(t, "filings:AAPL:10", BuildFilingsKey("AAPL", 10))
	assert.NotEqual(t, BuildFilingsKey("AAPL", 1), BuildFilingsKey("AAPL", 10))
}
