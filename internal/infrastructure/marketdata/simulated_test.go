package marketdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/domain/entity"
)

func TestSimulatedQuoteDeterministic(t *testing.T) {
	p := NewSimulatedProvider()

	first, err := p.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := p.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, first.Change, second.Change)
	assert.Equal(t, first.Volume, second.Volume)
}

func TestSimulatedQuoteValues(t *testing.T) {
	p := NewSimulatedProvider()

	q, err := p.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	// charSum(AAPL)=286, weightedSum=739 → change=-1.1
	assert.Equal(t, "AAPL", q.Symbol)
	assert.InDelta(t, 284.9, q.Price, 1e-9)
	assert.InDelta(t, -1.1, q.Change, 1e-9)
	assert.InDelta(t, -0.38, q.ChangePercent, 1e-9)
	assert.Equal(t, entity.SourceSimulated, q.Source)
	assert.Equal(t, "USD", q.Currency)
	assert.Positive(t, q.Volume)
}

func TestSimulatedQuoteEmptySymbol(t *testing.T) {
	p := NewSimulatedProvider()

	_, err := p.Quote(context.Background(), "")
	assert.Error(t, err)
}

func TestSimulatedQuoteIndex(t *testing.T) {
	p := NewSimulatedProvider()

	q, err := p.Quote(context.Background(), "^GSPC")
	require.NoError(t, err)

	assert.Equal(t, "^GSPC", q.Symbol)
	assert.Positive(t, q.Price)
	assert.NotZero(t, q.Volume)
}

func TestSimulatedOverviewKnownAndUnknown(t *testing.T) {
	p := NewSimulatedProvider()

	known, err := p.Overview(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc.", known.Name)
	assert.Equal(t, "Technology", known.Sector)

	unknown, err := p.Overview(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Equal(t, "ZZZZ Inc.", unknown.Name)
	assert.Equal(t, "Unknown", unknown.Sector)
}

func TestSimulatedQuarterlyEarnings(t *testing.T) {
	p := NewSimulatedProvider()

	earnings, err := p.QuarterlyEarnings(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, "MSFT", earnings.Symbol)
	require.Len(t, earnings.Quarterly, 4)
	for _, r := range earnings.Quarterly {
		assert.Positive(t, r.ExpectedEPS)
		// 实际值偏离预期不超过 ±20%
		assert.InDelta(t, r.ExpectedEPS, r.ActualEPS, r.ExpectedEPS*0.21)
	}
}

func TestSimulatedSectorPerformanceWithinRanges(t *testing.T) {
	p := NewSimulatedProvider()

	sectors, err := p.SectorPerformance(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sectors)

	byName := make(map[string]float64, len(sectors))
	for _, s := range sectors {
		byName[s.Sector] = s.ChangePercent
	}
	for _, sr := range sectorRanges {
		change, ok := byName[sr.Sector]
		require.True(t, ok, "sector %s missing", sr.Sector)
		assert.GreaterOrEqual(t, change, sr.Low)
		assert.LessOrEqual(t, change, sr.High)
	}
}

func TestSimulatedMarketSummary(t *testing.T) {
	p := NewSimulatedProvider()

	summary, err := p.MarketSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Indices, 5)
	assert.Equal(t, "^DJI", summary.Indices[0].Symbol)
	assert.Equal(t, "Dow Jones Industrial Average", summary.Indices[0].Name)
	assert.NotEmpty(t, summary.Sectors)
	assert.Equal(t, entity.SourceSimulated, summary.Source)
}

func TestSimulatedEarningsCalendarCopies(t *testing.T) {
	p := NewSimulatedProvider()

	events, err := p.EarningsCalendar(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, events)

	events[0].Symbol = "MUTATED"

	again, err := p.EarningsCalendar(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "MUTATED", again[0].Symbol)
}
