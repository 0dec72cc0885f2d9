package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/config"
	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/service"
	"finance-assistant-api/internal/infrastructure/marketdata"
	apperrors "finance-assistant-api/pkg/errors"
)

func newTestService() *Service {
	chain := marketdata.NewChain(
		&config.MarketDataConfig{UseFallbackData: true},
		nil,
		marketdata.NewSimulatedProvider(),
	)
	return NewService(chain, nil, service.NewSymbolResolver(), nil)
}

func TestGetQuoteResolvesCommonName(t *testing.T) {
	svc := newTestService()

	quote, err := svc.GetQuote(context.Background(), "apple")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	// 无缓存时保留数据源自身的归属，不得标记为 cache
	assert.Equal(t, entity.SourceSimulated, quote.Source)
}

func TestGetQuoteUnknownSymbol(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetQuote(context.Background(), "some random company")
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeSymbolUnknown, appErr.Code)
}

func TestGetMarketSummarySourceAttribution(t *testing.T) {
	svc := newTestService()

	summary, err := svc.GetMarketSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.SourceSimulated, summary.Source)
	assert.NotEmpty(t, summary.Indices)
}

func TestGetQuotesSkipsFailures(t *testing.T) {
	svc := newTestService()

	quotes := svc.GetQuotes(context.Background(), []string{"AAPL", "not a symbol at all", "MSFT"})
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "MSFT", quotes[1].Symbol)
}
