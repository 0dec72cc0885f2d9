package news

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finance-assistant-api/internal/domain/entity"
)

func TestMarkCachedOrigin(t *testing.T) {
	articles := []*entity.NewsArticle{
		{Title: "one", Origin: entity.SourceLive},
		{Title: "two", Origin: entity.SourceFallback},
		nil,
	}

	markCachedOrigin(articles)

	assert.Equal(t, entity.SourceCache, articles[0].Origin)
	assert.Equal(t, entity.SourceCache, articles[1].Origin)
}

func TestFilterBySymbol(t *testing.T) {
	articles := []*entity.NewsArticle{
		{Title: "apple earnings", Symbols: entity.StringSlice{"AAPL"}},
		{Title: "macro update", Symbols: entity.StringSlice{"SPY"}},
	}

	out := filterBySymbol(articles, "AAPL", 5)
	assert.Len(t, out, 1)
	assert.Equal(t, "apple earnings", out[0].Title)
}

func TestFilterBySymbolKeepsAllWhenNoMatch(t *testing.T) {
	articles := []*entity.NewsArticle{
		{Title: "macro update", Symbols: entity.StringSlice{"SPY"}},
	}

	out := filterBySymbol(articles, "AAPL", 5)
	assert.Len(t, out, 1)
}
