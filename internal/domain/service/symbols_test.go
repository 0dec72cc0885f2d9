package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCommonNames(t *testing.T) {
	r := NewSymbolResolver()

	assert.Equal(t, "AAPL", r.Resolve("apple"))
	assert.Equal(t, "AAPL", r.Resolve("Apple"))
	assert.Equal(t, "TSM", r.Resolve("taiwan semiconductor"))
	assert.Equal(t, "9988.HK", r.Resolve("alibaba"))
	assert.Equal(t, "^GSPC", r.Resolve("s&p 500"))
}

func TestResolveTickerPassthrough(t *testing.T) {
	r := NewSymbolResolver()

	assert.Equal(t, "NVDA", r.Resolve("nvda"))
	assert.Equal(t, "005930.KS", r.Resolve("005930.ks"))
	assert.Equal(t, "^DJI", r.Resolve("^DJI"))
}

func TestResolveRejectsNonTickers(t *testing.T) {
	r := NewSymbolResolver()

	assert.Empty(t, r.Resolve(""))
	assert.Empty(t, r.Resolve("   "))
	assert.Empty(t, r.Resolve("some random company"))
	assert.Empty(t, r.Resolve("toolongsymbol"))
}

func TestExtractSymbols(t *testing.T) {
	r := NewSymbolResolver()

	symbols := r.ExtractSymbols("compare apple and microsoft earnings")
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestExtractSymbolsOrderedByPosition(t *testing.T) {
	r := NewSymbolResolver()

	assert.Equal(t, []string{"MSFT", "AAPL"},
		r.ExtractSymbols("compare microsoft and apple earnings"))
	assert.Equal(t, []string{"TSLA", "NVDA", "TSM"},
		r.ExtractSymbols("tesla vs nvidia vs tsmc this quarter"))
}

func TestExtractSymbolsDedupesAliases(t *testing.T) {
	r := NewSymbolResolver()

	// google 与 alphabet 指向同一代码，只出现一次
	assert.Equal(t, []string{"GOOGL", "META"},
		r.ExtractSymbols("alphabet aka google versus meta"))
}

func TestExtractSymbolsDefaultsToIndices(t *testing.T) {
	r := NewSymbolResolver()

	symbols := r.ExtractSymbols("how is the market doing today")
	assert.Equal(t, []string{"^DJI", "^GSPC", "^IXIC"}, symbols)
}

func TestExtractSymbolsNoMention(t *testing.T) {
	r := NewSymbolResolver()

	assert.Empty(t, r.ExtractSymbols("tell me a joke"))
}

func TestIndexName(t *testing.T) {
	assert.Equal(t, "S&P 500", IndexName("^GSPC"))
	assert.Equal(t, "XYZ", IndexName("XYZ"))
}

func TestIsIndex(t *testing.T) {
	assert.True(t, IsIndex("^DJI"))
	assert.False(t, IsIndex("AAPL"))
}
