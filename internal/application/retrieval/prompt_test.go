package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptContextEmpty(t *testing.T) {
	assert.Empty(t, BuildPromptContext(nil, 5, 400))
	assert.Empty(t, BuildPromptContext([]Document{}, 5, 400))
}

func TestBuildPromptContextFormat(t *testing.T) {
	docs := []Document{
		{Topic: "etf", Symbol: "", Text: "An ETF is an exchange-traded fund."},
		{Topic: "earnings", Symbol: "AAPL", Text: "Apple reports quarterly earnings."},
	}

	out := BuildPromptContext(docs, 5, 400)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "【召回上下文（可能为空）】", lines[0])
	assert.Equal(t, "[1] (etf) An ETF is an exchange-traded fund.", lines[1])
	assert.Equal(t, "[2] (earnings:AAPL) Apple reports quarterly earnings.", lines[2])
}

func TestBuildPromptContextMaxDocs(t *testing.T) {
	docs := []Document{
		{Topic: "a", Text: "one"},
		{Topic: "b", Text: "two"},
		{Topic: "c", Text: "three"},
	}

	out := BuildPromptContext(docs, 2, 400)
	assert.Contains(t, out, "[1] (a) one")
	assert.Contains(t, out, "[2] (b) two")
	assert.NotContains(t, out, "three")
}

func TestBuildPromptContextTruncates(t *testing.T) {
	docs := []Document{{Topic: "long", Text: strings.Repeat("x", 500)}}

	out := BuildPromptContext(docs, 5, 100)
	assert.Contains(t, out, "…")
	assert.Less(t, len([]rune(out)), 200)
}

func TestBuildPromptContextFlattensNewlines(t *testing.T) {
	docs := []Document{{Topic: "multi", Text: "line one\r\nline two\n\nline  three"}}

	out := BuildPromptContext(docs, 5, 400)
	assert.Contains(t, out, "[1] (multi) line one line two line three")
}

func TestBuildPromptContextFallbackRef(t *testing.T) {
	docs := []Document{{Text: "no topic here"}}

	out := BuildPromptContext(docs, 5, 400)
	assert.Contains(t, out, "[1] (context) no topic here")
}

func TestBuildPromptContextSkipsEmptyText(t *testing.T) {
	docs := []Document{
		{Topic: "blank", Text: "   "},
		{Topic: "real", Text: "useful content"},
	}

	out := BuildPromptContext(docs, 5, 400)
	assert.NotContains(t, out, "blank")
	assert.Contains(t, out, "useful content")
}
