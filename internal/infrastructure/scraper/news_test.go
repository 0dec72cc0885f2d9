package scraper

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short text", summarize("  short text  ", 300))
}

func TestSummarizeCutsOnWordBoundary(t *testing.T) {
	text := strings.Repeat("alpha beta ", 50)

	got := summarize(text, 30)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 33)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), " "))
}

func TestSummarizeKeepsMultibyteRunesIntact(t *testing.T) {
	text := strings.Repeat("市场波动加剧", 20)

	got := summarize(text, 10)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("市场波动加剧", 1)+"市场波动"+"...", got)
}

func TestSummarizeMixedTextValidUTF8(t *testing.T) {
	text := "Fed rate decision 美联储利率决议 sends Asian markets 亚洲市场 sharply higher on Tuesday morning trading session"

	got := summarize(text, 40)

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
