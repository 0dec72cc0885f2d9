package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitByRunesShortText(t *testing.T) {
	chunks := splitByRunes("hello world", 100, 10)
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestSplitByRunesEmpty(t *testing.T) {
	assert.Nil(t, splitByRunes("   ", 100, 10))
	assert.Nil(t, splitByRunes("", 100, 10))
}

func TestSplitByRunesOverlap(t *testing.T) {
	text := strings.Repeat("a", 100)
	chunks := splitByRunes(text, 40, 10)

	// 步长 30：起点 0/30/60，末块覆盖到结尾后停止
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 40)
	assert.Len(t, chunks[2], 40)
}

func TestSplitByRunesNoOverlapStep(t *testing.T) {
	text := strings.Repeat("b", 90)
	chunks := splitByRunes(text, 30, 0)

	assert.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Len(t, c, 30)
	}
}

func TestSplitByRunesOverlapAtLeastOneStep(t *testing.T) {
	// overlap >= max 时退化为整块步长，不能死循环
	text := strings.Repeat("c", 50)
	chunks := splitByRunes(text, 20, 25)

	assert.Len(t, chunks, 3)
}

func TestSplitByRunesMultibyte(t *testing.T) {
	text := strings.Repeat("市", 25)
	chunks := splitByRunes(text, 10, 0)

	assert.Len(t, chunks, 3)
	assert.Equal(t, 10, len([]rune(chunks[0])))
	assert.Equal(t, 5, len([]rune(chunks[2])))
}

func TestSplitByRunesZeroMax(t *testing.T) {
	chunks := splitByRunes("some text", 0, 0)
	assert.Equal(t, []string{"some text"}, chunks)
}
