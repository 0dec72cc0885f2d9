package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/application/orchestrator"
)

func TestFromAnswer(t *testing.T) {
	resp := FromAnswer(&orchestrator.Answer{
		Answer:     "AAPL is trading at 231.50.",
		Intent:     "quote",
		Confidence: 0.9,
		Sources:    []string{"alphavantage"},
		Generated:  true,
	})

	require.NotNil(t, resp)
	assert.Equal(t, "AAPL is trading at 231.50.", resp.Answer)
	assert.Equal(t, "quote", resp.Intent)
	assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
	assert.Equal(t, []string{"alphavantage"}, resp.Sources)
	assert.True(t, resp.Generated)
}

func TestFromAnswerNilSourcesBecomesEmptySlice(t *testing.T) {
	resp := FromAnswer(&orchestrator.Answer{Answer: "ok", Intent: "generic"})

	require.NotNil(t, resp)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
}

func TestFromAnswerNil(t *testing.T) {
	assert.Nil(t, FromAnswer(nil))
}
