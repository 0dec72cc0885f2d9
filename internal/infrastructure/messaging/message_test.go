package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageAndUnmarshalPayload(t *testing.T) {
	type refreshPayload struct {
		JobID string `json:"job_id"`
		Limit int    `json:"limit"`
	}

	msg, err := NewMessage("msg-1", "news_refresh", "AAPL", refreshPayload{JobID: "job-42", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, "news_refresh", msg.Type)
	assert.Equal(t, "AAPL", msg.Symbol)
	assert.NotNil(t, msg.Metadata)
	assert.False(t, msg.CreatedAt.IsZero())

	var decoded refreshPayload
	require.NoError(t, msg.UnmarshalPayload(&decoded))
	assert.Equal(t, "job-42", decoded.JobID)
	assert.Equal(t, 10, decoded.Limit)
}

func TestNewMessageInvalidPayload(t *testing.T) {
	_, err := NewMessage("msg-2", "bad", "", make(chan int))
	assert.Error(t, err)
}

func TestMessageMetadata(t *testing.T) {
	msg := &Message{}

	assert.Empty(t, msg.GetMetadata("retry_count"))

	msg.SetMetadata("retry_count", "2")
	assert.Equal(t, "2", msg.GetMetadata("retry_count"))
}

func TestDLQStream(t *testing.T) {
	assert.Equal(t, "dlq:stream:news:refresh", StreamNewsRefresh.DLQStream())
	assert.Equal(t, "dlq:stream:knowledge:index", StreamKnowledgeIndex.DLQStream())
}

func TestCalculateBackoff(t *testing.T) {
	cfg := BackoffConfig{
		Initial:    time.Second,
		Max:        time.Minute,
		Multiplier: 2,
	}

	tests := []struct {
		retries int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{10, time.Minute},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.CalculateBackoff(tt.retries), "retries=%d", tt.retries)
	}
}

func TestDefaultBackoffConfig(t *testing.T) {
	cfg := DefaultBackoffConfig()

	assert.Equal(t, time.Second, cfg.Initial)
	assert.Equal(t, time.Minute, cfg.Max)
	assert.InDelta(t, 2.0, cfg.Multiplier, 1e-9)
}
