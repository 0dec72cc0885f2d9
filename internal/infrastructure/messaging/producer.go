// Package messaging 提供消息队列实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishNewsRefresh 发布新闻刷新任务
func (p *Producer) PublishNewsRefresh(ctx context.Context, job *NewsRefreshMessage) (string, error) {
	msg, err := NewMessage(job.JobID, "news_refresh", job.Symbol, job)
	if err != nil {
		return "", err
	}

	if job.Reason != "" {
		msg.SetMetadata("reason", job.Reason)
	}
	return p.Publish(ctx, StreamNewsRefresh, msg)
}

// PublishKnowledgeIndex 发布知识库索引任务
func (p *Producer) PublishKnowledgeIndex(ctx context.Context, job *KnowledgeIndexMessage) (string, error) {
	msg, err := NewMessage(job.DocID, "knowledge_index", job.Symbol, job)
	if err != nil {
		return "", err
	}

	msg.SetMetadata("topic", job.Topic)
	return p.Publish(ctx, StreamKnowledgeIndex, msg)
}

// NewsRefreshMessage 新闻刷新任务消息
type NewsRefreshMessage struct {
	JobID  string `json:"job_id"`
	Symbol string `json:"symbol,omitempty"`
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	// Reason 触发原因：scheduled / manual / query_miss
	Reason string `json:"reason,omitempty"`
}

// KnowledgeIndexMessage 知识库索引任务消息
type KnowledgeIndexMessage struct {
	DocID  string `json:"doc_id"`
	Topic  string `json:"topic"`
	Symbol string `json:"symbol,omitempty"`
	Text   string `json:"text"`
}
