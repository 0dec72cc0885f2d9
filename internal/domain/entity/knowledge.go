// Package entity 定义领域实体
package entity

import (
	"time"
)

// KnowledgeDocument 知识库文档（向量索引单元）
type KnowledgeDocument struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Symbol    string            `json:"symbol,omitempty"`
	Text      string            `json:"text"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
}
