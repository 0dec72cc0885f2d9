// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

const (
	// CollectionKnowledge 金融知识文档集合
	CollectionKnowledge = "knowledge_documents"

	// VectorDimension 向量维度（text-embedding-3-small）
	VectorDimension = 1536
)

// KnowledgeSchema 知识文档 Collection Schema
func KnowledgeSchema() *entity.Schema {
	return &entity.Schema{
		CollectionName: CollectionKnowledge,
		Description:    "Financial knowledge documents for semantic retrieval",
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "vector",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": "1536",
				},
			},
			{
				Name:     "topic",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "64",
				},
			},
			{
				Name:     "symbol",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "16",
				},
			},
			{
				Name:     "created_at",
				DataType: entity.FieldTypeInt64,
			},
			{
				Name:     "text_content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
		},
	}
}

// KnowledgeRecord 知识文档数据结构
type KnowledgeRecord struct {
	ID          string    `json:"id"`
	Vector      []float32 `json:"vector"`
	Topic       string    `json:"topic"`
	Symbol      string    `json:"symbol"`
	CreatedAt   int64     `json:"created_at"`
	TextContent string    `json:"text_content"`
}
