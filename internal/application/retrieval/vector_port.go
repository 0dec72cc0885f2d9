package retrieval

import "context"

// VectorRepository 定义应用层对“向量存储/检索”的最小依赖（port）。
// 由基础设施层提供具体实现（例如 Milvus）。
type VectorRepository interface {
	EnsureKnowledgeCollection(ctx context.Context) error
	SearchDocuments(ctx context.Context, params *VectorSearchParams) ([]*VectorSearchResult, error)
	DeleteByTopic(ctx context.Context, topic string) error
	InsertDocuments(ctx context.Context, docs []*VectorDocument) error
}

type VectorSearchParams struct {
	QueryVector []float32
	TopK        int
	Symbol      string
	Topics      []string
}

type VectorSearchResult struct {
	ID          string
	Score       float32
	TextContent string
	Topic       string
	Symbol      string
}

type VectorDocument struct {
	ID          string
	Topic       string
	Symbol      string
	CreatedAt   int64
	TextContent string
	Vector      []float32
}
