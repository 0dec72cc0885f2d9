// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"finance-assistant-api/pkg/metrics"
)

// Repository 向量检索仓储
type Repository struct {
	client *Client
}

// NewRepository 创建向量检索仓储
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

// SearchParams 检索参数
type SearchParams struct {
	QueryVector []float32
	TopK        int
	Symbol      string
	Topics      []string
}

// SearchResult 检索结果
type SearchResult struct {
	ID          string
	Score       float32
	TextContent string
	Topic       string
	Symbol      string
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *entity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, entity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := entity.NewIndexHNSW(
		entity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Search 语义检索知识文档
func (r *Repository) Search(ctx context.Context, params *SearchParams) ([]*SearchResult, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.Search",
		trace.WithAttributes(
			attribute.Int("top_k", params.TopK),
			attribute.String("symbol", params.Symbol),
		))
	defer span.End()

	collName := r.client.CollectionName(CollectionKnowledge)

	// 构建过滤表达式
	var conditions []string
	if params.Symbol != "" {
		conditions = append(conditions, fmt.Sprintf(`symbol == "%s"`, params.Symbol))
	}
	if len(params.Topics) > 0 {
		// topic 只存在一个字段，使用 OR 条件构建过滤（避免依赖 IN 语法差异）。
		var parts []string
		for _, t := range params.Topics {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf(`topic == "%s"`, t))
		}
		if len(parts) > 0 {
			conditions = append(conditions, "("+strings.Join(parts, " || ")+")")
		}
	}
	filter := strings.Join(conditions, " && ")

	// 搜索参数
	sp, err := entity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	start := time.Now()

	// 执行搜索
	results, err := r.client.milvus.Search(ctx,
		collName,
		nil,
		filter,
		[]string{"id", "text_content", "topic", "symbol"},
		[]entity.Vector{entity.FloatVector(params.QueryVector)},
		"vector",
		entity.COSINE,
		params.TopK,
		sp,
	)

	metrics.MilvusSearchDuration.WithLabelValues(CollectionKnowledge).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledge, "error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	metrics.MilvusSearchTotal.WithLabelValues(CollectionKnowledge, "success").Inc()

	// 解析结果
	var searchResults []*SearchResult
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			sr := &SearchResult{
				Score: result.Scores[i],
			}

			if idCol, ok := result.Fields.GetColumn("id").(*entity.ColumnVarChar); ok {
				sr.ID = idCol.Data()[i]
			}
			if textCol, ok := result.Fields.GetColumn("text_content").(*entity.ColumnVarChar); ok {
				sr.TextContent = textCol.Data()[i]
			}
			if topicCol, ok := result.Fields.GetColumn("topic").(*entity.ColumnVarChar); ok {
				sr.Topic = topicCol.Data()[i]
			}
			if symbolCol, ok := result.Fields.GetColumn("symbol").(*entity.ColumnVarChar); ok {
				sr.Symbol = symbolCol.Data()[i]
			}

			searchResults = append(searchResults, sr)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(searchResults)))
	return searchResults, nil
}

// InsertDocuments 插入知识文档
func (r *Repository) InsertDocuments(ctx context.Context, records []*KnowledgeRecord) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertDocuments",
		trace.WithAttributes(attribute.Int("count", len(records))))
	defer span.End()

	if len(records) == 0 {
		return nil
	}

	collName := r.client.CollectionName(CollectionKnowledge)

	// 准备数据
	ids := make([]string, len(records))
	vectors := make([][]float32, len(records))
	topics := make([]string, len(records))
	symbols := make([]string, len(records))
	createdAts := make([]int64, len(records))
	textContents := make([]string, len(records))

	for i, rec := range records {
		ids[i] = rec.ID
		vectors[i] = rec.Vector
		topics[i] = rec.Topic
		symbols[i] = rec.Symbol
		createdAts[i] = rec.CreatedAt
		textContents[i] = rec.TextContent
	}

	// 构建列
	idCol := entity.NewColumnVarChar("id", ids)
	vectorCol := entity.NewColumnFloatVector("vector", VectorDimension, vectors)
	topicCol := entity.NewColumnVarChar("topic", topics)
	symbolCol := entity.NewColumnVarChar("symbol", symbols)
	createdCol := entity.NewColumnInt64("created_at", createdAts)
	textCol := entity.NewColumnVarChar("text_content", textContents)

	// 插入
	_, err := r.client.milvus.Insert(ctx, collName, "",
		idCol, vectorCol, topicCol, symbolCol, createdCol, textCol)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert documents: %w", err)
	}

	return nil
}

// DeleteByTopic 删除某个主题下的全部文档
func (r *Repository) DeleteByTopic(ctx context.Context, topic string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}

	ctx, span := tracer.Start(ctx, "milvus.DeleteByTopic",
		trace.WithAttributes(attribute.String("topic", topic)))
	defer span.End()

	collName := r.client.CollectionName(CollectionKnowledge)

	filter := fmt.Sprintf(`topic == "%s"`, topic)
	if err := r.client.milvus.Delete(ctx, collName, "", filter); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// DeleteBySymbol 删除某个标的的全部文档
func (r *Repository) DeleteBySymbol(ctx context.Context, symbol string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil
	}

	ctx, span := tracer.Start(ctx, "milvus.DeleteBySymbol",
		trace.WithAttributes(attribute.String("symbol", symbol)))
	defer span.End()

	collName := r.client.CollectionName(CollectionKnowledge)

	filter := fmt.Sprintf(`symbol == "%s"`, symbol)
	if err := r.client.milvus.Delete(ctx, collName, "", filter); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

// RebuildIndex 重建索引
func (r *Repository) RebuildIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.RebuildIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	// 1. 释放集合
	if err := r.client.milvus.ReleaseCollection(ctx, collName); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to release collection: %w", err)
	}

	// 2. 删除旧索引
	if err := r.client.milvus.DropIndex(ctx, collName, "vector"); err != nil {
		// 忽略索引不存在的错误
	}

	// 3. 创建新索引
	if err := r.CreateIndex(ctx, collection); err != nil {
		return err
	}

	// 4. 重新加载集合
	return r.client.milvus.LoadCollection(ctx, collName, false)
}

// EnsureKnowledgeCollection 确保 knowledge_documents 集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureKnowledgeCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionKnowledge)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, KnowledgeSchema()); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionKnowledge)
	}

	// 尝试确保集合已加载（若已加载，Milvus 会返回成功）
	return r.client.LoadCollection(ctx, CollectionKnowledge)
}
