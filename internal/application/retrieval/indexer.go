package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"

	"finance-assistant-api/internal/domain/entity"
)

const (
	defaultChunkSizeRunes    = 800
	defaultChunkOverlapRunes = 80
	defaultEmbeddingBatch    = 32
)

type Indexer struct {
	embedder embedding.Embedder
	vector   VectorRepository

	embeddingBatchSize int
	chunkSizeRunes     int
	chunkOverlapRunes  int
}

func NewIndexer(embedder embedding.Embedder, vectorRepo VectorRepository, embeddingBatchSize int) *Indexer {
	bs := embeddingBatchSize
	if bs <= 0 {
		bs = defaultEmbeddingBatch
	}
	return &Indexer{
		embedder:           embedder,
		vector:             vectorRepo,
		embeddingBatchSize: bs,
		chunkSizeRunes:     defaultChunkSizeRunes,
		chunkOverlapRunes:  defaultChunkOverlapRunes,
	}
}

func (i *Indexer) Enabled() bool {
	return i != nil && i.embedder != nil && i.vector != nil
}

func (i *Indexer) ensureReady(ctx context.Context) error {
	if i == nil || i.vector == nil {
		return ErrVectorDisabled
	}
	return i.vector.EnsureKnowledgeCollection(ctx)
}

// IndexDocument 索引单篇知识文档（长文会按块切分后写入）。
func (i *Indexer) IndexDocument(ctx context.Context, doc *entity.KnowledgeDocument) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	return i.IndexDocuments(ctx, []*entity.KnowledgeDocument{doc})
}

// IndexDocuments 批量索引知识文档。
func (i *Indexer) IndexDocuments(ctx context.Context, docs []*entity.KnowledgeDocument) error {
	if !i.Enabled() {
		return ErrVectorDisabled
	}
	if len(docs) == 0 {
		return nil
	}
	if err := i.ensureReady(ctx); err != nil {
		return err
	}

	embedInputs := make([]string, 0, len(docs))
	records := make([]*VectorDocument, 0, len(docs))

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		text := strings.TrimSpace(doc.Text)
		if text == "" {
			continue
		}
		topic := strings.TrimSpace(doc.Topic)
		if topic == "" {
			topic = "general"
		}

		createdAt := doc.CreatedAt.Unix()
		if doc.CreatedAt.IsZero() {
			createdAt = time.Now().Unix()
		}

		chunks := splitByRunes(text, i.chunkSizeRunes, i.chunkOverlapRunes)
		for idx, chunk := range chunks {
			id := strings.TrimSpace(doc.ID)
			if id == "" {
				id = uuid.NewString()
			} else if len(chunks) > 1 {
				id = fmt.Sprintf("%s-%d", id, idx)
			}

			embedText := chunk
			if doc.Symbol != "" {
				embedText = "标的：" + doc.Symbol + "\n" + embedText
			}

			embedInputs = append(embedInputs, embedText)
			records = append(records, &VectorDocument{
				ID:          id,
				Topic:       topic,
				Symbol:      strings.TrimSpace(doc.Symbol),
				CreatedAt:   createdAt,
				TextContent: chunk,
			})
		}
	}

	if len(records) == 0 {
		return nil
	}

	vectors, err := i.embedBatch(ctx, embedInputs)
	if err != nil {
		return err
	}
	for idx := range records {
		records[idx].Vector = vectors[idx]
	}
	return i.vector.InsertDocuments(ctx, records)
}

// ReindexTopic 重建某一主题：先删除旧分片再写入新文档，避免残留。
func (i *Indexer) ReindexTopic(ctx context.Context, topic string, docs []*entity.KnowledgeDocument) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("topic is required")
	}
	if !i.Enabled() {
		return ErrVectorDisabled
	}
	if err := i.ensureReady(ctx); err != nil {
		return err
	}
	if err := i.vector.DeleteByTopic(ctx, topic); err != nil {
		return err
	}
	for _, doc := range docs {
		if doc != nil {
			doc.Topic = topic
		}
	}
	return i.IndexDocuments(ctx, docs)
}

func (i *Indexer) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if i == nil || i.embedder == nil {
		return nil, ErrVectorDisabled
	}
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += i.embeddingBatchSize {
		end := start + i.embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		v64, err := i.embedder.EmbedStrings(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		for _, vec := range v64 {
			f32 := make([]float32, 0, len(vec))
			for _, x := range vec {
				f32 = append(f32, float32(x))
			}
			out = append(out, f32)
		}
	}
	return out, nil
}
