package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/embedding"
)

type Engine struct {
	embedder embedding.Embedder
	vector   VectorRepository

	embeddingBatchSize int
}

func NewEngine(embedder embedding.Embedder, vectorRepo VectorRepository, embeddingBatchSize int) *Engine {
	bs := embeddingBatchSize
	if bs <= 0 {
		bs = defaultEmbeddingBatch
	}
	return &Engine{
		embedder:           embedder,
		vector:             vectorRepo,
		embeddingBatchSize: bs,
	}
}

func (e *Engine) Enabled() bool {
	return e != nil && e.embedder != nil && e.vector != nil
}

func (e *Engine) ensureReady(ctx context.Context) error {
	if e == nil || e.vector == nil {
		return ErrVectorDisabled
	}
	return e.vector.EnsureKnowledgeCollection(ctx)
}

func (e *Engine) Search(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	return e.search(ctx, in, false)
}

func (e *Engine) DebugSearch(ctx context.Context, in SearchInput) (*SearchOutput, error) {
	return e.search(ctx, in, true)
}

// search 向量召回。向量能力不可用时返回空结果并标记 DisabledReason，
// 不让检索失败拖垮上层问答链路。
func (e *Engine) search(ctx context.Context, in SearchInput, forceDebug bool) (*SearchOutput, error) {
	if in.TopK <= 0 {
		in.TopK = 5
	}
	if in.TopK > 50 {
		in.TopK = 50
	}
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	out := &SearchOutput{}

	var dbg *DebugInfo
	if forceDebug {
		dbg = &DebugInfo{}
	}

	if !e.Enabled() {
		out.DisabledReason = ErrVectorDisabled.Error()
		out.Debug = dbg
		return out, nil
	}

	if err := e.ensureReady(ctx); err != nil {
		out.DisabledReason = err.Error()
		out.Debug = dbg
		return out, nil
	}

	start := time.Now()
	emb, err := e.embedQuery(ctx, in.Query)
	if err != nil {
		out.DisabledReason = err.Error()
		out.Debug = dbg
		return out, nil
	}
	if in.IncludeEmbedding {
		out.QueryEmbedding = emb
	}

	results, err := e.vector.SearchDocuments(ctx, &VectorSearchParams{
		QueryVector: emb,
		TopK:        in.TopK,
		Symbol:      strings.TrimSpace(in.Symbol),
		Topics:      in.Topics,
	})
	if err != nil {
		out.DisabledReason = err.Error()
		out.Debug = dbg
		return out, nil
	}

	out.Documents = make([]Document, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		out.Documents = append(out.Documents, Document{
			ID:     strings.TrimSpace(r.ID),
			Text:   strings.TrimSpace(r.TextContent),
			Topic:  strings.TrimSpace(r.Topic),
			Symbol: strings.TrimSpace(r.Symbol),
			Score:  1 - float64(r.Score), // 将“距离”转换为更直观的相似度（COSINE: distance=1-cos）
			Source: "vector",
		})
	}

	if dbg != nil {
		dbg.VectorSearchTimeMs = time.Since(start).Milliseconds()
		dbg.TotalCandidates = len(out.Documents)
		out.Debug = dbg
	}
	return out, nil
}

func (e *Engine) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if e == nil || e.embedder == nil {
		return nil, ErrVectorDisabled
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("query is empty")
	}
	v64, err := e.embedder.EmbedStrings(ctx, []string{q})
	if err != nil {
		return nil, err
	}
	if len(v64) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	vec := v64[0]
	out := make([]float32, 0, len(vec))
	for _, x := range vec {
		out = append(out, float32(x))
	}
	return out, nil
}
