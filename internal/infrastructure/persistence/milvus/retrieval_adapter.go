package milvus

import (
	"context"

	"finance-assistant-api/internal/application/retrieval"
)

type RetrievalVectorRepository struct {
	repo *Repository
}

func NewRetrievalVectorRepository(repo *Repository) *RetrievalVectorRepository {
	return &RetrievalVectorRepository{repo: repo}
}

var _ retrieval.VectorRepository = (*RetrievalVectorRepository)(nil)

func (r *RetrievalVectorRepository) EnsureKnowledgeCollection(ctx context.Context) error {
	if r == nil || r.repo == nil {
		return retrieval.ErrVectorDisabled
	}
	return r.repo.EnsureKnowledgeCollection(ctx)
}

func (r *RetrievalVectorRepository) SearchDocuments(ctx context.Context, params *retrieval.VectorSearchParams) ([]*retrieval.VectorSearchResult, error) {
	if r == nil || r.repo == nil {
		return nil, retrieval.ErrVectorDisabled
	}
	if params == nil {
		return nil, nil
	}

	out, err := r.repo.Search(ctx, &SearchParams{
		QueryVector: params.QueryVector,
		TopK:        params.TopK,
		Symbol:      params.Symbol,
		Topics:      params.Topics,
	})
	if err != nil {
		return nil, err
	}

	results := make([]*retrieval.VectorSearchResult, 0, len(out))
	for i := range out {
		v := out[i]
		if v == nil {
			continue
		}
		results = append(results, &retrieval.VectorSearchResult{
			ID:          v.ID,
			Score:       v.Score,
			TextContent: v.TextContent,
			Topic:       v.Topic,
			Symbol:      v.Symbol,
		})
	}
	return results, nil
}

func (r *RetrievalVectorRepository) DeleteByTopic(ctx context.Context, topic string) error {
	if r == nil || r.repo == nil {
		return retrieval.ErrVectorDisabled
	}
	return r.repo.DeleteByTopic(ctx, topic)
}

func (r *RetrievalVectorRepository) InsertDocuments(ctx context.Context, docs []*retrieval.VectorDocument) error {
	if r == nil || r.repo == nil {
		return retrieval.ErrVectorDisabled
	}
	if len(docs) == 0 {
		return nil
	}

	out := make([]*KnowledgeRecord, 0, len(docs))
	for i := range docs {
		d := docs[i]
		if d == nil {
			continue
		}
		out = append(out, &KnowledgeRecord{
			ID:          d.ID,
			Topic:       d.Topic,
			Symbol:      d.Symbol,
			CreatedAt:   d.CreatedAt,
			TextContent: d.TextContent,
			Vector:      d.Vector,
		})
	}
	return r.repo.InsertDocuments(ctx, out)
}
