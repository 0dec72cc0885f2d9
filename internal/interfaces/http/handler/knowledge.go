package handler

import (
	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/retrieval"
	"finance-assistant-api/internal/interfaces/http/dto"
)

// KnowledgeHandler 知识库检索处理器
type KnowledgeHandler struct {
	engine *retrieval.Engine
}

// NewKnowledgeHandler 创建知识库检索处理器
func NewKnowledgeHandler(engine *retrieval.Engine) *KnowledgeHandler {
	return &KnowledgeHandler{engine: engine}
}

// Search 向量检索知识库
// @Summary 知识库检索
// @Tags Knowledge
// @Produce json
// @Param q query string true "检索语句"
// @Param symbol query string false "标的代码过滤"
// @Param topic query string false "主题过滤"
// @Param top_k query int false "返回条数，默认 5"
// @Param debug query bool false "返回检索耗时等调试信息"
// @Success 200 {object} dto.Response[dto.KnowledgeSearchResponse]
// @Router /api/knowledge/search [get]
func (h *KnowledgeHandler) Search(c *gin.Context) {
	var q dto.KnowledgeSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "query parameter 'q' is required")
		return
	}

	in := retrieval.SearchInput{
		Query:  q.Query,
		Symbol: q.Symbol,
		TopK:   q.TopK,
	}
	if q.Topic != "" {
		in.Topics = []string{q.Topic}
	}

	var (
		out *retrieval.SearchOutput
		err error
	)
	if q.Debug {
		out, err = h.engine.DebugSearch(c.Request.Context(), in)
	} else {
		out, err = h.engine.Search(c.Request.Context(), in)
	}
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	resp := &dto.KnowledgeSearchResponse{
		Documents:      make([]dto.KnowledgeDocument, 0, len(out.Documents)),
		DisabledReason: out.DisabledReason,
	}
	for _, d := range out.Documents {
		resp.Documents = append(resp.Documents, dto.KnowledgeDocument{
			ID:     d.ID,
			Text:   d.Text,
			Topic:  d.Topic,
			Symbol: d.Symbol,
			Score:  d.Score,
			Source: d.Source,
		})
	}
	resp.Count = len(resp.Documents)
	if out.Debug != nil {
		resp.Debug = &dto.KnowledgeDebugInfo{
			VectorSearchTimeMs: out.Debug.VectorSearchTimeMs,
			TotalCandidates:    out.Debug.TotalCandidates,
		}
	}
	dto.Success(c, resp)
}
