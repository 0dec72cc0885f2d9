package dto

// KnowledgeSearchQuery 知识库检索参数
type KnowledgeSearchQuery struct {
	Query  string `form:"q" binding:"required"`
	Symbol string `form:"symbol"`
	Topic  string `form:"topic"`
	TopK   int    `form:"top_k"`
	Debug  bool   `form:"debug"`
}

// KnowledgeDocument 单条召回结果
type KnowledgeDocument struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Topic  string  `json:"topic,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// KnowledgeDebugInfo 检索调试信息
type KnowledgeDebugInfo struct {
	VectorSearchTimeMs int64 `json:"vector_search_time_ms"`
	TotalCandidates    int   `json:"total_candidates"`
}

// KnowledgeSearchResponse 知识库检索结果
type KnowledgeSearchResponse struct {
	Documents      []KnowledgeDocument `json:"documents"`
	Count          int                 `json:"count"`
	DisabledReason string              `json:"disabled_reason,omitempty"`
	Debug          *KnowledgeDebugInfo `json:"debug,omitempty"`
}
