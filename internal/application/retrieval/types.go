package retrieval

// SearchInput 知识库检索输入。
type SearchInput struct {
	Query  string
	Symbol string
	TopK   int

	// Topics 为空表示不过滤；非空则仅检索指定主题。
	Topics []string

	IncludeEmbedding bool
}

// Document 单条召回结果。
type Document struct {
	ID     string
	Text   string
	Topic  string
	Symbol string
	Score  float64
	Source string
}

type DebugInfo struct {
	VectorSearchTimeMs int64
	TotalCandidates    int
}

type SearchOutput struct {
	Documents []Document

	DisabledReason string
	QueryEmbedding []float32
	Debug          *DebugInfo
}
