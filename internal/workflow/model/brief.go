package model

// MarketBriefInput 市场简报链输入。数据块由编排层预先格式化。
type MarketBriefInput struct {
	Provider string
	Model    string

	Query string

	PortfolioBlock   string
	EarningsBlock    string
	MarketBlock      string
	NewsBlock        string
	RetrievedContext string

	Temperature *float32
	MaxTokens   *int
}
