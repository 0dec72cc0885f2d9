package retrieval

import "finance-assistant-api/internal/domain/entity"

// SeedDocuments 返回知识库的初始文档集，供启动引导时索引。
func SeedDocuments() []*entity.KnowledgeDocument {
	return []*entity.KnowledgeDocument{
		{
			ID:    "seed-indices-sp500",
			Topic: "indices",
			Text:  "The S&P 500 is a stock market index tracking the stock performance of 500 large companies listed on stock exchanges in the United States.",
		},
		{
			ID:    "seed-terminology-market-cap",
			Topic: "terminology",
			Text:  "Market capitalization refers to the total dollar market value of a company's outstanding shares of stock.",
		},
		{
			ID:    "seed-metrics-pe-ratio",
			Topic: "metrics",
			Text:  "The price-to-earnings ratio (P/E ratio) is the ratio of a company's share price to the company's earnings per share.",
		},
		{
			ID:    "seed-sectors-asia-tech",
			Topic: "sectors",
			Text:  "Asia tech stocks include companies like TSMC, Samsung, Alibaba, and Sony, which are major technology players in the Asian market.",
		},
		{
			ID:    "seed-metrics-eps-surprise",
			Topic: "metrics",
			Text:  "An earnings surprise occurs when a company's reported earnings per share differ from the consensus analyst estimate; a positive surprise (a beat) often moves the stock price upward.",
		},
		{
			ID:     "seed-companies-tsmc",
			Topic:  "companies",
			Symbol: "TSM",
			Text:   "Taiwan Semiconductor Manufacturing Company (TSMC) is the world's largest dedicated semiconductor foundry, producing chips for companies such as Apple and NVIDIA.",
		},
		{
			ID:     "seed-companies-samsung",
			Topic:  "companies",
			Symbol: "005930.KS",
			Text:   "Samsung Electronics is a South Korean multinational and one of the world's largest producers of memory chips, smartphones, and consumer electronics.",
		},
		{
			ID:    "seed-terminology-risk-exposure",
			Topic: "terminology",
			Text:  "Portfolio risk exposure measures how concentrated a portfolio's value is in a particular region, sector, or asset class relative to its total value.",
		},
	}
}
