package marketdata

import (
	"finance-assistant-api/internal/domain/entity"
)

// companyOverviews 内置公司概况数据
var companyOverviews = map[string]entity.CompanyOverview{
	"AAPL": {
		Symbol:      "AAPL",
		Name:        "Apple Inc.",
		Description: "Apple Inc. designs, manufactures, and markets smartphones, personal computers, tablets, wearables, and accessories worldwide.",
		Exchange:    "NASDAQ",
		Currency:    "USD",
		Country:     "USA",
		Sector:      "Technology",
		Industry:    "Consumer Electronics",
		Employees:   154000,
	},
	"MSFT": {
		Symbol:      "MSFT",
		Name:        "Microsoft Corporation",
		Description: "Microsoft Corporation develops, licenses, and supports software, services, devices, and solutions worldwide.",
		Exchange:    "NASDAQ",
		Currency:    "USD",
		Country:     "USA",
		Sector:      "Technology",
		Industry:    "Software-Infrastructure",
		Employees:   181000,
	},
	"GOOGL": {
		Symbol:      "GOOGL",
		Name:        "Alphabet Inc.",
		Description: "Alphabet Inc. provides various products and platforms in the United States, Europe, the Middle East, Africa, the Asia-Pacific, Canada, and Latin America.",
		Exchange:    "NASDAQ",
		Currency:    "USD",
		Country:     "USA",
		Sector:      "Communication Services",
		Industry:    "Internet Content & Information",
		Employees:   156500,
	},
	"TSM": {
		Symbol:      "TSM",
		Name:        "Taiwan Semiconductor Manufacturing Company Limited",
		Description: "Taiwan Semiconductor Manufacturing Company Limited manufactures and sells integrated circuits and semiconductors.",
		Exchange:    "NYSE",
		Currency:    "USD",
		Country:     "Taiwan",
		Sector:      "Technology",
		Industry:    "Semiconductors",
		Employees:   56800,
	},
}

// sectorRange 行业涨跌幅取值区间（百分比）
type sectorRange struct {
	Sector string
	Low    float64
	High   float64
}

// sectorRanges 行业顺序固定，便于输出稳定
var sectorRanges = []sectorRange{
	{"Technology", -2, 5},
	{"Healthcare", -2, 3},
	{"Financial Services", -2, 2},
	{"Consumer Cyclical", -3, 3},
	{"Communication Services", -2, 4},
	{"Industrials", -2, 2},
	{"Consumer Defensive", -1, 1},
	{"Energy", -4, 4},
	{"Basic Materials", -3, 3},
	{"Real Estate", -2, 2},
	{"Utilities", -1, 1},
}

// indexBase 指数基准价与波动幅度
type indexBase struct {
	Base         float64
	PriceSpread  float64
	ChangeSpread float64
}

var indexBases = map[string]indexBase{
	"^DJI":  {34000, 500, 200},
	"^GSPC": {4500, 100, 50},
	"^IXIC": {14000, 300, 100},
	"^N225": {28000, 500, 200},
	"^HSI":  {24000, 500, 200},
}

// earningsSurprises 近一季财报实际值与预期对比
var earningsSurprises = []entity.EarningsSurprise{
	{Symbol: "AAPL", Name: "Apple Inc.", ExpectedEPS: 1.45, ActualEPS: 1.52, SurprisePercent: 4.83, Date: "2023-04-28", Sector: "Technology"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", ExpectedEPS: 2.23, ActualEPS: 2.35, SurprisePercent: 5.38, Date: "2023-04-28", Sector: "Technology"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", ExpectedEPS: 1.34, ActualEPS: 1.44, SurprisePercent: 7.46, Date: "2023-04-28", Sector: "Communication Services"},
	{Symbol: "META", Name: "Meta Platforms Inc.", ExpectedEPS: 2.56, ActualEPS: 2.20, SurprisePercent: -14.06, Date: "2023-04-28", Sector: "Communication Services"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", ExpectedEPS: 0.21, ActualEPS: 0.31, SurprisePercent: 47.62, Date: "2023-04-28", Sector: "Consumer Cyclical"},
	{Symbol: "NFLX", Name: "Netflix Inc.", ExpectedEPS: 3.10, ActualEPS: 3.73, SurprisePercent: 20.32, Date: "2023-04-28", Sector: "Communication Services"},
	{Symbol: "TSLA", Name: "Tesla Inc.", ExpectedEPS: 0.85, ActualEPS: 0.73, SurprisePercent: -14.12, Date: "2023-04-28", Sector: "Consumer Cyclical"},
	{Symbol: "TSM", Name: "Taiwan Semiconductor Manufacturing", ExpectedEPS: 1.07, ActualEPS: 1.12, SurprisePercent: 4.67, Date: "2023-04-28", Sector: "Technology"},
	{Symbol: "INTC", Name: "Intel Corporation", ExpectedEPS: 0.13, ActualEPS: 0.10, SurprisePercent: -23.08, Date: "2023-04-28", Sector: "Technology"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", ExpectedEPS: 0.92, ActualEPS: 1.09, SurprisePercent: 18.48, Date: "2023-05-24", Sector: "Technology"},
	{Symbol: "AMD", Name: "Advanced Micro Devices Inc.", ExpectedEPS: 0.56, ActualEPS: 0.60, SurprisePercent: 7.14, Date: "2023-05-24", Sector: "Technology"},
	{Symbol: "SONY", Name: "Sony Group Corporation", ExpectedEPS: 0.58, ActualEPS: 0.62, SurprisePercent: 6.90, Date: "2023-05-24", Sector: "Technology"},
	{Symbol: "BABA", Name: "Alibaba Group Holding Limited", ExpectedEPS: 1.15, ActualEPS: 1.40, SurprisePercent: 21.74, Date: "2023-05-24", Sector: "Consumer Cyclical"},
	{Symbol: "005930.KS", Name: "Samsung Electronics Co Ltd", ExpectedEPS: 1.10, ActualEPS: 1.08, SurprisePercent: -1.82, Date: "2023-05-24", Sector: "Technology"},
}

// earningsCalendar 未来财报日历（Time 字段 BMO 盘前 / AMC 盘后）
var earningsCalendar = []entity.EarningsEvent{
	{Symbol: "AAPL", Name: "Apple Inc.", ReportDate: "2023-07-25", Time: "AMC", EstimateEPS: 1.19, Sector: "Technology"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", ReportDate: "2023-07-25", Time: "AMC", EstimateEPS: 2.55, Sector: "Technology"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", ReportDate: "2023-07-25", Time: "AMC", EstimateEPS: 1.34, Sector: "Communication Services"},
	{Symbol: "META", Name: "Meta Platforms Inc.", ReportDate: "2023-07-26", Time: "AMC", EstimateEPS: 2.91, Sector: "Communication Services"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", ReportDate: "2023-07-27", Time: "AMC", EstimateEPS: 0.35, Sector: "Consumer Cyclical"},
	{Symbol: "INTC", Name: "Intel Corporation", ReportDate: "2023-07-27", Time: "AMC", EstimateEPS: 0.20, Sector: "Technology"},
	{Symbol: "TSLA", Name: "Tesla Inc.", ReportDate: "2023-07-19", Time: "AMC", EstimateEPS: 0.82, Sector: "Consumer Cyclical"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", ReportDate: "2023-07-14", Time: "BMO", EstimateEPS: 3.95, Sector: "Financial Services"},
	{Symbol: "BAC", Name: "Bank of America Corporation", ReportDate: "2023-07-18", Time: "BMO", EstimateEPS: 0.84, Sector: "Financial Services"},
	{Symbol: "PG", Name: "The Procter & Gamble Company", ReportDate: "2023-07-28", Time: "BMO", EstimateEPS: 1.32, Sector: "Consumer Defensive"},
}
