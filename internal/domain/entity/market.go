// Package entity 定义领域实体
package entity

import (
	"time"
)

// DataSource 数据来源标记
type DataSource string

const (
	SourceLive      DataSource = "live"
	SourceCache     DataSource = "cache"
	SourceSimulated DataSource = "simulated"
	SourceFallback  DataSource = "fallback"
)

// Quote 实时报价
type Quote struct {
	Symbol        string     `json:"symbol"`
	Price         float64    `json:"price"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"change_percent"`
	Volume        int64      `json:"volume"`
	Currency      string     `json:"currency,omitempty"`
	Source        DataSource `json:"source"`
	Timestamp     time.Time  `json:"timestamp"`
}

// Candle 单日行情
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockData 报价与可选的历史行情
type StockData struct {
	Symbol     string   `json:"symbol"`
	Quote      Quote    `json:"quote"`
	Historical []Candle `json:"historical,omitempty"`
}

// CompanyOverview 公司概况
type CompanyOverview struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Exchange    string `json:"exchange"`
	Currency    string `json:"currency"`
	Country     string `json:"country"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Employees   int    `json:"employees"`
}

// EarningsReport 单季度财报
type EarningsReport struct {
	Date            string  `json:"date"`
	Quarter         string  `json:"quarter"`
	ExpectedEPS     float64 `json:"expected_eps"`
	ActualEPS       float64 `json:"actual_eps"`
	Surprise        float64 `json:"surprise"`
	SurprisePercent float64 `json:"surprise_percent"`
}

// Earnings 公司季度财报集合
type Earnings struct {
	Symbol    string           `json:"symbol"`
	Quarterly []EarningsReport `json:"quarterly_earnings"`
}

// EarningsSurprise 财报超预期记录
type EarningsSurprise struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	ExpectedEPS     float64 `json:"expected_eps"`
	ActualEPS       float64 `json:"actual_eps"`
	SurprisePercent float64 `json:"surprise_percent"`
	Date            string  `json:"date"`
	Sector          string  `json:"sector"`
}

// Beat 是否超出预期
func (s EarningsSurprise) Beat() bool {
	return s.ActualEPS >= s.ExpectedEPS
}

// EarningsEvent 财报日历条目
type EarningsEvent struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	ReportDate  string  `json:"report_date"`
	Time        string  `json:"time"` // BMO: 盘前, AMC: 盘后
	EstimateEPS float64 `json:"estimate_eps"`
	Sector      string  `json:"sector"`
}

// IndexQuote 指数报价
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// SectorPerformance 单一行业涨跌幅
type SectorPerformance struct {
	Sector        string  `json:"sector"`
	ChangePercent float64 `json:"change_percent"`
}

// MarketSummary 市场概况
type MarketSummary struct {
	Timestamp time.Time           `json:"timestamp"`
	Indices   []IndexQuote        `json:"indices"`
	Sectors   []SectorPerformance `json:"sectors"`
	Source    DataSource          `json:"source"`
}
