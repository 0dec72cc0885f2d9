package dto

import (
	"finance-assistant-api/internal/domain/entity"
)

// MarketDataQuery 行情查询参数
type MarketDataQuery struct {
	Symbol string `form:"symbol" binding:"required"`
}

// QuoteListResponse 多标的报价
type QuoteListResponse struct {
	Quotes []*entity.Quote `json:"quotes"`
}

// SectorPerformanceResponse 行业涨跌幅
type SectorPerformanceResponse struct {
	Sectors []entity.SectorPerformance `json:"sectors"`
}

// EarningsCalendarResponse 财报日历
type EarningsCalendarResponse struct {
	Events []entity.EarningsEvent `json:"events"`
}
