package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/market"
	"finance-assistant-api/internal/interfaces/http/dto"
	apperrors "finance-assistant-api/pkg/errors"
)

// MarketDataHandler 行情数据处理器
type MarketDataHandler struct {
	market *market.Service
}

// NewMarketDataHandler 创建行情数据处理器
func NewMarketDataHandler(marketSvc *market.Service) *MarketDataHandler {
	return &MarketDataHandler{market: marketSvc}
}

// GetQuote 获取实时报价
// @Summary 实时报价
// @Tags MarketData
// @Produce json
// @Param symbol query string true "标的代码或公司名"
// @Success 200 {object} dto.Response[entity.Quote]
// @Router /api/market-data [get]
func (h *MarketDataHandler) GetQuote(c *gin.Context) {
	var q dto.MarketDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "symbol is required")
		return
	}

	// 逗号分隔时返回多标的报价
	if strings.Contains(q.Symbol, ",") {
		symbols := splitSymbols(q.Symbol)
		quotes := h.market.GetQuotes(c.Request.Context(), symbols)
		if len(quotes) == 0 {
			respondError(c, apperrors.New(apperrors.CodeQuoteUnavailable, "no quotes available"))
			return
		}
		dto.Success(c, &dto.QuoteListResponse{Quotes: quotes})
		return
	}

	quote, err := h.market.GetQuote(c.Request.Context(), q.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, quote)
}

// GetOverview 获取公司概况
// @Summary 公司概况
// @Tags MarketData
// @Produce json
// @Param symbol query string true "标的代码或公司名"
// @Success 200 {object} dto.Response[entity.CompanyOverview]
// @Router /api/market-data/overview [get]
func (h *MarketDataHandler) GetOverview(c *gin.Context) {
	var q dto.MarketDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "symbol is required")
		return
	}

	overview, err := h.market.GetOverview(c.Request.Context(), q.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, overview)
}

// GetEarnings 获取季度财报
// @Summary 季度财报
// @Tags MarketData
// @Produce json
// @Param symbol query string true "标的代码或公司名"
// @Success 200 {object} dto.Response[entity.Earnings]
// @Router /api/market-data/earnings [get]
func (h *MarketDataHandler) GetEarnings(c *gin.Context) {
	var q dto.MarketDataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "symbol is required")
		return
	}

	earnings, err := h.market.GetEarnings(c.Request.Context(), q.Symbol)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, earnings)
}

// GetSectors 获取行业涨跌幅
// @Summary 行业涨跌幅
// @Tags MarketData
// @Produce json
// @Success 200 {object} dto.Response[dto.SectorPerformanceResponse]
// @Router /api/market-data/sectors [get]
func (h *MarketDataHandler) GetSectors(c *gin.Context) {
	sectors, err := h.market.GetSectorPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.SectorPerformanceResponse{Sectors: sectors})
}

// GetSummary 获取市场概况
// @Summary 市场概况
// @Tags MarketData
// @Produce json
// @Success 200 {object} dto.Response[entity.MarketSummary]
// @Router /api/market-data/summary [get]
func (h *MarketDataHandler) GetSummary(c *gin.Context) {
	summary, err := h.market.GetMarketSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, summary)
}

// GetCalendar 获取财报日历
// @Summary 财报日历
// @Tags MarketData
// @Produce json
// @Success 200 {object} dto.Response[dto.EarningsCalendarResponse]
// @Router /api/market-data/calendar [get]
func (h *MarketDataHandler) GetCalendar(c *gin.Context) {
	events, err := h.market.GetEarningsCalendar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.EarningsCalendarResponse{Events: events})
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
