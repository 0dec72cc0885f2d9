package handler

import (
	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/analysis"
	"finance-assistant-api/internal/interfaces/http/dto"
)

// AnalysisHandler 财报分析处理器
type AnalysisHandler struct {
	analysis *analysis.Service
}

// NewAnalysisHandler 创建财报分析处理器
func NewAnalysisHandler(analysisSvc *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysisSvc}
}

// GetEarningsSurprises 获取财报超预期分析
// @Summary 财报超预期分析
// @Tags Analysis
// @Produce json
// @Param days query int false "分析窗口天数，默认 30"
// @Param sector query string false "按行业过滤"
// @Success 200 {object} dto.Response[analysis.EarningsAnalysis]
// @Router /api/analysis/earnings-surprises [get]
func (h *AnalysisHandler) GetEarningsSurprises(c *gin.Context) {
	var q dto.EarningsSurprisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	result, err := h.analysis.EarningsSurprises(c.Request.Context(), q.Window(), q.Sector)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, result)
}

// GetUpcomingEarnings 获取即将发布的财报
// @Summary 即将发布的财报
// @Tags Analysis
// @Produce json
// @Param days query int false "向前看的天数，默认 14"
// @Success 200 {object} dto.Response[dto.EarningsCalendarResponse]
// @Router /api/analysis/upcoming-earnings [get]
func (h *AnalysisHandler) GetUpcomingEarnings(c *gin.Context) {
	var q dto.EarningsSurprisesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	events, err := h.analysis.UpcomingEarnings(c.Request.Context(), q.Window())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.EarningsCalendarResponse{Events: events})
}
