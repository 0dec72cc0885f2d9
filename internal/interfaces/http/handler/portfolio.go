package handler

import (
	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/portfolio"
	"finance-assistant-api/internal/interfaces/http/dto"
)

// PortfolioHandler 投资组合处理器
type PortfolioHandler struct {
	portfolio *portfolio.Service
}

// NewPortfolioHandler 创建投资组合处理器
func NewPortfolioHandler(portfolioSvc *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolioSvc}
}

// GetExposure 获取组合敞口
// @Summary 组合敞口
// @Tags Portfolio
// @Produce json
// @Param region query string false "按区域过滤"
// @Param sector query string false "按行业过滤"
// @Success 200 {object} dto.Response[entity.PortfolioExposure]
// @Router /api/portfolio [get]
func (h *PortfolioHandler) GetExposure(c *gin.Context) {
	var q dto.PortfolioQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	exposure, err := h.portfolio.GetExposure(c.Request.Context(), q.Region, q.Sector)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, exposure)
}

// ListHoldings 获取持仓列表
// @Summary 持仓列表
// @Tags Portfolio
// @Produce json
// @Success 200 {object} dto.Response[dto.HoldingListResponse]
// @Router /api/portfolio/holdings [get]
func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	holdings, err := h.portfolio.ListHoldings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.HoldingListResponse{Holdings: holdings, Count: len(holdings)})
}

// UpsertHolding 写入或更新持仓
// @Summary 写入持仓
// @Tags Portfolio
// @Accept json
// @Produce json
// @Param request body dto.UpsertHoldingRequest true "持仓"
// @Success 200 {object} dto.Response[entity.Holding]
// @Router /api/portfolio/holdings [put]
func (h *PortfolioHandler) UpsertHolding(c *gin.Context) {
	var req dto.UpsertHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	holding := req.ToEntity()
	if err := h.portfolio.UpsertHolding(c.Request.Context(), holding); err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, holding)
}
