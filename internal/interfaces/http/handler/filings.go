package handler

import (
	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/filings"
	"finance-assistant-api/internal/interfaces/http/dto"
)

// FilingsHandler 监管申报文件处理器
type FilingsHandler struct {
	filings *filings.Service
}

// NewFilingsHandler 创建申报文件处理器
func NewFilingsHandler(filingsSvc *filings.Service) *FilingsHandler {
	return &FilingsHandler{filings: filingsSvc}
}

// GetFilings 获取最新申报文件
// @Summary 最新申报文件
// @Tags Filings
// @Produce json
// @Param symbol query string true "标的代码"
// @Param type query string false "文件类型，如 10-Q"
// @Param limit query int false "返回条数，默认 3"
// @Success 200 {object} dto.Response[dto.FilingListResponse]
// @Router /api/filings [get]
func (h *FilingsHandler) GetFilings(c *gin.Context) {
	var q dto.FilingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "symbol is required")
		return
	}

	result, err := h.filings.GetFilings(c.Request.Context(), q.Symbol, q.Type, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.FilingListResponse{Filings: result, Count: len(result)})
}

// GetHistory 获取归档的历史申报文件
// @Summary 历史申报文件
// @Tags Filings
// @Produce json
// @Param symbol query string true "标的代码"
// @Param limit query int false "返回条数"
// @Success 200 {object} dto.Response[dto.FilingListResponse]
// @Router /api/filings/history [get]
func (h *FilingsHandler) GetHistory(c *gin.Context) {
	var q dto.FilingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "symbol is required")
		return
	}

	result, err := h.filings.History(c.Request.Context(), q.Symbol, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.FilingListResponse{Filings: result, Count: len(result)})
}
