package handler

import (
	"github.com/gin-gonic/gin"

	"finance-assistant-api/internal/application/news"
	"finance-assistant-api/internal/domain/repository"
	"finance-assistant-api/internal/interfaces/http/dto"
)

// NewsHandler 财经新闻处理器
type NewsHandler struct {
	news *news.Service
}

// NewNewsHandler 创建新闻处理器
func NewNewsHandler(newsSvc *news.Service) *NewsHandler {
	return &NewsHandler{news: newsSvc}
}

// GetNews 获取最新财经新闻
// @Summary 最新财经新闻
// @Tags News
// @Produce json
// @Param topic query string false "主题关键词"
// @Param symbol query string false "标的代码"
// @Param limit query int false "返回条数，默认 5"
// @Success 200 {object} dto.Response[dto.NewsListResponse]
// @Router /api/news [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	var q dto.NewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	query := q.Topic
	if query == "" {
		query = "financial markets"
	}

	articles, err := h.news.Latest(c.Request.Context(), query, q.Symbol, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.NewsListResponse{Articles: articles, Count: len(articles)})
}

// GetArchive 分页查询归档新闻
// @Summary 归档新闻查询
// @Tags News
// @Produce json
// @Param symbol query string false "标的代码"
// @Param source query string false "来源站点"
// @Param q query string false "标题关键词"
// @Param page query int false "页码，默认 1"
// @Param page_size query int false "每页条数，默认 20"
// @Success 200 {object} dto.Response[dto.NewsListResponse]
// @Router /api/news/archive [get]
func (h *NewsHandler) GetArchive(c *gin.Context) {
	var q dto.NewsArchiveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	filter := &repository.NewsFilter{
		Symbol: q.Symbol,
		Source: q.Source,
		Query:  q.Query,
	}
	result, err := h.news.Archive(c.Request.Context(), filter, q.Page, q.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.SuccessWithPage(c,
		&dto.NewsListResponse{Articles: result.Items, Count: len(result.Items)},
		dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)),
	)
}

// GetSentiment 获取市场情绪分析
// @Summary 市场情绪分析
// @Tags News
// @Produce json
// @Param topic query string false "主题关键词"
// @Success 200 {object} dto.Response[dto.SentimentResponse]
// @Router /api/news/sentiment [get]
func (h *NewsHandler) GetSentiment(c *gin.Context) {
	query := c.Query("topic")
	if query == "" {
		query = "financial markets"
	}

	report, err := h.news.Sentiment(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.SentimentResponse{Report: report})
}

// RefreshNews 强制刷新新闻缓存
// @Summary 刷新新闻
// @Tags News
// @Produce json
// @Param topic query string false "主题关键词"
// @Param symbol query string false "标的代码"
// @Success 200 {object} dto.Response[dto.NewsListResponse]
// @Router /api/news/refresh [post]
func (h *NewsHandler) RefreshNews(c *gin.Context) {
	var q dto.NewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.BadRequest(c, "invalid query parameters")
		return
	}

	query := q.Topic
	if query == "" {
		query = "financial markets"
	}

	articles, err := h.news.Refresh(c.Request.Context(), query, q.Symbol, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	dto.Success(c, &dto.NewsListResponse{Articles: articles, Count: len(articles)})
}
