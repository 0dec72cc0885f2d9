// Package router 提供 HTTP 路由配置
package router

import (
	"finance-assistant-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health     *handler.HealthHandler
	MarketData *handler.MarketDataHandler
	News       *handler.NewsHandler
	Portfolio  *handler.PortfolioHandler
	Filings    *handler.FilingsHandler
	Analysis   *handler.AnalysisHandler
	Query      *handler.QueryHandler
	Knowledge  *handler.KnowledgeHandler
}

// RegisterAPIRoutes 注册业务路由
func RegisterAPIRoutes(g *gin.RouterGroup, h *Handlers) {
	// 行情数据
	marketData := g.Group("/market-data")
	{
		marketData.GET("", h.MarketData.GetQuote)
		marketData.GET("/overview", h.MarketData.GetOverview)
		marketData.GET("/earnings", h.MarketData.GetEarnings)
		marketData.GET("/sectors", h.MarketData.GetSectors)
		marketData.GET("/summary", h.MarketData.GetSummary)
		marketData.GET("/calendar", h.MarketData.GetCalendar)
	}

	// 财经新闻
	news := g.Group("/news")
	{
		news.GET("", h.News.GetNews)
		news.GET("/archive", h.News.GetArchive)
		news.GET("/sentiment", h.News.GetSentiment)
		news.POST("/refresh", h.News.RefreshNews)
	}

	// 知识库检索
	knowledge := g.Group("/knowledge")
	{
		knowledge.GET("/search", h.Knowledge.Search)
	}

	// 投资组合
	portfolio := g.Group("/portfolio")
	{
		portfolio.GET("", h.Portfolio.GetExposure)
		portfolio.GET("/holdings", h.Portfolio.ListHoldings)
		portfolio.PUT("/holdings", h.Portfolio.UpsertHolding)
	}

	// 监管申报文件
	filings := g.Group("/filings")
	{
		filings.GET("", h.Filings.GetFilings)
		filings.GET("/history", h.Filings.GetHistory)
	}

	// 财报分析
	analysis := g.Group("/analysis")
	{
		analysis.GET("/earnings-surprises", h.Analysis.GetEarningsSurprises)
		analysis.GET("/upcoming-earnings", h.Analysis.GetUpcomingEarnings)
	}

	// 智能问答
	query := g.Group("/query")
	{
		query.POST("/text", h.Query.ProcessText)
		query.POST("/voice", h.Query.ProcessVoice)
	}
}
