package dto

import (
	"finance-assistant-api/internal/domain/entity"
)

// NewsQuery 新闻查询参数
type NewsQuery struct {
	Topic  string `form:"topic"`
	Symbol string `form:"symbol"`
	Limit  int    `form:"limit"`
}

// NewsArchiveQuery 归档查询参数
type NewsArchiveQuery struct {
	Symbol   string `form:"symbol"`
	Source   string `form:"source"`
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// NewsListResponse 新闻列表
type NewsListResponse struct {
	Articles []*entity.NewsArticle `json:"articles"`
	Count    int                   `json:"count"`
}

// SentimentResponse 市场情绪
type SentimentResponse struct {
	Report   *entity.SentimentReport `json:"report"`
	Articles []*entity.NewsArticle   `json:"articles,omitempty"`
}
