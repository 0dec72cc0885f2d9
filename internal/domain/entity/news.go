// Package entity 定义领域实体
package entity

import (
	"time"
)

// NewsArticle 财经新闻
type NewsArticle struct {
	ID          string      `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string      `json:"title" gorm:"type:text;not null"`
	URL         string      `json:"url" gorm:"type:text"`
	Source      string      `json:"source" gorm:"type:varchar(100);index"`
	Summary     string      `json:"summary" gorm:"type:text"`
	Content     string      `json:"content,omitempty" gorm:"type:text"`
	Symbols     StringSlice `json:"symbols,omitempty" gorm:"type:jsonb"`
	PublishedAt time.Time   `json:"published_at" gorm:"index"`
	FetchedAt   time.Time   `json:"fetched_at,omitempty"`
	Origin      DataSource  `json:"origin,omitempty" gorm:"type:varchar(20)"`
}

// TableName 指定表名
func (NewsArticle) TableName() string {
	return "news_articles"
}

// MentionsSymbol 判断新闻是否关联指定标的
func (a *NewsArticle) MentionsSymbol(symbol string) bool {
	for _, s := range a.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// SentimentReport 市场情绪分析结果
type SentimentReport struct {
	Query      string    `json:"query,omitempty"`
	Sentiment  string    `json:"sentiment"` // bullish / bearish / neutral
	Score      float64   `json:"score"`
	KeyFactors []string  `json:"key_factors"`
	Timestamp  time.Time `json:"timestamp"`
}
