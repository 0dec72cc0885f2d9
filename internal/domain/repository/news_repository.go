// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"finance-assistant-api/internal/domain/entity"
)

// NewsFilter 新闻过滤条件
type NewsFilter struct {
	Symbol string
	Source string
	Since  time.Time
	Query  string
}

// NewsRepository 新闻归档仓储接口
type NewsRepository interface {
	// Create 归档单篇新闻
	Create(ctx context.Context, article *entity.NewsArticle) error
	// CreateBatch 批量归档新闻
	CreateBatch(ctx context.Context, articles []*entity.NewsArticle) error
	// List 按过滤条件分页列出新闻（按发布时间倒序）
	List(ctx context.Context, filter *NewsFilter, pagination Pagination) (*PagedResult[*entity.NewsArticle], error)
	// Latest 获取最近归档的新闻
	Latest(ctx context.Context, limit int) ([]*entity.NewsArticle, error)
	// DeleteOlderThan 清理过期新闻
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
