// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
)

// NewsRepository 新闻归档仓储实现
type NewsRepository struct {
	client *Client
}

// NewNewsRepository 创建新闻仓储
func NewNewsRepository(client *Client) *NewsRepository {
	return &NewsRepository{client: client}
}

// Create 归档单篇新闻
func (r *NewsRepository) Create(ctx context.Context, article *entity.NewsArticle) error {
	ctx, span := tracer.Start(ctx, "postgres.NewsRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	// URL 冲突视为重复抓取，静默跳过
	query := `
		INSERT INTO news_articles (id, title, url, source, summary, content, symbols, published_at, fetched_at, origin)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, NOW(), $8)
		ON CONFLICT (url) DO NOTHING
	`

	_, err := q.ExecContext(ctx, query,
		article.Title, article.URL, article.Source, article.Summary, article.Content,
		article.Symbols, article.PublishedAt, article.Origin,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create news article: %w", err)
	}

	return nil
}

// CreateBatch 批量归档新闻
func (r *NewsRepository) CreateBatch(ctx context.Context, articles []*entity.NewsArticle) error {
	ctx, span := tracer.Start(ctx, "postgres.NewsRepository.CreateBatch")
	defer span.End()

	for _, a := range articles {
		if err := r.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// List 按过滤条件分页列出新闻
func (r *NewsRepository) List(ctx context.Context, filter *repository.NewsFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.NewsArticle], error) {
	ctx, span := tracer.Start(ctx, "postgres.NewsRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	whereClause := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.Symbol != "" {
			whereClause += fmt.Sprintf(" AND symbols @> $%d::jsonb", argIdx)
			args = append(args, fmt.Sprintf(`["%s"]`, filter.Symbol))
			argIdx++
		}
		if filter.Source != "" {
			whereClause += fmt.Sprintf(" AND source = $%d", argIdx)
			args = append(args, filter.Source)
			argIdx++
		}
		if !filter.Since.IsZero() {
			whereClause += fmt.Sprintf(" AND published_at >= $%d", argIdx)
			args = append(args, filter.Since)
			argIdx++
		}
		if filter.Query != "" {
			whereClause += fmt.Sprintf(" AND (title ILIKE $%d OR summary ILIKE $%d)", argIdx, argIdx)
			args = append(args, "%"+filter.Query+"%")
			argIdx++
		}
	}

	// 获取总数
	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM news_articles WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count news articles: %w", err)
	}

	// 获取列表
	query := fmt.Sprintf(`
		SELECT id, title, url, source, summary, content, symbols, published_at, fetched_at, origin
		FROM news_articles
		WHERE %s
		ORDER BY published_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list news articles: %w", err)
	}
	defer rows.Close()

	var articles []*entity.NewsArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate news rows: %w", err)
	}

	return repository.NewPagedResult(articles, total, pagination), nil
}

// Latest 获取最近归档的新闻
func (r *NewsRepository) Latest(ctx context.Context, limit int) ([]*entity.NewsArticle, error) {
	ctx, span := tracer.Start(ctx, "postgres.NewsRepository.Latest")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, title, url, source, summary, content, symbols, published_at, fetched_at, origin
		FROM news_articles
		ORDER BY published_at DESC
		LIMIT $1
	`

	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query latest news: %w", err)
	}
	defer rows.Close()

	var articles []*entity.NewsArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate news rows: %w", err)
	}

	return articles, nil
}

// DeleteOlderThan 清理过期新闻
func (r *NewsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.NewsRepository.DeleteOlderThan")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	result, err := q.ExecContext(ctx, `DELETE FROM news_articles WHERE published_at < $1`, cutoff)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to delete old news: %w", err)
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}

// scanArticle 从多行结果扫描
func scanArticle(rows *sql.Rows) (*entity.NewsArticle, error) {
	var a entity.NewsArticle
	var content sql.NullString
	var fetchedAt sql.NullTime
	var origin sql.NullString

	err := rows.Scan(
		&a.ID, &a.Title, &a.URL, &a.Source, &a.Summary, &content,
		&a.Symbols, &a.PublishedAt, &fetchedAt, &origin,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan news row: %w", err)
	}

	if content.Valid {
		a.Content = content.String
	}
	if fetchedAt.Valid {
		a.FetchedAt = fetchedAt.Time
	}
	if origin.Valid {
		a.Origin = entity.DataSource(origin.String)
	}

	return &a, nil
}
