// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finance-assistant-api/internal/domain/entity"
)

// FilingRepository 申报文件仓储实现
type FilingRepository struct {
	client *Client
}

// NewFilingRepository 创建申报文件仓储
func NewFilingRepository(client *Client) *FilingRepository {
	return &FilingRepository{client: client}
}

// Upsert 按 URL 去重写入申报文件
func (r *FilingRepository) Upsert(ctx context.Context, filing *entity.Filing) error {
	ctx, span := tracer.Start(ctx, "postgres.FilingRepository.Upsert")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO filings (id, symbol, title, url, type, filed_at, origin, fetched_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			filed_at = EXCLUDED.filed_at
	`

	_, err := q.ExecContext(ctx, query,
		filing.Symbol, filing.Title, filing.URL, filing.Type, filing.FiledAt, filing.Origin,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert filing: %w", err)
	}

	return nil
}

// ListBySymbol 按标的代码列出申报文件
func (r *FilingRepository) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*entity.Filing, error) {
	ctx, span := tracer.Start(ctx, "postgres.FilingRepository.ListBySymbol")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, symbol, title, url, type, filed_at, origin, fetched_at
		FROM filings
		WHERE symbol = $1
		ORDER BY filed_at DESC
		LIMIT $2
	`

	rows, err := q.QueryContext(ctx, query, symbol, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list filings: %w", err)
	}
	defer rows.Close()

	var filings []*entity.Filing
	for rows.Next() {
		var f entity.Filing
		var origin sql.NullString
		var fetchedAt sql.NullTime

		if err := rows.Scan(&f.ID, &f.Symbol, &f.Title, &f.URL, &f.Type, &f.FiledAt, &origin, &fetchedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan filing row: %w", err)
		}
		if origin.Valid {
			f.Origin = entity.DataSource(origin.String)
		}
		if fetchedAt.Valid {
			f.FetchedAt = fetchedAt.Time
		}
		filings = append(filings, &f)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate filing rows: %w", err)
	}

	return filings, nil
}
