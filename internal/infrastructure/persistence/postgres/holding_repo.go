// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
)

// HoldingRepository 持仓仓储实现
type HoldingRepository struct {
	client *Client
}

// NewHoldingRepository 创建持仓仓储
func NewHoldingRepository(client *Client) *HoldingRepository {
	return &HoldingRepository{client: client}
}

// Upsert 按标的代码写入或更新持仓
func (r *HoldingRepository) Upsert(ctx context.Context, holding *entity.Holding) error {
	ctx, span := tracer.Start(ctx, "postgres.HoldingRepository.Upsert")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO holdings (id, symbol, name, value, shares, sector, region, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (symbol) DO UPDATE SET
			name = EXCLUDED.name,
			value = EXCLUDED.value,
			shares = EXCLUDED.shares,
			sector = EXCLUDED.sector,
			region = EXCLUDED.region,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		holding.Symbol, holding.Name, holding.Value, holding.Shares, holding.Sector, holding.Region,
	).Scan(&holding.ID, &holding.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert holding: %w", err)
	}

	return nil
}

// GetBySymbol 按标的代码获取持仓
func (r *HoldingRepository) GetBySymbol(ctx context.Context, symbol string) (*entity.Holding, error) {
	ctx, span := tracer.Start(ctx, "postgres.HoldingRepository.GetBySymbol")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, symbol, name, value, shares, sector, region, updated_at
		FROM holdings
		WHERE symbol = $1
	`

	var h entity.Holding
	err := q.QueryRowContext(ctx, query, symbol).Scan(
		&h.ID, &h.Symbol, &h.Name, &h.Value, &h.Shares, &h.Sector, &h.Region, &h.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return &h, nil
}

// List 按过滤条件列出持仓
func (r *HoldingRepository) List(ctx context.Context, filter *repository.HoldingFilter) ([]*entity.Holding, error) {
	ctx, span := tracer.Start(ctx, "postgres.HoldingRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	whereClause := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.Region != "" {
			whereClause += fmt.Sprintf(" AND region = $%d", argIdx)
			args = append(args, filter.Region)
			argIdx++
		}
		if filter.Sector != "" {
			whereClause += fmt.Sprintf(" AND sector = $%d", argIdx)
			args = append(args, filter.Sector)
			argIdx++
		}
	}

	query := fmt.Sprintf(`
		SELECT id, symbol, name, value, shares, sector, region, updated_at
		FROM holdings
		WHERE %s
		ORDER BY value DESC
	`, whereClause)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*entity.Holding
	for rows.Next() {
		var h entity.Holding
		if err := rows.Scan(&h.ID, &h.Symbol, &h.Name, &h.Value, &h.Shares, &h.Sector, &h.Region, &h.UpdatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		holdings = append(holdings, &h)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate holding rows: %w", err)
	}

	return holdings, nil
}

// Delete 删除持仓
func (r *HoldingRepository) Delete(ctx context.Context, symbol string) error {
	ctx, span := tracer.Start(ctx, "postgres.HoldingRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `DELETE FROM holdings WHERE symbol = $1`
	_, err := q.ExecContext(ctx, query, symbol)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	return nil
}
