// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"finance-assistant-api/internal/domain/entity"
)

// HoldingFilter 持仓过滤条件
type HoldingFilter struct {
	Region string
	Sector string
}

// HoldingRepository 持仓仓储接口
type HoldingRepository interface {
	// Upsert 按标的代码写入或更新持仓
	Upsert(ctx context.Context, holding *entity.Holding) error
	// GetBySymbol 按标的代码获取持仓
	GetBySymbol(ctx context.Context, symbol string) (*entity.Holding, error)
	// List 按过滤条件列出持仓
	List(ctx context.Context, filter *HoldingFilter) ([]*entity.Holding, error)
	// Delete 删除持仓
	Delete(ctx context.Context, symbol string) error
}
