// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"finance-assistant-api/internal/domain/entity"
)

// FilingRepository 申报文件仓储接口
type FilingRepository interface {
	// Upsert 按 URL 去重写入申报文件
	Upsert(ctx context.Context, filing *entity.Filing) error
	// ListBySymbol 按标的代码列出申报文件（按申报时间倒序）
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*entity.Filing, error)
}
