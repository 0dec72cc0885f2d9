package dto

import (
	"finance-assistant-api/internal/domain/entity"
)

// PortfolioQuery 组合敞口查询参数
type PortfolioQuery struct {
	Region string `form:"region"`
	Sector string `form:"sector"`
}

// HoldingListResponse 持仓列表
type HoldingListResponse struct {
	Holdings []*entity.Holding `json:"holdings"`
	Count    int               `json:"count"`
}

// UpsertHoldingRequest 写入持仓请求
type UpsertHoldingRequest struct {
	Symbol string  `json:"symbol" binding:"required"`
	Name   string  `json:"name"`
	Value  float64 `json:"value" binding:"required"`
	Shares float64 `json:"shares"`
	Sector string  `json:"sector"`
	Region string  `json:"region"`
}

// ToEntity 转换为领域实体
func (r *UpsertHoldingRequest) ToEntity() *entity.Holding {
	return &entity.Holding{
		Symbol: r.Symbol,
		Name:   r.Name,
		Value:  r.Value,
		Shares: r.Shares,
		Sector: r.Sector,
		Region: r.Region,
	}
}
