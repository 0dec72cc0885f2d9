// Package entity 定义领域实体
package entity

import (
	"time"
)

// Holding 投资组合持仓
type Holding struct {
	ID        string    `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Symbol    string    `json:"symbol" gorm:"type:varchar(20);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(200)"`
	Value     float64   `json:"value"`
	Shares    float64   `json:"shares"`
	Sector    string    `json:"sector" gorm:"type:varchar(100);index"`
	Region    string    `json:"region" gorm:"type:varchar(100);index"`
	Weight    float64   `json:"weight,omitempty" gorm:"-"`
	UpdatedAt time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Holding) TableName() string {
	return "holdings"
}

// Allocation 配置占比条目
type Allocation struct {
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// PortfolioExposure 投资组合敞口
type PortfolioExposure struct {
	Holdings           []Holding    `json:"portfolio"`
	TotalValue         float64      `json:"total_value"`
	FilteredValue      float64      `json:"filtered_value"`
	FilteredPercentage float64      `json:"filtered_percentage"`
	RegionAllocation   []Allocation `json:"region_allocation"`
	SectorAllocation   []Allocation `json:"sector_allocation"`
	Timestamp          time.Time    `json:"timestamp"`
}
