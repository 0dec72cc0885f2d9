// Package entity 定义领域实体
package entity

import (
	"time"
)

// Filing 监管申报文件
type Filing struct {
	ID        string     `json:"id,omitempty" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Symbol    string     `json:"symbol" gorm:"type:varchar(20);index;not null"`
	Title     string     `json:"title" gorm:"type:text;not null"`
	URL       string     `json:"url" gorm:"type:text"`
	Type      string     `json:"type" gorm:"type:varchar(50)"` // 10-Q, 10-K, 8-K, 6-K...
	FiledAt   time.Time  `json:"filed_at" gorm:"index"`
	Origin    DataSource `json:"origin,omitempty" gorm:"type:varchar(20)"`
	FetchedAt time.Time  `json:"fetched_at,omitempty"`
}

// TableName 指定表名
func (Filing) TableName() string {
	return "filings"
}
