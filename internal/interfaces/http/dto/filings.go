package dto

import (
	"finance-assistant-api/internal/domain/entity"
)

// FilingsQuery 申报文件查询参数
type FilingsQuery struct {
	Symbol string `form:"symbol" binding:"required"`
	Type   string `form:"type"`
	Limit  int    `form:"limit"`
}

// FilingListResponse 申报文件列表
type FilingListResponse struct {
	Filings []*entity.Filing `json:"filings"`
	Count   int              `json:"count"`
}
