// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"finance-assistant-api/internal/application/orchestrator"
)

// TextQueryRequest 文本问答请求
type TextQueryRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id,omitempty"`

	// Provider/Model 按请求覆盖默认 LLM 配置，可选
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}

// QueryAnswerResponse 问答结果
type QueryAnswerResponse struct {
	Answer     string   `json:"answer"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Generated  bool     `json:"generated"`
}

// FromAnswer 将编排结果转换为响应
func FromAnswer(a *orchestrator.Answer) *QueryAnswerResponse {
	if a == nil {
		return nil
	}
	sources := a.Sources
	if sources == nil {
		sources = []string{}
	}
	return &QueryAnswerResponse{
		Answer:     a.Answer,
		Intent:     a.Intent,
		Confidence: a.Confidence,
		Sources:    sources,
		Generated:  a.Generated,
	}
}

// VoiceQueryResponse 语音问答结果（纯文本返回时使用）
type VoiceQueryResponse struct {
	Transcript string               `json:"transcript"`
	Result     *QueryAnswerResponse `json:"result"`
}
