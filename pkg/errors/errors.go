// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1002"
	CodeConflict           ErrorCode = "1003"
	CodeTooManyRequests    ErrorCode = "1004"
	CodeInternalError      ErrorCode = "1005"
	CodeServiceUnavailable ErrorCode = "1006"

	// 行情数据错误 (2xxx)
	CodeSymbolUnknown      ErrorCode = "2001"
	CodeQuoteUnavailable   ErrorCode = "2002"
	CodeDataSourceError    ErrorCode = "2003"
	CodeDataSourceThrottle ErrorCode = "2004"

	// 资讯与申报文件错误 (3xxx)
	CodeNewsUnavailable    ErrorCode = "3001"
	CodeFilingsUnavailable ErrorCode = "3002"
	CodeScrapeBlocked      ErrorCode = "3003"

	// 智能体编排错误 (4xxx)
	CodeQueryEmpty       ErrorCode = "4001"
	CodeComposeFailed    ErrorCode = "4002"
	CodeRetrievalFailed  ErrorCode = "4003"
	CodeLLMCallFailed    ErrorCode = "4004"
	CodeEmbeddingFailed  ErrorCode = "4005"
	CodeTranscribeFailed ErrorCode = "4006"
	CodeSynthesisFailed  ErrorCode = "4007"

	// 外部服务错误 (5xxx)
	CodeDatabaseError ErrorCode = "5001"
	CodeCacheError    ErrorCode = "5002"
	CodeVectorDBError ErrorCode = "5003"
	CodeProviderError ErrorCode = "5004"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeQueryEmpty, CodeSymbolUnknown:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTooManyRequests, CodeDataSourceThrottle:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable, CodeQuoteUnavailable, CodeNewsUnavailable, CodeFilingsUnavailable:
		return http.StatusServiceUnavailable
	case CodeScrapeBlocked:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrSymbolUnknown    = New(CodeSymbolUnknown, "unknown symbol")
	ErrQuoteUnavailable = New(CodeQuoteUnavailable, "quote unavailable")
	ErrDataSourceError  = New(CodeDataSourceError, "data source error")

	ErrNewsUnavailable    = New(CodeNewsUnavailable, "news unavailable")
	ErrFilingsUnavailable = New(CodeFilingsUnavailable, "filings unavailable")

	ErrQueryEmpty      = New(CodeQueryEmpty, "query is empty")
	ErrComposeFailed   = New(CodeComposeFailed, "response composition failed")
	ErrRetrievalFailed = New(CodeRetrievalFailed, "knowledge retrieval failed")
	ErrLLMCallFailed   = New(CodeLLMCallFailed, "LLM call failed")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
