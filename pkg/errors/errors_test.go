package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSetsHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeSuccess, http.StatusOK},
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeQueryEmpty, http.StatusBadRequest},
		{CodeSymbolUnknown, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeTooManyRequests, http.StatusTooManyRequests},
		{CodeDataSourceThrottle, http.StatusTooManyRequests},
		{CodeQuoteUnavailable, http.StatusServiceUnavailable},
		{CodeScrapeBlocked, http.StatusBadGateway},
		{CodeInternalError, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := New(tt.code, "msg")
		assert.Equal(t, tt.want, err.HTTPStatus, "code %s", tt.code)
	}
}

func TestErrorMessageFormat(t *testing.T) {
	err := New(CodeInvalidParam, "invalid parameter")
	assert.Equal(t, "[1001] invalid parameter", err.Error())

	wrapped := Wrap(stderrors.New("boom"), CodeDatabaseError, "query failed")
	assert.Equal(t, "[5001] query failed: boom", wrapped.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "query failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestWithDetailAndError(t *testing.T) {
	cause := stderrors.New("timeout")
	err := New(CodeQuoteUnavailable, "quote unavailable").
		WithDetail("symbol=AAPL").
		WithError(cause)

	assert.Equal(t, "symbol=AAPL", err.Detail)
	assert.ErrorIs(t, err, cause)
}

func TestAsAppErrorPassthrough(t *testing.T) {
	orig := New(CodeNotFound, "resource not found")
	assert.Same(t, orig, AsAppError(orig))
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	err := AsAppError(stderrors.New("something odd"))

	assert.Equal(t, CodeUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(New(CodeConflict, "conflict")))
	assert.False(t, IsAppError(stderrors.New("plain")))
}
