package filings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/domain/entity"
	apperrors "finance-assistant-api/pkg/errors"
)

func TestMarkCachedOrigin(t *testing.T) {
	filings := []*entity.Filing{
		{Symbol: "AAPL", Origin: entity.SourceLive},
		{Symbol: "MSFT", Origin: entity.SourceFallback},
		nil,
	}

	markCachedOrigin(filings)

	assert.Equal(t, entity.SourceCache, filings[0].Origin)
	assert.Equal(t, entity.SourceCache, filings[1].Origin)
}

func TestGetFilingsRequiresSymbol(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	_, err := svc.GetFilings(context.Background(), "  ", "", 3)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidParam, appErr.Code)
}

func TestHistoryWithoutArchive(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	_, err := svc.History(context.Background(), "AAPL", 5)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeFilingsUnavailable, appErr.Code)
}
