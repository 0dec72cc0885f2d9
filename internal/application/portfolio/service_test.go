package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-assistant-api/internal/domain/entity"
	"finance-assistant-api/internal/domain/repository"
	apperrors "finance-assistant-api/pkg/errors"
)

type fakeHoldingRepo struct {
	holdings []*entity.Holding
	upserted []*entity.Holding
	listErr  error
}

func (f *fakeHoldingRepo) Upsert(_ context.Context, h *entity.Holding) error {
	f.upserted = append(f.upserted, h)
	return nil
}

func (f *fakeHoldingRepo) GetBySymbol(_ context.Context, symbol string) (*entity.Holding, error) {
	for _, h := range f.holdings {
		if h.Symbol == symbol {
			return h, nil
		}
	}
	return nil, nil
}

func (f *fakeHoldingRepo) List(_ context.Context, _ *repository.HoldingFilter) ([]*entity.Holding, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.holdings, nil
}

func (f *fakeHoldingRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func testHoldings() []*entity.Holding {
	return []*entity.Holding{
		{Symbol: "AAPL", Value: 40000, Sector: "Technology", Region: "North America"},
		{Symbol: "TSM", Value: 30000, Sector: "Technology", Region: "Asia"},
		{Symbol: "9988.HK", Value: 20000, Sector: "Consumer Cyclical", Region: "Asia"},
		{Symbol: "JPM", Value: 10000, Sector: "Financial Services", Region: "North America"},
	}
}

func TestGetExposureUnfiltered(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{holdings: testHoldings()})

	exposure, err := svc.GetExposure(context.Background(), "", "")
	require.NoError(t, err)

	assert.InDelta(t, 100000.0, exposure.TotalValue, 1e-9)
	assert.InDelta(t, 100000.0, exposure.FilteredValue, 1e-9)
	assert.InDelta(t, 100.0, exposure.FilteredPercentage, 1e-9)
	assert.Len(t, exposure.Holdings, 4)

	// 按市值降序
	assert.Equal(t, "AAPL", exposure.Holdings[0].Symbol)
	assert.InDelta(t, 40.0, exposure.Holdings[0].Weight, 1e-9)
}

func TestGetExposureFilteredByRegionAndSector(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{holdings: testHoldings()})

	exposure, err := svc.GetExposure(context.Background(), "asia", "technology")
	require.NoError(t, err)

	assert.Len(t, exposure.Holdings, 1)
	assert.Equal(t, "TSM", exposure.Holdings[0].Symbol)
	assert.InDelta(t, 30000.0, exposure.FilteredValue, 1e-9)
	assert.InDelta(t, 30.0, exposure.FilteredPercentage, 1e-9)
}

func TestGetExposureAllocationsSumToHundred(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{holdings: testHoldings()})

	exposure, err := svc.GetExposure(context.Background(), "", "")
	require.NoError(t, err)

	sumSector := 0.0
	for _, a := range exposure.SectorAllocation {
		sumSector += a.Percent
	}
	assert.InDelta(t, 100.0, sumSector, 0.1)

	sumRegion := 0.0
	for _, a := range exposure.RegionAllocation {
		sumRegion += a.Percent
	}
	assert.InDelta(t, 100.0, sumRegion, 0.1)

	// 行业配置按市值降序
	assert.Equal(t, "Technology", exposure.SectorAllocation[0].Key)
	assert.InDelta(t, 70.0, exposure.SectorAllocation[0].Percent, 1e-9)
}

func TestGetExposureAllocationsScopedToFilter(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{holdings: testHoldings()})

	exposure, err := svc.GetExposure(context.Background(), "Asia", "")
	require.NoError(t, err)

	// 区域配置基于过滤后的持仓，应只有 Asia 且占比 100
	assert.Len(t, exposure.RegionAllocation, 1)
	assert.Equal(t, "Asia", exposure.RegionAllocation[0].Key)
	assert.InDelta(t, 100.0, exposure.RegionAllocation[0].Percent, 1e-9)
}

func TestGetExposureEmptyPortfolio(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{})

	exposure, err := svc.GetExposure(context.Background(), "", "")
	require.NoError(t, err)

	assert.Zero(t, exposure.TotalValue)
	assert.Zero(t, exposure.FilteredPercentage)
	assert.Empty(t, exposure.Holdings)
	assert.Nil(t, exposure.SectorAllocation)
}

func TestGetExposureRepoError(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{listErr: errors.New("connection refused")})

	_, err := svc.GetExposure(context.Background(), "", "")
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}

func TestTopHoldings(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{holdings: testHoldings()})

	top, err := svc.TopHoldings(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "AAPL", top[0].Symbol)
	assert.Equal(t, "TSM", top[1].Symbol)
}

func TestUpsertHoldingNormalizesSymbol(t *testing.T) {
	repo := &fakeHoldingRepo{}
	svc := NewService(repo)

	err := svc.UpsertHolding(context.Background(), &entity.Holding{Symbol: " aapl ", Value: 100})
	require.NoError(t, err)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, "AAPL", repo.upserted[0].Symbol)
}

func TestUpsertHoldingRequiresSymbol(t *testing.T) {
	svc := NewService(&fakeHoldingRepo{})

	err := svc.UpsertHolding(context.Background(), &entity.Holding{Symbol: "  "})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidParam, appErr.Code)
}
