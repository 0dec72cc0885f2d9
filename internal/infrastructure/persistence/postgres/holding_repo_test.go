package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*HoldingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewHoldingRepository(&Client{sqlDB: db}), mock
}

var holdingColumns = []string{"id", "symbol", "name", "value", "shares", "sector", "region", "updated_at"}

func TestListHoldings(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows(holdingColumns).
		AddRow("id-1", "AAPL", "Apple Inc.", 50000.0, 100.0, "Technology", "US", now).
		AddRow("id-2", "TSM", "TSMC", 30000.0, 200.0, "Technology", "Asia", now)
	mock.ExpectQuery("SELECT id, symbol, name").WillReturnRows(rows)

	holdings, err := repo.List(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, holdings, 2)
	assert.Equal(t, "AAPL", holdings[0].Symbol)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHoldingsReportsRowError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(holdingColumns).
		AddRow("id-1", "AAPL", "Apple Inc.", 50000.0, 100.0, "Technology", "US", time.Now()).
		RowError(0, errors.New("connection reset"))
	mock.ExpectQuery("SELECT id, symbol, name").WillReturnRows(rows)

	_, err := repo.List(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
