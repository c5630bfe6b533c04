package ledger

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLedgerMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func TestFindUnexpired_EmptyTypesSkipsQuery(t *testing.T) {
	repo, mock, close := setupLedgerMock(t)
	defer close()

	entries, err := repo.FindUnexpired(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUnexpired_FiltersByUserAndTypes(t *testing.T) {
	repo, mock, close := setupLedgerMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, parameter_type, parameter_value, expires_at, created_at FROM access_ledger WHERE user_id = $1 AND parameter_type = ANY($2) AND expires_at > NOW()")).
		WithArgs(5, pq.Array([]string{"PHONE", "EMAIL"})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "parameter_type", "parameter_value", "expires_at", "created_at"}).
			AddRow(1, 5, "PHONE", "639171234567", now.Add(12*time.Hour), now))

	entries, err := repo.FindUnexpired(context.Background(), 5, []string{"PHONE", "EMAIL"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PHONE", entries[0].ParameterType)
	assert.Equal(t, "639171234567", entries[0].ParameterValue)
}

func TestFindUnexpired_NoRowsReturnsEmptySlice(t *testing.T) {
	repo, mock, close := setupLedgerMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, parameter_type, parameter_value, expires_at, created_at FROM access_ledger")).
		WithArgs(5, pq.Array([]string{"NAME"})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "parameter_type", "parameter_value", "expires_at", "created_at"}))

	entries, err := repo.FindUnexpired(context.Background(), 5, []string{"NAME"})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestInsertBatch_SingleStatement(t *testing.T) {
	repo, mock, close := setupLedgerMock(t)
	defer close()

	expires := time.Now().Add(24 * time.Hour)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO access_ledger (user_id, parameter_type, parameter_value, expires_at) VALUES ($1, $3, $4, $2), ($1, $5, $6, $2)")).
		WithArgs(5, expires, "NAME", "Juan Dela Cruz", "PHONE", "639171234567").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.InsertBatch(context.Background(), 5, []Tuple{
		{ParameterType: "NAME", ParameterValue: "Juan Dela Cruz"},
		{ParameterType: "PHONE", ParameterValue: "639171234567"},
	}, expires)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatch_NoTuplesIsNoOp(t *testing.T) {
	repo, mock, close := setupLedgerMock(t)
	defer close()

	err := repo.InsertBatch(context.Background(), 5, nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoveredSet(t *testing.T) {
	entries := []Entry{
		{ParameterType: "PHONE", ParameterValue: "639171234567"},
		{ParameterType: "EMAIL", ParameterValue: "old@example.com"},
	}
	tuples := []Tuple{
		{ParameterType: "PHONE", ParameterValue: "639171234567"},
		{ParameterType: "EMAIL", ParameterValue: "new@example.com"},
		{ParameterType: "NAME", ParameterValue: "Juan Dela Cruz"},
	}

	covered := CoveredSet(entries, tuples)

	assert.True(t, covered["PHONE:639171234567"])
	assert.False(t, covered["EMAIL:new@example.com"])
	assert.False(t, covered["NAME:Juan Dela Cruz"])
	assert.Len(t, covered, 1)
}

func TestCoveredSet_Idempotent(t *testing.T) {
	entries := []Entry{{ParameterType: "PHONE", ParameterValue: "639171234567"}}
	tuples := []Tuple{{ParameterType: "PHONE", ParameterValue: "639171234567"}}

	first := CoveredSet(entries, tuples)
	second := CoveredSet(entries, tuples)

	assert.Equal(t, first, second)
}
