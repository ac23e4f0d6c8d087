package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Заглушка database/sql драйвера: транзакции открываются успешно,
// Commit возвращает заданную ошибку.

type stubDriver struct {
	commitErr error
}

func (d *stubDriver) Open(name string) (driver.Conn, error) {
	return &stubConn{commitErr: d.commitErr}, nil
}

type stubConn struct {
	commitErr error
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("stubConn: prepare is not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return &stubTx{commitErr: c.commitErr}, nil
}

func (c *stubConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	return &stubTx{commitErr: c.commitErr}, nil
}

type stubTx struct {
	commitErr error
}

func (t *stubTx) Commit() error   { return t.commitErr }
func (t *stubTx) Rollback() error { return nil }

var stubDriverSeq atomic.Int64

func openStubDB(t *testing.T, commitErr error) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("simpletxmanager-stub-%d", stubDriverSeq.Add(1))
	sql.Register(name, &stubDriver{commitErr: commitErr})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestDoSerializable_RetriesOnSerializationFailureAtCommit(t *testing.T) {
	db := openStubDB(t, &pq.Error{Code: "40001"})
	manager := NewTransactionManager(db)

	var calls int
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, calls)
	assert.True(t, errors.Is(err, ErrTransaction))

	// Цепочка ошибки сохраняет исходную ошибку postgres
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.True(t, isSerializationFailure(err))
}

func TestDoSerializable_NoRetryOnOtherCommitError(t *testing.T) {
	db := openStubDB(t, errors.New("connection reset"))
	manager := NewTransactionManager(db)

	var calls int
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(err, ErrTransaction))
	assert.False(t, isSerializationFailure(err))
}

func TestDoSerializable_RetrySucceedsAfterTransientConflict(t *testing.T) {
	db := openStubDB(t, nil)
	manager := NewTransactionManager(db)

	// Первые две попытки завершаются конфликтом сериализации изнутри fn
	// (обернутым, как это делают репозиторий и use case), третья проходит
	var calls int
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("storage: execute insert: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_FnErrorWithoutConflictIsReturnedOnce(t *testing.T) {
	db := openStubDB(t, nil)
	manager := NewTransactionManager(db)

	wantErr := errors.New("usecase failed")

	var calls int
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(err, wantErr))
}
