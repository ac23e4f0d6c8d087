package appointment

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

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pq.Error{Code: "23505", Constraint: "appointment_date_time_key"}

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))

	assert.False(t, isUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}

// Заглушка database/sql драйвера: каждый запрос завершается заданной ошибкой

type queryFailDriver struct {
	queryErr error
}

func (d *queryFailDriver) Open(name string) (driver.Conn, error) {
	return &queryFailConn{queryErr: d.queryErr}, nil
}

type queryFailConn struct {
	queryErr error
}

func (c *queryFailConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("queryFailConn: prepare is not supported")
}

func (c *queryFailConn) Close() error { return nil }

func (c *queryFailConn) Begin() (driver.Tx, error) {
	return nil, errors.New("queryFailConn: transactions are not supported")
}

func (c *queryFailConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return nil, c.queryErr
}

var queryFailDriverSeq atomic.Int64

func openQueryFailDB(t *testing.T, queryErr error) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("appointment-query-fail-%d", queryFailDriverSeq.Add(1))
	sql.Register(name, &queryFailDriver{queryErr: queryErr})

	db, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		Name:    "Alice",
		Email:   "a@x.com",
		Date:    "2024-06-01",
		Time:    "10:00",
		Service: "Consult",
	}
}

func TestCreate_UniqueViolationMapsToSlotTaken(t *testing.T) {
	repo := NewRepository(openQueryFailDB(t, &pq.Error{Code: "23505", Constraint: "appointment_date_time_key"}))

	_, err := repo.Create(context.Background(), testAppointment())

	require.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreate_ExecErrorKeepsDriverCause(t *testing.T) {
	// Конфликт сериализации не терялся бы в обертке: txmanager должен
	// уметь достать его из цепочки через errors.As
	repo := NewRepository(openQueryFailDB(t, &pq.Error{Code: "40001"}))

	_, err := repo.Create(context.Background(), testAppointment())

	require.ErrorIs(t, err, ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestGetBySlot_ScanErrorKeepsDriverCause(t *testing.T) {
	repo := NewRepository(openQueryFailDB(t, &pq.Error{Code: "40001"}))

	_, err := repo.GetBySlot(context.Background(), "2024-06-01", "10:00")

	require.ErrorIs(t, err, ErrScanRow)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
