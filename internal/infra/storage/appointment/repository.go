package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
	"github.com/m04kA/SMC-WebsiteService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WebsiteService/pkg/psqlbuilder"
)

// Код ошибки postgres unique_violation
const pqUniqueViolation = "23505"

// Repository репозиторий для работы с записями на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на прием.
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Уникальное ограничение таблицы на (date, time) — последний рубеж против
// двойного бронирования: даже если предварительная проверка слота прошла,
// конкурентная вставка того же слота вернет ErrSlotTaken, а не вторую строку.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment").
		Columns(
			"name",
			"email",
			"date",
			"time",
			"service",
		).
		Values(
			appt.Name,
			appt.Email,
			appt.Date,
			appt.Time,
			appt.Service,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		// %w: drivers report concurrency conflicts here, txmanager must see them
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetBySlot получает запись по паре (date, time).
// Токены даты и времени сравниваются как текст, без нормализации.
// Если используется транзакция, добавляем FOR UPDATE для блокировки строки
// на время проверки доступности слота.
func (r *Repository) GetBySlot(ctx context.Context, date, timeOfDay string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"date",
		"time",
		"service",
		"created_at",
	).
		From("appointment").
		Where(squirrel.Eq{"date": date, "time": timeOfDay})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.Name,
		&appt.Email,
		&appt.Date,
		&appt.Time,
		&appt.Service,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - scan appointment: %w", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time

	return &appt, nil
}

// isUniqueViolation проверяет, что ошибка — нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
