package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
	apptRepo "github.com/m04kA/SMC-WebsiteService/internal/infra/storage/appointment"
)

// UseCase use case бронирования слота на прием
type UseCase struct {
	apptRepo  AppointmentRepository
	notifier  Notifier
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:  apptRepo,
		notifier:  notifier,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет бронирование слота.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции:
// из двух конкурентных запросов на один слот ровно один получает запись,
// второй — ErrSlotTaken. Уникальное ограничение таблицы страхует проверку,
// и его срабатывание тоже приходит сюда как ErrSlotTaken с откатом транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: name=%q, date=%q, time=%q, service=%q",
		req.Name, req.Date, req.Time, req.Service)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Проверка слота и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Предварительная проверка занятости слота (с блокировкой строки)
		existing, err := uc.apptRepo.GetBySlot(txCtx, req.Date, req.Time)
		if err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Error("BookAppointment: failed to check slot (date=%q, time=%q): %v",
				req.Date, req.Time, err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("BookAppointment: slot taken (date=%q, time=%q), held by appointment id=%d",
				req.Date, req.Time, existing.ID)
			return ErrSlotTaken
		}

		// 2.2. Вставка записи; уникальное ограничение — страховка от гонки
		created, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			Name:    req.Name,
			Email:   req.Email,
			Date:    req.Date,
			Time:    req.Time,
			Service: req.Service,
		})
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: unique constraint hit (date=%q, time=%q)",
					req.Date, req.Time)
				return ErrSlotTaken
			}
			uc.logger.Error("BookAppointment: failed to create appointment (date=%q, time=%q): %v",
				req.Date, req.Time, err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	// 3. Уведомление администратора — асинхронно, после коммита.
	// Постановка в очередь не блокирует и не проваливает запрос.
	uc.notifier.AppointmentBooked(result)

	return &Response{
		ID:        result.ID,
		Name:      result.Name,
		Email:     result.Email,
		Date:      result.Date,
		Time:      result.Time,
		Service:   result.Service,
		CreatedAt: result.CreatedAt,
	}, nil
}
