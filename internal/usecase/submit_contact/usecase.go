package submit_contact

import (
	"context"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
)

// UseCase use case приема сообщения с формы контактов.
// Ничего не сохраняет: сообщение только пересылается администратору.
type UseCase struct {
	notifier Notifier
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		notifier: notifier,
		logger:   logger,
	}
}

// Execute принимает сообщение и ставит уведомление в очередь.
// Доставка асинхронная: подтверждение возвращается независимо от того,
// дойдет ли письмо до администратора.
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitContact: name=%q, email=%q", req.Name, req.Email)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitContact: validation failed: %v", err)
		return nil, err
	}

	uc.notifier.ContactReceived(domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})

	uc.logger.Info("SubmitContact: message accepted from %q", req.Email)

	return &Response{Name: req.Name}, nil
}
