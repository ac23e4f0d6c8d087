package book_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Отсутствующее поле формы приходит пустой строкой, поэтому пустые
// значения отклоняются здесь, а не превращаются в пустые записи.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Time) == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Service) == "" {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if len(req.Email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}
	if len(req.Date) > domain.MaxDateLength {
		return fmt.Errorf("%w: date is too long", ErrInvalidInput)
	}
	if len(req.Time) > domain.MaxTimeLength {
		return fmt.Errorf("%w: time is too long", ErrInvalidInput)
	}
	if len(req.Service) > domain.MaxServiceLength {
		return fmt.Errorf("%w: service is too long", ErrInvalidInput)
	}

	return nil
}
