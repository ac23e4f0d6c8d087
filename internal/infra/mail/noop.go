package mail

import "context"

// NoopSender транспорт-заглушка для локальной разработки и тестов:
// принимает любое письмо и ничего не отправляет
type NoopSender struct{}

// NewNoopSender создает транспорт-заглушку
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Name возвращает имя транспорта (для логов и метрик)
func (s *NoopSender) Name() string {
	return "noop"
}

// Send ничего не делает и всегда успешна
func (s *NoopSender) Send(_ context.Context, _ Message) error {
	return nil
}
