package notifier

import "errors"

// ErrQueueFull фиксируется в метриках при переполнении очереди уведомлений.
// На путь запроса не попадает: уведомление отбрасывается с записью в лог.
var ErrQueueFull = errors.New("notifier: queue is full")
