package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled возвращается, когда запрос отменен контекстом (загрузка вытеснена более новой)
	ErrCanceled = errors.New("scheduling client: request canceled")

	// ErrInternal возвращается при внутренних ошибках клиента и сетевых сбоях
	ErrInternal = errors.New("scheduling client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("scheduling client: invalid response")
)

// APIError ответ бэкенда со статусом вне 2xx.
// Message содержит человекочитаемый текст ошибки от бэкенда.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scheduling backend returned %d: %s", e.StatusCode, e.Message)
}
