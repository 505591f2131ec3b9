package submit_appointment

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrIncompleteSelection возвращается, когда не заполнены обязательные поля
	ErrIncompleteSelection = errors.New("selection is incomplete")

	// ErrSubmissionInFlight возвращается, когда предыдущая отправка еще не завершена
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBackend возвращается, когда бэкенд отклонил запись или недоступен
	ErrBackend = errors.New("scheduling backend rejected the appointment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// BackendError ошибка бэкенда с сообщением для пользователя
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return ErrBackend.Error() + ": " + e.Message
}

// Unwrap позволяет сравнивать ошибку с ErrBackend через errors.Is
func (e *BackendError) Unwrap() error {
	return ErrBackend
}
