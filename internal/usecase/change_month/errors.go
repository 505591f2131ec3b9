package change_month

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found")

	// ErrMonthInPast возвращается при переходе на месяц раньше текущего
	ErrMonthInPast = errors.New("month is in the past")

	// ErrSuperseded результат загрузки вытеснен более новым запросом и отброшен.
	// Наружу не возвращается: вызывающий получает текущее состояние сессии.
	ErrSuperseded = errors.New("availability fetch superseded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
