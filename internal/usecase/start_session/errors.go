package start_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnknownTimezone возвращается, когда временная зона не распознана
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrMonthInPast возвращается, когда запрошенный месяц раньше текущего
	ErrMonthInPast = errors.New("month is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
