package domain

import "errors"

var (
	// ErrIncompleteSelection возвращается, когда для записи не хватает обязательных полей
	ErrIncompleteSelection = errors.New("selection is incomplete")

	// ErrInvalidMonth возвращается при некорректном формате месяца
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")
)
