package update_selection

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// IDChange новое значение идентификатора; Value == nil означает сброс
type IDChange struct {
	Value *int64
}

// Request модель запроса на изменение выбора.
// nil поле означает "без изменений"; пустая строка даты или времени означает сброс.
type Request struct {
	SessionID  string
	Name       *string
	Phone      *string
	Note       *string
	ServiceID  *IDChange
	EmployeeID *IDChange
	Date       *string // yyyy-MM-dd или любая разбираемая дата
	Slot       *string // HH:MM
}

// Response состояние сессии после изменения
type Response struct {
	Session *domain.Session
	View    form.View
}
