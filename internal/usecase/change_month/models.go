package change_month

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// Request модель запроса на смену отображаемого месяца
type Request struct {
	SessionID string       // ID сессии виджета
	Month     domain.Month // Месяц, доступность которого нужно загрузить
}

// Response состояние сессии после загрузки
type Response struct {
	Session    *domain.Session
	View       form.View
	Superseded bool // результат загрузки отброшен: за время запроса месяц сменили еще раз
}
