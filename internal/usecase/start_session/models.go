package start_session

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// Defaults значения, используемые, если виджет их не передал
type Defaults struct {
	CompanyID string // компания из конфигурации сервиса
	Timezone  string // зона по умолчанию (IANA)
}

// InitialConfig начальная конфигурация виджета, передаваемая страницей явно
type InitialConfig struct {
	CompanyID string        // ID компании (пусто - из конфигурации)
	ServiceID *int64        // предвыбранная услуга из query string страницы
	Timezone  string        // временная зона пользователя (IANA)
	Month     *domain.Month // месяц для первой загрузки (nil - текущий)
}

// Response созданная сессия с загруженной доступностью
type Response struct {
	Session *domain.Session
	View    form.View
}
