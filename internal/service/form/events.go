package form

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Event изменение состояния формы (ввод пользователя или результат загрузки)
type Event interface {
	eventName() string
}

// SetName ввод имени
type SetName struct{ Value string }

// SetPhone ввод телефона (WhatsApp)
type SetPhone struct{ Value string }

// SetNote ввод комментария
type SetNote struct{ Value string }

// SelectService выбор услуги (nil означает сброс)
type SelectService struct{ ServiceID *int64 }

// SelectEmployee выбор сотрудника (nil означает сброс)
type SelectEmployee struct{ EmployeeID *int64 }

// SelectDate выбор даты (нулевая дата означает сброс)
type SelectDate struct{ Date types.Date }

// SelectSlot выбор времени (нулевое значение означает сброс)
type SelectSlot struct{ Slot types.TimeString }

// SnapshotLoaded получен новый снимок доступности
type SnapshotLoaded struct{ Snapshot *domain.MonthSnapshot }

// AppointmentBooked запись успешно создана
type AppointmentBooked struct{}

func (SetName) eventName() string           { return "set_name" }
func (SetPhone) eventName() string          { return "set_phone" }
func (SetNote) eventName() string           { return "set_note" }
func (SelectService) eventName() string     { return "select_service" }
func (SelectEmployee) eventName() string    { return "select_employee" }
func (SelectDate) eventName() string        { return "select_date" }
func (SelectSlot) eventName() string        { return "select_slot" }
func (SnapshotLoaded) eventName() string    { return "snapshot_loaded" }
func (AppointmentBooked) eventName() string { return "appointment_booked" }

// Name возвращает имя события для логов
func Name(e Event) string {
	if e == nil {
		return "nil"
	}
	return e.eventName()
}
