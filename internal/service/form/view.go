package form

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/availability"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// View производное представление формы для отрисовки виджетом
type View struct {
	Selection      domain.Selection
	AvailableDates []types.Date
	Employees      []domain.EmployeeAvailability
	Services       []domain.Service
	Slots          []types.TimeString
	Loaded         bool
	NoAvailability bool
	MissingFields  []string
}

// Derive вычисляет списки для выбора по текущему состоянию
func Derive(state State, today types.Date) View {
	ix := availability.NewIndex(state.Snapshot)
	sel := state.Selection.Clone()
	day := ix.Day(sel.Date)

	dates := ix.AvailableDates(availability.FilterOf(sel), today)

	return View{
		Selection:      sel,
		AvailableDates: dates,
		Employees:      availability.SelectableEmployees(day, sel.ServiceID),
		Services:       availability.SelectableServices(day, sel.EmployeeID),
		Slots:          availability.SelectableSlots(day, sel.EmployeeID),
		Loaded:         state.Snapshot != nil,
		NoAvailability: state.Snapshot != nil && len(dates) == 0,
		MissingFields:  sel.MissingFields(),
	}
}

// CanSubmit проверяет предусловия отправки: все поля заполнены и отправка еще не идет
func CanSubmit(view View, submitting bool) bool {
	return !submitting && len(view.MissingFields) == 0
}

// OffersDate проверяет, что дата есть среди доступных
func (v View) OffersDate(date types.Date) bool {
	for _, d := range v.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// OffersSlot проверяет, что время есть среди доступных слотов
func (v View) OffersSlot(slot types.TimeString) bool {
	return containsSlot(v.Slots, slot)
}
