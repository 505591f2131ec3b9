package availability

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Filter необязательные фильтры по сотруднику и услуге
type Filter struct {
	EmployeeID *int64
	ServiceID  *int64
}

// FilterOf возвращает фильтр, соответствующий текущему выбору
func FilterOf(sel domain.Selection) Filter {
	return Filter{EmployeeID: sel.EmployeeID, ServiceID: sel.ServiceID}
}

// IsDayAvailable проверяет доступность дня без учета "сегодня":
//   - выбран сотрудник: он работает в этот день, у него есть слоты и (если выбрана услуга) он ее оказывает;
//   - выбрана только услуга: хотя бы один сотрудник со слотами оказывает ее;
//   - без фильтров: хотя бы у одного сотрудника есть слоты.
func IsDayAvailable(day *domain.DayAvailability, filter Filter) bool {
	if day == nil {
		return false
	}

	if filter.EmployeeID != nil {
		emp := day.Employee(*filter.EmployeeID)
		if emp == nil || !emp.HasSlots() {
			return false
		}
		return filter.ServiceID == nil || emp.Offers(*filter.ServiceID)
	}

	for i := range day.Employees {
		emp := &day.Employees[i]
		if !emp.HasSlots() {
			continue
		}
		if filter.ServiceID == nil || emp.Offers(*filter.ServiceID) {
			return true
		}
	}
	return false
}

// SelectableEmployees сотрудники со слотами в этот день; при выбранной услуге только те, кто ее оказывает
func SelectableEmployees(day *domain.DayAvailability, serviceID *int64) []domain.EmployeeAvailability {
	out := make([]domain.EmployeeAvailability, 0)
	if day == nil {
		return out
	}
	for _, emp := range day.Employees {
		if !emp.HasSlots() {
			continue
		}
		if serviceID != nil && !emp.Offers(*serviceID) {
			continue
		}
		out = append(out, emp)
	}
	return out
}

// SelectableServices услуги для выбора: при выбранном сотруднике ровно его список,
// иначе объединение (без дублей по ID) услуг всех сотрудников со слотами в этот день
func SelectableServices(day *domain.DayAvailability, employeeID *int64) []domain.Service {
	out := make([]domain.Service, 0)
	if day == nil {
		return out
	}

	if employeeID != nil {
		emp := day.Employee(*employeeID)
		if emp == nil {
			return out
		}
		return append(out, emp.Services...)
	}

	seen := make(map[int64]struct{})
	for _, emp := range day.Employees {
		if !emp.HasSlots() {
			continue
		}
		for _, s := range emp.Services {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// SelectableSlots слоты выбранного сотрудника в этот день; пусто, если сотрудник не выбран
func SelectableSlots(day *domain.DayAvailability, employeeID *int64) []types.TimeString {
	out := make([]types.TimeString, 0)
	if day == nil || employeeID == nil {
		return out
	}
	emp := day.Employee(*employeeID)
	if emp == nil {
		return out
	}
	return append(out, emp.Slots...)
}
