package availability

import (
	"sort"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Index индекс снимка доступности за месяц.
// Строится заново для каждого снимка, инкрементально не обновляется.
type Index struct {
	days  map[types.Date]*domain.DayAvailability
	dates []types.Date
}

// NewIndex строит индекс по снимку (nil снимок дает пустой индекс)
func NewIndex(snapshot *domain.MonthSnapshot) *Index {
	ix := &Index{days: make(map[types.Date]*domain.DayAvailability)}
	if snapshot == nil {
		return ix
	}

	for i := range snapshot.Days {
		day := &snapshot.Days[i]
		if _, exists := ix.days[day.Date]; exists {
			continue
		}
		ix.days[day.Date] = day
		ix.dates = append(ix.dates, day.Date)
	}

	sort.Slice(ix.dates, func(i, j int) bool {
		return ix.dates[i].Before(ix.dates[j])
	})

	return ix
}

// Day возвращает доступность на дату или nil
func (ix *Index) Day(date types.Date) *domain.DayAvailability {
	return ix.days[date]
}

// Dates возвращает все даты снимка в хронологическом порядке
func (ix *Index) Dates() []types.Date {
	out := make([]types.Date, len(ix.dates))
	copy(out, ix.dates)
	return out
}

// IsAvailable проверяет, доступна ли дата с учетом фильтра.
// Даты строго раньше today недоступны всегда.
func (ix *Index) IsAvailable(date types.Date, filter Filter, today types.Date) bool {
	if date.IsZero() || date.Before(today) {
		return false
	}
	return IsDayAvailable(ix.days[date], filter)
}

// AvailableDates возвращает отсортированное множество доступных дат
func (ix *Index) AvailableDates(filter Filter, today types.Date) []types.Date {
	out := make([]types.Date, 0, len(ix.dates))
	for _, date := range ix.dates {
		if ix.IsAvailable(date, filter, today) {
			out = append(out, date)
		}
	}
	return out
}

// NearestAvailableDate возвращает самую раннюю доступную дату снимка
func (ix *Index) NearestAvailableDate(filter Filter, today types.Date) (types.Date, bool) {
	for _, date := range ix.dates {
		if ix.IsAvailable(date, filter, today) {
			return date, true
		}
	}
	return types.Date{}, false
}

// EmployeeServices возвращает услуги сотрудника.
// Если сотрудник работает в указанную дату, берется его список на эту дату,
// иначе объединение его услуг по всему снимку. Второе значение false,
// если сотрудника нет в снимке.
func (ix *Index) EmployeeServices(employeeID int64, date types.Date) ([]domain.Service, bool) {
	if day := ix.days[date]; day != nil {
		if emp := day.Employee(employeeID); emp != nil {
			return emp.Services, true
		}
	}

	var (
		found    bool
		services []domain.Service
		seen     = make(map[int64]struct{})
	)
	for _, d := range ix.dates {
		emp := ix.days[d].Employee(employeeID)
		if emp == nil {
			continue
		}
		found = true
		for _, s := range emp.Services {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			services = append(services, s)
		}
	}
	return services, found
}

// EmployeeOffers проверяет, может ли сотрудник оказать услугу (см. EmployeeServices).
// Неизвестный снимку сотрудник считается совместимым: снимок о нем ничего не говорит.
func (ix *Index) EmployeeOffers(employeeID, serviceID int64, date types.Date) bool {
	services, found := ix.EmployeeServices(employeeID, date)
	if !found {
		return true
	}
	for _, s := range services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// HasEmployee проверяет, встречается ли сотрудник в снимке
func (ix *Index) HasEmployee(employeeID int64) bool {
	_, found := ix.EmployeeServices(employeeID, types.Date{})
	return found
}

// HasService проверяет, оказывает ли услугу хоть кто-то в снимке
func (ix *Index) HasService(serviceID int64) bool {
	for _, date := range ix.dates {
		for i := range ix.days[date].Employees {
			if ix.days[date].Employees[i].Offers(serviceID) {
				return true
			}
		}
	}
	return false
}
