package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Service бронируемая услуга
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
}

// EmployeeAvailability услуги и свободные слоты сотрудника на один день
type EmployeeAvailability struct {
	ID       int64              `json:"id"`
	Name     string             `json:"name"`
	Lastname *string            `json:"lastname,omitempty"`
	Services []Service          `json:"services"`
	Slots    []types.TimeString `json:"slots"`
}

// HasSlots возвращает true, если у сотрудника есть хотя бы один свободный слот
func (e *EmployeeAvailability) HasSlots() bool {
	return len(e.Slots) > 0
}

// Offers проверяет, оказывает ли сотрудник услугу
func (e *EmployeeAvailability) Offers(serviceID int64) bool {
	for _, s := range e.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// HasSlot проверяет, есть ли у сотрудника указанный слот
func (e *EmployeeAvailability) HasSlot(slot types.TimeString) bool {
	for _, s := range e.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// FullName возвращает имя и фамилию сотрудника
func (e *EmployeeAvailability) FullName() string {
	if e.Lastname == nil || strings.TrimSpace(*e.Lastname) == "" {
		return e.Name
	}
	return e.Name + " " + *e.Lastname
}

// DayAvailability доступность всех сотрудников на одну дату
type DayAvailability struct {
	Date      types.Date             `json:"date"`
	Employees []EmployeeAvailability `json:"employees"`
}

// Employee возвращает сотрудника по ID или nil, если его нет в этот день
func (d *DayAvailability) Employee(id int64) *EmployeeAvailability {
	for i := range d.Employees {
		if d.Employees[i].ID == id {
			return &d.Employees[i]
		}
	}
	return nil
}

// MonthSnapshot полный ответ бэкенда о доступности за месяц.
// Заменяется целиком при каждой загрузке; даты в Days уникальны и принадлежат Month.
type MonthSnapshot struct {
	CompanyID string            `json:"companyId"`
	Month     Month             `json:"month"`
	Days      []DayAvailability `json:"days"`
	FetchedAt time.Time         `json:"fetchedAt"`
}
