package domain

import (
	"strings"

	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Selection текущий выбор пользователя в форме записи
// Нулевые Date и Slot означают "не выбрано"
type Selection struct {
	Name       string           `json:"name"`
	Phone      string           `json:"phone"`
	Note       string           `json:"note"`
	ServiceID  *int64           `json:"serviceId,omitempty"`
	EmployeeID *int64           `json:"employeeId,omitempty"`
	Date       types.Date       `json:"date"`
	Slot       types.TimeString `json:"slot"`
}

// Clone возвращает глубокую копию выбора
func (s Selection) Clone() Selection {
	out := s
	if s.ServiceID != nil {
		id := *s.ServiceID
		out.ServiceID = &id
	}
	if s.EmployeeID != nil {
		id := *s.EmployeeID
		out.EmployeeID = &id
	}
	return out
}

// MissingFields возвращает список незаполненных обязательных полей
func (s Selection) MissingFields() []string {
	missing := make([]string, 0)
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(s.Phone) == "" {
		missing = append(missing, FieldPhone)
	}
	if s.ServiceID == nil {
		missing = append(missing, FieldServiceID)
	}
	if s.EmployeeID == nil {
		missing = append(missing, FieldEmployeeID)
	}
	if s.Date.IsZero() {
		missing = append(missing, FieldDate)
	}
	if s.Slot.IsZero() {
		missing = append(missing, FieldSlot)
	}
	return missing
}

// IsComplete возвращает true, если заполнены все обязательные поля
func (s Selection) IsComplete() bool {
	return len(s.MissingFields()) == 0
}
