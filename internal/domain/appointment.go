package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentRequest запрос на создание записи, формируется только в момент отправки
type AppointmentRequest struct {
	CompanyID  string
	ServiceID  int64
	EmployeeID int64
	DateTime   time.Time // момент начала в UTC
	Name       string
	Phone      string
	Note       string
}

// NewAppointmentRequest собирает запрос из выбора пользователя.
// Дата и слот объединяются в один момент в зоне пользователя loc.
func NewAppointmentRequest(companyID string, sel Selection, loc *time.Location) (*AppointmentRequest, error) {
	if missing := sel.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteSelection, strings.Join(missing, ", "))
	}
	if loc == nil {
		loc = time.UTC
	}

	return &AppointmentRequest{
		CompanyID:  companyID,
		ServiceID:  *sel.ServiceID,
		EmployeeID: *sel.EmployeeID,
		DateTime:   sel.Slot.On(sel.Date, loc).UTC(),
		Name:       strings.TrimSpace(sel.Name),
		Phone:      strings.TrimSpace(sel.Phone),
		Note:       strings.TrimSpace(sel.Note),
	}, nil
}
