package view

import (
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// SessionResponse состояние виджета, которое отрисовывает фронтенд
type SessionResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Timezone  string `json:"timezone"`
	Month     string `json:"month"`

	Selection SelectionResponse `json:"selection"`

	AvailableDates []string           `json:"availableDates"`
	Employees      []EmployeeResponse `json:"employees"`
	Services       []ServiceResponse  `json:"services"`
	Slots          []string           `json:"slots"`
	MissingFields  []string           `json:"missingFields"`

	Loaded         bool `json:"loaded"`
	Loading        bool `json:"loading"`
	Submitting     bool `json:"submitting"`
	CanSubmit      bool `json:"canSubmit"`
	NoAvailability bool `json:"noAvailability"`

	LastError   *string          `json:"lastError,omitempty"`
	LastBooking *BookingResponse `json:"lastBooking,omitempty"`
}

// SelectionResponse выбранные значения формы
type SelectionResponse struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Note       string  `json:"note"`
	ServiceID  *int64  `json:"serviceId"`
	EmployeeID *int64  `json:"employeeId"`
	Date       *string `json:"date"`
	Slot       *string `json:"slot"`
}

// EmployeeResponse сотрудник в списке выбора
type EmployeeResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lastname *string `json:"lastname,omitempty"`
	FullName string  `json:"fullName"`
}

// ServiceResponse услуга в списке выбора
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
}

// BookingResponse подтверждение последней записи
type BookingResponse struct {
	ServiceID  int64  `json:"serviceId"`
	EmployeeID int64  `json:"employeeId"`
	DateTime   string `json:"dateTime"`
	BookedAt   string `json:"bookedAt"`
}

// FromSession собирает ответ из сессии и производного представления формы
func FromSession(s *domain.Session, v form.View) *SessionResponse {
	resp := &SessionResponse{
		ID:             s.ID,
		CompanyID:      s.CompanyID,
		Timezone:       s.Timezone,
		Month:          s.Month.String(),
		Selection:      fromSelection(v.Selection),
		AvailableDates: make([]string, 0, len(v.AvailableDates)),
		Employees:      make([]EmployeeResponse, 0, len(v.Employees)),
		Services:       make([]ServiceResponse, 0, len(v.Services)),
		Slots:          make([]string, 0, len(v.Slots)),
		MissingFields:  append([]string{}, v.MissingFields...),
		Loaded:         v.Loaded,
		Loading:        s.Loading,
		Submitting:     s.Submitting,
		CanSubmit:      form.CanSubmit(v, s.Submitting),
		NoAvailability: v.NoAvailability,
	}

	for _, d := range v.AvailableDates {
		resp.AvailableDates = append(resp.AvailableDates, d.String())
	}
	for i := range v.Employees {
		e := &v.Employees[i]
		resp.Employees = append(resp.Employees, EmployeeResponse{
			ID:       e.ID,
			Name:     e.Name,
			Lastname: e.Lastname,
			FullName: e.FullName(),
		})
	}
	for _, svc := range v.Services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	for _, slot := range v.Slots {
		resp.Slots = append(resp.Slots, slot.String())
	}

	if s.LastError != "" {
		msg := s.LastError
		resp.LastError = &msg
	}
	if s.LastBooking != nil {
		resp.LastBooking = FromBooking(s.LastBooking, s.Location())
	}
	return resp
}

// FromBooking конвертирует подтверждение записи; время отдается в зоне пользователя
func FromBooking(b *domain.BookingConfirmation, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BookingResponse{
		ServiceID:  b.ServiceID,
		EmployeeID: b.EmployeeID,
		DateTime:   b.DateTime.In(loc).Format(time.RFC3339),
		BookedAt:   b.BookedAt.UTC().Format(time.RFC3339),
	}
}

func fromSelection(sel domain.Selection) SelectionResponse {
	out := SelectionResponse{
		Name:       sel.Name,
		Phone:      sel.Phone,
		Note:       sel.Note,
		ServiceID:  sel.ServiceID,
		EmployeeID: sel.EmployeeID,
	}
	if !sel.Date.IsZero() {
		d := sel.Date.String()
		out.Date = &d
	}
	if !sel.Slot.IsZero() {
		slot := sel.Slot.String()
		out.Slot = &slot
	}
	return out
}
