package domain

import "time"

// BookingConfirmation последняя успешная запись (для сообщения об успехе)
type BookingConfirmation struct {
	ServiceID  int64     `json:"serviceId"`
	EmployeeID int64     `json:"employeeId"`
	DateTime   time.Time `json:"dateTime"`
	BookedAt   time.Time `json:"bookedAt"`
}

// Session состояние одного экземпляра виджета записи
type Session struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Timezone  string `json:"timezone"`

	Month     Month          `json:"month"` // отображаемый месяц
	Snapshot  *MonthSnapshot `json:"snapshot,omitempty"`
	Selection Selection      `json:"selection"`

	// FetchGeneration растет при каждом запросе доступности;
	// результат применяется, только если его поколение все еще текущее
	FetchGeneration uint64 `json:"fetchGeneration"`
	Loading         bool   `json:"loading"`
	Submitting      bool   `json:"submitting"`

	LastError   string               `json:"lastError,omitempty"`
	LastBooking *BookingConfirmation `json:"lastBooking,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Location возвращает временную зону пользователя (UTC, если зона неизвестна)
func (s *Session) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
