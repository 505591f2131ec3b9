package scheduling

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// maxErrorBodyLength ограничение длины текста ошибки из тела ответа
const maxErrorBodyLength = 300

// MonthAvailabilityResponse ответ GET /api/{companyId}/availability
type MonthAvailabilityResponse struct {
	CompanyID flexibleString    `json:"companyId"`
	Month     string            `json:"month"`
	Days      []DayAvailability `json:"days"`
}

// DayAvailability день в ответе бэкенда; дата может прийти в любом разбираемом формате
type DayAvailability struct {
	Date      string                 `json:"date"`
	Employees []EmployeeAvailability `json:"employees"`
}

// EmployeeAvailability сотрудник в ответе бэкенда
type EmployeeAvailability struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Lastname *string   `json:"lastname"`
	Services []Service `json:"services"`
	Slots    []string  `json:"slots"`
}

// Service услуга в ответе бэкенда
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes *int   `json:"durationMinutes"`
}

// CreateAppointmentRequest тело POST /api/{companyId}/appointments
type CreateAppointmentRequest struct {
	CompanyID      string `json:"companyId"`
	ServiceID      int64  `json:"serviceId"`
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsappNumber"`
	DateTime       string `json:"dateTime"`
	Note           string `json:"note,omitempty"`
	EmployeeID     int64  `json:"employeeId"`
}

// ErrorResponse модель ошибки бэкенда
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// flexibleString принимает как строку, так и число (companyId)
type flexibleString string

func (s *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexibleString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*s = flexibleString(n.String())
	return nil
}
