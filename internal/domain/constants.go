package domain

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// Business validation constants
const (
	MaxNameLength  = 100
	MaxPhoneLength = 32
	MaxNoteLength  = 500
)

// DefaultTimezone зона, в которой интерпретируются даты, если виджет не передал свою
const DefaultTimezone = "UTC"

// Названия полей выбора (используются в списке незаполненных полей)
const (
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldServiceID  = "serviceId"
	FieldEmployeeID = "employeeId"
	FieldDate       = "date"
	FieldSlot       = "slot"
)
