package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// Month календарный месяц, за который запрашивается доступность
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth разбирает строку формата YYYY-MM
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf возвращает месяц, которому принадлежит дата
func MonthOf(d types.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// IsZero возвращает true для незаданного месяца
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Contains проверяет, что дата относится к этому месяцу
func (m Month) Contains(d types.Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// FirstDay возвращает первое число месяца
func (m Month) FirstDay() types.Date {
	return types.DateOf(m.Year, m.Month, 1)
}

// Next возвращает следующий месяц
func (m Month) Next() Month {
	return MonthOf(types.NewDate(m.FirstDay().In(time.UTC).AddDate(0, 1, 0)))
}

// Prev возвращает предыдущий месяц
func (m Month) Prev() Month {
	return MonthOf(types.NewDate(m.FirstDay().In(time.UTC).AddDate(0, -1, 0)))
}

// Before возвращает true, если m строго раньше other
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// String возвращает месяц в формате YYYY-MM
func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// MarshalJSON сериализует месяц в "YYYY-MM"
func (m Month) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON разбирает "YYYY-MM"
func (m *Month) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Month{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
