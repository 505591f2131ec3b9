package availability

import (
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

func slots(values ...string) []types.TimeString {
	out := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		out = append(out, types.MustTimeString(v))
	}
	return out
}

func services(ids ...int64) []domain.Service {
	out := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Service{ID: id, Name: "service"})
	}
	return out
}

func id(v int64) *int64 { return &v }

// marchSnapshot March 2025: 10-го сотрудник A (услуга 1) и B (услуга 2);
// 3-го только A; 12-го A без слотов; 20-го только B
func marchSnapshot() *domain.MonthSnapshot {
	return &domain.MonthSnapshot{
		CompanyID: "acme",
		Month:     domain.Month{Year: 2025, Month: time.March},
		Days: []domain.DayAvailability{
			{
				Date: types.MustDate("2025-03-20"),
				Employees: []domain.EmployeeAvailability{
					{ID: 2, Name: "B", Services: services(2), Slots: slots("11:00")},
				},
			},
			{
				Date: types.MustDate("2025-03-10"),
				Employees: []domain.EmployeeAvailability{
					{ID: 1, Name: "A", Services: services(1), Slots: slots("09:00", "10:00")},
					{ID: 2, Name: "B", Services: services(2), Slots: slots("14:00")},
				},
			},
			{
				Date: types.MustDate("2025-03-03"),
				Employees: []domain.EmployeeAvailability{
					{ID: 1, Name: "A", Services: services(1), Slots: slots("09:00")},
				},
			},
			{
				Date: types.MustDate("2025-03-12"),
				Employees: []domain.EmployeeAvailability{
					{ID: 1, Name: "A", Services: services(1), Slots: nil},
				},
			},
		},
	}
}
