package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

func TestIndex_DatesSorted(t *testing.T) {
	ix := NewIndex(marchSnapshot())

	assert.Equal(t, []types.Date{
		types.MustDate("2025-03-03"),
		types.MustDate("2025-03-10"),
		types.MustDate("2025-03-12"),
		types.MustDate("2025-03-20"),
	}, ix.Dates())
	assert.Nil(t, ix.Day(types.MustDate("2025-03-11")))
	assert.Empty(t, NewIndex(nil).Dates())
}

func TestIsDayAvailable(t *testing.T) {
	ix := NewIndex(marchSnapshot())
	day10 := ix.Day(types.MustDate("2025-03-10"))
	day12 := ix.Day(types.MustDate("2025-03-12"))

	cases := []struct {
		name   string
		day    *domain.DayAvailability
		filter Filter
		want   bool
	}{
		{name: "no filters", day: day10, want: true},
		{name: "no filters, nobody has slots", day: day12, want: false},
		{name: "nil day", day: nil, want: false},
		{name: "employee with slots", day: day10, filter: Filter{EmployeeID: id(1)}, want: true},
		{name: "employee without slots", day: day12, filter: Filter{EmployeeID: id(1)}, want: false},
		{name: "employee absent", day: day10, filter: Filter{EmployeeID: id(9)}, want: false},
		{name: "employee offers service", day: day10, filter: Filter{EmployeeID: id(2), ServiceID: id(2)}, want: true},
		{name: "employee lacks service", day: day10, filter: Filter{EmployeeID: id(2), ServiceID: id(1)}, want: false},
		{name: "service offered by someone", day: day10, filter: Filter{ServiceID: id(1)}, want: true},
		{name: "service offered by nobody", day: day10, filter: Filter{ServiceID: id(7)}, want: false},
		{name: "service offered only without slots", day: day12, filter: Filter{ServiceID: id(1)}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsDayAvailable(tc.day, tc.filter))
		})
	}
}

func TestIndex_PastDatesNeverAvailable(t *testing.T) {
	ix := NewIndex(marchSnapshot())
	today := types.MustDate("2025-03-05")

	dates := ix.AvailableDates(Filter{}, today)
	assert.Equal(t, []types.Date{types.MustDate("2025-03-10"), types.MustDate("2025-03-20")}, dates)
	assert.False(t, ix.IsAvailable(types.MustDate("2025-03-03"), Filter{}, today))

	nearest, ok := ix.NearestAvailableDate(Filter{}, today)
	require.True(t, ok)
	assert.Equal(t, types.MustDate("2025-03-10"), nearest)
}

func TestIndex_NearestAvailableDate(t *testing.T) {
	ix := NewIndex(marchSnapshot())
	today := types.MustDate("2025-03-01")

	nearest, ok := ix.NearestAvailableDate(Filter{}, today)
	require.True(t, ok)
	assert.Equal(t, types.MustDate("2025-03-03"), nearest)

	nearest, ok = ix.NearestAvailableDate(Filter{EmployeeID: id(2)}, today)
	require.True(t, ok)
	assert.Equal(t, types.MustDate("2025-03-10"), nearest)

	_, ok = ix.NearestAvailableDate(Filter{ServiceID: id(99)}, today)
	assert.False(t, ok)

	_, ok = ix.NearestAvailableDate(Filter{}, types.MustDate("2025-04-01"))
	assert.False(t, ok)
}

func TestSelectableLists_March10(t *testing.T) {
	day := NewIndex(marchSnapshot()).Day(types.MustDate("2025-03-10"))

	employees := SelectableEmployees(day, id(2))
	require.Len(t, employees, 1)
	assert.Equal(t, int64(2), employees[0].ID)

	assert.Len(t, SelectableEmployees(day, nil), 2)
	assert.Equal(t, slots("14:00"), SelectableSlots(day, id(2)))
	assert.Empty(t, SelectableSlots(day, nil))
	assert.Empty(t, SelectableSlots(day, id(9)))

	assert.Equal(t, services(2), SelectableServices(day, id(2)))
	assert.Equal(t, services(1, 2), SelectableServices(day, nil))
	assert.Empty(t, SelectableServices(day, id(9)))
	assert.Empty(t, SelectableServices(nil, nil))
	assert.Empty(t, SelectableEmployees(nil, nil))
}

func TestSelectableServices_Deduplicates(t *testing.T) {
	day := &domain.DayAvailability{
		Date: types.MustDate("2025-03-10"),
		Employees: []domain.EmployeeAvailability{
			{ID: 1, Services: services(1, 2), Slots: slots("09:00")},
			{ID: 2, Services: services(2, 3), Slots: slots("10:00")},
			{ID: 3, Services: services(4), Slots: nil},
		},
	}

	assert.Equal(t, services(1, 2, 3), SelectableServices(day, nil))
}

func TestIndex_EmployeeServices(t *testing.T) {
	ix := NewIndex(marchSnapshot())

	got, found := ix.EmployeeServices(2, types.MustDate("2025-03-10"))
	require.True(t, found)
	assert.Equal(t, services(2), got)

	got, found = ix.EmployeeServices(2, types.MustDate("2025-03-03"))
	require.True(t, found)
	assert.Equal(t, services(2), got)

	_, found = ix.EmployeeServices(9, types.MustDate("2025-03-10"))
	assert.False(t, found)

	assert.True(t, ix.EmployeeOffers(1, 1, types.Date{}))
	assert.False(t, ix.EmployeeOffers(1, 2, types.Date{}))
	assert.True(t, ix.EmployeeOffers(9, 2, types.Date{}))
}

// scanAvailable прямой пересчет по снимку без индекса
func scanAvailable(snapshot *domain.MonthSnapshot, date types.Date, filter Filter, today types.Date) bool {
	if date.Before(today) {
		return false
	}
	for _, day := range snapshot.Days {
		if day.Date != date {
			continue
		}
		for _, emp := range day.Employees {
			if filter.EmployeeID != nil && emp.ID != *filter.EmployeeID {
				continue
			}
			if len(emp.Slots) == 0 {
				continue
			}
			if filter.ServiceID != nil {
				offers := false
				for _, s := range emp.Services {
					offers = offers || s.ID == *filter.ServiceID
				}
				if !offers {
					continue
				}
			}
			return true
		}
		return false
	}
	return false
}

func randomSnapshot(rnd *rand.Rand) *domain.MonthSnapshot {
	snapshot := &domain.MonthSnapshot{Month: domain.Month{Year: 2025, Month: time.March}}
	for d := 1; d <= 31; d++ {
		if rnd.Intn(3) == 0 {
			continue
		}
		day := domain.DayAvailability{Date: types.DateOf(2025, time.March, d)}
		for e := int64(1); e <= 4; e++ {
			if rnd.Intn(2) == 0 {
				continue
			}
			emp := domain.EmployeeAvailability{ID: e}
			for s := int64(1); s <= 3; s++ {
				if rnd.Intn(2) == 0 {
					emp.Services = append(emp.Services, domain.Service{ID: s})
				}
			}
			for n := rnd.Intn(3); n > 0; n-- {
				emp.Slots = append(emp.Slots, types.MustTimeString("09:00"))
			}
			day.Employees = append(day.Employees, emp)
		}
		snapshot.Days = append(snapshot.Days, day)
	}
	return snapshot
}

func TestIndex_MatchesDirectScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	optional := []*int64{nil, id(1), id(2), id(3), id(4), id(5)}

	for iter := 0; iter < 200; iter++ {
		snapshot := randomSnapshot(rnd)
		ix := NewIndex(snapshot)
		today := types.DateOf(2025, time.March, 1+rnd.Intn(31))

		for _, emp := range optional {
			for _, svc := range optional[:4] {
				filter := Filter{EmployeeID: emp, ServiceID: svc}

				var want []types.Date
				for d := 1; d <= 31; d++ {
					date := types.DateOf(2025, time.March, d)
					expected := scanAvailable(snapshot, date, filter, today)
					require.Equal(t, expected, ix.IsAvailable(date, filter, today), "date=%s", date)
					if expected {
						want = append(want, date)
					}
				}

				got := ix.AvailableDates(filter, today)
				if len(want) == 0 {
					assert.Empty(t, got)
					_, ok := ix.NearestAvailableDate(filter, today)
					assert.False(t, ok)
					continue
				}
				assert.Equal(t, want, got)
				nearest, ok := ix.NearestAvailableDate(filter, today)
				require.True(t, ok)
				assert.Equal(t, want[0], nearest)
			}
		}
	}
}

func TestIndex_HasEmployeeAndService(t *testing.T) {
	ix := NewIndex(marchSnapshot())

	assert.True(t, ix.HasEmployee(1))
	assert.True(t, ix.HasEmployee(2))
	assert.False(t, ix.HasEmployee(99))

	assert.True(t, ix.HasService(1))
	assert.True(t, ix.HasService(2))
	assert.False(t, ix.HasService(99))

	empty := NewIndex(nil)
	assert.False(t, empty.HasEmployee(1))
	assert.False(t, empty.HasService(1))
}
