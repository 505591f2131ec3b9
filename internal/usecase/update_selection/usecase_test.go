package update_selection

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWidget/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
	"github.com/m04kA/SMC-BookingWidget/pkg/ptr"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func employee(id int64, name string, service int64, slots ...string) domain.EmployeeAvailability {
	out := domain.EmployeeAvailability{ID: id, Name: name, Services: []domain.Service{{ID: service, Name: "service"}}}
	for _, s := range slots {
		out.Slots = append(out.Slots, types.MustTimeString(s))
	}
	return out
}

func marchSnapshot() *domain.MonthSnapshot {
	return &domain.MonthSnapshot{
		CompanyID: "acme",
		Month:     domain.Month{Year: 2025, Month: time.March},
		Days: []domain.DayAvailability{
			{Date: types.MustDate("2025-03-03"), Employees: []domain.EmployeeAvailability{employee(1, "A", 1, "09:00")}},
			{Date: types.MustDate("2025-03-10"), Employees: []domain.EmployeeAvailability{
				employee(1, "A", 1, "09:00", "10:00"),
				employee(2, "B", 2, "14:00"),
			}},
			{Date: types.MustDate("2025-03-20"), Employees: []domain.EmployeeAvailability{employee(2, "B", 2, "11:00")}},
		},
	}
}

func newUseCase(t *testing.T) (*UseCase, *sessionService.Manager) {
	t.Helper()
	clock := fixedTime{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	repo := sessionRepo.NewMemoryRepository(time.Hour, clock.Now)
	sessions := sessionService.NewManager(repo, clock, logger.NewNop())

	s := &domain.Session{ID: "s1", CompanyID: "acme", Timezone: "UTC", Month: domain.Month{Year: 2025, Month: time.March}}
	form.ApplyToSession(s, clock.now, form.SnapshotLoaded{Snapshot: marchSnapshot()})
	require.NoError(t, sessions.Create(context.Background(), s))

	return NewUseCase(sessions, logger.NewNop()).WithTimeProvider(clock), sessions
}

func setID(v int64) *IDChange { return &IDChange{Value: ptr.Ptr(v)} }

func TestExecute_March10Scenario(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{SessionID: "s1", Date: ptr.Ptr("2025-03-10"), ServiceID: setID(2)})
	require.NoError(t, err)
	require.Len(t, resp.View.Employees, 1)
	assert.Equal(t, int64(2), resp.View.Employees[0].ID)

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", EmployeeID: setID(2)})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{types.MustTimeString("14:00")}, resp.View.Slots)

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", Slot: ptr.Ptr("14:00")})
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.Session.Selection.Slot.String())

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", ServiceID: setID(1)})
	require.NoError(t, err)
	assert.Nil(t, resp.Session.Selection.EmployeeID)
	assert.True(t, resp.Session.Selection.Slot.IsZero())
	assert.Equal(t, types.MustDate("2025-03-10"), resp.Session.Selection.Date)
}

func TestExecute_AppliesChangesInFixedOrder(t *testing.T) {
	uc, _ := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:  "s1",
		Name:       ptr.Ptr("Bob"),
		Phone:      ptr.Ptr("+15550001"),
		ServiceID:  setID(2),
		EmployeeID: setID(2),
		Date:       ptr.Ptr("2025-03-20"),
		Slot:       ptr.Ptr("11:00"),
	})
	require.NoError(t, err)

	sel := resp.Session.Selection
	assert.Equal(t, "Bob", sel.Name)
	assert.Equal(t, types.MustDate("2025-03-20"), sel.Date)
	assert.Equal(t, "11:00", sel.Slot.String())
	assert.Empty(t, resp.View.MissingFields)
}

func TestExecute_RejectsValuesNotOffered(t *testing.T) {
	cases := []struct {
		name string
		req  *Request
	}{
		{name: "date without availability", req: &Request{Date: ptr.Ptr("2025-03-15")}},
		{name: "date of other employee", req: &Request{EmployeeID: setID(1), Date: ptr.Ptr("2025-03-20")}},
		{name: "slot of other employee", req: &Request{Date: ptr.Ptr("2025-03-10"), EmployeeID: setID(1), Slot: ptr.Ptr("14:00")}},
		{name: "slot without employee", req: &Request{Slot: ptr.Ptr("09:00")}},
		{name: "unknown service", req: &Request{ServiceID: setID(99)}},
		{name: "unknown employee", req: &Request{EmployeeID: setID(99)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, sessions := newUseCase(t)
			before, err := sessions.Get(context.Background(), "s1")
			require.NoError(t, err)

			tc.req.SessionID = "s1"
			_, err = uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidSelection)

			after, err := sessions.Get(context.Background(), "s1")
			require.NoError(t, err)
			assert.Equal(t, before.Selection, after.Selection)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		req  *Request
	}{
		{name: "name too long", req: &Request{SessionID: "s1", Name: ptr.Ptr(strings.Repeat("я", domain.MaxNameLength+1))}},
		{name: "bad date", req: &Request{SessionID: "s1", Date: ptr.Ptr("tomorrow")}},
		{name: "bad slot", req: &Request{SessionID: "s1", Slot: ptr.Ptr("25:00")}},
		{name: "negative service", req: &Request{SessionID: "s1", ServiceID: setID(-1)}},
		{name: "no session id", req: &Request{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _ := newUseCase(t)
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ClearsEmployee(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: "s1", EmployeeID: setID(2), Date: ptr.Ptr("2025-03-20"), Slot: ptr.Ptr("11:00")})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{SessionID: "s1", EmployeeID: &IDChange{}})
	require.NoError(t, err)
	assert.Nil(t, resp.Session.Selection.EmployeeID)
	assert.True(t, resp.Session.Selection.Slot.IsZero())
	assert.Equal(t, types.MustDate("2025-03-20"), resp.Session.Selection.Date)
}

func TestExecute_DateInUserTimezone(t *testing.T) {
	uc, _ := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "s1", Date: ptr.Ptr("2025-03-10T08:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, types.MustDate("2025-03-10"), resp.Session.Selection.Date)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "missing", Name: ptr.Ptr("Bob")})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
