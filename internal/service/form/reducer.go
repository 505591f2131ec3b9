package form

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/availability"
	"github.com/m04kA/SMC-BookingWidget/pkg/ptr"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// maxNormalizePasses каждое правило нормализации только сбрасывает поля
// или переносит дату на доступную, поэтому хватает пары проходов
const maxNormalizePasses = 8

// State состояние формы: выбор пользователя и последний снимок доступности
type State struct {
	Selection domain.Selection
	Snapshot  *domain.MonthSnapshot
}

// Reduce применяет событие к состоянию и доводит результат до неподвижной точки.
// Исходное состояние не изменяется.
func Reduce(state State, event Event, today types.Date) State {
	next := State{
		Selection: state.Selection.Clone(),
		Snapshot:  state.Snapshot,
	}
	ix := availability.NewIndex(next.Snapshot)
	sel := &next.Selection

	switch e := event.(type) {
	case SetName:
		sel.Name = e.Value

	case SetPhone:
		sel.Phone = e.Value

	case SetNote:
		sel.Note = e.Value

	case SelectService:
		if ptr.Equal(sel.ServiceID, e.ServiceID) {
			break
		}
		sel.ServiceID = copyID(e.ServiceID)
		// Выбранный сотрудник не оказывает новую услугу: сбрасываем сотрудника и время
		if sel.ServiceID != nil && sel.EmployeeID != nil &&
			!ix.EmployeeOffers(*sel.EmployeeID, *sel.ServiceID, sel.Date) {
			sel.EmployeeID = nil
			sel.Slot = types.TimeString{}
		}

	case SelectEmployee:
		if ptr.Equal(sel.EmployeeID, e.EmployeeID) {
			break
		}
		sel.EmployeeID = copyID(e.EmployeeID)
		sel.Slot = types.TimeString{}
		// Новый сотрудник не оказывает выбранную услугу: сбрасываем услугу
		if sel.EmployeeID != nil && sel.ServiceID != nil &&
			!ix.EmployeeOffers(*sel.EmployeeID, *sel.ServiceID, sel.Date) {
			sel.ServiceID = nil
		}

	case SelectDate:
		if sel.Date != e.Date {
			sel.Date = e.Date
			sel.Slot = types.TimeString{}
		}

	case SelectSlot:
		sel.Slot = e.Slot

	case SnapshotLoaded:
		next.Snapshot = e.Snapshot
		ix = availability.NewIndex(next.Snapshot)

	case AppointmentBooked:
		sel.Slot = types.TimeString{}
		sel.Note = ""
	}

	normalize(sel, ix, today)
	return next
}

// Apply последовательно применяет события
func Apply(state State, today types.Date, events ...Event) State {
	for _, e := range events {
		state = Reduce(state, e, today)
	}
	return state
}

func normalize(sel *domain.Selection, ix *availability.Index, today types.Date) {
	for i := 0; i < maxNormalizePasses; i++ {
		if !normalizeOnce(sel, ix, today) {
			return
		}
	}
}

// normalizeOnce выполняет один проход правил и сообщает, изменилось ли что-то
func normalizeOnce(sel *domain.Selection, ix *availability.Index, today types.Date) bool {
	changed := false

	// 1. Пара сотрудник/услуга стала несовместимой (например, после обновления снимка)
	if sel.EmployeeID != nil && sel.ServiceID != nil &&
		!ix.EmployeeOffers(*sel.EmployeeID, *sel.ServiceID, sel.Date) {
		sel.EmployeeID = nil
		sel.Slot = types.TimeString{}
		changed = true
	}

	// 2. Выбранная дата недоступна: переходим на ближайшую доступную или сбрасываем
	filter := availability.FilterOf(*sel)
	if !ix.IsAvailable(sel.Date, filter, today) {
		nearest, ok := ix.NearestAvailableDate(filter, today)
		switch {
		case ok:
			sel.Date = nearest
			sel.Slot = types.TimeString{}
			changed = true
		case !sel.Date.IsZero() || !sel.Slot.IsZero():
			sel.Date = types.Date{}
			sel.Slot = types.TimeString{}
			changed = true
		}
	}

	// 3. Выбранное время отсутствует у сотрудника в эту дату
	if !sel.Slot.IsZero() && !containsSlot(availability.SelectableSlots(ix.Day(sel.Date), sel.EmployeeID), sel.Slot) {
		sel.Slot = types.TimeString{}
		changed = true
	}

	return changed
}

func containsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	return ptr.Ptr(*id)
}
