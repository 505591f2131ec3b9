package form

import (
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// StateOf возвращает состояние формы, хранящееся в сессии
func StateOf(s *domain.Session) State {
	return State{Selection: s.Selection.Clone(), Snapshot: s.Snapshot}
}

// Store записывает состояние формы обратно в сессию
func Store(s *domain.Session, state State) {
	s.Selection = state.Selection
	s.Snapshot = state.Snapshot
}

// Today возвращает текущую календарную дату в зоне пользователя сессии
func Today(s *domain.Session, now time.Time) types.Date {
	return types.NewDate(now.In(s.Location()))
}

// ApplyToSession применяет события к форме сессии
func ApplyToSession(s *domain.Session, now time.Time, events ...Event) {
	Store(s, Apply(StateOf(s), Today(s, now), events...))
}

// DeriveSession вычисляет представление формы сессии
func DeriveSession(s *domain.Session, now time.Time) View {
	return Derive(StateOf(s), Today(s, now))
}
