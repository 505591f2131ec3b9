package end_session

import "context"

// SessionManager интерфейс менеджера сессий
type SessionManager interface {
	Delete(ctx context.Context, id string) error
}

// FetchRegistry интерфейс реестра незавершенных загрузок
type FetchRegistry interface {
	Cancel(sessionID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
