package session

import (
	"time"

	"github.com/m04kA/SMC-BookingWidget/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Clock источник текущего времени для вычисления срока жизни сессий
type Clock func() time.Time
