package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/psqlbuilder"
)

const sessionsTable = "widget_sessions"

// PostgresRepository хранит сессии в таблице widget_sessions.
// Истекшие строки невидимы для Get и удаляются через DeleteExpired.
type PostgresRepository struct {
	db  DBExecutor
	ttl time.Duration
	now Clock
}

// NewPostgresRepository создает хранилище сессий в PostgreSQL
func NewPostgresRepository(db DBExecutor, ttl time.Duration, now Clock) *PostgresRepository {
	if now == nil {
		now = time.Now
	}
	return &PostgresRepository{db: db, ttl: ttl, now: now}
}

// Get возвращает сессию по ID
func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	query, args, err := psqlbuilder.Select("payload").
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"expires_at": r.now().UTC()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan session: %v", ErrScanRow, err)
	}

	return decode(id, payload)
}

// Save вставляет или обновляет сессию и продлевает срок ее жизни
func (r *PostgresRepository) Save(ctx context.Context, s *domain.Session) error {
	payload, err := encode(s)
	if err != nil {
		return err
	}

	now := r.now().UTC()
	query, args, err := psqlbuilder.Insert(sessionsTable).
		Columns("id", "payload", "expires_at", "updated_at").
		Values(s.ID, string(payload), now.Add(r.ttl), now).
		Suffix("ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет сессию
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psqlbuilder.Delete(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired удаляет истекшие сессии и возвращает их количество
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query, args, err := psqlbuilder.Delete(sessionsTable).
		Where(squirrel.LtOrEq{"expires_at": r.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
