package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	selectSessionSQL = `SELECT payload, updated_at FROM intake_sessions WHERE chat_id = ?`
	upsertSessionSQL = `INSERT INTO intake_sessions (chat_id, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT (chat_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	deleteSessionSQL = `DELETE FROM intake_sessions WHERE chat_id = ?`
)

type sessionRow struct {
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SQLStore keeps conversations in the intake_sessions table.
// It works with both the postgres and sqlite drivers.
type SQLStore[S any] struct {
	db      *sqlx.DB
	codec   Codec[S]
	backend string
	ttl     time.Duration
	now     func() time.Time
}

// NewSQLStore wraps db as a Store. The table is created by the database migrations.
func NewSQLStore[S any](db *sqlx.DB, codec Codec[S], opts Options) *SQLStore[S] {
	return &SQLStore[S]{
		db:      db,
		codec:   codec,
		backend: db.DriverName(),
		ttl:     opts.TTL,
		now:     opts.clock(),
	}
}

// Get loads the conversation for chatID. Expired rows are removed and read as idle.
func (s *SQLStore[S]) Get(ctx context.Context, chatID int64) (S, bool, error) {
	var zero S
	var row sessionRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(selectSessionSQL), chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("select session: %w", err)
	}
	if s.ttl > 0 && s.now().Sub(row.UpdatedAt) >= s.ttl {
		if err := s.Delete(ctx, chatID); err != nil {
			return zero, false, err
		}
		return zero, false, nil
	}
	value, ok := decodeOrIdle(ctx, s.codec, s.backend, chatID, []byte(row.Payload))
	return value, ok, nil
}

// Set upserts the conversation for chatID.
func (s *SQLStore[S]) Set(ctx context.Context, chatID int64, value S) error {
	data, err := s.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(upsertSessionSQL), chatID, string(data), s.now().UTC()); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Delete removes the conversation for chatID.
func (s *SQLStore[S]) Delete(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteSessionSQL), chatID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
