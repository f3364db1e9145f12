package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inactivity-reminder/shared"
)

// Postgres backs both the notification-record store and the user directory
// with a single connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ NotificationRecordStore = (*Postgres)(nil)
	_ UserDirectory           = (*Postgres)(nil)
)

// NewPostgres connects and verifies the connection.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

const recentInactivityQuery = `
	SELECT un.user_id, nt.type, un.data, un.created_at
	FROM user_notifications un
	JOIN notification_templates nt ON nt.id = un.template_id
	WHERE nt.type = $1
	  AND un.created_at >= $2`

// RecentInactivityNotifications returns inactivity-typed notification rows
// created at or after since.
func (p *Postgres) RecentInactivityNotifications(ctx context.Context, since time.Time) ([]shared.NotificationRecord, error) {
	rows, err := p.pool.Query(ctx, recentInactivityQuery, shared.NotificationTypeInactivity, since)
	if err != nil {
		return nil, fmt.Errorf("query recent inactivity notifications: %w", err)
	}
	defer rows.Close()

	records := []shared.NotificationRecord{}
	for rows.Next() {
		var rec shared.NotificationRecord
		var data []byte
		if err := rows.Scan(&rec.UserID, &rec.Type, &data, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &rec.Data); err != nil {
				return nil, fmt.Errorf("decode notification data for user %s: %w", rec.UserID, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}
	return records, nil
}

const emailsByIDsQuery = `
	SELECT id::text, email
	FROM auth.users
	WHERE id::text = ANY($1)
	  AND email IS NOT NULL
	  AND email <> ''`

// EmailsByUserIDs resolves email addresses for the given user IDs.
// Unresolvable IDs are omitted from the result.
func (p *Postgres) EmailsByUserIDs(ctx context.Context, ids []string) (map[string]string, error) {
	emails := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return emails, nil
	}

	rows, err := p.pool.Query(ctx, emailsByIDsQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("query user emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("scan user email row: %w", err)
		}
		emails[id] = email
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user email rows: %w", err)
	}
	return emails, nil
}
