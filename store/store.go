// Package store holds the data-access boundaries of the reminder pipeline:
// the in-app notification log, the user directory and the anti-spam
// suppression list.
package store

import (
	"context"
	"time"

	"inactivity-reminder/shared"
)

// NotificationRecordStore reads the persisted in-app notification log.
type NotificationRecordStore interface {
	// RecentInactivityNotifications returns all inactivity-typed rows
	// created at or after the threshold, in the store's own order.
	// An empty window yields an empty slice, not an error.
	RecentInactivityNotifications(ctx context.Context, since time.Time) ([]shared.NotificationRecord, error)
}

// UserDirectory resolves user IDs to email addresses.
type UserDirectory interface {
	// EmailsByUserIDs returns a map from user ID to email address.
	// IDs with no known address are simply absent from the map; partial
	// misses are not an error.
	EmailsByUserIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// SuppressionList tracks users already contacted on a channel so repeat
// runs inside the suppression window skip them.
type SuppressionList interface {
	Suppressed(ctx context.Context, channel, userID string) (bool, error)
	MarkNotified(ctx context.Context, channel, userID string, ttl time.Duration) error
}
