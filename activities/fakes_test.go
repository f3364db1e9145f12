package activities_test

import (
	"context"
	"time"

	"inactivity-reminder/email"
	"inactivity-reminder/shared"
)

type fakeRecordStore struct {
	records  []shared.NotificationRecord
	err      error
	gotSince time.Time
}

func (f *fakeRecordStore) RecentInactivityNotifications(_ context.Context, since time.Time) ([]shared.NotificationRecord, error) {
	f.gotSince = since
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeDirectory struct {
	emails map[string]string
	err    error
	gotIDs []string
	calls  int
}

func (f *fakeDirectory) EmailsByUserIDs(_ context.Context, ids []string) (map[string]string, error) {
	f.calls++
	f.gotIDs = append([]string(nil), ids...)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if addr, ok := f.emails[id]; ok {
			out[id] = addr
		}
	}
	return out, nil
}

type fakeDispatcher struct {
	attempts []string // recipient addresses in dispatch order
	sent     []email.Message
	failTo   map[string]error
}

func (f *fakeDispatcher) Send(_ context.Context, msg email.Message) error {
	f.attempts = append(f.attempts, msg.To)
	if err, ok := f.failTo[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSuppression struct {
	suppressed map[string]bool
	checkErr   error
	markErr    error
	marked     []string
	gotTTL     time.Duration
}

func (f *fakeSuppression) Suppressed(_ context.Context, _ string, userID string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.suppressed[userID], nil
}

func (f *fakeSuppression) MarkNotified(_ context.Context, _ string, userID string, ttl time.Duration) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, userID)
	f.gotTTL = ttl
	return nil
}
