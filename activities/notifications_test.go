package activities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/activities"
	"inactivity-reminder/email"
	"inactivity-reminder/shared"
)

func newProcessor(directory *fakeDirectory, dispatcher *fakeDispatcher, suppression *fakeSuppression) *activities.Activities {
	return &activities.Activities{
		Directory:   directory,
		Dispatcher:  dispatcher,
		Suppression: suppression,
		Renderer:    email.NewRenderer("Barbar Coach", "https://barbar.coach"),
	}
}

func executeSend(t *testing.T, a *activities.Activities, payload shared.NotificationPayload) shared.DispatchResult {
	t.Helper()
	env := newActivityEnv()
	env.RegisterActivity(a.SendExternalNotifications)

	val, err := env.ExecuteActivity(a.SendExternalNotifications, payload)
	require.NoError(t, err)

	var res shared.DispatchResult
	require.NoError(t, val.Get(&res))

	// Counter invariants hold for every result.
	assert.Equal(t, res.TotalUsers, res.UsersWithEmails+res.UsersWithoutEmails)
	assert.LessOrEqual(t, res.EmailsSent, res.UsersWithEmails)
	return res
}

func TestSendExternalNotifications_EndToEnd(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{"u1": "u1@test.com"}}
	dispatcher := &fakeDispatcher{}
	suppression := &fakeSuppression{}
	a := newProcessor(directory, dispatcher, suppression)

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{
			{ID: "u1", DaysSinceLastActivity: 5, HasWorkoutHistory: true},
			{ID: "u2", DaysSinceLastActivity: 20, HasWorkoutHistory: false},
		},
		WindowHours: 24,
	})

	assert.Equal(t, 2, res.TotalUsers)
	assert.Equal(t, 1, res.UsersWithEmails)
	assert.Equal(t, 1, res.UsersWithoutEmails)
	assert.Equal(t, 1, res.EmailsSent)
	assert.Empty(t, res.Errors)

	// One batched lookup covering every candidate.
	assert.Equal(t, 1, directory.calls)
	assert.Equal(t, []string{"u1", "u2"}, directory.gotIDs)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "u1@test.com", dispatcher.sent[0].To)
	assert.Equal(t, "Time to get back in the game", dispatcher.sent[0].Subject)
	assert.Contains(t, dispatcher.sent[0].HTML, "5 days ago")

	assert.Equal(t, []string{"u1"}, suppression.marked)
	assert.Equal(t, time.Duration(shared.DefaultSuppressionDays)*24*time.Hour, suppression.gotTTL)
}

func TestSendExternalNotifications_PartialFailureIsolation(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{
		"u1": "a@x.com", "u2": "b@x.com", "u3": "c@x.com",
	}}
	dispatcher := &fakeDispatcher{failTo: map[string]error{"b@x.com": assert.AnError}}
	a := newProcessor(directory, dispatcher, &fakeSuppression{})

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
	})

	assert.Equal(t, 2, res.EmailsSent)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "u2")

	// The third candidate was attempted: the loop did not abort after the
	// second failure, and dispatch order followed submission order.
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, dispatcher.attempts)
}

func TestSendExternalNotifications_TestModeAllowList(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{
		"u1": "a@x.com", "u2": "b@x.com", "u3": "c@x.com",
	}}
	dispatcher := &fakeDispatcher{}
	a := newProcessor(directory, dispatcher, &fakeSuppression{})

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates:    []shared.Candidate{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
		TestModeEmail: "b@x.com",
	})

	// Non-matching candidates are removed before dispatch and appear in no
	// counter, not as "no email".
	assert.Equal(t, 1, res.TotalUsers)
	assert.Equal(t, 1, res.UsersWithEmails)
	assert.Equal(t, 0, res.UsersWithoutEmails)
	assert.Equal(t, 1, res.EmailsSent)
	assert.Equal(t, []string{"b@x.com"}, dispatcher.attempts)
}

func TestSendExternalNotifications_MissingEmailAccounting(t *testing.T) {
	directory := &fakeDirectory{}
	dispatcher := &fakeDispatcher{}
	a := newProcessor(directory, dispatcher, &fakeSuppression{})

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1", DaysSinceLastActivity: 3}},
	})

	assert.Equal(t, 1, res.UsersWithoutEmails)
	assert.Empty(t, res.Errors)
	assert.Empty(t, dispatcher.attempts)
}

func TestSendExternalNotifications_FirstTimeTone(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{"u1": "u1@test.com"}}
	dispatcher := &fakeDispatcher{}
	a := newProcessor(directory, dispatcher, &fakeSuppression{})

	executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1", DaysSinceLastActivity: 1, HasWorkoutHistory: false}},
	})

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "Your first workout is waiting", dispatcher.sent[0].Subject)
	assert.Contains(t, dispatcher.sent[0].HTML, "1 day")
	assert.NotContains(t, dispatcher.sent[0].HTML, "1 days")
}

func TestSendExternalNotifications_SuppressionTTLFollowsRequest(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{"u1": "u1@test.com"}}
	suppression := &fakeSuppression{}
	a := newProcessor(directory, &fakeDispatcher{}, suppression)

	executeSend(t, a, shared.NotificationPayload{
		Candidates:      []shared.Candidate{{ID: "u1"}},
		SuppressionDays: 3,
	})

	assert.Equal(t, 72*time.Hour, suppression.gotTTL)
}

func TestSendExternalNotifications_PushChannelStub(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{"u1": "u1@test.com"}}
	dispatcher := &fakeDispatcher{}
	a := newProcessor(directory, dispatcher, &fakeSuppression{})

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1"}},
		Channels:   []shared.NotificationChannel{shared.ChannelPush},
	})

	assert.Equal(t, 0, res.EmailsSent)
	assert.Empty(t, dispatcher.attempts)
}

func TestSendExternalNotifications_DirectoryFailureIsFatal(t *testing.T) {
	a := newProcessor(&fakeDirectory{err: assert.AnError}, &fakeDispatcher{}, &fakeSuppression{})

	env := newActivityEnv()
	env.RegisterActivity(a.SendExternalNotifications)
	_, err := env.ExecuteActivity(a.SendExternalNotifications, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1"}},
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, shared.ErrTypeDataAccess, appErr.Type())
}

func TestSendExternalNotifications_MarkFailureIsNotFatal(t *testing.T) {
	directory := &fakeDirectory{emails: map[string]string{"u1": "u1@test.com"}}
	dispatcher := &fakeDispatcher{}
	a := newProcessor(directory, dispatcher, &fakeSuppression{markErr: assert.AnError})

	res := executeSend(t, a, shared.NotificationPayload{
		Candidates: []shared.Candidate{{ID: "u1"}},
	})

	assert.Equal(t, 1, res.EmailsSent)
	assert.Empty(t, res.Errors)
}
