package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"inactivity-reminder/shared"
)

// RemindInactiveUsersWorkflow re-engages users who went inactive.
//
// Steps:
//
//	1. FindInactiveUsers          — deduplicated candidates from the in-app notification log
//	2. FilterSuppressed           — drop users emailed within the suppression window
//	3. SendExternalNotifications  — enrich with addresses, render, dispatch, account
//
// A failure in step 1 or 2 retries with backoff and then fails the run with
// no partial result; per-recipient failures inside step 3 are recorded in
// the result and never fail the run.
func RemindInactiveUsersWorkflow(ctx workflow.Context, req shared.RemindRequest) (shared.RemindResult, error) {
	logger := workflow.GetLogger(ctx)

	windowHours := req.DaysInactive * 24
	if windowHours <= 0 {
		windowHours = int(shared.DefaultWindow.Hours())
	}
	suppressionDays := req.SuppressionDays
	if suppressionDays <= 0 {
		suppressionDays = shared.DefaultSuppressionDays
	}
	channels := req.Channels
	if len(channels) == 0 {
		channels = []shared.NotificationChannel{shared.ChannelEmail}
	}

	logger.Info("Inactive-user reminder workflow started",
		"windowHours", windowHours,
		"channels", channels,
	)
	if req.TestModeEmail != "" {
		logger.Info("Test mode enabled, delivery restricted to a single allow-listed address",
			"testModeEmail", req.TestModeEmail,
		)
	}

	// Read-only steps retry on transient failures. Configuration errors
	// never retry.
	readOpts := workflow.ActivityOptions{
		TaskQueue:           shared.ReminderActivityTaskQueue,
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{shared.ErrTypeConfiguration},
		},
	}
	readCtx := workflow.WithActivityOptions(ctx, readOpts)

	var found shared.FindResult
	err := workflow.ExecuteActivity(readCtx, a.FindInactiveUsers, shared.FindRequest{WindowHours: windowHours}).Get(ctx, &found)
	if err != nil {
		logger.Error("User search failed", "error", err)
		return shared.RemindResult{}, fmt.Errorf("find inactive users: %w", err)
	}
	logger.Info("Candidates found", "usersFound", found.Count)

	var filtered shared.FilterResult
	err = workflow.ExecuteActivity(readCtx, a.FilterSuppressed, shared.FilterRequest{Candidates: found.Candidates}).Get(ctx, &filtered)
	if err != nil {
		logger.Error("Anti-spam filter failed", "error", err)
		return shared.RemindResult{}, fmt.Errorf("filter suppressed users: %w", err)
	}
	logger.Info("Anti-spam filter applied", "kept", len(filtered.Candidates), "excluded", filtered.Excluded)

	// Email dispatch is not idempotent, so the send step gets exactly one
	// attempt: a second attempt could re-send to recipients that already
	// succeeded. Re-running the whole workflow accepts that risk.
	sendOpts := workflow.ActivityOptions{
		TaskQueue:           shared.ReminderActivityTaskQueue,
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	sendCtx := workflow.WithActivityOptions(ctx, sendOpts)

	var dispatch shared.DispatchResult
	err = workflow.ExecuteActivity(sendCtx, a.SendExternalNotifications, shared.NotificationPayload{
		Candidates:      filtered.Candidates,
		WindowHours:     windowHours,
		Channels:        channels,
		TestModeEmail:   req.TestModeEmail,
		SuppressionDays: suppressionDays,
	}).Get(ctx, &dispatch)
	if err != nil {
		logger.Error("Notification dispatch failed", "error", err)
		return shared.RemindResult{}, fmt.Errorf("send external notifications: %w", err)
	}

	result := shared.RemindResult{
		Success:         true,
		UsersFound:      found.Count,
		UsersSuppressed: filtered.Excluded,
		UsersProcessed:  dispatch.UsersWithEmails,
		UsersExcluded:   dispatch.UsersWithoutEmails,
		EmailsSent:      dispatch.EmailsSent,
		Errors:          dispatch.Errors,
		Timestamp:       workflow.Now(ctx).UTC().Format(time.RFC3339),
	}

	logger.Info("Reminder workflow completed",
		"usersFound", result.UsersFound,
		"usersSuppressed", result.UsersSuppressed,
		"usersProcessed", result.UsersProcessed,
		"usersExcluded", result.UsersExcluded,
		"emailsSent", result.EmailsSent,
		"errors", len(result.Errors),
	)

	return result, nil
}
