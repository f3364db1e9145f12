package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/email"
	"inactivity-reminder/shared"
)

// SendExternalNotifications is the batch processor: it enriches candidates
// with email addresses, applies the test-mode allow-list, renders one
// personalized message per recipient and dispatches them strictly
// sequentially, accumulating the result counters.
//
// A directory failure aborts the run with no partial result. A single
// recipient's dispatch failure is recorded in Errors and the loop continues.
func (a *Activities) SendExternalNotifications(ctx context.Context, payload shared.NotificationPayload) (shared.DispatchResult, error) {
	logger := activity.GetLogger(ctx)

	channels := payload.Channels
	if len(channels) == 0 {
		channels = []shared.NotificationChannel{shared.ChannelEmail}
	}
	suppressionDays := payload.SuppressionDays
	if suppressionDays <= 0 {
		suppressionDays = shared.DefaultSuppressionDays
	}

	logger.Info("Starting notification processing",
		"totalUsers", len(payload.Candidates),
		"channels", channels,
		"testMode", payload.TestModeEmail != "",
	)

	// Step A: one batched directory lookup. IDs with no known address are
	// absent from the map and the candidate's email stays unset.
	ids := make([]string, len(payload.Candidates))
	for i, c := range payload.Candidates {
		ids[i] = c.ID
	}
	addresses, err := a.Directory.EmailsByUserIDs(ctx, ids)
	if err != nil {
		logger.Error("Email enrichment failed", "error", err)
		return shared.DispatchResult{}, temporal.NewApplicationError(
			fmt.Sprintf("fetch user emails: %v", err),
			shared.ErrTypeDataAccess,
		)
	}

	candidates := make([]shared.Candidate, len(payload.Candidates))
	copy(candidates, payload.Candidates)
	for i := range candidates {
		if addr, ok := addresses[candidates[i].ID]; ok {
			candidates[i].Email = addr
		}
	}

	// Step B: test mode is a hard allow-list, restricting the working set
	// to the single configured address so the pipeline can run against
	// production data without mass delivery. Filtered-out candidates
	// appear in no counter.
	if payload.TestModeEmail != "" {
		allowed := make([]shared.Candidate, 0, 1)
		for _, c := range candidates {
			if c.Email == payload.TestModeEmail {
				allowed = append(allowed, c)
			}
		}
		logger.Info("Test mode active, recipients restricted",
			"testModeEmail", payload.TestModeEmail,
			"originalCount", len(candidates),
			"filteredCount", len(allowed),
		)
		candidates = allowed
	}

	result := shared.DispatchResult{
		TotalUsers: len(candidates),
		Errors:     []string{},
		Channels:   channels,
	}

	wantEmail := false
	for _, ch := range channels {
		switch ch {
		case shared.ChannelEmail:
			wantEmail = true
		case shared.ChannelPush:
			logger.Info("Push channel requested, delivery not implemented, skipping")
		}
	}

	suppressionTTL := time.Duration(suppressionDays) * 24 * time.Hour

	// Step C: strictly sequential dispatch so the errors list follows
	// submission order and one failing recipient cannot starve the rest.
	for _, c := range candidates {
		if wantEmail && c.Email == "" {
			// Expected outcome, counted but never an error.
			logger.Info("No email found for user", "userId", c.ID)
			result.UsersWithoutEmails++
			continue
		}
		result.UsersWithEmails++

		if !wantEmail || c.Email == "" {
			continue
		}

		subject, html, err := a.Renderer.Render(c)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to send notification to user %s: %v", c.ID, err))
			continue
		}

		if err := a.Dispatcher.Send(ctx, email.Message{To: c.Email, Subject: subject, HTML: html}); err != nil {
			logger.Error("Email send failed", "userId", c.ID, "error", err)
			result.Errors = append(result.Errors,
				fmt.Sprintf("failed to send notification to user %s: %v", c.ID, err))
			continue
		}
		result.EmailsSent++

		// A lost suppression mark only means the user is considered again
		// next run, so the failure is logged and swallowed.
		if err := a.Suppression.MarkNotified(ctx, string(shared.ChannelEmail), c.ID, suppressionTTL); err != nil {
			logger.Warn("Failed to record suppression mark", "userId", c.ID, "error", err)
		}

		logger.Info("Email sent",
			"userId", c.ID,
			"daysSinceActivity", c.DaysSinceLastActivity,
			"hasWorkoutHistory", c.HasWorkoutHistory,
		)
	}

	logger.Info("Notification processing completed",
		"totalUsers", result.TotalUsers,
		"usersWithEmails", result.UsersWithEmails,
		"usersWithoutEmails", result.UsersWithoutEmails,
		"emailsSent", result.EmailsSent,
		"errors", len(result.Errors),
	)

	return result, nil
}
