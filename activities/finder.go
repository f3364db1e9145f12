package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/shared"
)

// FindInactiveUsers turns a lookback window into a deduplicated list of
// re-engagement candidates, built from the in-app inactivity notifications
// written during that window.
func (a *Activities) FindInactiveUsers(ctx context.Context, req shared.FindRequest) (shared.FindResult, error) {
	logger := activity.GetLogger(ctx)
	threshold := time.Now().Add(-time.Duration(req.WindowHours) * time.Hour)

	logger.Info("Searching for recently notified inactive users",
		"windowHours", req.WindowHours,
		"threshold", threshold,
	)

	records, err := a.Records.RecentInactivityNotifications(ctx, threshold)
	if err != nil {
		logger.Error("User search failed", "windowHours", req.WindowHours, "error", err)
		return shared.FindResult{}, temporal.NewApplicationError(
			fmt.Sprintf("fetch recent inactivity notifications: %v", err),
			shared.ErrTypeDataAccess,
		)
	}

	// One candidate per user, first row wins. The store does not guarantee
	// time ordering, so "first" means first in the returned row order, and
	// candidates keep that first-appearance order.
	seen := make(map[string]struct{}, len(records))
	candidates := make([]shared.Candidate, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.UserID]; ok {
			continue
		}
		seen[rec.UserID] = struct{}{}
		candidates = append(candidates, shared.Candidate{
			ID:                    rec.UserID,
			DaysSinceLastActivity: rec.Data.Days,
			HasWorkoutHistory:     rec.Data.HasWorkout,
		})
	}

	logger.Info("User search completed",
		"usersFound", len(candidates),
		"notificationRows", len(records),
		"windowHours", req.WindowHours,
	)

	return shared.FindResult{
		Candidates:  candidates,
		Count:       len(candidates),
		WindowHours: req.WindowHours,
	}, nil
}
