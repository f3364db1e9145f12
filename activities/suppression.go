package activities

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/shared"
)

// FilterSuppressed drops candidates who were already sent a re-engagement
// email within the suppression window, so repeated runs do not spam the
// same users. Candidate order is preserved.
func (a *Activities) FilterSuppressed(ctx context.Context, req shared.FilterRequest) (shared.FilterResult, error) {
	logger := activity.GetLogger(ctx)

	kept := make([]shared.Candidate, 0, len(req.Candidates))
	excluded := 0
	for _, c := range req.Candidates {
		suppressed, err := a.Suppression.Suppressed(ctx, string(shared.ChannelEmail), c.ID)
		if err != nil {
			return shared.FilterResult{}, temporal.NewApplicationError(
				fmt.Sprintf("check suppression for user %s: %v", c.ID, err),
				shared.ErrTypeDataAccess,
			)
		}
		if suppressed {
			excluded++
			continue
		}
		kept = append(kept, c)
	}

	logger.Info("Anti-spam filter applied",
		"kept", len(kept),
		"excluded", excluded,
	)

	return shared.FilterResult{Candidates: kept, Excluded: excluded}, nil
}
