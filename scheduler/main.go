// Command scheduler registers the daily reminder schedule with Temporal.
// Running it twice is safe: an existing schedule is left untouched.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/config"
	"inactivity-reminder/logger"
	"inactivity-reminder/shared"
	"inactivity-reminder/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Unable to initialize logger: %v", err)
	}
	defer logger.L().Sync() //nolint:errcheck

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    logger.NewTemporalAdapter(logger.L()),
	})
	if err != nil {
		logger.S().Fatalw("Unable to create Temporal client", "error", err)
	}
	defer c.Close()

	ctx := context.Background()
	handle, err := c.ScheduleClient().Create(ctx, client.ScheduleOptions{
		ID: shared.DailyReminderScheduleID,
		Spec: client.ScheduleSpec{
			CronExpressions: []string{shared.DailyReminderCron},
		},
		// A run that outlasts the next slot is not doubled up.
		Overlap: enumspb.SCHEDULE_OVERLAP_POLICY_SKIP,
		Action: &client.ScheduleWorkflowAction{
			ID:        shared.RemindInactiveUsersWorkflowID + "-scheduled",
			Workflow:  workflows.RemindInactiveUsersWorkflow,
			Args:      []interface{}{shared.RemindRequest{DaysInactive: 1}},
			TaskQueue: shared.ReminderWorkflowTaskQueue,
			// Transient failures of the whole run retry here; the pipeline
			// performs no internal retries beyond per-recipient
			// continue-on-error.
			RetryPolicy: &temporal.RetryPolicy{
				InitialInterval:    time.Second,
				BackoffCoefficient: 2.0,
				MaximumInterval:    30 * time.Second,
				MaximumAttempts:    3,
			},
		},
	})
	if err != nil {
		if errors.Is(err, temporal.ErrScheduleAlreadyRunning) {
			logger.S().Infow("Daily reminder schedule already exists", "scheduleId", shared.DailyReminderScheduleID)
			return
		}
		logger.S().Fatalw("Unable to create schedule", "error", err)
	}

	logger.S().Infow("Daily reminder schedule created",
		"scheduleId", handle.GetID(),
		"cron", shared.DailyReminderCron,
		"windowDays", 1,
	)
}
