package shared

import "time"

// Task queue names.
const (
	ReminderWorkflowTaskQueue = "reminder-workflow-tq"
	ReminderActivityTaskQueue = "reminder-activity-tq"
)

// Workflow and schedule identifiers.
const (
	RemindInactiveUsersWorkflowID = "remind-inactive-users"
	DailyReminderScheduleID       = "daily-email-reminder"

	// DailyReminderCron fires at 08:00 UTC, eight hours after the overnight
	// job that writes the in-app inactivity notifications.
	DailyReminderCron = "0 8 * * *"
)

// Run defaults.
const (
	DefaultWindow          = 24 * time.Hour
	DefaultSuppressionDays = 7
)

// Error types for application errors. Data-access failures are retryable;
// configuration errors are not.
const (
	ErrTypeConfiguration = "ConfigurationError"
	ErrTypeDataAccess    = "DataAccessError"
)

// NotificationTypeInactivity tags the in-app notification rows this
// pipeline consumes.
const NotificationTypeInactivity = "inactivity"
