package shared

import "time"

// NotificationChannel selects a delivery channel for a run.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	// ChannelPush is accepted in payloads but delivery is stubbed.
	ChannelPush NotificationChannel = "push"
)

// Candidate is a user considered for re-engagement in one run.
// Email stays empty until the enrichment step resolves it.
type Candidate struct {
	ID                    string `json:"id"`
	DaysSinceLastActivity int    `json:"daysSinceLastActivity"`
	HasWorkoutHistory     bool   `json:"hasWorkoutHistory"`
	Email                 string `json:"email,omitempty"`
}

// NotificationData is the payload column of an in-app notification row.
// Missing fields decode to their zero values (0 days, no workout history).
type NotificationData struct {
	Days       int  `json:"days"`
	HasWorkout bool `json:"has_workout"`
}

// NotificationRecord is one row of the in-app notification log.
type NotificationRecord struct {
	UserID    string           `json:"userId"`
	Type      string           `json:"type"`
	Data      NotificationData `json:"data"`
	CreatedAt time.Time        `json:"createdAt"`
}

// FindRequest is the input to the FindInactiveUsers activity.
type FindRequest struct {
	WindowHours int `json:"windowHours"`
}

// FindResult is the output of the FindInactiveUsers activity.
type FindResult struct {
	Candidates  []Candidate `json:"candidates"`
	Count       int         `json:"count"`
	WindowHours int         `json:"windowHours"`
}

// FilterRequest is the input to the FilterSuppressed activity.
type FilterRequest struct {
	Candidates []Candidate `json:"candidates"`
}

// FilterResult is the output of the FilterSuppressed activity.
type FilterResult struct {
	Candidates []Candidate `json:"candidates"`
	Excluded   int         `json:"excluded"`
}

// NotificationPayload is the input to the SendExternalNotifications activity.
type NotificationPayload struct {
	Candidates      []Candidate           `json:"candidates"`
	WindowHours     int                   `json:"windowHours"`
	Channels        []NotificationChannel `json:"channels,omitempty"`
	TestModeEmail   string                `json:"testModeEmail,omitempty"`
	SuppressionDays int                   `json:"suppressionDays,omitempty"`
}

// DispatchResult is the aggregate outcome of one batch-processing run.
//
// Invariants: UsersWithEmails + UsersWithoutEmails == TotalUsers (after the
// test-mode filter), and EmailsSent <= UsersWithEmails.
type DispatchResult struct {
	TotalUsers         int                   `json:"totalUsers"`
	UsersWithEmails    int                   `json:"usersWithEmails"`
	UsersWithoutEmails int                   `json:"usersWithoutEmails"`
	EmailsSent         int                   `json:"emailsSent"`
	Errors             []string              `json:"errors"`
	Channels           []NotificationChannel `json:"channels"`
}

// RemindRequest is the input to RemindInactiveUsersWorkflow. Zero values
// fall back to the run defaults (1-day window, email channel only,
// suppression window of DefaultSuppressionDays, no test-mode filter).
type RemindRequest struct {
	DaysInactive    int                   `json:"daysInactive,omitempty"`
	Channels        []NotificationChannel `json:"channels,omitempty"`
	TestModeEmail   string                `json:"testModeEmail,omitempty"`
	SuppressionDays int                   `json:"suppressionDays,omitempty"`
}

// RemindResult is the terminal artifact of one workflow run.
type RemindResult struct {
	Success         bool     `json:"success"`
	UsersFound      int      `json:"usersFound"`
	UsersSuppressed int      `json:"usersSuppressed"`
	UsersProcessed  int      `json:"usersProcessed"`
	UsersExcluded   int      `json:"usersExcluded"`
	EmailsSent      int      `json:"emailsSent"`
	Errors          []string `json:"errors"`
	Timestamp       string   `json:"timestamp"`
}
