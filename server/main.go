package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/config"
	"inactivity-reminder/logger"
	"inactivity-reminder/shared"
	"inactivity-reminder/workflows"
)

// triggerRequest is the optional body of the manual trigger endpoint.
type triggerRequest struct {
	DaysInactive  int    `json:"daysInactive"`
	TestModeEmail string `json:"testModeEmail"`
}

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

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.GET("/health", handleHealth)
	r.POST("/workflows/remind-inactive-users", handleRemindInactiveUsers(c))

	logger.S().Infow("HTTP trigger listening", "port", cfg.Server.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.S().Fatalw("HTTP server stopped", "error", err)
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRemindInactiveUsers starts the reminder workflow asynchronously and
// answers with the started run's identifier. The workflow-level retry policy
// lives here: the pipeline itself never retries a whole run.
func handleRemindInactiveUsers(tc client.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req triggerRequest
		// Body is optional; an unreadable body just means defaults.
		_ = c.ShouldBindJSON(&req)

		opts := client.StartWorkflowOptions{
			ID:        fmt.Sprintf("%s-%s", shared.RemindInactiveUsersWorkflowID, uuid.NewString()),
			TaskQueue: shared.ReminderWorkflowTaskQueue,
			RetryPolicy: &temporal.RetryPolicy{
				InitialInterval:    time.Second,
				BackoffCoefficient: 2.0,
				MaximumInterval:    30 * time.Second,
				MaximumAttempts:    3,
			},
		}

		we, err := tc.ExecuteWorkflow(c.Request.Context(), opts, workflows.RemindInactiveUsersWorkflow, shared.RemindRequest{
			DaysInactive:  req.DaysInactive,
			TestModeEmail: req.TestModeEmail,
		})
		if err != nil {
			logger.S().Errorw("Failed to start reminder workflow", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to start workflow",
				"debug":   err.Error(),
			})
			return
		}

		logger.S().Infow("Reminder workflow started",
			"workflowId", we.GetID(),
			"runId", we.GetRunID(),
			"daysInactive", req.DaysInactive,
		)
		c.JSON(http.StatusOK, gin.H{
			"status":    "workflow_started",
			"workflow":  shared.RemindInactiveUsersWorkflowID,
			"taskId":    we.GetID(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
