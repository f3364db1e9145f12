package main

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"inactivity-reminder/activities"
	"inactivity-reminder/config"
	"inactivity-reminder/email"
	"inactivity-reminder/logger"
	"inactivity-reminder/shared"
	"inactivity-reminder/store"
	"inactivity-reminder/workflows"
)

func main() {
	// Configuration problems surface here, before any connection is opened.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Unable to initialize logger: %v", err)
	}
	defer logger.L().Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := store.NewPostgres(ctx, cfg.Database.DSN())
	if err != nil {
		logger.S().Fatalw("Unable to connect to database", "error", err)
	}
	defer pg.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.S().Fatalw("Unable to connect to Redis", "addr", cfg.Redis.Addr, "error", err)
	}
	defer rdb.Close()

	dispatcher, err := buildDispatcher(cfg)
	if err != nil {
		logger.S().Fatalw("Unable to build email dispatcher", "error", err)
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    logger.NewTemporalAdapter(logger.L()),
	})
	if err != nil {
		logger.S().Fatalw("Unable to create Temporal client", "error", err)
	}
	defer c.Close()

	a := &activities.Activities{
		Records:     pg,
		Directory:   pg,
		Suppression: store.NewRedisSuppressionList(rdb),
		Dispatcher:  dispatcher,
		Renderer:    email.NewRenderer(cfg.Email.AppName, cfg.Email.BaseURL),
	}

	// One binary hosts both workers. Dispatch load on the email provider is
	// bounded by the strictly sequential send loop, not worker tuning.
	wfWorker := worker.New(c, shared.ReminderWorkflowTaskQueue, worker.Options{})
	wfWorker.RegisterWorkflow(workflows.RemindInactiveUsersWorkflow)

	actWorker := worker.New(c, shared.ReminderActivityTaskQueue, worker.Options{})
	actWorker.RegisterActivity(a)

	logger.S().Infow("Starting reminder workers",
		"workflowTaskQueue", shared.ReminderWorkflowTaskQueue,
		"activityTaskQueue", shared.ReminderActivityTaskQueue,
		"emailProvider", cfg.Email.Provider,
	)
	if err := wfWorker.Start(); err != nil {
		logger.S().Fatalw("Unable to start workflow worker", "error", err)
	}
	defer wfWorker.Stop()

	if err := actWorker.Run(worker.InterruptCh()); err != nil {
		logger.S().Fatalw("Activity worker stopped", "error", err)
	}
}

func buildDispatcher(cfg *config.Config) (email.Dispatcher, error) {
	switch cfg.Email.Provider {
	case "resend":
		return email.NewResendDispatcher(cfg.Email.ResendAPIKey, cfg.Email.From), nil
	case "smtp":
		return email.NewSMTPDispatcher(
			cfg.Email.SMTP.Host,
			cfg.Email.SMTP.Port,
			cfg.Email.SMTP.Username,
			cfg.Email.SMTP.Password,
			cfg.Email.From,
		), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Email.Provider)
	}
}
