package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodcalendar/internal/api"
	"github.com/terraincognita07/periodcalendar/internal/config"
	"github.com/terraincognita07/periodcalendar/internal/notify"
	"github.com/terraincognita07/periodcalendar/internal/scheduler"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return options.withEnv(func(env *commandEnv) error {
				return serve(cmd.Context(), env)
			})
		},
	}
}

func serve(ctx context.Context, env *commandEnv) error {
	cfg := env.cfg
	secretKey, err := cfg.ResolveSecretKey()
	if err != nil {
		return err
	}
	if err := scheduler.ValidateSpec(cfg.Reminders.Cron); err != nil {
		return err
	}

	sender, err := reminderSender(cfg, env.log)
	if err != nil {
		return err
	}

	location := cfg.Location()
	handler, err := api.NewHandler(env.database, api.Options{
		SecretKey:     []byte(secretKey),
		TokenTTL:      cfg.Server.TokenTTL,
		Location:      location,
		Log:           env.log,
		DefaultCycles: cfg.Prediction.Cycles,
		RecentWeight:  cfg.Prediction.RecentWeight,
		CookieSecure:  cfg.Server.CookieSecure,
		Sender:        sender,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	reminders := scheduler.NewReminderScheduler(handler.Reminders(), cfg.Reminders.Cron, location, env.log)
	if err := reminders.Start(); err != nil {
		return err
	}
	defer reminders.Stop()

	app := api.NewApp(handler, env.log)

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			env.log.WithError(err).Error("server shutdown failed")
		}
	}()

	env.log.WithFields(logrus.Fields{
		"port":     cfg.Server.Port,
		"db":       cfg.Database.Path,
		"timezone": location.String(),
	}).Info("period calendar listening")
	if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func reminderSender(cfg *config.Config, log *logrus.Logger) (services.ReminderSender, error) {
	if !cfg.TelegramEnabled() {
		log.Info("telegram not configured, reminders are written to the log")
		return notify.NewLogSender(log), nil
	}
	sender, err := notify.NewTelegramSender(cfg.Reminders.TelegramToken, cfg.Reminders.TelegramChatID, log)
	if err != nil {
		return nil, fmt.Errorf("telegram init failed: %w", err)
	}
	return sender, nil
}
