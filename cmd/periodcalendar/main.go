package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodcalendar/internal/config"
	"github.com/terraincognita07/periodcalendar/internal/db"
	"github.com/terraincognita07/periodcalendar/internal/logger"
	"github.com/terraincognita07/periodcalendar/internal/services"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	today      string
	stdin      *os.File
	stdout     io.Writer
	stderr     io.Writer
}

// commandEnv holds what every command needs once configuration is loaded.
type commandEnv struct {
	cfg      *config.Config
	log      *logrus.Logger
	database *gorm.DB
	repos    *db.Repositories
	today    time.Time
}

func newRootCommand(stdin *os.File, stdout io.Writer, stderr io.Writer) *cobra.Command {
	options := &rootOptions{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "periodcalendar",
		Short: "Self-hosted period calendar with cycle predictions",
		Long: `Period calendar tracks logged period days and predicts upcoming
periods, ovulation and fertile windows from the recorded history.

Examples:
  periodcalendar serve
  periodcalendar log 2024-03-01 --period --flow medium
  periodcalendar predict --cycles 6`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&options.configPath, "config", "", "YAML config file path")
	root.PersistentFlags().StringVar(&options.today, "today", "", "treat this YYYY-MM-DD date as today")

	root.AddCommand(
		newServeCommand(options),
		newSummaryCommand(options),
		newPredictCommand(options),
		newLogCommand(options),
		newDeleteCommand(options),
		newImportCommand(options),
		newSettingsCommand(options),
		newSetPasswordCommand(options),
		newResetPasswordCommand(options),
	)
	return root
}

func (options *rootOptions) open() (*commandEnv, func(), error) {
	cfg, err := config.Load(options.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	log := logger.NewWithOutput(options.stderr, cfg.Log.Level, cfg.Log.Format)
	database, err := db.OpenSQLite(cfg.Database.Path, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	closeDatabase := func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	today := services.DateAtLocation(time.Now(), cfg.Location())
	if options.today != "" {
		today, err = services.ParseDay(options.today)
		if err != nil {
			closeDatabase()
			return nil, nil, err
		}
	}

	return &commandEnv{
		cfg:      cfg,
		log:      log,
		database: database,
		repos:    db.NewRepositories(database),
		today:    today,
	}, closeDatabase, nil
}

// withEnv opens the environment around run and closes it afterwards.
func (options *rootOptions) withEnv(run func(env *commandEnv) error) error {
	env, closeEnv, err := options.open()
	if err != nil {
		return err
	}
	defer closeEnv()
	return run(env)
}

func (env *commandEnv) cycleService() *services.CycleService {
	return services.NewCycleService(env.repos.Entries, env.repos.Settings, env.cfg.Prediction.RecentWeight)
}

func (env *commandEnv) authService() *services.AuthService {
	return services.NewAuthService(env.repos.Accounts, []byte(env.cfg.Server.SecretKey), env.cfg.Server.TokenTTL)
}
