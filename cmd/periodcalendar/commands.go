package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/periodcalendar/internal/cli"
	"github.com/terraincognita07/periodcalendar/internal/prediction"
	"github.com/terraincognita07/periodcalendar/internal/services"
)

func newSummaryCommand(options *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show cycle statistics and the next prediction",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := cli.ValidateFormat(format); err != nil {
				return err
			}
			return options.withEnv(func(env *commandEnv) error {
				summary, err := env.cycleService().Overview(env.today)
				if err != nil {
					return err
				}
				return cli.WriteSummary(options.stdout, summary, format)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", cli.FormatTable, "output format: table, json")
	return cmd
}

func newPredictCommand(options *rootOptions) *cobra.Command {
	var format string
	var cycles int
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict upcoming cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cli.ValidateFormat(format); err != nil {
				return err
			}
			return options.withEnv(func(env *commandEnv) error {
				count := env.cfg.Prediction.Cycles
				if cmd.Flags().Changed("cycles") {
					count = cycles
				}
				predictions, err := env.cycleService().Predictions(env.today, count)
				if err != nil {
					return err
				}
				return cli.WritePredictions(options.stdout, predictions, format)
			})
		},
	}
	cmd.Flags().IntVar(&cycles, "cycles", prediction.DefaultPredictedCycles, "number of cycles to predict (1-12)")
	cmd.Flags().StringVar(&format, "format", cli.FormatTable, "output format: table, json")
	return cmd
}

func newLogCommand(options *rootOptions) *cobra.Command {
	var input services.EntryInput
	cmd := &cobra.Command{
		Use:   "log <date>",
		Short: "Log a day, replacing any earlier log of that date",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input.Date = args[0]
			return options.withEnv(func(env *commandEnv) error {
				entry, err := services.NewEntryService(env.repos.Entries).Upsert(input, env.today)
				if err != nil {
					return err
				}
				fmt.Fprintf(options.stdout, "✅ Logged %s\n", cli.DescribeEntry(entry))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&input.IsPeriod, "period", false, "mark the day as a period day")
	cmd.Flags().StringVar(&input.FlowLevel, "flow", "", "flow level: light, medium, heavy, very_heavy")
	cmd.Flags().StringVar(&input.Mood, "mood", "", "mood: happy, sad, angry, anxious, calm, energetic, tired")
	cmd.Flags().StringVar(&input.Cramps, "cramps", "", "cramps: mild, moderate, severe")
	cmd.Flags().StringVar(&input.Notes, "notes", "", "free text notes")
	return cmd
}

func newDeleteCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the log of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return options.withEnv(func(env *commandEnv) error {
				deleted, err := services.NewEntryService(env.repos.Entries).Delete(args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("no entry logged for %s", args[0])
				}
				fmt.Fprintf(options.stdout, "🗑  Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCommand(options *rootOptions) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import day logs from CSV (date,is_period[,flow,mood,cramps,notes])",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			return options.withEnv(func(env *commandEnv) error {
				result, err := cli.ImportCSV(file, services.NewEntryService(env.repos.Entries), env.today, cli.ImportOptions{
					Replace:  replace,
					Progress: options.stderr,
				})
				if errors.Is(err, cli.ErrNothingToImport) {
					cli.WriteImportResult(options.stdout, result)
				}
				if err != nil {
					return err
				}
				cli.WriteImportResult(options.stdout, result)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "delete all stored entries before importing")
	return cmd
}

func newSettingsCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := cli.ValidateFormat(format); err != nil {
				return err
			}
			return options.withEnv(func(env *commandEnv) error {
				settings, err := services.NewSettingsService(env.repos.Settings).Get()
				if err != nil {
					return err
				}
				return cli.WriteSettings(options.stdout, settings, format)
			})
		},
	}
	show.Flags().StringVar(&format, "format", cli.FormatTable, "output format: table, json")

	var (
		cycleLength    int
		periodDuration int
		notifyBefore   int
		notifyOvul     bool
		notifyFertile  bool
		theme          string
		applySuggested bool
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the given flags are updated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			update := services.SettingsUpdate{}
			if flags.Changed("cycle-length") {
				update.AvgCycleLength = &cycleLength
			}
			if flags.Changed("period-duration") {
				update.PeriodDuration = &periodDuration
			}
			if flags.Changed("notify-before") {
				update.NotifBeforePeriod = &notifyBefore
			}
			if flags.Changed("notify-ovulation") {
				update.NotifOvulation = &notifyOvul
			}
			if flags.Changed("notify-fertile") {
				update.NotifFertileWindow = &notifyFertile
			}
			if flags.Changed("theme") {
				update.ThemeMode = &theme
			}
			if update.Empty() && !applySuggested {
				return errors.New("nothing to update, pass at least one setting flag")
			}
			if applySuggested && update.AvgCycleLength != nil {
				return errors.New("--apply-suggested and --cycle-length are mutually exclusive")
			}

			return options.withEnv(func(env *commandEnv) error {
				settingsService := services.NewSettingsService(env.repos.Settings)
				if !update.Empty() {
					if _, err := settingsService.Update(update); err != nil {
						return err
					}
				}
				if applySuggested {
					if _, err := env.cycleService().ApplySuggestedCycleLength(); err != nil {
						return err
					}
				}

				settings, err := settingsService.Get()
				if err != nil {
					return err
				}
				fmt.Fprintln(options.stdout, "✅ Settings updated")
				return cli.WriteSettings(options.stdout, settings, cli.FormatTable)
			})
		},
	}
	set.Flags().IntVar(&cycleLength, "cycle-length", 0, "average cycle length in days (15-45)")
	set.Flags().IntVar(&periodDuration, "period-duration", 0, "period duration in days (1-10)")
	set.Flags().IntVar(&notifyBefore, "notify-before", 0, "days before the period to send a reminder (0-7, 0 disables)")
	set.Flags().BoolVar(&notifyOvul, "notify-ovulation", true, "send ovulation reminders")
	set.Flags().BoolVar(&notifyFertile, "notify-fertile", true, "send fertile window reminders")
	set.Flags().StringVar(&theme, "theme", "", "theme: light, dark, system")
	set.Flags().BoolVar(&applySuggested, "apply-suggested", false, "store the cycle length suggested by the logged history")

	cmd.AddCommand(show, set)
	return cmd
}

func newSetPasswordCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password",
		Short: "Set the API password",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return options.withEnv(func(env *commandEnv) error {
				prompt := cli.NewPasswordPrompt(options.stdin, options.stderr)
				return cli.RunSetPasswordCommand(env.authService(), prompt, options.stdout)
			})
		},
	}
}

func newResetPasswordCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Replace the API password with a temporary one",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return options.withEnv(func(env *commandEnv) error {
				return cli.RunResetPasswordCommand(env.authService(), options.stdout)
			})
		},
	}
}
