package cmd

import (
	"log/slog"

	"github.com/curaious/taskhive/internal/api"
	"github.com/curaious/taskhive/internal/config"
	"github.com/curaious/taskhive/internal/notifier"
	"github.com/curaious/taskhive/internal/telemetry"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the task API server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()

		mailer := notifier.NewSMTPMailer(conf)
		scheduler, err := notifier.NewScheduler(conf.NOTIFY_CRON, s.Services().Task, mailer)
		if err != nil {
			slog.Error("Unable to start due-soon scheduler", slog.Any("error", err))
		} else {
			scheduler.Start()
			defer scheduler.Stop()
		}

		s.Start()
	},
}

// Register the "server" command
func init() {
	rootCmd.AddCommand(serverCmd)
}
