package cmd

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-track-system.com/task-track-system/internal/configs"
	"task-track-system.com/task-track-system/internal/mailer"
	repository "task-track-system.com/task-track-system/internal/repositories"
	"task-track-system.com/task-track-system/internal/services"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one due-date sweep and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})

		notifier := services.NewNotifier(database, smtpMailer)
		sweeper := services.NewSweeper(repository.NewTaskRepository(database), notifier, cfg.Location())

		count, err := sweeper.RunDueDateSweep(context.Background())
		if err != nil {
			return err
		}

		log.Printf("due-date sweep processed %d tasks", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
