package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-track-system.com/task-track-system/internal/auth"
	config "task-track-system.com/task-track-system/internal/configs"
	httpapi "task-track-system.com/task-track-system/internal/http"
	"task-track-system.com/task-track-system/internal/mailer"
	repository "task-track-system.com/task-track-system/internal/repositories"
	"task-track-system.com/task-track-system/internal/services"
	"task-track-system.com/task-track-system/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracking HTTP API and the due-date sweep scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		files, err := storage.NewFileStore(cfg.UploadDir)
		if err != nil {
			return err
		}

		smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})

		location := cfg.Location()
		sessions := auth.NewRedisSessionStore(redisClient, cfg.SessionTTL)
		notifier := services.NewNotifier(database, smtpMailer)
		taskService := services.NewTaskService(database, notifier, files)
		userService := services.NewUserService(repository.NewUserRepository(database))
		notificationService := services.NewNotificationService(repository.NewNotificationRepository(database))
		sweeper := services.NewSweeper(repository.NewTaskRepository(database), notifier, location)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		handler := httpapi.NewHandler(taskService, userService, notificationService, sessions, location)
		httpapi.Register(e, handler, sessions, cfg.RateLimit)

		go runSweepLoop(ctx, sweeper, time.Duration(cfg.SweepIntervalSeconds)*time.Second)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

// runSweepLoop triggers the due-date sweep on a fixed interval until
// the context is cancelled. The sweep itself stays idempotent, so an
// overlap with a manual run is harmless.
func runSweepLoop(ctx context.Context, sweeper *services.Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := sweeper.RunDueDateSweep(ctx)
			if err != nil {
				log.Printf("due-date sweep failed: %v", err)
				continue
			}
			log.Printf("due-date sweep processed %d tasks", count)
		case <-ctx.Done():
			return
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
