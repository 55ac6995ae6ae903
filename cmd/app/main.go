package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fablab/cmd"
	httpadapter "fablab/internal/adapters/in/http"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "fablab",
		Short:        "Fablab job catalog and printing orders",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newTokenCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			configs := getConfigs()
			logger := newLogger(configs.LogLevel)

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			infra, cleanup, err := cmd.BuildInfrastructure(ctx, configs, logger)
			defer cleanup()
			if err != nil {
				return err
			}

			app := cmd.NewCompositionRoot(configs, infra, metrics.NewOrderMetrics(), logger)

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			return startWebServer(ctx, &app, configs, logger)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			configs := getConfigs()
			logger := newLogger(configs.LogLevel)

			if err := cmd.MigrateDatabase(configs); err != nil {
				return err
			}
			logger.InfoContext(c.Context(), "database schema is up to date")
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var (
		subject string
		email   string
		staff   bool
		ttl     time.Duration
	)
	command := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		RunE: func(c *cobra.Command, _ []string) error {
			configs := getConfigs()
			if configs.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			id := kernel.NewUUID()
			if subject != "" {
				parsed, err := kernel.UUIDFromString(subject)
				if err != nil {
					return err
				}
				id = parsed
			}
			actor, err := kernel.NewActor(id, email, staff)
			if err != nil {
				return err
			}

			token, err := httpadapter.NewIdentity(configs.JWTSecret).Sign(actor, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}
	command.Flags().StringVar(&subject, "sub", "", "user id, random when empty")
	command.Flags().StringVar(&email, "email", "", "user email")
	command.Flags().BoolVar(&staff, "staff", false, "grant moderator rights")
	command.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return command
}

func getConfigs() cmd.Config {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load(".env")

	config := cmd.Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              getEnv("DB_SSLMODE", "disable"),
		Storage:                getEnv("STORAGE", cmd.StoragePostgres),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		MinioEndpoint:          os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:         os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:         os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:            getEnv("MINIO_BUCKET", "fablab"),
		MinioUseSSL:            strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true"),
		MinioPublicURL:         os.Getenv("MINIO_PUBLIC_URL"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		OrderStatsSchedule:     os.Getenv("ORDER_STATS_SCHEDULE"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// echoLogLevel maps the service log level onto echo's own logger.
func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) error {
	if configs.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	e, err := httpadapter.NewEcho(app.CreateHTTPServer(), app.CreateIdentity(), logger)
	if err != nil {
		return err
	}
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server started", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.InfoContext(shutdownCtx, "shutting down http server")
	return e.Shutdown(shutdownCtx)
}
