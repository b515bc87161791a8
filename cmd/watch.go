package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gh-talent-scout/internal/config"
	"gh-talent-scout/internal/logger"
	"gh-talent-scout/internal/notify"
	"gh-talent-scout/internal/watch"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-run saved searches and notify about new candidates (needs Postgres)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("interval", 0, "override the check interval")
}

func runWatch(cmd *cobra.Command) error {
	log, err := logger.New(viper.GetBool("json-log"), viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v, _ := cmd.Flags().GetDuration("interval"); v >= time.Minute {
		cfg.Watch.Interval = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("watch mode requires SCOUT_POSTGRES_DSN")
	}

	service, store, cache := buildService(cfg, log)
	defer cache.Close()
	if store == nil {
		return fmt.Errorf("watch mode requires a reachable Postgres")
	}
	defer store.Close()

	var notifier watch.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			return fmt.Errorf("creating telegram notifier: %w", err)
		}
		notifier = telegram
		log.Info("telegram notifications enabled", zap.Int64("chat_id", cfg.Telegram.ChatID))
	} else {
		log.Info("no telegram configured, new candidates will only be logged")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	checker := watch.New(service, store, notifier, cfg.Watch.Interval, log)
	checker.Start(ctx)

	log.Info("shutting down gracefully")
	return nil
}
