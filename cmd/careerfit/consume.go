package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"careerfit-workers/internal/app"
	"careerfit-workers/internal/queue"
)

func newConsumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Consume prediction requests from the AMQP queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateForQueue(); err != nil {
				return err
			}
			log := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log, appName)
			if err != nil {
				return err
			}
			defer a.Close()

			var consumer *queue.Consumer
			err = app.RetryWithBackoff(ctx, func() error {
				var err error
				consumer, err = queue.Dial(queue.Config{
					URL:         cfg.Queue.URL,
					Queue:       cfg.Queue.Name,
					Prefetch:    cfg.Queue.Prefetch,
					ConsumerTag: cfg.Queue.ConsumerTag,
				}, queue.NewProcessor(a.Service, log), log)
				return err
			}, 10, 2*time.Second, log, "RabbitMQ connection")
			if err != nil {
				return err
			}
			defer consumer.Close()

			return consumer.Run(ctx)
		},
	}
}
