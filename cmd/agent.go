package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"course-agent/config"
	"course-agent/handler"
	"course-agent/pkg/rabbitmq"
	"course-agent/server"
)

// agent runs the long-lived mode: a local status HTTP server plus the
// media backend's status event stream.
func agent(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "run the status server and event consumer",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(server.SetupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			tracker := server.NewTracker()
			deps := handler.Dependencies{Tracker: tracker}

			if cfg.Queue != nil {
				conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
				if err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Msg("event stream unavailable, continuing without it")
				} else {
					consumer := rabbitmq.NewConsumer(conn, cfg.Queue, cfg.Server.Workers, handler.VideoStatusHandler)
					go func() {
						if err := consumer.Consume(ctx, deps); err != nil {
							zerolog.Ctx(ctx).Error().Err(err).Msg("event consumer stopped")
						}
					}()
				}
			}

			server.RunHTTP(ctx, cfg, tracker)
		},
	}
}
