package handler

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"course-agent/dto"
	"course-agent/server"
)

type Dependencies struct {
	Tracker *server.Tracker
}

// VideoStatusHandler folds a transcoding status event from the media
// backend into the agent's tracker.
func VideoStatusHandler(ctx context.Context, msg amqp.Delivery, deps Dependencies) error {
	var event dto.VideoStatusMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal video status event")
		return err
	}

	deps.Tracker.Set(event.VideoID.String(), "", event.Status, event.Progress)

	zerolog.Ctx(ctx).Info().
		Str("video_id", event.VideoID.String()).
		Str("status", event.Status.String()).
		Int("progress", event.Progress).
		Msg("video status updated")
	return nil
}
