package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-agent/constant"
	"course-agent/dto"
	"course-agent/server"
)

func TestVideoStatusHandler(t *testing.T) {
	videoID := uuid.New()
	body, err := json.Marshal(dto.VideoStatusMessage{
		VideoID:  videoID,
		Status:   constant.VideoStatusProcessing,
		Progress: 55,
	})
	require.NoError(t, err)

	tracker := server.NewTracker()
	deps := Dependencies{Tracker: tracker}

	require.NoError(t, VideoStatusHandler(context.Background(), amqp.Delivery{Body: body}, deps))

	snap := tracker.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, videoID.String(), snap[0].ID)
	assert.Equal(t, constant.VideoStatusProcessing, snap[0].Status)
	assert.Equal(t, 55, snap[0].Progress)
}

func TestVideoStatusHandlerBadPayload(t *testing.T) {
	tracker := server.NewTracker()
	err := VideoStatusHandler(context.Background(), amqp.Delivery{Body: []byte("not json")}, Dependencies{Tracker: tracker})
	require.Error(t, err)
	assert.Empty(t, tracker.Snapshot())
}
