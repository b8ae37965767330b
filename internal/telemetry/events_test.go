package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/merahburam/ameo-assets/internal/mocks"
	"github.com/merahburam/ameo-assets/internal/telemetry"
)

func TestEventEmitterPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	var published telemetry.EventEnvelope
	publisher.On("Publish", mock.Anything, "dm.message_sent", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(telemetry.EventEnvelope)
		}).
		Return(nil).Once()

	emitter := telemetry.NewEventEmitter(publisher, "ameo-assets", "test")
	userID := 42
	emitter.Emit(context.Background(), "dm.message_sent", "message_sent", "req-123", &userID, map[string]int{"conversation_id": 7})

	publisher.AssertExpectations(t)
	assert.Equal(t, 1, published.SchemaVersion)
	assert.Equal(t, "message_sent", published.EventType)
	assert.Equal(t, "ameo-assets", published.Service)
	assert.Equal(t, "test", published.Environment)
	assert.Equal(t, "req-123", published.RequestID)
	require.NotNil(t, published.UserID)
	assert.Equal(t, 42, *published.UserID)
	assert.Equal(t, map[string]int{"conversation_id": 7}, published.Payload)

	occurredAt, err := time.Parse(time.RFC3339Nano, published.OccurredAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), occurredAt, time.Minute)
}

func TestEventEmitterPublishErrorIsSwallowed(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	publisher.On("Publish", mock.Anything, "ai.speech_generated", mock.Anything).
		Return(errors.New("broker down")).Once()

	emitter := telemetry.NewEventEmitter(publisher, "ameo-assets", "test")
	emitter.Emit(context.Background(), "ai.speech_generated", "speech_generated", "req-456", nil, nil)

	publisher.AssertExpectations(t)
}

func TestEventEmitterNilIsNoop(t *testing.T) {
	var emitter *telemetry.EventEmitter
	emitter.Emit(context.Background(), "dm.message_sent", "message_sent", "req-789", nil, nil)

	emitter = telemetry.NewEventEmitter(nil, "ameo-assets", "test")
	emitter.Emit(context.Background(), "dm.message_sent", "message_sent", "req-789", nil, nil)
}
