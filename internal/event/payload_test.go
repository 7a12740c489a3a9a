package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FillsEnvelope(t *testing.T) {
	evt := New(PhaseCompleted, PhaseCompletedPayloadV1{PlayerID: 1, PhaseID: 2})

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, PhaseCompleted, evt.Type)
	assert.WithinDuration(t, time.Now(), evt.OccurredAt, time.Second)
	assert.NotEqual(t, evt.ID, New(PhaseCompleted, nil).ID)
}

func TestWithMetadata_DoesNotShareMap(t *testing.T) {
	base := New(ItemAcquired, nil).WithMetadata("request_id", "a")
	derived := base.WithMetadata("source", "seed")

	assert.Equal(t, "a", derived.GetMetadataValue("request_id"))
	assert.Equal(t, "seed", derived.GetMetadataValue("source"))
	assert.Nil(t, base.GetMetadataValue("source"))
	assert.Nil(t, Event{}.GetMetadataValue("anything"))
}

func TestDecodePayload(t *testing.T) {
	typed := PlayerProgressPayloadV1{PlayerID: 3, Experience: 110, Coins: 170, Level: 1}

	got, err := DecodePayload[PlayerProgressPayloadV1](typed)
	require.NoError(t, err)
	assert.Equal(t, typed, got)

	// payloads that crossed a serialization boundary arrive as maps
	fromMap, err := DecodePayload[PlayerProgressPayloadV1](map[string]interface{}{
		"player_id": 3, "experience": 110, "coins": 170, "level": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, typed, fromMap)
}

func TestSubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	var seen []Type
	SubscribeAll(bus, AllTypes, func(_ context.Context, evt Event) error {
		seen = append(seen, evt.Type)
		return nil
	})

	for _, typ := range AllTypes {
		require.NoError(t, bus.Publish(context.Background(), New(typ, nil)))
	}
	assert.Equal(t, AllTypes, seen)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 100 * time.Millisecond
	assert.Equal(t, base, CalculateRetryDelay(base, 1))
	assert.Equal(t, 2*base, CalculateRetryDelay(base, 2))
	assert.Equal(t, 8*base, CalculateRetryDelay(base, 4))
}
