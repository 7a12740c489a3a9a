package metrics

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// EventMetricsCollector subscribes to progression events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, event.AllTypes, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PhaseCompleted:
		var p event.PhaseCompletedPayloadV1
		if p, err = event.DecodePayload[event.PhaseCompletedPayloadV1](evt.Payload); err == nil {
			CoinsAwarded.Add(float64(p.RewardCoins))
			ExperienceAwarded.Add(float64(p.RewardExperience))
		}

	case event.BattleRecorded:
		var p event.BattleRecordedPayloadV1
		if p, err = event.DecodePayload[event.BattleRecordedPayloadV1](evt.Payload); err == nil {
			Battles.WithLabelValues(p.Result).Inc()
			CoinsAwarded.Add(float64(p.RewardCoins))
			ExperienceAwarded.Add(float64(p.RewardExperience))
		}

	case event.AchievementGranted:
		var p event.AchievementGrantedPayloadV1
		if p, err = event.DecodePayload[event.AchievementGrantedPayloadV1](evt.Payload); err == nil {
			AchievementsGranted.Inc()
			CoinsAwarded.Add(float64(p.RewardCoins))
		}

	case event.ItemAcquired:
		InventoryChanges.WithLabelValues(DirectionAcquired).Inc()

	case event.ItemRemoved:
		InventoryChanges.WithLabelValues(DirectionRemoved).Inc()
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
