package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	ID         string         `json:"id"`
	Version    string         `json:"version"` // Event schema version (e.g., "1.0")
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    interface{}    `json:"payload"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Progression event types
const (
	PhaseCompleted     Type = "phase.completed"
	BattleRecorded     Type = "battle.recorded"
	AchievementGranted Type = "achievement.granted"
	ItemAcquired       Type = "item.acquired"
	ItemRemoved        Type = "item.removed"
	PlayerProgressed   Type = "player.progressed"
	PlayerOverridden   Type = "player.overridden"
	PlayerRegistered   Type = "player.registered"
)

// AllTypes lists every event type the service publishes
var AllTypes = []Type{
	PhaseCompleted,
	BattleRecorded,
	AchievementGranted,
	ItemAcquired,
	ItemRemoved,
	PlayerProgressed,
	PlayerOverridden,
	PlayerRegistered,
}

// Typed event payloads for type safety

// PhaseCompletedPayloadV1 is published once per newly completed phase
type PhaseCompletedPayloadV1 struct {
	PlayerID         int64 `json:"player_id"`
	PhaseID          int64 `json:"phase_id"`
	RewardCoins      int64 `json:"reward_coins"`
	RewardExperience int64 `json:"reward_experience"`
}

// BattleRecordedPayloadV1 is published for every battle, whatever its result
type BattleRecordedPayloadV1 struct {
	PlayerID         int64  `json:"player_id"`
	BattleID         int64  `json:"battle_id"`
	BossID           *int64 `json:"boss_id,omitempty"`
	Result           string `json:"result"`
	RewardCoins      int64  `json:"reward_coins"`
	RewardExperience int64  `json:"reward_experience"`
}

// AchievementGrantedPayloadV1 is published once per grant
type AchievementGrantedPayloadV1 struct {
	PlayerID        int64  `json:"player_id"`
	AchievementID   int64  `json:"achievement_id"`
	AchievementName string `json:"achievement_name"`
	RewardCoins     int64  `json:"reward_coins"`
}

// InventoryChangedPayloadV1 is the payload of item.acquired and item.removed
type InventoryChangedPayloadV1 struct {
	PlayerID int64 `json:"player_id"`
	ItemID   int64 `json:"item_id"`
	Delta    int   `json:"delta"`
	Quantity int   `json:"quantity"`
}

// PlayerProgressPayloadV1 carries a player's totals after a commit
type PlayerProgressPayloadV1 struct {
	PlayerID   int64  `json:"player_id"`
	Username   string `json:"username"`
	Experience int64  `json:"experience"`
	Coins      int64  `json:"coins"`
	Level      int    `json:"level"`
}

// New builds an event with a fresh id and the current schema version
func New(eventType Type, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Version:    EventSchemaVersion,
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// WithMetadata returns a copy of e carrying key=value
func (e Event) WithMetadata(key string, value any) Event {
	m := make(map[string]any, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		m[k] = v
	}
	m[key] = value
	e.Metadata = m
	return e
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every type in types
func SubscribeAll(bus Bus, types []Type, handler Handler) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
