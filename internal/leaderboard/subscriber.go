package leaderboard

import (
	"context"
	"fmt"

	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// Types are the events that move a player's score
var Types = []event.Type{
	event.PlayerRegistered,
	event.PlayerProgressed,
	event.PlayerOverridden,
}

// Register subscribes board to the progress events on bus
func Register(bus event.Bus, board Board) {
	event.SubscribeAll(bus, Types, Handler(board))
}

// Handler returns the event handler that writes a player's totals to board
func Handler(board Board) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		log := logger.FromContext(ctx)

		p, err := event.DecodePayload[event.PlayerProgressPayloadV1](evt.Payload)
		if err != nil {
			log.Error(LogMsgPayloadDecode, "event_id", evt.ID, "type", evt.Type, "error", err)
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}

		if err := board.Update(ctx, p.PlayerID, p.Username, p.Experience); err != nil {
			log.Warn(LogMsgUpdateFailed, "player_id", p.PlayerID, "error", err)
			return err
		}
		log.Debug(LogMsgUpdated, "player_id", p.PlayerID, "experience", p.Experience)
		return nil
	}
}
