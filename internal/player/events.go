package player

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
	"github.com/osse101/Bossforge_Go/internal/progression"
)

// publish runs after commit. A failed publish is logged and never fails the request.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if rid := logger.GetRequestID(ctx); rid != "" {
		evt = evt.WithMetadata("request_id", rid)
	}
	if err := s.bus.Publish(context.WithoutCancel(ctx), evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgEventPublishError, "type", evt.Type, "error", err)
	}
}

func (s *service) publishProgress(ctx context.Context, p domain.Player, delta progression.Delta, grants []domain.AchievementGrant) {
	log := logger.FromContext(ctx)
	for _, g := range grants {
		log.Info(LogMsgAchievementGrant, "player_id", p.ID, "achievement_id", g.AchievementID,
			"achievement", g.AchievementName, "coins", g.RewardCoins)
		s.publish(ctx, event.New(event.AchievementGranted, event.AchievementGrantedPayloadV1{
			PlayerID:        p.ID,
			AchievementID:   g.AchievementID,
			AchievementName: g.AchievementName,
			RewardCoins:     g.RewardCoins,
		}))
	}
	if delta.IsZero() {
		return
	}
	s.publish(ctx, event.New(event.PlayerProgressed, progressPayload(p)))
}

func progressPayload(p domain.Player) event.PlayerProgressPayloadV1 {
	return event.PlayerProgressPayloadV1{
		PlayerID:   p.ID,
		Username:   p.Username,
		Experience: p.Experience,
		Coins:      p.Coins,
		Level:      p.Level,
	}
}
