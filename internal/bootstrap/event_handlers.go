package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/Bossforge_Go/internal/config"
	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/leaderboard"
	"github.com/osse101/Bossforge_Go/internal/metrics"
	"github.com/osse101/Bossforge_Go/internal/streaming"
)

// Integrations holds the optional external subscribers. Fields are nil when
// the matching integration is not configured.
type Integrations struct {
	Board leaderboard.Board
	Redis *redis.Client
	Sink  *streaming.Sink
}

// InitializeIntegrations connects to redis and kafka when they are configured
func InitializeIntegrations(ctx context.Context, cfg *config.Config) (*Integrations, error) {
	in := &Integrations{}

	if cfg.LeaderboardEnabled() {
		client, err := leaderboard.Connect(ctx, leaderboard.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		in.Redis = client
		in.Board = leaderboard.NewRedisBoard(client)
	} else {
		slog.Info(LogMsgLeaderboardDisabled)
	}

	if cfg.StreamingEnabled() {
		producer, err := streaming.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			if in.Redis != nil {
				_ = in.Redis.Close()
			}
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectKafka, err)
		}
		in.Sink = streaming.NewSink(producer, cfg.KafkaTopic)
	} else {
		slog.Info(LogMsgStreamingDisabled)
	}

	return in, nil
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (for event-based metrics)
// - Leaderboard (when redis is configured)
// - Kafka sink (when brokers are configured)
func RegisterEventHandlers(bus event.Bus, in *Integrations) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if in == nil {
		return nil
	}
	if in.Board != nil {
		leaderboard.Register(bus, in.Board)
		slog.Info(LogMsgLeaderboardRegistered)
	}
	if in.Sink != nil {
		in.Sink.Register(bus)
		slog.Info(LogMsgStreamingRegistered)
	}
	return nil
}
